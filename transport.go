package mcwire

import (
	"bufio"
	"bytes"
	"io"
	"sync/atomic"

	"github.com/gstoney/mcwire/packet"
)

// TransportConfig limits frames. Zero fields take their value from
// DefaultTransportConfig.
type TransportConfig struct {
	MaxPacketLen       int32
	MaxDecompressedLen int32
	Compression        Compression
}

// DefaultTransportConfig matches the limits of the vanilla server.
func DefaultTransportConfig() TransportConfig {
	return TransportConfig{
		MaxPacketLen:       1<<21 - 1,
		MaxDecompressedLen: 1 << 23,
		Compression:        Zlib{},
	}
}

type byteReader interface {
	io.Reader
	io.ByteReader
}

type byteWriter interface {
	io.Writer
	io.ByteWriter
}

type flusher interface {
	Flush() error
}

// Transport provides read and write access to a framed stream,
// with compression handled internally.
// Transport does not deserialize packets.
//
// A Transport has one reader and one writer; Recv and Send may run
// concurrently with each other but not with themselves.
type Transport struct {
	reader byteReader
	writer byteWriter

	frames  frameReader
	zReader io.ReadCloser

	zBuffer bytes.Buffer
	zWriter io.WriteCloser

	threshold atomic.Int32

	cfg TransportConfig
}

// NewTransport creates a Transport.
//
// For readers/writers that perform syscalls (e.g. net.Conn), buffering is
// required. Indicate buffered I/O by implementing io.ByteReader/io.ByteWriter.
// If these interfaces are not implemented, the reader/writer will be wrapped
// with bufio. A writer with a Flush method is flushed after every frame.
func NewTransport(r io.Reader, w io.Writer, cfg TransportConfig) *Transport {
	var br byteReader
	var bw byteWriter

	if b, ok := r.(byteReader); ok {
		br = b
	} else if r != nil {
		br = bufio.NewReader(r)
	}

	if b, ok := w.(byteWriter); ok {
		bw = b
	} else if w != nil {
		bw = bufio.NewWriter(w)
	}

	def := DefaultTransportConfig()
	if cfg.MaxPacketLen <= 0 {
		cfg.MaxPacketLen = def.MaxPacketLen
	}
	if cfg.MaxDecompressedLen <= 0 {
		cfg.MaxDecompressedLen = def.MaxDecompressedLen
	}
	if cfg.Compression == nil {
		cfg.Compression = def.Compression
	}

	return &Transport{
		reader: br,
		writer: bw,
		frames: frameReader{src: br},
		cfg:    cfg,
	}
}

func (t *Transport) Config() TransportConfig {
	return t.cfg
}

// CompressionThreshold returns the smallest payload sent in the compressed
// framing. Zero means compression is off.
func (t *Transport) CompressionThreshold() int {
	return int(t.threshold.Load())
}

// SetCompressionThreshold may be called while Recv or Send run on other
// goroutines. Each frame uses the threshold read when it starts.
func (t *Transport) SetCompressionThreshold(threshold int) {
	t.threshold.Store(int32(max(threshold, 0)))
}

// Recv reads the next frame header and returns a reader over its payload.
// The payload must be closed or discarded before the next Recv.
//
// Malformed headers are reported as *packet.DecodeError, source failures as
// *packet.TransportError.
func (t *Transport) Recv() (r PayloadReader, err error) {
	frameLength, err := t.frames.next()
	if err != nil {
		return nil, err
	}

	if frameLength > t.cfg.MaxPacketLen {
		return nil, frameErr("recv", ErrPacketTooBig, "frame of %d bytes", frameLength)
	}

	r = plainPayload{&t.frames}

	threshold := t.CompressionThreshold()
	if threshold > 0 {
		dataLen, err := packet.ReadVarInt(&t.frames)
		if err != nil {
			return nil, decodeErr("recv", err)
		}

		if dataLen < 0 {
			return nil, frameErr("recv", ErrInvalidDataLength, "%d", dataLen)
		}
		if dataLen > 0 {
			if dataLen > t.cfg.MaxDecompressedLen {
				return nil, frameErr("recv", ErrPacketTooBig, "payload of %d bytes", dataLen)
			}
			if int(dataLen) < threshold {
				return nil, frameErr("recv", ErrBadlyCompressed, "%d < %d", dataLen, threshold)
			}

			if t.zReader == nil {
				t.zReader, err = t.cfg.Compression.Decompressed(&t.frames)
			} else if zr, ok := t.zReader.(resetter); ok {
				err = zr.Reset(&t.frames, nil)
			} else {
				t.zReader, err = t.cfg.Compression.Decompressed(&t.frames)
			}
			if err != nil {
				t.zReader = nil
				return nil, decodeErr("recv", err)
			}

			r = &compressedPayload{t.zReader, &t.frames, dataLen}
		}
	}

	return r, nil
}

type resetter interface {
	Reset(r io.Reader, dict []byte) error
}

// Send writes b as one frame. With a non-zero compression threshold,
// payloads of at least that many bytes are compressed and smaller ones are
// sent with a zero data length.
func (t *Transport) Send(b []byte) error {
	length := len(b)

	threshold := t.CompressionThreshold()
	if threshold > 0 {
		if length >= threshold {
			t.zBuffer.Reset()
			if err := packet.WriteVarInt(&t.zBuffer, int32(length)); err != nil {
				return err
			}
			if zw, ok := t.zWriter.(writerResetter); ok {
				zw.Reset(&t.zBuffer)
			} else {
				t.zWriter = t.cfg.Compression.Compressed(&t.zBuffer)
			}
			if _, err := t.zWriter.Write(b); err != nil {
				return transportErr("compress", err)
			}
			if err := t.zWriter.Close(); err != nil {
				return transportErr("compress", err)
			}

			if err := packet.WriteVarInt(t.writer, int32(t.zBuffer.Len())); err != nil {
				return transportErr("send", err)
			}
			if _, err := t.zBuffer.WriteTo(t.writer); err != nil {
				return transportErr("send", err)
			}
			return t.flush()
		}

		if err := packet.WriteVarInt(t.writer, int32(length+1)); err != nil {
			return transportErr("send", err)
		}
		if err := t.writer.WriteByte(0); err != nil {
			return transportErr("send", err)
		}
	} else {
		if err := packet.WriteVarInt(t.writer, int32(length)); err != nil {
			return transportErr("send", err)
		}
	}

	if _, err := t.writer.Write(b); err != nil {
		return transportErr("send", err)
	}
	return t.flush()
}

func (t *Transport) flush() error {
	if f, ok := t.writer.(flusher); ok {
		return transportErr("flush", f.Flush())
	}
	return nil
}
