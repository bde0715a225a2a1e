package mcwire

import (
	"errors"
	"fmt"
	"io"

	"github.com/gstoney/mcwire/packet"
)

var (
	ErrNotExhausted        = errors.New("not exhausted")
	ErrInvalidFrameLength  = errors.New("invalid frame length")
	ErrInvalidDataLength   = errors.New("invalid data length")
	ErrPacketTooBig        = errors.New("packet too big")
	ErrBadlyCompressed     = errors.New("compressed packet below compression threshold")
	ErrZlibPayloadOverrun  = errors.New("zlib stream exceeds declared payload length")
	ErrZlibPayloadUnderrun = errors.New("zlib stream shorter than declared payload length")
	ErrZlibTrailingData    = errors.New("trailing data in frame after zlib stream ends")
)

func transportErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var te *packet.TransportError
	var de *packet.DecodeError
	if errors.As(err, &te) || errors.As(err, &de) {
		return err
	}
	return &packet.TransportError{Op: op, Err: err}
}

// decodeErr classifies an untyped error as a decode failure.
func decodeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var te *packet.TransportError
	var de *packet.DecodeError
	var ae *packet.ArgumentError
	if errors.As(err, &te) || errors.As(err, &de) || errors.As(err, &ae) {
		return err
	}
	return &packet.DecodeError{Op: op, Err: err}
}

func frameErr(op string, err error, format string, args ...any) error {
	if format != "" {
		err = fmt.Errorf("%w: "+format, append([]any{err}, args...)...)
	}
	return &packet.DecodeError{Op: op, Err: err}
}

// frameReader wraps a source reader to provide bounded access to one frame at a time.
// It ensures packet frame alignment.
//
// Failures of the source are reported as *packet.TransportError. io.EOF marks
// the end of the current frame.
type frameReader struct {
	src       byteReader
	remaining int32
}

func (f *frameReader) Read(p []byte) (n int, err error) {
	if f.remaining <= 0 {
		return 0, io.EOF
	}
	if int32(len(p)) > f.remaining {
		p = p[0:f.remaining]
	}
	n, err = f.src.Read(p)
	f.remaining -= int32(n)

	if err == io.EOF {
		if f.remaining > 0 {
			err = transportErr("read frame", io.ErrUnexpectedEOF)
		} else {
			err = nil
		}
	} else if err != nil {
		err = transportErr("read frame", err)
	}
	return
}

func (f *frameReader) ReadByte() (byte, error) {
	if f.remaining <= 0 {
		return 0, io.EOF
	}
	v, err := f.src.ReadByte()
	if err == nil {
		f.remaining -= 1
	} else if err == io.EOF {
		err = transportErr("read frame", io.ErrUnexpectedEOF)
	} else {
		err = transportErr("read frame", err)
	}
	return v, err
}

// next reads the length of the following frame. The previous frame must be
// fully consumed.
func (f *frameReader) next() (length int32, err error) {
	if f.remaining > 0 {
		return f.remaining, &packet.ArgumentError{Op: "read frame length", Err: ErrNotExhausted}
	}

	length, err = packet.ReadVarInt(f.src)
	if err != nil {
		return 0, transportErr("read frame length", err)
	}
	if length <= 0 {
		return 0, frameErr("read frame length", ErrInvalidFrameLength, "%d", length)
	}
	f.remaining = length
	return
}

func (f *frameReader) skip() (n int32, err error) {
	n64, err := io.CopyN(io.Discard, f, int64(f.remaining))
	n = int32(n64)
	return
}

// PayloadReader provides access to a single packet's payload.
//
// Read returns payload bytes. Remaining reports unread payload bytes.
//
// Skip discards remaining payload bytes, enabling validation on Close.
//
// Close validates payload exhaustion and frame integrity, returning an error
// if the payload was not fully consumed or the frame is malformed.
// Close does not realign on error.
//
// Discard abandons the current frame and realigns to the next frame boundary.
// Use Discard to recover from malformed frames or when validation is not needed.
type PayloadReader interface {
	io.ReadCloser
	Skip() (n int32, err error)
	Discard() (n int32, err error)
	Remaining() int32
	// Compressed reports whether the payload arrived in the compressed framing.
	Compressed() bool
}

type plainPayload struct {
	*frameReader
}

func (p plainPayload) Close() (err error) {
	if p.remaining > 0 {
		err = &packet.ArgumentError{Op: "close payload", Err: ErrNotExhausted}
	}
	return
}

func (p plainPayload) Skip() (n int32, err error) {
	return p.skip()
}

func (p plainPayload) Discard() (n int32, err error) {
	return p.skip()
}

func (p plainPayload) Remaining() int32 {
	return p.remaining
}

func (p plainPayload) Compressed() bool {
	return false
}

type compressedPayload struct {
	zr        io.ReadCloser
	fr        *frameReader
	remaining int32
}

func (p *compressedPayload) Read(b []byte) (n int, err error) {
	if p.remaining <= 0 {
		return 0, io.EOF
	}
	if int32(len(b)) > p.remaining {
		b = b[0:p.remaining]
	}
	n, err = p.zr.Read(b)
	p.remaining -= int32(n)

	if err == io.EOF {
		if p.remaining > 0 {
			err = frameErr("read payload", ErrZlibPayloadUnderrun, "%d bytes missing", p.remaining)
		} else {
			err = nil
		}
	} else if err != nil {
		err = decodeErr("read payload", err)
	}
	return
}

func (p *compressedPayload) Skip() (n int32, err error) {
	n64, err := io.CopyN(io.Discard, p, int64(p.remaining))
	n = int32(n64)
	return
}

func (p *compressedPayload) Discard() (n int32, err error) {
	p.remaining = 0
	return p.fr.skip()
}

func (p *compressedPayload) Close() (err error) {
	if p.remaining > 0 {
		return &packet.ArgumentError{Op: "close payload", Err: ErrNotExhausted}
	}

	var buf [1]byte
	n, err := p.zr.Read(buf[:])
	if err == nil || n > 0 {
		return frameErr("close payload", ErrZlibPayloadOverrun, "")
	} else if err != io.EOF {
		return decodeErr("close payload", err)
	}

	if p.fr.remaining > 0 {
		return frameErr("close payload", ErrZlibTrailingData, "%d bytes", p.fr.remaining)
	}
	return decodeErr("close payload", p.zr.Close())
}

func (p *compressedPayload) Remaining() int32 {
	return p.remaining
}

func (p *compressedPayload) Compressed() bool {
	return true
}
