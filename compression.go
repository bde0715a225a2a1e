package mcwire

import (
	"io"

	"github.com/klauspost/compress/zlib"
)

// Compression wraps byte streams so that writes are compressed and reads are
// decompressed. Implementations hold no per-stream state and may be shared
// between transports.
type Compression interface {
	// Compressed wraps sink. Closing the returned writer flushes the
	// compressed stream but does not close sink.
	Compressed(sink io.Writer) io.WriteCloser
	// Decompressed wraps source. It may read the stream header eagerly.
	Decompressed(source io.Reader) (io.ReadCloser, error)
}

// Zlib is the zlib (RFC 1950) compression used by the protocol.
//
// Level is a zlib compression level from 1 to 9. Zero selects the library
// default.
type Zlib struct {
	Level int
}

func (z Zlib) level() int {
	if z.Level == 0 {
		return zlib.DefaultCompression
	}
	return z.Level
}

func (z Zlib) Compressed(sink io.Writer) io.WriteCloser {
	zw, err := zlib.NewWriterLevel(sink, z.level())
	if err != nil {
		return zlib.NewWriter(sink)
	}
	return zw
}

func (z Zlib) Decompressed(source io.Reader) (io.ReadCloser, error) {
	return zlib.NewReader(source)
}

type writerResetter interface {
	Reset(w io.Writer)
}
