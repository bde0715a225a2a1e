package packet

import (
	"errors"
	"io"
)

var errUnreadByte = errors.New("FrameReader.UnreadByte: previous operation was not a successful ReadByte")

// FrameReader is a single-owner read cursor over one packet's bytes.
type FrameReader struct {
	buf      []byte
	off      int
	lastByte bool
}

func NewFrameReader(buf []byte) FrameReader {
	return FrameReader{
		buf: buf,
		off: 0,
	}
}

func (r FrameReader) Remaining() int {
	return len(r.buf) - r.off
}

func (r *FrameReader) ReadByte() (byte, error) {
	r.lastByte = false
	if r.off >= len(r.buf) {
		return 0, io.ErrUnexpectedEOF
	}
	b := r.buf[r.off]
	r.off++
	r.lastByte = true
	return b, nil
}

func (r *FrameReader) UnreadByte() error {
	if !r.lastByte || r.off <= 0 {
		return errUnreadByte
	}
	r.off--
	r.lastByte = false
	return nil
}

// Next returns the next n bytes, advancing the cursor.
// The returned slice aliases the frame buffer.
func (r *FrameReader) Next(n int) ([]byte, error) {
	r.lastByte = false
	if n < 0 {
		return nil, ErrNegativeLength
	}
	if r.off+n > len(r.buf) {
		return nil, io.ErrUnexpectedEOF
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

func (r *FrameReader) Read(p []byte) (int, error) {
	r.lastByte = false
	if r.off >= len(r.buf) {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.EOF
	}
	n := copy(p, r.buf[r.off:])
	r.off += n
	return n, nil
}
