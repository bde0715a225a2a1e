package packet

import (
	"io"
)

const (
	MaxVarIntLen  = 5
	MaxVarLongLen = 10
)

func WriteVarInt(w io.Writer, v int32) error {
	var buf [MaxVarIntLen]byte
	n := PutVarInt(buf[:], v)
	_, err := w.Write(buf[:n])
	return err
}

// PutVarInt encodes v into buf, which must hold MaxVarIntLen bytes,
// and returns the number of bytes written.
func PutVarInt(buf []byte, v int32) int {
	uv := uint32(v)
	for i := 0; ; i++ {
		b := byte(uv & 0x7F)
		uv >>= 7
		if uv != 0 {
			b |= 0x80
		}
		buf[i] = b
		if uv == 0 {
			return i + 1
		}
	}
}

func ReadVarInt(r io.ByteReader) (int32, error) {
	var v int32
	var shift uint
	for n := 0; n < MaxVarIntLen; n++ {
		b, err := r.ReadByte()
		if err != nil {
			return v, eofToUnexpected(err, n)
		}
		segment := b & 0x7F
		v |= int32(segment) << shift
		shift += 7
		if (b & 0x80) == 0 {
			return v, nil
		}
	}
	return v, decodeErr("VarInt", ErrVarIntTooLong)
}

// VarIntSize reports the encoded length of v.
func VarIntSize(v int32) int {
	uv := uint32(v)
	n := 1
	for uv >= 0x80 {
		uv >>= 7
		n++
	}
	return n
}

func WriteVarLong(w io.Writer, v int64) error {
	var buf [MaxVarLongLen]byte
	uv := uint64(v)
	for i := 0; ; i++ {
		b := byte(uv & 0x7F)
		uv >>= 7
		if uv != 0 {
			b |= 0x80
		}
		buf[i] = b
		if uv == 0 {
			_, err := w.Write(buf[:i+1])
			return err
		}
	}
}

func ReadVarLong(r io.ByteReader) (int64, error) {
	var v int64
	var shift uint
	for n := 0; n < MaxVarLongLen; n++ {
		b, err := r.ReadByte()
		if err != nil {
			return v, eofToUnexpected(err, n)
		}
		v |= int64(b&0x7F) << shift
		shift += 7
		if (b & 0x80) == 0 {
			return v, nil
		}
	}
	return v, decodeErr("VarLong", ErrVarLongTooLong)
}

// VarLongSize reports the encoded length of v.
func VarLongSize(v int64) int {
	uv := uint64(v)
	n := 1
	for uv >= 0x80 {
		uv >>= 7
		n++
	}
	return n
}

// A clean EOF in the middle of a value is a truncated value.
func eofToUnexpected(err error, read int) error {
	if err == io.EOF && read > 0 {
		return io.ErrUnexpectedEOF
	}
	return err
}
