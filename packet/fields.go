package packet

import (
	"encoding/binary"
	"io"
	"math"
	"unicode/utf8"

	"github.com/google/uuid"
)

type WriteFn[T any] func(io.Writer, T) error
type ReadFn[T any] func(Reader) (T, error)

// MaxStringLength is the default bound, in code points, of a String field.
const MaxStringLength = 32767

func writeByte(w io.Writer, b byte) (err error) {
	if bw, ok := w.(io.ByteWriter); ok {
		return bw.WriteByte(b)
	}
	_, err = w.Write([]byte{b})
	return
}

func WriteBoolean(w io.Writer, v bool) (err error) {
	b := byte(0)
	if v {
		b = 1
	}
	return writeByte(w, b)
}

func ReadBoolean(r Reader) (v bool, err error) {
	b, err := r.ReadByte()
	if err != nil {
		return
	}

	if b == 0 {
		v = false
	} else if b == 1 {
		v = true
	} else {
		err = decodeErr("Boolean", ErrInvalidBoolean)
	}
	return
}

func WriteByte(w io.Writer, v int8) (err error) {
	return writeByte(w, byte(v))
}

func ReadByte(r Reader) (v int8, err error) {
	b, err := r.ReadByte()
	return int8(b), err
}

func WriteUnsignedByte(w io.Writer, v uint8) (err error) {
	return writeByte(w, v)
}

func ReadUnsignedByte(r Reader) (v uint8, err error) {
	return r.ReadByte()
}

func WriteShort(w io.Writer, v int16) (err error) {
	return WriteUnsignedShort(w, uint16(v))
}

func ReadShort(r Reader) (v int16, err error) {
	u, err := ReadUnsignedShort(r)
	return int16(u), err
}

func WriteUnsignedShort(w io.Writer, v uint16) (err error) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	_, err = w.Write(b[:])
	return
}

func ReadUnsignedShort(r Reader) (v uint16, err error) {
	b, err := r.Next(2)
	if err != nil {
		return
	}

	v = binary.BigEndian.Uint16(b)
	return
}

func WriteInt(w io.Writer, v int32) (err error) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(v))
	_, err = w.Write(b[:])
	return
}

func ReadInt(r Reader) (v int32, err error) {
	b, err := r.Next(4)
	if err != nil {
		return
	}

	v = int32(binary.BigEndian.Uint32(b))
	return
}

func WriteLong(w io.Writer, v int64) (err error) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(v))
	_, err = w.Write(b[:])
	return
}

func ReadLong(r Reader) (v int64, err error) {
	b, err := r.Next(8)
	if err != nil {
		return
	}

	v = int64(binary.BigEndian.Uint64(b))
	return
}

func WriteFloat(w io.Writer, v float32) (err error) {
	return WriteInt(w, int32(math.Float32bits(v)))
}

func ReadFloat(r Reader) (v float32, err error) {
	i, err := ReadInt(r)
	return math.Float32frombits(uint32(i)), err
}

func WriteDouble(w io.Writer, v float64) (err error) {
	return WriteLong(w, int64(math.Float64bits(v)))
}

func ReadDouble(r Reader) (v float64, err error) {
	l, err := ReadLong(r)
	return math.Float64frombits(uint64(l)), err
}

// WriteString writes a VarInt byte length followed by the UTF-8 bytes of v.
// max bounds the number of code points.
func WriteString(w io.Writer, v string, max int) (err error) {
	if !utf8.ValidString(v) {
		return argumentErr("String", ErrInvalidUTF8)
	}
	if utf8.RuneCountInString(v) > max {
		return argumentErr("String", ErrStringTooLong)
	}

	err = WriteVarInt(w, int32(len(v)))
	if err != nil {
		return
	}

	_, err = io.WriteString(w, v)
	return
}

// ReadString reads a string of at most max code points.
//
// The byte length is checked against max*4 before the payload is read, and the
// decoded code point count is checked against max afterwards.
func ReadString(r Reader, max int) (v string, err error) {
	length := int32(0)
	length, err = ReadVarInt(r)
	if err != nil {
		return
	}

	if length < 0 {
		err = decodeErr("String", ErrNegativeLength)
		return
	}
	if int64(length) > int64(max)*utf8.UTFMax {
		err = decodeErr("String", ErrStringTooLong)
		return
	}

	buf, err := r.Next(int(length))
	if err != nil {
		return
	}

	if !utf8.Valid(buf) {
		err = decodeErr("String", ErrInvalidUTF8)
		return
	}
	if utf8.RuneCount(buf) > max {
		err = decodeErr("String", ErrStringTooLong)
		return
	}
	return string(buf), nil
}

// Position's serialized form is composed of X, Z which are 26 bits each, and 12 bits of Y,
// packed from the most significant bit in that order.
type Position struct {
	X int32
	Y int16
	Z int32
}

const (
	minPositionXZ = -1 << 25
	maxPositionXZ = 1<<25 - 1
	minPositionY  = -1 << 11
	maxPositionY  = 1<<11 - 1
)

// Valid reports whether every component fits its packed width.
func (p Position) Valid() bool {
	return p.X >= minPositionXZ && p.X <= maxPositionXZ &&
		p.Z >= minPositionXZ && p.Z <= maxPositionXZ &&
		p.Y >= minPositionY && p.Y <= maxPositionY
}

func (p Position) Pack() uint64 {
	return (uint64(p.X)&0x3FFFFFF)<<38 |
		(uint64(p.Z)&0x3FFFFFF)<<12 |
		uint64(p.Y)&0xFFF
}

// UnpackPosition sign-extends each component of a packed position.
func UnpackPosition(packed uint64) (v Position) {
	s := int64(packed)
	v.X = int32(s >> 38)
	v.Z = int32(s << 26 >> 38)
	v.Y = int16(s << 52 >> 52)
	return
}

func WritePosition(w io.Writer, v Position) (err error) {
	if !v.Valid() {
		return argumentErr("Position", ErrPositionOutOfRange)
	}
	return WriteLong(w, int64(v.Pack()))
}

func ReadPosition(r Reader) (v Position, err error) {
	l, err := ReadLong(r)
	if err != nil {
		return
	}

	return UnpackPosition(uint64(l)), nil
}

func WriteUUID(w io.Writer, v uuid.UUID) (err error) {
	_, err = w.Write(v[:])
	return
}

func ReadUUID(r Reader) (v uuid.UUID, err error) {
	b, err := r.Next(16)
	if err != nil {
		return
	}

	v = uuid.UUID(b)
	return
}

// WriteUUIDString writes v in its hyphenated text form.
func WriteUUIDString(w io.Writer, v uuid.UUID) (err error) {
	return WriteString(w, v.String(), 36)
}

func ReadUUIDString(r Reader) (v uuid.UUID, err error) {
	s, err := ReadString(r, 36)
	if err != nil {
		return
	}

	if v, err = uuid.Parse(s); err != nil {
		err = decodeErr("UUID", err)
	}
	return
}
