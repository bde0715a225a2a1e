package packet

import (
	"io"
	"math"
	"reflect"
)

func isNil[T any](v T) bool {
	rv := reflect.ValueOf(any(v))
	if !rv.IsValid() {
		return true
	}
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

func readLength(r Reader, op string, elemSize int) (int, error) {
	length, err := ReadVarInt(r)
	if err != nil {
		return 0, err
	}

	if length < 0 {
		return 0, decodeErr(op, ErrNegativeLength)
	}
	if int64(length)*int64(elemSize) > int64(r.Remaining()) {
		return 0, decodeErr(op, ErrArrayTooLong)
	}
	return int(length), nil
}

// WritePrefixedArray writes a VarInt element count followed by each element.
func WritePrefixedArray[T any](w io.Writer, v []T, write WriteFn[T]) (err error) {
	for _, item := range v {
		if isNil(item) {
			return argumentErr("PrefixedArray", ErrNilElement)
		}
	}

	err = WriteVarInt(w, int32(len(v)))
	if err != nil {
		return
	}

	for _, item := range v {
		err = write(w, item)
		if err != nil {
			return
		}
	}
	return
}

// ReadPrefixedArray reads a VarInt element count followed by that many elements.
// A nil element from read is a programming error and fails the whole array.
func ReadPrefixedArray[T any](r Reader, read ReadFn[T]) (v []T, err error) {
	length := 0
	if length, err = readLength(r, "PrefixedArray", 1); err != nil {
		return
	}

	v = make([]T, length)
	for i := 0; i < length; i++ {
		var item T
		if item, err = read(r); err != nil {
			return nil, err
		}

		if isNil(item) {
			return nil, argumentErr("PrefixedArray", ErrNilElement)
		}
		v[i] = item
	}
	return
}

// Optional[T] represents Optional field in a packet
//
// Serialized Optional[T] is prefixed with Boolean of whether the value exists.
// If so, the value T is followed.
type Optional[T any] struct {
	Exists bool
	Item   T
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Exists: true, Item: v}
}

func WriteOptional[T any](w io.Writer, v Optional[T], write WriteFn[T]) (err error) {
	if v.Exists && isNil(v.Item) {
		return argumentErr("Optional", ErrNilElement)
	}

	err = WriteBoolean(w, v.Exists)
	if err != nil {
		return
	}

	if v.Exists {
		err = write(w, v.Item)
	}
	return
}

func ReadOptional[T any](r Reader, read ReadFn[T]) (v Optional[T], err error) {
	if v.Exists, err = ReadBoolean(r); err != nil {
		return
	}

	if v.Exists {
		if v.Item, err = read(r); err != nil {
			return
		}
		if isNil(v.Item) {
			err = argumentErr("Optional", ErrNilElement)
		}
	}
	return
}

func WriteByteArray(w io.Writer, v []byte) (err error) {
	if err = WriteVarInt(w, int32(len(v))); err != nil {
		return
	}

	_, err = w.Write(v)
	return
}

func ReadByteArray(r Reader) (v []byte, err error) {
	length, err := readLength(r, "ByteArray", 1)
	if err != nil {
		return
	}

	return ReadFixedBytes(r, length)
}

func WriteIntArray(w io.Writer, v []int32) (err error) {
	if err = WriteVarInt(w, int32(len(v))); err != nil {
		return
	}

	return WriteFixedInts(w, v, len(v))
}

func ReadIntArray(r Reader) (v []int32, err error) {
	length, err := readLength(r, "IntArray", 4)
	if err != nil {
		return
	}

	return ReadFixedInts(r, length)
}

func WriteLongArray(w io.Writer, v []int64) (err error) {
	if err = WriteVarInt(w, int32(len(v))); err != nil {
		return
	}

	return WriteFixedLongs(w, v, len(v))
}

func ReadLongArray(r Reader) (v []int64, err error) {
	length, err := readLength(r, "LongArray", 8)
	if err != nil {
		return
	}

	return ReadFixedLongs(r, length)
}

// WriteFixedBytes writes exactly n bytes with no length prefix.
func WriteFixedBytes(w io.Writer, v []byte, n int) (err error) {
	if len(v) != n {
		return argumentErr("FixedBytes", ErrFixedLength)
	}

	_, err = w.Write(v)
	return
}

func ReadFixedBytes(r Reader, n int) (v []byte, err error) {
	if n < 0 {
		return nil, decodeErr("FixedBytes", ErrNegativeLength)
	}

	b, err := r.Next(n)
	if err != nil {
		return
	}

	v = make([]byte, n)
	copy(v, b)
	return
}

func WriteFixedInts(w io.Writer, v []int32, n int) (err error) {
	if len(v) != n {
		return argumentErr("FixedInts", ErrFixedLength)
	}

	for _, item := range v {
		if err = WriteInt(w, item); err != nil {
			return
		}
	}
	return
}

func ReadFixedInts(r Reader, n int) (v []int32, err error) {
	if n < 0 {
		return nil, decodeErr("FixedInts", ErrNegativeLength)
	}

	v = make([]int32, n)
	for i := range v {
		if v[i], err = ReadInt(r); err != nil {
			return nil, err
		}
	}
	return
}

func WriteFixedLongs(w io.Writer, v []int64, n int) (err error) {
	if len(v) != n {
		return argumentErr("FixedLongs", ErrFixedLength)
	}

	for _, item := range v {
		if err = WriteLong(w, item); err != nil {
			return
		}
	}
	return
}

func ReadFixedLongs(r Reader, n int) (v []int64, err error) {
	if n < 0 {
		return nil, decodeErr("FixedLongs", ErrNegativeLength)
	}

	v = make([]int64, n)
	for i := range v {
		if v[i], err = ReadLong(r); err != nil {
			return nil, err
		}
	}
	return
}

// Ordinal is an enumeration carried on the wire by its index.
type Ordinal interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32
}

func checkOrdinal[E Ordinal](op string, v, count E, max int64) error {
	o := int64(v)
	if o < 0 || o >= int64(count) || o > max {
		return argumentErr(op, ErrOrdinalOutOfRange)
	}
	return nil
}

func toOrdinal[E Ordinal](op string, o int64, count E) (E, error) {
	if o < 0 {
		return 0, decodeErr(op, ErrOrdinalTooSmall)
	}
	if o >= int64(count) {
		return 0, decodeErr(op, ErrOrdinalTooLarge)
	}
	return E(o), nil
}

// WriteVarIntEnum writes the ordinal of v, which must lie in [0, count).
func WriteVarIntEnum[E Ordinal](w io.Writer, v E, count E) error {
	if err := checkOrdinal("VarIntEnum", v, count, math.MaxInt32); err != nil {
		return err
	}

	return WriteVarInt(w, int32(v))
}

func ReadVarIntEnum[E Ordinal](r Reader, count E) (E, error) {
	o, err := ReadVarInt(r)
	if err != nil {
		return 0, err
	}

	return toOrdinal("VarIntEnum", int64(o), count)
}

func WriteByteEnum[E Ordinal](w io.Writer, v E, count E) error {
	if err := checkOrdinal("ByteEnum", v, count, math.MaxInt8); err != nil {
		return err
	}

	return WriteByte(w, int8(v))
}

func ReadByteEnum[E Ordinal](r Reader, count E) (E, error) {
	o, err := ReadByte(r)
	if err != nil {
		return 0, err
	}

	return toOrdinal("ByteEnum", int64(o), count)
}

func WriteUnsignedByteEnum[E Ordinal](w io.Writer, v E, count E) error {
	if err := checkOrdinal("UnsignedByteEnum", v, count, math.MaxUint8); err != nil {
		return err
	}

	return WriteUnsignedByte(w, uint8(v))
}

func ReadUnsignedByteEnum[E Ordinal](r Reader, count E) (E, error) {
	o, err := ReadUnsignedByte(r)
	if err != nil {
		return 0, err
	}

	return toOrdinal("UnsignedByteEnum", int64(o), count)
}
