package packet

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

var pArrayTc = []TestCase[[]uint8]{
	{
		desc: "Empty array",
		v:    []uint8{},
		ser:  []byte{0x00}, // Length 0, encoded as 0x00
	},
	{
		desc: "Small array (Length 3)",
		v:    []uint8{10, 20, 30},
		ser:  []byte{0x03, 10, 20, 30}, // Length 3 (0x03) + data
	},
	{
		desc: "Large array (Length 128)",
		v:    bytes.Repeat([]byte{0xAA}, 128),
		ser:  append([]byte{0x80, 0x01}, bytes.Repeat([]byte{0xAA}, 128)...), // Length 128 (0x80 0x01) + data
	},
	{
		desc:      "Read fail: EOF on length VarInt (Length is 0x80)",
		expectErr: io.ErrUnexpectedEOF,
		ser:       []byte{0x80}, // Missing the second byte of the VarInt length (e.g., length 128)
	},
	{
		desc:      "Read fail: length exceeds remaining bytes",
		expectErr: ErrArrayTooLong,
		v:         []uint8{10, 20, 30},  // Expected array, but stream will be incomplete
		ser:       []byte{0x03, 10, 20}, // Length 3 (0x03), but only 2 bytes of data follow
	},
	{
		desc:      "Read fail: negative length",
		expectErr: ErrNegativeLength,
		ser:       []byte{0xff, 0xff, 0xff, 0xff, 0x0f},
	},
}

func TestWritePrefixedArray(t *testing.T) {
	buf := bytes.NewBuffer(make([]byte, 0))
	for _, tC := range pArrayTc {
		if tC.expectErr != nil {
			continue
		}
		t.Run(tC.desc, func(t *testing.T) {
			err := WritePrefixedArray(buf, tC.v, WriteUnsignedByte)
			if err != nil {
				t.Fatalf("WritePrefixedArray failed: %v", err)
			}
			if !bytes.Equal(buf.Bytes(), tC.ser) {
				t.Errorf("WritePrefixedArray expected %x, got %x", tC.ser, buf.Bytes())
			}
		})
		buf.Reset()
	}
}

func TestReadPrefixedArray(t *testing.T) {
	for _, tC := range pArrayTc {
		t.Run(tC.desc, func(t *testing.T) {
			r := NewFrameReader(tC.ser)
			got, err := ReadPrefixedArray(&r, ReadUnsignedByte)
			if tC.expectErr != nil {
				if err == nil {
					t.Fatalf("ReadPrefixedArray expected error %v, but succeeded and returned value %x", tC.expectErr, got)
				}
				if !errors.Is(err, tC.expectErr) {
					t.Errorf("ReadPrefixedArray expected error %v, but got error %v", tC.expectErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadPrefixedArray failed: %v", err)
			}
			if !bytes.Equal(got, tC.v) {
				t.Errorf("ReadPrefixedArray expected %x, got %x", tC.v, got)
			}
			if r.Remaining() != 0 {
				t.Errorf("Reader did not consume all bytes. %d bytes remaining.", r.Remaining())
			}
		})
	}
}

func TestPrefixedArray_NilElement(t *testing.T) {
	readNil := func(r Reader) (*Position, error) {
		if _, err := r.ReadByte(); err != nil {
			return nil, err
		}
		return nil, nil
	}
	r := NewFrameReader([]byte{0x02, 0x00, 0x00})
	_, err := ReadPrefixedArray(&r, readNil)
	if !errors.Is(err, ErrNilElement) || !IsArgument(err) {
		t.Errorf("expected ArgumentError(ErrNilElement), got %v", err)
	}

	var buf bytes.Buffer
	err = WritePrefixedArray(&buf, []*Position{{}, nil}, func(w io.Writer, v *Position) error {
		return WritePosition(w, *v)
	})
	if !errors.Is(err, ErrNilElement) {
		t.Errorf("expected ErrNilElement, got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected nothing written, got %x", buf.Bytes())
	}
}

var optionalTc = []TestCase[Optional[uint8]]{
	{
		desc: "Value is Present",
		v:    Optional[uint8]{Exists: true, Item: 0x42},
		ser:  []byte{0x01, 0x42}, // True (0x01) + Item (0x42)
	},
	{
		desc: "Value is Absent",
		v:    Optional[uint8]{Exists: false, Item: 0x00}, // Item value is ignored when Exists is false
		ser:  []byte{0x00},                               // False (0x00)
	},
	{
		desc:      "Read fail: EOF on Boolean prefix",
		expectErr: io.ErrUnexpectedEOF,
		ser:       []byte{},
	},
	{
		desc:      "Read fail: EOF reading Item when Exists is true",
		expectErr: io.ErrUnexpectedEOF,
		ser:       []byte{0x01}, // True (0x01), but no item byte follows
	},
	{
		desc:      "Read fail: invalid presence flag",
		expectErr: ErrInvalidBoolean,
		ser:       []byte{0x07, 0x42},
	},
}

func TestWriteOptional(t *testing.T) {
	buf := bytes.NewBuffer(make([]byte, 0))
	for _, tC := range optionalTc {
		if tC.expectErr != nil {
			continue
		}
		t.Run(tC.desc, func(t *testing.T) {
			err := WriteOptional(buf, tC.v, WriteUnsignedByte)
			if err != nil {
				t.Fatalf("WriteOptional failed: %v", err)
			}
			if !bytes.Equal(buf.Bytes(), tC.ser) {
				t.Errorf("WriteOptional expected %x, got %x", tC.ser, buf.Bytes())
			}
		})
		buf.Reset()
	}
}

func TestReadOptional(t *testing.T) {
	for _, tC := range optionalTc {
		t.Run(tC.desc, func(t *testing.T) {
			r := NewFrameReader(tC.ser)
			got, err := ReadOptional(&r, ReadUnsignedByte)
			if tC.expectErr != nil {
				if err == nil {
					t.Fatalf("ReadOptional expected error %v, but succeeded and returned value %v", tC.expectErr, got)
				}
				if !errors.Is(err, tC.expectErr) {
					t.Errorf("ReadOptional expected error %v, but got error %v", tC.expectErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadOptional failed: %v", err)
			}
			if got.Exists != tC.v.Exists {
				t.Errorf("Exists flag mismatch. Expected: %t, Got: %t", tC.v.Exists, got.Exists)
			}
			if got.Exists && got.Item != tC.v.Item {
				t.Errorf("Item mismatch. Expected: %v, Got: %v", tC.v.Item, got.Item)
			}
			if r.Remaining() != 0 {
				t.Errorf("Reader did not consume all bytes. %d bytes remaining.", r.Remaining())
			}
		})
	}
}

func TestOptional_PresentRoundTrip(t *testing.T) {
	want := Some(Position{X: -5, Y: 64, Z: 12})
	var buf bytes.Buffer
	if err := WriteOptional(&buf, want, WritePosition); err != nil {
		t.Fatalf("WriteOptional: %v", err)
	}
	r := NewFrameReader(buf.Bytes())
	got, err := ReadOptional(&r, ReadPosition)
	if err != nil {
		t.Fatalf("ReadOptional: %v", err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestNumericArrays(t *testing.T) {
	var buf bytes.Buffer
	WriteByteArray(&buf, []byte{1, 2, 3})
	WriteIntArray(&buf, []int32{-1, 7})
	WriteLongArray(&buf, []int64{1 << 33})
	WriteFixedBytes(&buf, []byte{9, 9}, 2)

	r := NewFrameReader(buf.Bytes())
	bs, err := ReadByteArray(&r)
	if err != nil || !bytes.Equal(bs, []byte{1, 2, 3}) {
		t.Errorf("ByteArray: %v, %v", bs, err)
	}
	is, err := ReadIntArray(&r)
	if err != nil || len(is) != 2 || is[0] != -1 || is[1] != 7 {
		t.Errorf("IntArray: %v, %v", is, err)
	}
	ls, err := ReadLongArray(&r)
	if err != nil || len(ls) != 1 || ls[0] != 1<<33 {
		t.Errorf("LongArray: %v, %v", ls, err)
	}
	fb, err := ReadFixedBytes(&r, 2)
	if err != nil || !bytes.Equal(fb, []byte{9, 9}) {
		t.Errorf("FixedBytes: %v, %v", fb, err)
	}
	if r.Remaining() != 0 {
		t.Errorf("%d bytes remaining", r.Remaining())
	}

	if err := WriteFixedInts(&buf, []int32{1}, 2); !errors.Is(err, ErrFixedLength) {
		t.Errorf("expected ErrFixedLength, got %v", err)
	}

	// An IntArray count of 2 needs 8 bytes.
	r = NewFrameReader([]byte{0x02, 0, 0, 0, 1})
	if _, err := ReadIntArray(&r); !errors.Is(err, ErrArrayTooLong) {
		t.Errorf("expected ErrArrayTooLong, got %v", err)
	}
}

type testColor int32

const (
	colorRed testColor = iota
	colorGreen
	colorBlue
	colorCount
)

func TestEnum(t *testing.T) {
	tests := []struct {
		desc      string
		ser       []byte
		read      func(Reader) (testColor, error)
		want      testColor
		expectErr error
	}{
		{
			desc: "VarInt ordinal",
			ser:  []byte{0x02},
			read: func(r Reader) (testColor, error) { return ReadVarIntEnum(r, colorCount) },
			want: colorBlue,
		},
		{
			desc:      "VarInt ordinal too large",
			ser:       []byte{0x03},
			read:      func(r Reader) (testColor, error) { return ReadVarIntEnum(r, colorCount) },
			expectErr: ErrOrdinalTooLarge,
		},
		{
			desc:      "VarInt ordinal too small",
			ser:       []byte{0xff, 0xff, 0xff, 0xff, 0x0f},
			read:      func(r Reader) (testColor, error) { return ReadVarIntEnum(r, colorCount) },
			expectErr: ErrOrdinalTooSmall,
		},
		{
			desc:      "Signed byte ordinal too small",
			ser:       []byte{0xff},
			read:      func(r Reader) (testColor, error) { return ReadByteEnum(r, colorCount) },
			expectErr: ErrOrdinalTooSmall,
		},
		{
			desc:      "Unsigned byte ordinal too large",
			ser:       []byte{0xff},
			read:      func(r Reader) (testColor, error) { return ReadUnsignedByteEnum(r, colorCount) },
			expectErr: ErrOrdinalTooLarge,
		},
		{
			desc: "Unsigned byte ordinal",
			ser:  []byte{0x01},
			read: func(r Reader) (testColor, error) { return ReadUnsignedByteEnum(r, colorCount) },
			want: colorGreen,
		},
	}
	for _, tC := range tests {
		t.Run(tC.desc, func(t *testing.T) {
			r := NewFrameReader(tC.ser)
			got, err := tC.read(&r)
			if tC.expectErr != nil {
				if !errors.Is(err, tC.expectErr) || !IsDecode(err) {
					t.Errorf("expected DecodeError(%v), got %v", tC.expectErr, err)
				}
				return
			}
			if err != nil || got != tC.want {
				t.Errorf("got %v, %v; want %v", got, err, tC.want)
			}
		})
	}
}

func TestWriteEnum_OutOfRange(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteVarIntEnum(&buf, colorCount, colorCount); !IsArgument(err) {
		t.Errorf("ordinal == count: expected ArgumentError, got %v", err)
	}
	if err := WriteByteEnum(&buf, 200, 255); !errors.Is(err, ErrOrdinalOutOfRange) {
		t.Errorf("byte width: expected ErrOrdinalOutOfRange, got %v", err)
	}
	if err := WriteUnsignedByteEnum(&buf, 200, 255); err != nil {
		t.Errorf("unsigned byte width: %v", err)
	}
	if err := WriteUnsignedByteEnum(&buf, 300, 400); !errors.Is(err, ErrOrdinalOutOfRange) {
		t.Errorf("unsigned byte overflow: expected ErrOrdinalOutOfRange, got %v", err)
	}
	if !bytes.Equal(buf.Bytes(), []byte{200}) {
		t.Errorf("only the valid write should reach the sink, got %x", buf.Bytes())
	}
}
