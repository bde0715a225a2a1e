package packet

import (
	"bytes"
	"io"

	"github.com/google/uuid"
)

// Buffer accumulates one encoded packet before it is framed and flushed.
//
// Each method appends a field and returns the Buffer so writes can be chained.
// The first error sticks: later writes are no-ops and Err reports it.
// A Buffer is owned by one writer at a time.
type Buffer struct {
	buf bytes.Buffer
	err error
}

func (b *Buffer) Reset() {
	b.buf.Reset()
	b.err = nil
}

func (b *Buffer) Err() error { return b.err }

// Bytes returns the accumulated bytes, valid until the next write or Reset.
func (b *Buffer) Bytes() []byte { return b.buf.Bytes() }

func (b *Buffer) Len() int { return b.buf.Len() }

func (b *Buffer) Write(p []byte) (int, error) {
	if b.err != nil {
		return 0, b.err
	}
	return b.buf.Write(p)
}

func (b *Buffer) WriteByte(c byte) error {
	if b.err != nil {
		return b.err
	}
	return b.buf.WriteByte(c)
}

func (b *Buffer) WriteString(s string) (int, error) {
	if b.err != nil {
		return 0, b.err
	}
	return b.buf.WriteString(s)
}

// WriteTo flushes the accumulated bytes to w.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	if b.err != nil {
		return 0, b.err
	}
	return b.buf.WriteTo(w)
}

func (b *Buffer) do(err error) *Buffer {
	if b.err == nil && err != nil {
		b.err = err
	}
	return b
}

// Apply runs fn against the Buffer unless an earlier write failed.
// It is the chaining form of the generic Write* helpers.
func (b *Buffer) Apply(fn func(w io.Writer) error) *Buffer {
	if b.err != nil {
		return b
	}
	return b.do(fn(b))
}

func (b *Buffer) Boolean(v bool) *Buffer {
	return b.Apply(func(w io.Writer) error { return WriteBoolean(w, v) })
}

func (b *Buffer) Byte(v int8) *Buffer {
	return b.Apply(func(w io.Writer) error { return WriteByte(w, v) })
}

func (b *Buffer) UnsignedByte(v uint8) *Buffer {
	return b.Apply(func(w io.Writer) error { return WriteUnsignedByte(w, v) })
}

func (b *Buffer) Short(v int16) *Buffer {
	return b.Apply(func(w io.Writer) error { return WriteShort(w, v) })
}

func (b *Buffer) UnsignedShort(v uint16) *Buffer {
	return b.Apply(func(w io.Writer) error { return WriteUnsignedShort(w, v) })
}

func (b *Buffer) Int(v int32) *Buffer {
	return b.Apply(func(w io.Writer) error { return WriteInt(w, v) })
}

func (b *Buffer) Long(v int64) *Buffer {
	return b.Apply(func(w io.Writer) error { return WriteLong(w, v) })
}

func (b *Buffer) Float(v float32) *Buffer {
	return b.Apply(func(w io.Writer) error { return WriteFloat(w, v) })
}

func (b *Buffer) Double(v float64) *Buffer {
	return b.Apply(func(w io.Writer) error { return WriteDouble(w, v) })
}

func (b *Buffer) VarInt(v int32) *Buffer {
	return b.Apply(func(w io.Writer) error { return WriteVarInt(w, v) })
}

func (b *Buffer) VarLong(v int64) *Buffer {
	return b.Apply(func(w io.Writer) error { return WriteVarLong(w, v) })
}

func (b *Buffer) UUID(v uuid.UUID) *Buffer {
	return b.Apply(func(w io.Writer) error { return WriteUUID(w, v) })
}

func (b *Buffer) Position(v Position) *Buffer {
	return b.Apply(func(w io.Writer) error { return WritePosition(w, v) })
}

func (b *Buffer) Chat(v Chat) *Buffer {
	return b.Apply(func(w io.Writer) error { return WriteChat(w, v) })
}

func (b *Buffer) Tag(v Tag) *Buffer {
	return b.Apply(func(w io.Writer) error { return WriteTag(w, v) })
}

func (b *Buffer) ByteArray(v []byte) *Buffer {
	return b.Apply(func(w io.Writer) error { return WriteByteArray(w, v) })
}

// BoundedString writes v bounded by max code points.
func (b *Buffer) BoundedString(v string, max int) *Buffer {
	return b.Apply(func(w io.Writer) error { return WriteString(w, v, max) })
}
