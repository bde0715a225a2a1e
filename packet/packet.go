//go:generate go run ../codegen/gen_packet_codec.go -- .

// Package packet implements the protocol's primitive codec, the packet types of
// each connection state, and the per-state registries that decode them.
package packet

import (
	"io"
)

// Reader is the read side of the primitive codec.
type Reader interface {
	io.Reader
	io.ByteScanner
	// Next returns the next n bytes or io.ErrUnexpectedEOF.
	Next(n int) ([]byte, error)
	// Remaining reports unread bytes in the current packet.
	Remaining() int
}

// Packet is a single protocol message scoped to one connection state.
//
// Encode writes the body only; the ID is framed by the caller.
// Decode must consume exactly the fields of the packet.
type Packet interface {
	ID() int32
	Encode(w *Buffer) error
	Decode(r Reader) error
}
