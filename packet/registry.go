package packet

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
)

// Registry maps the packet IDs legal in one state and direction to their
// constructors. A Registry is immutable once built.
type Registry struct {
	state State
	dir   Direction
	table map[int32]func() Packet
	types map[int32]reflect.Type
}

// NewRegistry builds a Registry from a table of constructors.
func NewRegistry(s State, d Direction, table map[int32]func() Packet) *Registry {
	r := &Registry{
		state: s,
		dir:   d,
		table: make(map[int32]func() Packet, len(table)),
		types: make(map[int32]reflect.Type, len(table)),
	}
	for id, ctor := range table {
		r.table[id] = ctor
		r.types[id] = reflect.TypeOf(ctor())
	}
	return r
}

func emptyRegistry(s State, d Direction) *Registry {
	return NewRegistry(s, d, nil)
}

func (r *Registry) State() State { return r.state }

func (r *Registry) Direction() Direction { return r.dir }

func (r *Registry) Len() int { return len(r.table) }

// IDs returns the registered packet IDs in ascending order.
func (r *Registry) IDs() []int32 {
	ids := make([]int32, 0, len(r.table))
	for id := range r.table {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Lookup returns the constructor for id. An unregistered id yields an
// ignorable DecodeError wrapping ErrUnknownPacket.
func (r *Registry) Lookup(id int32) (func() Packet, error) {
	ctor, ok := r.table[id]
	if !ok {
		return nil, &DecodeError{
			Op:        packetOp(id),
			Err:       fmt.Errorf("%w: %s %s", ErrUnknownPacket, r.state, r.dir),
			Ignorable: true,
		}
	}
	return ctor, nil
}

// Contains reports whether p is the packet registered under p.ID().
func (r *Registry) Contains(p Packet) bool {
	t, ok := r.types[p.ID()]
	return ok && t == reflect.TypeOf(p)
}

// Decode constructs the packet registered under id and decodes it from rd.
// rd must hold exactly one packet body; leftover bytes are reported as an
// ignorable DecodeError alongside the decoded packet.
func (r *Registry) Decode(id int32, rd Reader) (Packet, error) {
	ctor, err := r.Lookup(id)
	if err != nil {
		return nil, err
	}
	p := ctor()
	if err := p.Decode(rd); err != nil {
		return nil, wrapDecode(packetOp(id), err)
	}
	if n := rd.Remaining(); n != 0 {
		return p, &DecodeError{
			Op:        packetOp(id),
			Err:       fmt.Errorf("%w: %d bytes left", ErrPacketNotConsumed, n),
			Ignorable: true,
		}
	}
	return p, nil
}

func packetOp(id int32) string {
	return fmt.Sprintf("packet 0x%02X", id)
}

// wrapDecode classifies an untyped error from a packet decoder as a decode failure.
func wrapDecode(op string, err error) error {
	var de *DecodeError
	var ae *ArgumentError
	var te *TransportError
	if errors.As(err, &de) || errors.As(err, &ae) || errors.As(err, &te) {
		return err
	}
	return decodeErr(op, err)
}

type registryKey struct {
	state State
	dir   Direction
}

// Format is one protocol version's complete set of packet tables.
type Format struct {
	Name     string
	Protocol int32

	registries map[registryKey]*Registry
}

func NewFormat(name string, protocol int32) *Format {
	return &Format{
		Name:       name,
		Protocol:   protocol,
		registries: make(map[registryKey]*Registry),
	}
}

// Register builds the registry for one state and direction.
// Registering NotConnected is ignored; it never has packets.
func (f *Format) Register(s State, d Direction, table map[int32]func() Packet) *Format {
	if s == NotConnected {
		return f
	}
	f.registries[registryKey{s, d}] = NewRegistry(s, d, table)
	return f
}

// Registry returns the registry for a state and direction. States without
// packets, including NotConnected, yield an empty registry.
func (f *Format) Registry(s State, d Direction) *Registry {
	if f != nil {
		if r, ok := f.registries[registryKey{s, d}]; ok {
			return r
		}
	}
	return emptyRegistry(s, d)
}

func (f *Format) String() string {
	return fmt.Sprintf("%s (protocol %d)", f.Name, f.Protocol)
}
