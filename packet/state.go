package packet

import (
	"fmt"
	"io"
)

// State is the protocol phase of a connection.
type State int32

const (
	NotConnected State = iota
	Handshaking
	Status
	Login
	Play
)

func (s State) String() string {
	switch s {
	case NotConnected:
		return "NOT_CONNECTED"
	case Handshaking:
		return "HANDSHAKING"
	case Status:
		return "STATUS"
	case Login:
		return "LOGIN"
	case Play:
		return "PLAY"
	}
	return fmt.Sprintf("State(%d)", int32(s))
}

// CanTransition reports whether a connection in s may move to next.
// Any state may return to NotConnected.
func (s State) CanTransition(next State) bool {
	if next == NotConnected {
		return true
	}
	switch s {
	case NotConnected:
		return next == Handshaking
	case Handshaking:
		return next == Status || next == Login
	case Login:
		return next == Play
	}
	return false
}

// Direction is the flow of a packet relative to the server.
type Direction uint8

const (
	Serverbound Direction = iota
	Clientbound
)

func (d Direction) String() string {
	if d == Serverbound {
		return "serverbound"
	}
	return "clientbound"
}

// Opposite returns the other direction.
func (d Direction) Opposite() Direction {
	return d ^ 1
}

// Intent is the next state requested by a Handshake.
type Intent int32

const (
	IntentStatus Intent = 1
	IntentLogin  Intent = 2
)

// State returns the connection state the intent selects.
func (i Intent) State() (State, bool) {
	switch i {
	case IntentStatus:
		return Status, true
	case IntentLogin:
		return Login, true
	}
	return NotConnected, false
}

func WriteIntent(w io.Writer, v Intent) error {
	if _, ok := v.State(); !ok {
		return argumentErr("Intent", ErrInvalidIntent)
	}
	return WriteVarInt(w, int32(v))
}

func ReadIntent(r Reader) (v Intent, err error) {
	i, err := ReadVarInt(r)
	if err != nil {
		return
	}
	v = Intent(i)
	if _, ok := v.State(); !ok {
		err = decodeErr("Intent", fmt.Errorf("%w: %d", ErrInvalidIntent, i))
	}
	return
}

// Phase couples a connection state with the registries that are legal in it.
// Next is the only way to move between states.
type Phase struct {
	format  *Format
	inbound Direction
	state   State
	in, out *Registry
}

// NewPhase returns a NotConnected phase for an endpoint receiving packets
// flowing in the inbound direction.
func NewPhase(f *Format, inbound Direction) Phase {
	return Phase{
		format:  f,
		inbound: inbound,
		state:   NotConnected,
		in:      emptyRegistry(NotConnected, inbound),
		out:     emptyRegistry(NotConnected, inbound.Opposite()),
	}
}

func (p Phase) State() State { return p.state }

func (p Phase) Format() *Format { return p.format }

// Inbound returns the registry decoding received packets.
func (p Phase) Inbound() *Registry { return p.in }

// Outbound returns the registry of packets this endpoint may send.
func (p Phase) Outbound() *Registry { return p.out }

// Next returns the phase for state next, or ErrIllegalTransition.
func (p Phase) Next(next State) (Phase, error) {
	if !p.state.CanTransition(next) {
		return p, argumentErr("Phase.Next", fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, p.state, next))
	}
	return p.with(p.format, next), nil
}

// WithFormat returns the same state backed by the registries of f.
func (p Phase) WithFormat(f *Format) (Phase, error) {
	if f == nil {
		return p, argumentErr("Phase.WithFormat", ErrNilFormat)
	}
	return p.with(f, p.state), nil
}

func (p Phase) with(f *Format, s State) Phase {
	return Phase{
		format:  f,
		inbound: p.inbound,
		state:   s,
		in:      f.Registry(s, p.inbound),
		out:     f.Registry(s, p.inbound.Opposite()),
	}
}
