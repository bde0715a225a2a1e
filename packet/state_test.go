package packet

import (
	"bytes"
	"errors"
	"testing"
)

func TestCanTransition(t *testing.T) {
	states := []State{NotConnected, Handshaking, Status, Login, Play}
	legal := map[[2]State]bool{
		{NotConnected, Handshaking}: true,
		{Handshaking, Status}:       true,
		{Handshaking, Login}:        true,
		{Login, Play}:               true,
	}
	for _, from := range states {
		for _, to := range states {
			want := to == NotConnected || legal[[2]State{from, to}]
			if got := from.CanTransition(to); got != want {
				t.Errorf("%s -> %s: got %t, want %t", from, to, got, want)
			}
		}
	}
}

func TestPhase(t *testing.T) {
	p := NewPhase(Protocol340, Serverbound)
	if p.State() != NotConnected || p.Inbound().Len() != 0 || p.Outbound().Len() != 0 {
		t.Fatalf("fresh phase: %s in=%d out=%d", p.State(), p.Inbound().Len(), p.Outbound().Len())
	}

	if _, err := p.Next(Login); !errors.Is(err, ErrIllegalTransition) || !IsArgument(err) {
		t.Errorf("NotConnected -> Login: expected ArgumentError(ErrIllegalTransition), got %v", err)
	}

	var err error
	for _, s := range []State{Handshaking, Login, Play} {
		if p, err = p.Next(s); err != nil {
			t.Fatalf("Next(%s): %v", s, err)
		}
	}
	if p.Inbound() != Protocol340.Registry(Play, Serverbound) {
		t.Errorf("inbound registry is %s %s", p.Inbound().State(), p.Inbound().Direction())
	}
	if p.Outbound().Direction() != Clientbound || p.Outbound().State() != Play {
		t.Errorf("outbound registry is %s %s", p.Outbound().State(), p.Outbound().Direction())
	}

	failed, err := p.Next(Status)
	if err == nil {
		t.Fatal("Play -> Status succeeded")
	}
	if failed.State() != Play {
		t.Errorf("failed transition changed state to %s", failed.State())
	}

	if p, err = p.Next(NotConnected); err != nil || p.Inbound().Len() != 0 {
		t.Errorf("Play -> NotConnected: %v", err)
	}
}

func TestPhase_WithFormat(t *testing.T) {
	p, _ := NewPhase(Protocol340, Clientbound).Next(Handshaking)
	if _, err := p.WithFormat(nil); !errors.Is(err, ErrNilFormat) {
		t.Errorf("expected ErrNilFormat, got %v", err)
	}
	empty := NewFormat("empty", 0)
	q, err := p.WithFormat(empty)
	if err != nil {
		t.Fatalf("WithFormat: %v", err)
	}
	if q.State() != Handshaking || q.Format() != empty || q.Outbound().Len() != 0 {
		t.Errorf("WithFormat: state %s, format %s, %d outbound", q.State(), q.Format(), q.Outbound().Len())
	}
}

func TestIntent(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteIntent(&buf, 3); !errors.Is(err, ErrInvalidIntent) || !IsArgument(err) {
		t.Errorf("WriteIntent(3): %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("invalid intent wrote %x", buf.Bytes())
	}

	r := NewFrameReader([]byte{0x03})
	if _, err := ReadIntent(&r); !errors.Is(err, ErrInvalidIntent) || IsIgnorable(err) {
		t.Errorf("ReadIntent(3): %v", err)
	}

	r = NewFrameReader([]byte{0x02})
	i, err := ReadIntent(&r)
	if err != nil {
		t.Fatalf("ReadIntent(2): %v", err)
	}
	if s, ok := i.State(); !ok || s != Login {
		t.Errorf("intent 2 selects %s", s)
	}
}

func TestDirection(t *testing.T) {
	if Serverbound.Opposite() != Clientbound || Clientbound.Opposite() != Serverbound {
		t.Error("Opposite is not an involution")
	}
	if Status.String() != "STATUS" || State(9).String() != "State(9)" {
		t.Errorf("State.String: %s, %s", Status, State(9))
	}
}
