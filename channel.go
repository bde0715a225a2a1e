package mcwire

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/gstoney/mcwire/packet"
)

type channelConfig struct {
	format    *packet.Format
	transport TransportConfig
	closer    io.Closer
	log       zerolog.Logger
}

type ChannelOption func(*channelConfig)

// WithFormat selects the packet tables. The default is packet.DefaultFormat,
// which a nil f leaves in place.
func WithFormat(f *packet.Format) ChannelOption {
	return func(c *channelConfig) {
		if f != nil {
			c.format = f
		}
	}
}

func WithTransportConfig(cfg TransportConfig) ChannelOption {
	return func(c *channelConfig) { c.transport = cfg }
}

// WithCloser sets the resource released by Close, usually the connection.
func WithCloser(closer io.Closer) ChannelOption {
	return func(c *channelConfig) { c.closer = closer }
}

func WithLogger(log zerolog.Logger) ChannelOption {
	return func(c *channelConfig) { c.log = log }
}

// Channel is one endpoint of a protocol connection. It frames, encodes and
// decodes packets against the registries of its current state.
//
// A Channel supports one goroutine calling Recv and one calling Send.
// SetState and SetPacketFormat must be serialized with packet traffic by the
// caller. On, SetCompression and Close are safe from any goroutine.
type Channel struct {
	t      *Transport
	closer io.Closer
	log    zerolog.Logger

	mu    sync.Mutex
	phase packet.Phase

	out packet.Buffer
	in  bytes.Buffer

	subMu   sync.RWMutex
	subs    map[reflect.Type]map[uint64]func(packet.Packet)
	nextSub uint64

	closed    atomic.Bool
	closeOnce sync.Once
}

// NewChannel returns a Channel in the Handshaking state that reads packets
// flowing in the inbound direction from r and writes the opposite direction
// to w. A server endpoint receives packet.Serverbound, a client
// packet.Clientbound.
func NewChannel(r io.Reader, w io.Writer, inbound packet.Direction, opts ...ChannelOption) *Channel {
	cfg := channelConfig{
		format:    packet.DefaultFormat,
		transport: DefaultTransportConfig(),
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	phase, _ := packet.NewPhase(cfg.format, inbound).Next(packet.Handshaking)
	return &Channel{
		t:      NewTransport(r, w, cfg.transport),
		closer: cfg.closer,
		log:    cfg.log,
		phase:  phase,
		subs:   make(map[reflect.Type]map[uint64]func(packet.Packet)),
	}
}

// Dial connects to a server and returns the client endpoint of the connection.
func Dial(ctx context.Context, addr string, opts ...ChannelOption) (*Channel, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, &packet.TransportError{Op: "dial", Err: err}
	}
	opts = append(opts, WithCloser(conn))
	return NewChannel(conn, conn, packet.Clientbound, opts...), nil
}

// Phase returns the current state and its registries.
func (c *Channel) Phase() packet.Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

func (c *Channel) State() packet.State {
	return c.Phase().State()
}

// SetState moves the channel to s. An illegal transition leaves the state
// unchanged and returns an *packet.ArgumentError.
func (c *Channel) SetState(s packet.State) error {
	c.mu.Lock()
	from := c.phase.State()
	next, err := c.phase.Next(s)
	if err == nil {
		c.phase = next
	}
	c.mu.Unlock()
	if err != nil {
		return err
	}

	recordTransition(from, s)
	c.log.Debug().Stringer("from", from).Stringer("to", s).Msg("state transition")
	return nil
}

// Registry returns the registry decoding received packets. It is empty when
// the channel is not connected.
func (c *Channel) Registry() *packet.Registry {
	return c.Phase().Inbound()
}

// OutboundRegistry returns the registry of packets Send accepts.
func (c *Channel) OutboundRegistry() *packet.Registry {
	return c.Phase().Outbound()
}

func (c *Channel) CompressionThreshold() int {
	return c.t.CompressionThreshold()
}

// SetCompression sets the smallest packet sent compressed. Zero disables
// compression. It may run while another goroutine sends; a frame already
// being written keeps the framing it started with.
func (c *Channel) SetCompression(threshold int) error {
	if threshold < 0 {
		return &packet.ArgumentError{Op: "SetCompression", Err: fmt.Errorf("%w: %d", packet.ErrNegativeThreshold, threshold)}
	}
	c.t.SetCompressionThreshold(threshold)

	c.log.Debug().Int("threshold", threshold).Msg("compression set")
	return nil
}

func (c *Channel) PacketFormat() *packet.Format {
	return c.Phase().Format()
}

// SetPacketFormat swaps the packet tables without changing state.
func (c *Channel) SetPacketFormat(f *packet.Format) error {
	c.mu.Lock()
	next, err := c.phase.WithFormat(f)
	if err == nil {
		c.phase = next
	}
	c.mu.Unlock()
	if err != nil {
		return err
	}

	c.log.Debug().Stringer("format", f).Msg("packet format set")
	return nil
}

// On registers fn to receive every decoded packet of type T, which must be
// the pointer type held in the registry (e.g. *packet.Handshake). Handlers
// run on the goroutine calling Recv. The returned func cancels the
// subscription.
func On[T packet.Packet](c *Channel, fn func(T)) (cancel func()) {
	typ := reflect.TypeOf((*T)(nil)).Elem()

	c.subMu.Lock()
	id := c.nextSub
	c.nextSub++
	if c.subs[typ] == nil {
		c.subs[typ] = make(map[uint64]func(packet.Packet))
	}
	c.subs[typ][id] = func(p packet.Packet) { fn(p.(T)) }
	c.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.subMu.Lock()
			delete(c.subs[typ], id)
			c.subMu.Unlock()
		})
	}
}

func (c *Channel) dispatch(p packet.Packet) {
	c.subMu.RLock()
	handlers := make([]func(packet.Packet), 0, len(c.subs[reflect.TypeOf(p)]))
	for _, fn := range c.subs[reflect.TypeOf(p)] {
		handlers = append(handlers, fn)
	}
	c.subMu.RUnlock()

	for _, fn := range handlers {
		fn(p)
	}
}

// Send encodes p and writes it as one frame. p must be legal in the current
// state's outbound registry.
func (c *Channel) Send(p packet.Packet) error {
	if c.closed.Load() {
		return &packet.TransportError{Op: "send", Err: packet.ErrClosed}
	}
	phase := c.Phase()
	if !phase.Outbound().Contains(p) {
		return &packet.ArgumentError{
			Op:  "send",
			Err: fmt.Errorf("%w: %T in %s", packet.ErrPacketNotInState, p, phase.State()),
		}
	}

	c.out.Reset()
	c.out.VarInt(p.ID())
	if err := p.Encode(&c.out); err != nil {
		return err
	}
	if err := c.out.Err(); err != nil {
		return err
	}

	size := c.out.Len()
	threshold := c.CompressionThreshold()
	if err := c.t.Send(c.out.Bytes()); err != nil {
		if c.closed.Load() {
			return &packet.TransportError{Op: "send", Err: packet.ErrClosed}
		}
		return err
	}

	recordPacket(phase.State(), true, size, threshold > 0 && size >= threshold)
	c.log.Trace().Stringer("state", phase.State()).Int32("id", p.ID()).Int("size", size).Msg("sent packet")
	return c.advance(p)
}

// Recv reads and decodes the next packet, then applies any state change it
// carries and passes it to subscribers.
//
// Errors are *packet.TransportError, or *packet.DecodeError. A decode error
// for which packet.IsIgnorable reports true leaves the stream aligned on the
// next frame, and the caller may keep receiving.
func (c *Channel) Recv() (packet.Packet, error) {
	if c.closed.Load() {
		return nil, &packet.TransportError{Op: "recv", Err: packet.ErrClosed}
	}

	pr, err := c.t.Recv()
	if err != nil {
		return nil, c.recvFailed(err)
	}
	c.in.Reset()
	if _, err := c.in.ReadFrom(pr); err != nil {
		return nil, c.recvFailed(decodeErr("recv", err))
	}
	if err := pr.Close(); err != nil {
		return nil, c.recvFailed(decodeErr("recv", err))
	}

	phase := c.Phase()
	fr := packet.NewFrameReader(c.in.Bytes())
	id, err := packet.ReadVarInt(&fr)
	if err != nil {
		return nil, c.recvFailed(decodeErr("recv", err))
	}
	p, err := phase.Inbound().Decode(id, &fr)
	if err != nil {
		return nil, c.recvFailed(err)
	}

	recordPacket(phase.State(), false, c.in.Len(), pr.Compressed())
	c.log.Trace().Stringer("state", phase.State()).Int32("id", id).Int("size", c.in.Len()).Msg("received packet")

	if err := c.advance(p); err != nil {
		return nil, err
	}
	c.dispatch(p)
	return p, nil
}

func (c *Channel) recvFailed(err error) error {
	if c.closed.Load() {
		return &packet.TransportError{Op: "recv", Err: packet.ErrClosed}
	}
	if packet.IsDecode(err) {
		state := c.State()
		ignorable := packet.IsIgnorable(err)
		recordDecodeFailure(state, ignorable)
		if ignorable {
			c.log.Warn().Err(err).Stringer("state", state).Msg("skipping packet")
		} else {
			c.log.Error().Err(err).Stringer("state", state).Msg("decode failed")
		}
	}
	return err
}

// advance applies the state change carried by p, if any.
func (c *Channel) advance(p packet.Packet) error {
	switch p := p.(type) {
	case *packet.Handshake:
		// The intent was validated by its codec.
		if s, ok := p.NextState.State(); ok {
			return c.SetState(s)
		}
	case *packet.SetCompression:
		return c.SetCompression(max(int(p.Threshold), 0))
	case *packet.LoginSuccess:
		return c.SetState(packet.Play)
	}
	return nil
}

// Close moves the channel to NotConnected and releases its connection.
// Later Send and Recv calls fail with packet.ErrClosed.
func (c *Channel) Close() (err error) {
	c.closeOnce.Do(func() {
		c.closed.Store(true)

		c.mu.Lock()
		from := c.phase.State()
		c.phase, _ = c.phase.Next(packet.NotConnected)
		c.mu.Unlock()
		recordTransition(from, packet.NotConnected)
		c.log.Debug().Stringer("from", from).Msg("channel closed")

		if c.closer != nil {
			err = transportErr("close", c.closer.Close())
		}
	})
	return
}
