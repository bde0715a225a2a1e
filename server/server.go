// Package server accepts Minecraft connections, answers server list pings and
// logs players in before handing their channel to a SessionHandler.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gstoney/mcwire"
	"github.com/gstoney/mcwire/packet"
)

var ErrUnexpectedPacket = errors.New("server: unexpected packet")

// A Server defines parameters for running a Minecraft server.
type Server struct {
	Addr string

	// Format selects the packet tables. Nil means packet.DefaultFormat.
	Format *packet.Format
	// Transport limits frames. Zero fields take mcwire.DefaultTransportConfig values.
	Transport mcwire.TransportConfig
	// CompressionThreshold is announced to every player logging in. Zero
	// leaves compression off.
	CompressionThreshold int

	MOTD       packet.Chat
	MaxPlayers int
	// Status overrides the document built from MOTD and MaxPlayers.
	Status func(ctx context.Context, s *Session) (Status, error)

	// Admit is consulted after LoginStart. Returning a *Refusal disconnects
	// the player with its reason.
	Admit          func(ctx context.Context, s *Session) error
	SessionHandler SessionHandler

	Log zerolog.Logger

	online atomic.Int32
}

// SessionHandler drives a player's connection once it reaches Play. The
// channel is closed when it returns.
type SessionHandler func(ctx context.Context, s *Session, c *mcwire.Channel) error

// A Session stores connection and states of a client.
type Session struct {
	LocalAddr  net.Addr
	RemoteAddr net.Addr

	State packet.State

	ProtocolVersion int32
	ServerAddr      string
	ServerPort      uint16
	Intent          packet.Intent
	Name            string
	PlayerUUID      uuid.UUID
}

// Refusal rejects a login with a reason shown to the player.
type Refusal struct {
	Reason packet.Chat
}

func Refuse(reason packet.Chat) error {
	return &Refusal{Reason: reason}
}

func (r *Refusal) Error() string {
	return "server: login refused: " + r.Reason.Plain()
}

// Online returns the number of sessions being handled.
func (s *Server) Online() int {
	return int(s.online.Load())
}

// ListenAndServe listens on s.Addr and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context) error {
	var lc net.ListenConfig
	l, err := lc.Listen(ctx, "tcp", s.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, l)
}

// Serve accepts incoming connections on the Listener l,
// creating a new goroutine for each.
// The goroutines read handshake packet and either respond to
// status request or establish session for a login request.
//
// Serve returns nil once ctx is cancelled and every connection has finished.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	stop := context.AfterFunc(ctx, func() { l.Close() })
	defer stop()

	var wg sync.WaitGroup
	defer wg.Wait()

	s.Log.Info().Stringer("addr", l.Addr()).Msg("listening")
	for {
		c, err := l.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, net.ErrClosed) {
				return err
			}
			s.Log.Error().Err(err).Msg("accept failed")
			time.Sleep(10 * time.Millisecond)
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			s.serveConn(ctx, c)
		}()
	}
}

func (s *Server) serveConn(ctx context.Context, c net.Conn) {
	log := s.Log.With().Stringer("remote", c.RemoteAddr()).Logger()
	ch := mcwire.NewChannel(c, c, packet.Serverbound,
		mcwire.WithCloser(c),
		mcwire.WithLogger(log),
		mcwire.WithFormat(s.format()),
		mcwire.WithTransportConfig(s.Transport),
	)
	defer ch.Close()
	stop := context.AfterFunc(ctx, func() { ch.Close() })
	defer stop()

	sess := &Session{LocalAddr: c.LocalAddr(), RemoteAddr: c.RemoteAddr()}
	if err := s.Establish(ctx, ch, sess); err != nil {
		if isHangup(err) {
			log.Debug().Err(err).Msg("client left")
		} else {
			log.Error().Err(err).Msg("establish failed")
		}
		return
	}
	if sess.State != packet.Play || s.SessionHandler == nil {
		return
	}

	s.online.Add(1)
	defer s.online.Add(-1)
	log.Info().Str("player", sess.Name).Stringer("uuid", sess.PlayerUUID).Msg("player joined")
	if err := s.SessionHandler(ctx, sess, ch); err != nil && !isHangup(err) {
		log.Error().Err(err).Str("player", sess.Name).Msg("session failed")
	}
}

// Establish reads the handshake from ch and answers a status request or
// logs the player in. sess.State is Play when a login succeeded.
func (s *Server) Establish(ctx context.Context, ch *mcwire.Channel, sess *Session) error {
	p, err := recv(ch)
	if err != nil {
		return err
	}
	hs, ok := p.(*packet.Handshake)
	if !ok {
		return fmt.Errorf("%w: %T in %s", ErrUnexpectedPacket, p, packet.Handshaking)
	}
	sess.ProtocolVersion = hs.ProtocolVersion
	sess.ServerAddr = hs.ServerAddr
	sess.ServerPort = hs.ServerPort
	sess.Intent = hs.NextState
	sess.State = ch.State()

	switch sess.State {
	case packet.Status:
		return s.serveStatus(ctx, ch, sess)
	case packet.Login:
		return s.login(ctx, ch, sess)
	}
	return fmt.Errorf("%w: handshake left channel in %s", ErrUnexpectedPacket, sess.State)
}

func (s *Server) serveStatus(ctx context.Context, ch *mcwire.Channel, sess *Session) error {
	for {
		p, err := recv(ch)
		if err != nil {
			return err
		}
		switch p := p.(type) {
		case *packet.StatusRequest:
			st, err := s.status(ctx, sess)
			if err != nil {
				return err
			}
			resp, err := st.Response()
			if err != nil {
				return err
			}
			if err := ch.Send(resp); err != nil {
				return err
			}
		case *packet.PingRequest:
			return ch.Send(&packet.PongResponse{Payload: p.Payload})
		}
	}
}

func (s *Server) status(ctx context.Context, sess *Session) (Status, error) {
	if s.Status != nil {
		return s.Status(ctx, sess)
	}
	motd := s.MOTD
	if motd == "" {
		motd = packet.Text("")
	}
	return NewStatus(s.format(), motd, s.Online(), s.MaxPlayers), nil
}

func (s *Server) login(ctx context.Context, ch *mcwire.Channel, sess *Session) error {
	p, err := recv(ch)
	if err != nil {
		return err
	}
	start, ok := p.(*packet.LoginStart)
	if !ok {
		return fmt.Errorf("%w: %T in %s", ErrUnexpectedPacket, p, packet.Login)
	}
	sess.Name = start.Name
	sess.PlayerUUID = OfflineUUID(start.Name)

	if s.Admit != nil {
		if err := s.Admit(ctx, sess); err != nil {
			var refusal *Refusal
			if !errors.As(err, &refusal) {
				return err
			}
			s.Log.Info().Str("player", sess.Name).Str("reason", refusal.Reason.Plain()).Msg("login refused")
			return ch.Send(&packet.LoginDisconnect{Reason: refusal.Reason})
		}
	}

	if s.CompressionThreshold > 0 {
		if err := ch.Send(&packet.SetCompression{Threshold: int32(s.CompressionThreshold)}); err != nil {
			return err
		}
	}
	if err := ch.Send(&packet.LoginSuccess{UUID: sess.PlayerUUID, Username: sess.Name}); err != nil {
		return err
	}
	sess.State = ch.State()
	return nil
}

func (s *Server) format() *packet.Format {
	if s.Format != nil {
		return s.Format
	}
	return packet.DefaultFormat
}

// recv returns the next packet, skipping ones that may be ignored.
func recv(ch *mcwire.Channel) (packet.Packet, error) {
	for {
		p, err := ch.Recv()
		if packet.IsIgnorable(err) {
			continue
		}
		return p, err
	}
}

func isHangup(err error) bool {
	return errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, packet.ErrClosed) ||
		errors.Is(err, net.ErrClosed)
}
