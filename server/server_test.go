package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gstoney/mcwire"
	"github.com/gstoney/mcwire/packet"
)

func startServer(t *testing.T, s *Server) (addr string) {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, l) }()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			if err != nil {
				t.Errorf("Serve: %v", err)
			}
		case <-time.After(5 * time.Second):
			t.Error("Serve did not return after cancel")
		}
	})
	return l.Addr().String()
}

func dial(t *testing.T, addr string, intent packet.Intent) *mcwire.Channel {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	ch, err := mcwire.Dial(ctx, addr)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	t.Cleanup(func() { ch.Close() })

	host, portStr, _ := net.SplitHostPort(addr)
	port, _ := strconv.Atoi(portStr)
	mustSend(t, ch, &packet.Handshake{
		ProtocolVersion: packet.DefaultFormat.Protocol,
		ServerAddr:      host,
		ServerPort:      uint16(port),
		NextState:       intent,
	})
	return ch
}

func mustSend(t *testing.T, c *mcwire.Channel, p packet.Packet) {
	t.Helper()
	if err := c.Send(p); err != nil {
		t.Fatalf("Send(%T): %v", p, err)
	}
}

func mustRecv[T packet.Packet](t *testing.T, c *mcwire.Channel) T {
	t.Helper()
	p, err := c.Recv()
	if err != nil {
		t.Fatalf("Recv: %v", err)
	}
	v, ok := p.(T)
	if !ok {
		t.Fatalf("Recv: got %T", p)
	}
	return v
}

func TestServer_Status(t *testing.T) {
	addr := startServer(t, &Server{MOTD: packet.Text("hello"), MaxPlayers: 8})
	ch := dial(t, addr, packet.IntentStatus)

	mustSend(t, ch, &packet.StatusRequest{})
	st, err := ParseStatus(mustRecv[*packet.StatusResponse](t, ch))
	if err != nil {
		t.Fatalf("ParseStatus: %v", err)
	}
	if st.MOTD().Plain() != "hello" || st.Players.Max != 8 || st.Players.Online != 0 {
		t.Errorf("status = %+v", st)
	}
	if st.Version.Protocol != packet.DefaultFormat.Protocol || st.Version.Name != packet.DefaultFormat.Name {
		t.Errorf("version = %+v", st.Version)
	}

	mustSend(t, ch, &packet.PingRequest{Payload: 0x1234})
	if pong := mustRecv[*packet.PongResponse](t, ch); pong.Payload != 0x1234 {
		t.Errorf("pong payload = %#x", pong.Payload)
	}

	if _, err := ch.Recv(); !packet.IsTransport(err) {
		t.Errorf("expected the server to hang up, got %v", err)
	}
}

func TestServer_StatusOverride(t *testing.T) {
	boom := errors.New("backend unavailable")
	calls := 0
	addr := startServer(t, &Server{
		Status: func(ctx context.Context, s *Session) (Status, error) {
			calls++
			if s.Intent != packet.IntentStatus || s.ServerAddr != "127.0.0.1" {
				t.Errorf("session = %+v", s)
			}
			if calls > 1 {
				return Status{}, boom
			}
			return NewStatus(packet.DefaultFormat, packet.Text("custom"), 3, 4), nil
		},
	})

	ch := dial(t, addr, packet.IntentStatus)
	mustSend(t, ch, &packet.StatusRequest{})
	st, err := ParseStatus(mustRecv[*packet.StatusResponse](t, ch))
	if err != nil || st.MOTD().Plain() != "custom" || st.Players.Online != 3 {
		t.Fatalf("status = %+v, %v", st, err)
	}

	mustSend(t, ch, &packet.StatusRequest{})
	if _, err := ch.Recv(); !packet.IsTransport(err) {
		t.Errorf("expected a hang up after a failed status, got %v", err)
	}
}

func TestServer_Login(t *testing.T) {
	sessions := make(chan Session, 1)
	srv := &Server{
		CompressionThreshold: 64,
		SessionHandler: func(ctx context.Context, s *Session, c *mcwire.Channel) error {
			sessions <- *s
			if err := c.Send(&packet.KeepAliveClientbound{KeepAliveID: 42}); err != nil {
				return err
			}
			return c.Send(&packet.PlayDisconnect{Reason: packet.Text("bye")})
		},
	}
	addr := startServer(t, srv)
	ch := dial(t, addr, packet.IntentLogin)

	mustSend(t, ch, &packet.LoginStart{Name: "Notch"})
	if sc := mustRecv[*packet.SetCompression](t, ch); sc.Threshold != 64 {
		t.Errorf("threshold = %d", sc.Threshold)
	}
	if ch.CompressionThreshold() != 64 {
		t.Errorf("client threshold = %d", ch.CompressionThreshold())
	}
	success := mustRecv[*packet.LoginSuccess](t, ch)
	if success.Username != "Notch" || success.UUID != OfflineUUID("Notch") {
		t.Errorf("login success = %+v", success)
	}
	if ch.State() != packet.Play {
		t.Fatalf("client state = %s", ch.State())
	}

	if ka := mustRecv[*packet.KeepAliveClientbound](t, ch); ka.KeepAliveID != 42 {
		t.Errorf("keep alive = %d", ka.KeepAliveID)
	}
	if d := mustRecv[*packet.PlayDisconnect](t, ch); d.Reason.Plain() != "bye" {
		t.Errorf("disconnect reason = %q", d.Reason.Plain())
	}

	s := <-sessions
	if s.State != packet.Play || s.Name != "Notch" || s.ProtocolVersion != packet.DefaultFormat.Protocol {
		t.Errorf("session = %+v", s)
	}
	if s.RemoteAddr == nil || s.LocalAddr == nil {
		t.Error("session addresses not set")
	}
}

func TestServer_PartialTransportConfig(t *testing.T) {
	msgs := make(chan string, 1)
	srv := &Server{
		Transport:            mcwire.TransportConfig{MaxPacketLen: 1 << 16},
		CompressionThreshold: 64,
		SessionHandler: func(ctx context.Context, s *Session, c *mcwire.Channel) error {
			p, err := c.Recv()
			if err != nil {
				return err
			}
			chat, ok := p.(*packet.ChatMessageServerbound)
			if !ok {
				return fmt.Errorf("got %T", p)
			}
			msgs <- chat.Message
			return nil
		},
	}
	addr := startServer(t, srv)
	ch := dial(t, addr, packet.IntentLogin)

	mustSend(t, ch, &packet.LoginStart{Name: "Notch"})
	mustRecv[*packet.SetCompression](t, ch)
	mustRecv[*packet.LoginSuccess](t, ch)

	msg := strings.Repeat("a", 200)
	mustSend(t, ch, &packet.ChatMessageServerbound{Message: msg})
	select {
	case got := <-msgs:
		if got != msg {
			t.Errorf("message = %q", got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("compressed packet was not delivered")
	}
}

func TestServer_Refusal(t *testing.T) {
	var handled atomic.Bool
	addr := startServer(t, &Server{
		Admit: func(ctx context.Context, s *Session) error {
			return Refuse(packet.Text("come back later, " + s.Name))
		},
		SessionHandler: func(ctx context.Context, s *Session, c *mcwire.Channel) error {
			handled.Store(true)
			return nil
		},
	})
	ch := dial(t, addr, packet.IntentLogin)

	mustSend(t, ch, &packet.LoginStart{Name: "alex"})
	d := mustRecv[*packet.LoginDisconnect](t, ch)
	if d.Reason.Plain() != "come back later, alex" {
		t.Errorf("reason = %q", d.Reason.Plain())
	}
	if _, err := ch.Recv(); !packet.IsTransport(err) {
		t.Errorf("expected a hang up, got %v", err)
	}
	if handled.Load() {
		t.Error("refused player reached the session handler")
	}
}

func TestServer_UnexpectedLoginPacket(t *testing.T) {
	addr := startServer(t, &Server{})
	ch := dial(t, addr, packet.IntentLogin)

	mustSend(t, ch, &packet.EncryptionResponse{SharedSecret: []byte{1}, VerifyToken: []byte{2}})
	if _, err := ch.Recv(); !packet.IsTransport(err) {
		t.Errorf("expected a hang up, got %v", err)
	}
}

func TestOfflineUUID(t *testing.T) {
	if got := OfflineUUID("Notch").String(); got != "b50ad385-829d-3141-a216-7e7d7539ba7f" {
		t.Errorf("OfflineUUID(Notch) = %s", got)
	}
	u := OfflineUUID("jeb_")
	if u.Version() != 3 || u == OfflineUUID("Notch") {
		t.Errorf("OfflineUUID(jeb_) = %s", u)
	}
}

func TestRefusal(t *testing.T) {
	err := fmt.Errorf("admit: %w", Refuse(packet.Text("full")))
	var r *Refusal
	if !errors.As(err, &r) || r.Reason.Plain() != "full" {
		t.Fatalf("errors.As: %v", err)
	}
}
