package main

import (
	"context"
	"fmt"
	"io"
	"net"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/gstoney/mcwire"
	"github.com/gstoney/mcwire/packet"
	"github.com/gstoney/mcwire/server"
)

const defaultPort = "25565"

func statusCmd() *cobra.Command {
	var (
		timeout time.Duration
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "status <addr>",
		Short: "Query a server's status and latency",
		Long: `Send a server list ping to addr (host or host:port, port 25565 by
default) and print the reported version, players, MOTD and round trip time.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			return runStatus(ctx, cmd.OutOrStdout(), args[0], asJSON)
		},
	}

	cmd.Flags().DurationVarP(&timeout, "timeout", "t", 5*time.Second, "give up after this long")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw status document")

	return cmd
}

type pingResult struct {
	Status  server.Status
	Raw     string
	Latency time.Duration
}

func runStatus(ctx context.Context, out io.Writer, addr string, asJSON bool) error {
	res, err := ping(ctx, addr)
	if err != nil {
		return err
	}
	if asJSON {
		_, err := fmt.Fprintln(out, res.Raw)
		return err
	}
	st := res.Status
	fmt.Fprintf(out, "Version: %s (protocol %d)\n", st.Version.Name, st.Version.Protocol)
	fmt.Fprintf(out, "Players: %d/%d\n", st.Players.Online, st.Players.Max)
	fmt.Fprintf(out, "MOTD:    %s\n", st.MOTD().Plain())
	fmt.Fprintf(out, "Latency: %s\n", res.Latency.Round(time.Microsecond))
	return nil
}

func ping(ctx context.Context, addr string) (pingResult, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		host, portStr = addr, defaultPort
	}
	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil {
		return pingResult{}, fmt.Errorf("invalid port %q", portStr)
	}

	ch, err := mcwire.Dial(ctx, net.JoinHostPort(host, portStr))
	if err != nil {
		return pingResult{}, err
	}
	defer ch.Close()
	stop := context.AfterFunc(ctx, func() { ch.Close() })
	defer stop()

	if err := ch.Send(&packet.Handshake{
		ProtocolVersion: ch.PacketFormat().Protocol,
		ServerAddr:      host,
		ServerPort:      uint16(port),
		NextState:       packet.IntentStatus,
	}); err != nil {
		return pingResult{}, err
	}
	if err := ch.Send(&packet.StatusRequest{}); err != nil {
		return pingResult{}, err
	}
	resp, err := recvAs[*packet.StatusResponse](ctx, ch)
	if err != nil {
		return pingResult{}, err
	}
	res := pingResult{Raw: resp.Response}
	if res.Status, err = server.ParseStatus(resp); err != nil {
		return pingResult{}, fmt.Errorf("invalid status document: %w", err)
	}

	sent := time.Now()
	if err := ch.Send(&packet.PingRequest{Payload: sent.UnixMilli()}); err != nil {
		return pingResult{}, err
	}
	pong, err := recvAs[*packet.PongResponse](ctx, ch)
	if err != nil {
		return pingResult{}, err
	}
	if pong.Payload != sent.UnixMilli() {
		return pingResult{}, fmt.Errorf("pong payload %d does not match ping", pong.Payload)
	}
	res.Latency = time.Since(sent)
	return res, nil
}

// recvAs skips ignorable packets until one of type T arrives.
func recvAs[T packet.Packet](ctx context.Context, ch *mcwire.Channel) (T, error) {
	var zero T
	for {
		p, err := ch.Recv()
		if packet.IsIgnorable(err) {
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				return zero, ctx.Err()
			}
			return zero, err
		}
		if v, ok := p.(T); ok {
			return v, nil
		}
		return zero, fmt.Errorf("unexpected %T in %s", p, ch.State())
	}
}
