package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/gstoney/mcwire/internal/wake"
	"github.com/gstoney/mcwire/packet"
	"github.com/gstoney/mcwire/server"
)

const backendTimeout = 10 * time.Second

// backend is the instance behind the gate.
type backend interface {
	Status(ctx context.Context) (wake.Status, error)
	Wake(ctx context.Context) (wake.Status, error)
}

// gate answers pings with the backend state and refuses every login, waking
// the backend first when it is stopped.
type gate struct {
	backend    backend
	format     *packet.Format
	motd       string
	maxPlayers int
	log        zerolog.Logger
}

func (g *gate) status(ctx context.Context, _ *server.Session) (server.Status, error) {
	line := "No backend configured"
	if g.backend != nil {
		ctx, cancel := context.WithTimeout(ctx, backendTimeout)
		defer cancel()
		st, err := g.backend.Status(ctx)
		if err != nil {
			g.log.Warn().Err(err).Msg("backend status failed")
			line = "Backend state unknown"
		} else {
			line = describe(st)
		}
	}
	return server.NewStatus(g.format, packet.Text(g.motd+"\n"+line), 0, g.maxPlayers), nil
}

func (g *gate) admit(ctx context.Context, s *server.Session) error {
	if g.backend == nil {
		return server.Refuse(packet.Text("This gate has no backend to start"))
	}
	ctx, cancel := context.WithTimeout(ctx, backendTimeout)
	defer cancel()
	st, err := g.backend.Wake(ctx)
	if err != nil {
		g.log.Error().Err(err).Str("player", s.Name).Msg("wake failed")
		return server.Refuse(packet.Text("Could not start the server, try again later"))
	}
	g.log.Info().Str("player", s.Name).Str("state", string(st.State)).Msg("wake requested")

	switch st.State {
	case types.InstanceStateNameRunning:
		if st.PublicIP != "" {
			return server.Refuse(packet.Text("The server is online at " + st.PublicIP))
		}
		return server.Refuse(packet.Text("The server is online"))
	case types.InstanceStateNamePending:
		return server.Refuse(packet.Text("The server is starting, try again in a minute"))
	case types.InstanceStateNameStopping:
		return server.Refuse(packet.Text("The server is shutting down, try again shortly"))
	}
	return server.Refuse(packet.Text(fmt.Sprintf("The server is %s", st.State)))
}

func describe(st wake.Status) string {
	switch st.State {
	case types.InstanceStateNameRunning:
		if st.PublicIP != "" {
			return "Online at " + st.PublicIP
		}
		return "Online"
	case types.InstanceStateNamePending:
		return "Starting up"
	case types.InstanceStateNameStopped:
		return "Sleeping, join to wake it"
	case types.InstanceStateNameStopping:
		return "Shutting down"
	}
	return string(st.State)
}

// httpHandler serves metrics and the current status document.
func (g *gate) httpHandler() http.Handler {
	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		st, err := g.status(r.Context(), nil)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(st)
	})
	return r
}
