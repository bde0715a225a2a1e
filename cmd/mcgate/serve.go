package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gstoney/mcwire"
	"github.com/gstoney/mcwire/internal/config"
	"github.com/gstoney/mcwire/internal/logging"
	"github.com/gstoney/mcwire/internal/wake"
	"github.com/gstoney/mcwire/packet"
	"github.com/gstoney/mcwire/server"
)

func serveCmd() *cobra.Command {
	var configPath, envFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the gate",
		Long: `Listen for Minecraft connections and answer them on behalf of the
backend instance named in the [wake] section of the config.

Settings are read from the TOML file given by --config, then from the
.env file, then from MCWIRE_* environment variables.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, configPath, envFile)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "TOML config file")
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "dotenv file, ignored when missing")

	return cmd
}

func runServe(ctx context.Context, configPath, envFile string) error {
	if err := config.LoadEnv(envFile); err != nil {
		return err
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log := logging.New(cfg.Log, os.Stderr, "mcgate")

	g := &gate{
		format:     packet.DefaultFormat,
		motd:       cfg.Server.MOTD,
		maxPlayers: cfg.Server.MaxPlayers,
		log:        log,
	}
	if cfg.Wake.InstanceID != "" {
		w, err := wake.NewEC2(ctx, cfg.Wake.Region, cfg.Wake.InstanceID, log)
		if err != nil {
			return err
		}
		g.backend = w
	} else {
		log.Warn().Msg("no wake instance configured, logins will be refused")
	}

	mcwire.RegisterMetrics()
	if cfg.Server.MetricsAddr != "" {
		go serveHTTP(ctx, cfg.Server.MetricsAddr, g.httpHandler(), log)
	}

	srv := &server.Server{
		Addr:                 cfg.Server.Addr,
		Format:               g.format,
		Transport:            cfg.Transport.Transport(),
		CompressionThreshold: cfg.Server.CompressionThreshold,
		MaxPlayers:           cfg.Server.MaxPlayers,
		Status:               g.status,
		Admit:                g.admit,
		Log:                  log,
	}
	return srv.ListenAndServe(ctx)
}

func serveHTTP(ctx context.Context, addr string, h http.Handler, log zerolog.Logger) {
	hs := &http.Server{Addr: addr, Handler: h, ReadHeaderTimeout: 5 * time.Second}
	stop := context.AfterFunc(ctx, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		hs.Shutdown(shutdownCtx)
	})
	defer stop()

	log.Info().Str("addr", addr).Msg("http listening")
	if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("http server failed")
	}
}
