// Package config loads mcgate settings from a TOML file, a .env file and
// MCWIRE_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/gstoney/mcwire"
	"github.com/gstoney/mcwire/internal/logging"
)

const (
	EnvAddr                 = "MCWIRE_ADDR"
	EnvMOTD                 = "MCWIRE_MOTD"
	EnvMaxPlayers           = "MCWIRE_MAX_PLAYERS"
	EnvCompressionThreshold = "MCWIRE_COMPRESSION_THRESHOLD"
	EnvMetricsAddr          = "MCWIRE_METRICS_ADDR"
	EnvWakeRegion           = "MCWIRE_WAKE_REGION"
	EnvWakeInstanceID       = "MCWIRE_WAKE_INSTANCE_ID"
)

type Config struct {
	Transport TransportConfig `toml:"transport"`
	Server    ServerConfig    `toml:"server"`
	Log       logging.Config  `toml:"log"`
	Wake      WakeConfig      `toml:"wake"`
}

type TransportConfig struct {
	MaxPacketLen       int32 `toml:"max_packet_len"`
	MaxDecompressedLen int32 `toml:"max_decompressed_len"`
	CompressionLevel   int   `toml:"compression_level"`
}

type ServerConfig struct {
	Addr                 string `toml:"addr"`
	MOTD                 string `toml:"motd"`
	MaxPlayers           int    `toml:"max_players"`
	CompressionThreshold int    `toml:"compression_threshold"`
	MetricsAddr          string `toml:"metrics_addr"`
}

// WakeConfig names the EC2 instance started when a player tries to join.
// An empty InstanceID disables waking.
type WakeConfig struct {
	Region     string `toml:"region"`
	InstanceID string `toml:"instance_id"`
}

func Default() Config {
	tc := mcwire.DefaultTransportConfig()
	return Config{
		Transport: TransportConfig{
			MaxPacketLen:       tc.MaxPacketLen,
			MaxDecompressedLen: tc.MaxDecompressedLen,
		},
		Server: ServerConfig{
			Addr:                 ":25565",
			MOTD:                 "A Minecraft Server",
			MaxPlayers:           20,
			CompressionThreshold: 256,
		},
		Log: logging.DefaultConfig(),
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("config parse failed (%s): %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Config{}, fmt.Errorf("config parse failed (%s): unknown key %s", path, undecoded[0])
		}
	}
	if err := ApplyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadEnv loads .env style files into the process environment without
// overriding variables that are already set. Missing files are ignored.
func LoadEnv(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("env load failed (%s): %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides cfg with the MCWIRE_* variables that are set.
func ApplyEnv(cfg *Config) error {
	if v, ok := lookup(EnvAddr); ok {
		cfg.Server.Addr = v
	}
	if v, ok := lookup(EnvMOTD); ok {
		cfg.Server.MOTD = v
	}
	if v, ok := lookup(EnvMaxPlayers); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMaxPlayers, err)
		}
		cfg.Server.MaxPlayers = n
	}
	if v, ok := lookup(EnvCompressionThreshold); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvCompressionThreshold, err)
		}
		cfg.Server.CompressionThreshold = n
	}
	if v, ok := lookup(EnvMetricsAddr); ok {
		cfg.Server.MetricsAddr = v
	}
	if v, ok := lookup(EnvWakeRegion); ok {
		cfg.Wake.Region = v
	}
	if v, ok := lookup(EnvWakeInstanceID); ok {
		cfg.Wake.InstanceID = v
	}
	logging.ApplyEnv(&cfg.Log)
	return nil
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func Validate(cfg Config) error {
	if cfg.Transport.MaxPacketLen <= 0 {
		return fmt.Errorf("transport.max_packet_len must be positive")
	}
	if cfg.Transport.MaxDecompressedLen <= 0 {
		return fmt.Errorf("transport.max_decompressed_len must be positive")
	}
	if l := cfg.Transport.CompressionLevel; l < 0 || l > 9 {
		return fmt.Errorf("transport.compression_level %d out of range 0-9", l)
	}
	if _, _, err := net.SplitHostPort(cfg.Server.Addr); err != nil {
		return fmt.Errorf("server.addr invalid: %w", err)
	}
	if cfg.Server.MetricsAddr != "" {
		if _, _, err := net.SplitHostPort(cfg.Server.MetricsAddr); err != nil {
			return fmt.Errorf("server.metrics_addr invalid: %w", err)
		}
	}
	if cfg.Server.MaxPlayers < 0 {
		return fmt.Errorf("server.max_players must not be negative")
	}
	if cfg.Server.CompressionThreshold < 0 {
		return fmt.Errorf("server.compression_threshold must not be negative")
	}
	if cfg.Wake.InstanceID != "" && strings.TrimSpace(cfg.Wake.Region) == "" {
		return fmt.Errorf("wake.region required when wake.instance_id is set")
	}
	return nil
}

// Transport converts the [transport] section for mcwire.
func (c TransportConfig) Transport() mcwire.TransportConfig {
	return mcwire.TransportConfig{
		MaxPacketLen:       c.MaxPacketLen,
		MaxDecompressedLen: c.MaxDecompressedLen,
		Compression:        mcwire.Zlib{Level: c.CompressionLevel},
	}
}
