// Package logging builds the zerolog loggers used by mcwire binaries.
package logging

import (
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	EnvLogLevel   = "MCWIRE_LOG_LEVEL"
	EnvLogFormat  = "MCWIRE_LOG_FORMAT"
	EnvLogNoColor = "MCWIRE_LOG_NOCOLOR"
)

const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

type Config struct {
	Level   string `toml:"level"`
	Format  string `toml:"format"`
	NoColor bool   `toml:"no_color"`
}

func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Format: FormatConsole,
	}
}

// ApplyEnv overrides cfg with any MCWIRE_LOG_* variables that are set and valid.
func ApplyEnv(cfg *Config) {
	if _, ok := ParseLevel(os.Getenv(EnvLogLevel)); ok {
		cfg.Level = strings.TrimSpace(os.Getenv(EnvLogLevel))
	}
	switch f := strings.ToLower(strings.TrimSpace(os.Getenv(EnvLogFormat))); f {
	case FormatConsole, FormatJSON:
		cfg.Format = f
	}
	if v, ok := parseBool(os.Getenv(EnvLogNoColor)); ok {
		cfg.NoColor = v
	}
}

// New returns a logger writing to out. Unknown levels fall back to info.
func New(cfg Config, out io.Writer, app string) zerolog.Logger {
	lvl, ok := ParseLevel(cfg.Level)
	if !ok {
		lvl = zerolog.InfoLevel
	}
	if cfg.Format != FormatJSON {
		out = zerolog.ConsoleWriter{
			Out:        out,
			NoColor:    cfg.NoColor,
			TimeFormat: time.RFC3339,
		}
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Str("app", app).Logger()
}

func ParseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return zerolog.InfoLevel, false
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "disable", "off", "none":
		return zerolog.Disabled, true
	default:
		return zerolog.InfoLevel, false
	}
}

func parseBool(raw string) (bool, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
