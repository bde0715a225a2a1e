package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gstoney/mcwire"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":25565" || cfg.Server.CompressionThreshold != 256 {
		t.Errorf("defaults: %+v", cfg.Server)
	}
	tc := cfg.Transport.Transport()
	if tc.MaxPacketLen != mcwire.DefaultTransportConfig().MaxPacketLen {
		t.Errorf("max packet len = %d", tc.MaxPacketLen)
	}
	if _, ok := tc.Compression.(mcwire.Zlib); !ok {
		t.Errorf("compression = %T", tc.Compression)
	}
}

func TestLoad_File(t *testing.T) {
	path := writeFile(t, "mcgate.toml", `
[transport]
compression_level = 6

[server]
addr = "0.0.0.0:25570"
motd = "Sleeping"
compression_threshold = 0
metrics_addr = "127.0.0.1:9100"

[log]
level = "debug"
format = "json"

[wake]
region = "us-east-1"
instance_id = "i-0123456789abcdef0"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != "0.0.0.0:25570" || cfg.Server.MOTD != "Sleeping" || cfg.Server.CompressionThreshold != 0 {
		t.Errorf("server: %+v", cfg.Server)
	}
	if cfg.Server.MaxPlayers != 20 {
		t.Errorf("unset key lost its default: %d", cfg.Server.MaxPlayers)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("log: %+v", cfg.Log)
	}
	if cfg.Wake.InstanceID != "i-0123456789abcdef0" {
		t.Errorf("wake: %+v", cfg.Wake)
	}
	if z := cfg.Transport.Transport().Compression.(mcwire.Zlib); z.Level != 6 {
		t.Errorf("compression level = %d", z.Level)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		desc    string
		content string
		wantErr string
	}{
		{"unknown key", "[server]\nport = 1\n", "unknown key"},
		{"syntax", "[server\n", "parse failed"},
		{"bad addr", "[server]\naddr = \"nowhere\"\n", "server.addr"},
		{"negative threshold", "[server]\ncompression_threshold = -1\n", "compression_threshold"},
		{"level out of range", "[transport]\ncompression_level = 10\n", "compression_level"},
		{"wake without region", "[wake]\ninstance_id = \"i-1\"\n", "wake.region"},
	}
	for _, tC := range tests {
		t.Run(tC.desc, func(t *testing.T) {
			_, err := Load(writeFile(t, "bad.toml", tC.content))
			if err == nil || !strings.Contains(err.Error(), tC.wantErr) {
				t.Errorf("Load: got %v, want error containing %q", err, tC.wantErr)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvAddr, "127.0.0.1:25566")
	t.Setenv(EnvCompressionThreshold, "64")
	t.Setenv(EnvWakeRegion, "eu-west-1")
	t.Setenv(EnvWakeInstanceID, "i-abc")
	t.Setenv(EnvMOTD, "  ")

	cfg := Default()
	if err := ApplyEnv(&cfg); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.Server.Addr != "127.0.0.1:25566" || cfg.Server.CompressionThreshold != 64 {
		t.Errorf("server: %+v", cfg.Server)
	}
	if cfg.Server.MOTD != "A Minecraft Server" {
		t.Errorf("blank variable overrode motd: %q", cfg.Server.MOTD)
	}
	if cfg.Wake.Region != "eu-west-1" || cfg.Wake.InstanceID != "i-abc" {
		t.Errorf("wake: %+v", cfg.Wake)
	}

	t.Setenv(EnvMaxPlayers, "many")
	if err := ApplyEnv(&cfg); err == nil {
		t.Error("expected an error for a non-numeric max players")
	}
}

func TestLoadEnv(t *testing.T) {
	path := writeFile(t, ".env", "MCWIRE_MOTD=From dotenv\nMCWIRE_ADDR=:25599\n")
	t.Setenv(EnvAddr, ":25600")
	t.Setenv(EnvMOTD, "")
	os.Unsetenv(EnvMOTD)

	if err := LoadEnv(filepath.Join(t.TempDir(), "missing.env"), path); err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.MOTD != "From dotenv" {
		t.Errorf("motd = %q", cfg.Server.MOTD)
	}
	if cfg.Server.Addr != ":25600" {
		t.Errorf("dotenv overrode the environment: addr = %q", cfg.Server.Addr)
	}
}
