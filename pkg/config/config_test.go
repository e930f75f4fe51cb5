package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
server:
  address: 127.0.0.1
  port: 9090
  db_path: /tmp/zenbu-test-db
security:
  rate_limit:
    rps: 10
    burst: 20
  api_keys:
    backend: ["bk1"]
    admin: ["ad1"]
  invites:
    enabled: true
    ttl: 24h
analysis:
  mode: categorical
  vocabulary: patterns
  self_name: 山田
import:
  max_upload_size: 8MB
  workers: 4
retention:
  enabled: true
  cron: "0 3 * * *"
  period: 720h
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr() != "127.0.0.1:9090" {
		t.Errorf("Addr = %q", cfg.Addr())
	}
	if cfg.Analysis.Mode != "categorical" || cfg.Analysis.Vocabulary != "patterns" {
		t.Errorf("analysis = %+v", cfg.Analysis)
	}
	if cfg.Import.MaxUploadSize.Int64() != 8*1000*1000 && cfg.Import.MaxUploadSize.Int64() != 8<<20 {
		t.Errorf("max_upload_size = %d", cfg.Import.MaxUploadSize.Int64())
	}
	if cfg.Security.Invites.TTL.Duration() != 24*time.Hour {
		t.Errorf("invite ttl = %v", cfg.Security.Invites.TTL.Duration())
	}
	if time.Duration(cfg.Retention.Period) != 720*time.Hour {
		t.Errorf("retention period = %v", time.Duration(cfg.Retention.Period))
	}
}

func TestSizeBytesPlainInteger(t *testing.T) {
	var s struct {
		Size SizeBytes `yaml:"size"`
	}
	if err := yaml.Unmarshal([]byte("size: 1048576"), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if s.Size.Int64() != 1048576 {
		t.Errorf("size = %d", s.Size.Int64())
	}
}

func TestDurationNumericSeconds(t *testing.T) {
	var d struct {
		TTL Duration `yaml:"ttl"`
	}
	if err := yaml.Unmarshal([]byte("ttl: 90"), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if d.TTL.Duration() != 90*time.Second {
		t.Errorf("ttl = %v", d.TTL.Duration())
	}
}

func TestLoadEffectiveDefaults(t *testing.T) {
	eff := LoadEffective(filepath.Join(t.TempDir(), "missing.yaml"), ":8080", "./db", map[string]bool{})
	cfg := eff.Config
	if cfg.Analysis.Mode != "weighted" {
		t.Errorf("default mode = %q", cfg.Analysis.Mode)
	}
	if cfg.Analysis.Vocabulary != "keywords" {
		t.Errorf("default vocabulary = %q", cfg.Analysis.Vocabulary)
	}
	if cfg.Analysis.MinChars != 2 || cfg.Analysis.TopN != 3 {
		t.Errorf("defaults = %+v", cfg.Analysis)
	}
	if cfg.Import.Workers != 2 {
		t.Errorf("default workers = %d", cfg.Import.Workers)
	}
	if eff.DBPath != "./db" {
		t.Errorf("db path = %q", eff.DBPath)
	}
}

func TestLoadEffectiveFlagWins(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9999\n  db_path: /from/config\n")
	eff := LoadEffective(path, ":7777", "/from/flag", map[string]bool{"addr": true, "db": true})
	if eff.Addr != ":7777" {
		t.Errorf("addr = %q, want flag value", eff.Addr)
	}
	if eff.DBPath != "/from/flag" {
		t.Errorf("db path = %q, want flag value", eff.DBPath)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("ZENBU_ANALYSIS_MODE", "Categorical")
	t.Setenv("ZENBU_SELF_NAME", "山田")
	t.Setenv("ZENBU_RATE_RPS", "25")
	var cfg Config
	if !LoadEnvOverrides(&cfg) {
		t.Fatal("env overrides not detected")
	}
	if cfg.Analysis.Mode != "categorical" {
		t.Errorf("mode = %q", cfg.Analysis.Mode)
	}
	if cfg.Analysis.SelfName != "山田" {
		t.Errorf("self name = %q", cfg.Analysis.SelfName)
	}
	if cfg.Security.RateLimit.RPS != 25 {
		t.Errorf("rps = %v", cfg.Security.RateLimit.RPS)
	}
}
