package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing config file must not fail: %v", err)
	}

	if cfg.API.Days != 260 {
		t.Errorf("expected default days 260, got %d", cfg.API.Days)
	}
	if cfg.API.Universe != "LQ45" {
		t.Errorf("expected default universe LQ45, got %s", cfg.API.Universe)
	}
	if cfg.API.Ticker != "BBRI" {
		t.Errorf("expected default ticker BBRI, got %s", cfg.API.Ticker)
	}
	if cfg.Server.Addr != ":8087" {
		t.Errorf("expected default addr :8087, got %s", cfg.Server.Addr)
	}
	if cfg.Server.RefreshCron != "0 */10 * * * *" {
		t.Errorf("unexpected default refresh cron %q", cfg.Server.RefreshCron)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
api:
  bases:
    - http://one:8000
  days: 120
server:
  addr: ":9000"
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("IDX_API_BASE", "http://override:8000")
	t.Setenv("IDX_API_BASES", "http://a:8000, http://b:8000")
	t.Setenv("IDX_DAYS", "90")
	t.Setenv("IDX_UNIVERSE", "IDX30")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.API.Override != "http://override:8000" {
		t.Errorf("env override base not applied: %q", cfg.API.Override)
	}
	if len(cfg.API.Bases) != 2 || cfg.API.Bases[0] != "http://a:8000" || cfg.API.Bases[1] != "http://b:8000" {
		t.Errorf("env bases must replace file bases, got %v", cfg.API.Bases)
	}
	if cfg.API.Days != 90 {
		t.Errorf("env days must win over file, got %d", cfg.API.Days)
	}
	if cfg.API.Universe != "IDX30" {
		t.Errorf("env universe not applied: %q", cfg.API.Universe)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("file addr not applied: %q", cfg.Server.Addr)
	}
}

func TestValidate(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}

	cfg.API.Days = 10
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for days below the minimum")
	}
	cfg.API.Days = 1000
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for days above the maximum")
	}

	cfg.API.Days = 260
	cfg.API.Bases = []string{"ftp://broken"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for a non-http base")
	}

	cfg.API.Bases = nil
	cfg.API.Override = "ftp://broken"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for a non-http override")
	}
}
