package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// chdirTemp moves the test into an empty directory so no stray .env or
// agenttools.yaml in the repo root leaks into assertions.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Host != "0.0.0.0" {
		t.Errorf("Host = %q; want %q", cfg.Host, "0.0.0.0")
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d; want 8080", cfg.Port)
	}
	if cfg.AuditDBPath != "agenttools.db" {
		t.Errorf("AuditDBPath = %q; want %q", cfg.AuditDBPath, "agenttools.db")
	}
	if cfg.CacheTTL != time.Hour {
		t.Errorf("CacheTTL = %v; want 1h", cfg.CacheTTL)
	}
	if cfg.BraveInterval != time.Second {
		t.Errorf("BraveInterval = %v; want 1s", cfg.BraveInterval)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdirTemp(t)
	t.Setenv("AGENTTOOLS_HOST", "127.0.0.1")
	t.Setenv("AGENTTOOLS_PORT", "9090")
	t.Setenv("AGENTTOOLS_CACHE_TTL", "30m")
	t.Setenv("AGENTTOOLS_BRAVE_INTERVAL", "250ms")
	t.Setenv("AGENTTOOLS_JWT_SECRET", "s3cret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Host != "127.0.0.1" {
		t.Errorf("Host = %q; want %q", cfg.Host, "127.0.0.1")
	}
	if cfg.Port != 9090 {
		t.Errorf("Port = %d; want 9090", cfg.Port)
	}
	if cfg.CacheTTL != 30*time.Minute {
		t.Errorf("CacheTTL = %v; want 30m", cfg.CacheTTL)
	}
	if cfg.BraveInterval != 250*time.Millisecond {
		t.Errorf("BraveInterval = %v; want 250ms", cfg.BraveInterval)
	}
	if cfg.JWTSecret != "s3cret" {
		t.Errorf("JWTSecret = %q; want %q", cfg.JWTSecret, "s3cret")
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := chdirTemp(t)

	yamlPath := filepath.Join(dir, "custom.yaml")
	content := "host: 10.0.0.1\nport: 7000\naudit_db_path: /tmp/audit.db\n"
	if err := os.WriteFile(yamlPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	t.Setenv("AGENTTOOLS_CONFIG", yamlPath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Host != "10.0.0.1" {
		t.Errorf("Host = %q; want %q", cfg.Host, "10.0.0.1")
	}
	if cfg.Port != 7000 {
		t.Errorf("Port = %d; want 7000", cfg.Port)
	}
	if cfg.AuditDBPath != "/tmp/audit.db" {
		t.Errorf("AuditDBPath = %q; want %q", cfg.AuditDBPath, "/tmp/audit.db")
	}
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	dir := chdirTemp(t)

	yamlPath := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(yamlPath, []byte("port: 7000\n"), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	t.Setenv("AGENTTOOLS_CONFIG", yamlPath)
	t.Setenv("AGENTTOOLS_PORT", "7001")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Port != 7001 {
		t.Errorf("Port = %d; want env override 7001", cfg.Port)
	}
}

func TestLoad_InvalidPort(t *testing.T) {
	chdirTemp(t)
	t.Setenv("AGENTTOOLS_PORT", "not-a-number")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	chdirTemp(t)
	t.Setenv("AGENTTOOLS_CACHE_TTL", "yesterday")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid duration")
	}
}
