// Package config provides application-wide configuration. Values come
// from, in increasing precedence: built-in defaults, an optional YAML
// file, and environment variables (a .env file is honored when present).
// All fields have safe defaults so the binary runs locally without any setup.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds runtime configuration for the tool server.
type Config struct {
	// HTTP API
	Host string `yaml:"host"` // AGENTTOOLS_HOST — default: "0.0.0.0"
	Port int    `yaml:"port"` // AGENTTOOLS_PORT — default: 8080

	// Audit database. Empty disables the invocation log.
	AuditDBPath string `yaml:"audit_db_path"` // AGENTTOOLS_AUDIT_DB — default: "agenttools.db"

	// HTTP response cache used by forecast tools.
	CacheDir string        `yaml:"cache_dir"` // AGENTTOOLS_CACHE_DIR — default: ".cache"
	CacheTTL time.Duration `yaml:"cache_ttl"` // AGENTTOOLS_CACHE_TTL — default: 1h

	// Minimum spacing between calls to the Brave Search API.
	BraveInterval time.Duration `yaml:"brave_interval"` // AGENTTOOLS_BRAVE_INTERVAL — default: 1s

	// JWT secret for the HTTP API. Empty leaves the API unauthenticated.
	JWTSecret string `yaml:"jwt_secret"` // AGENTTOOLS_JWT_SECRET

	// Bcrypt hash of the API key accepted by the token endpoint.
	APIKeyHash string `yaml:"api_key_hash"` // AGENTTOOLS_API_KEY_HASH
}

const (
	envKeyHost          = "AGENTTOOLS_HOST"
	envKeyPort          = "AGENTTOOLS_PORT"
	envKeyAuditDB       = "AGENTTOOLS_AUDIT_DB"
	envKeyCacheDir      = "AGENTTOOLS_CACHE_DIR"
	envKeyCacheTTL      = "AGENTTOOLS_CACHE_TTL"
	envKeyBraveInterval = "AGENTTOOLS_BRAVE_INTERVAL"
	envKeyJWTSecret     = "AGENTTOOLS_JWT_SECRET"
	envKeyAPIKeyHash    = "AGENTTOOLS_API_KEY_HASH"
	envKeyConfigFile    = "AGENTTOOLS_CONFIG"
)

// Load reads configuration, applying defaults for missing values.
// A .env file in the working directory is loaded first when present;
// the optional YAML file named by AGENTTOOLS_CONFIG (or ./agenttools.yaml)
// sits between defaults and environment variables.
func Load() (Config, error) {
	_ = godotenv.Load() // absent .env is not an error

	cfg := Config{
		Host:          "0.0.0.0",
		Port:          8080,
		AuditDBPath:   "agenttools.db",
		CacheDir:      ".cache",
		CacheTTL:      time.Hour,
		BraveInterval: time.Second,
	}

	if err := applyFile(&cfg); err != nil {
		return Config{}, err
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyFile(cfg *Config) error {
	path := envOr(envKeyConfigFile, "agenttools.yaml")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	cfg.Host = envOr(envKeyHost, cfg.Host)
	cfg.AuditDBPath = envOr(envKeyAuditDB, cfg.AuditDBPath)
	cfg.CacheDir = envOr(envKeyCacheDir, cfg.CacheDir)
	cfg.JWTSecret = envOr(envKeyJWTSecret, cfg.JWTSecret)
	cfg.APIKeyHash = envOr(envKeyAPIKeyHash, cfg.APIKeyHash)

	if v := os.Getenv(envKeyPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", envKeyPort, err)
		}
		cfg.Port = port
	}
	if v := os.Getenv(envKeyCacheTTL); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", envKeyCacheTTL, err)
		}
		cfg.CacheTTL = ttl
	}
	if v := os.Getenv(envKeyBraveInterval); v != "" {
		interval, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", envKeyBraveInterval, err)
		}
		cfg.BraveInterval = interval
	}
	return nil
}

// envOr returns the value of the environment variable key, or fallback
// if not set.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
