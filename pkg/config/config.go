package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "KAFFECITO"

// Environment variable names, spelled out for tests and documentation.
const (
	EnvAPIBaseURL  = "KAFFECITO_API_BASE_URL"
	EnvHTTPTimeout = "KAFFECITO_HTTP_TIMEOUT"
	EnvLogLevel    = "KAFFECITO_LOG_LEVEL"
	EnvStatePath   = "KAFFECITO_STATE_PATH"
	EnvTable       = "KAFFECITO_TABLE"
)

type Config struct {
	API     APIConfig
	App     AppConfig
	Session SessionConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.API.validate(); err != nil {
		return nil, err
	}
	if err := cfg.Session.ensureStatePath(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type APIConfig struct {
	// BaseURL is the single injected endpoint root, including the /api
	// prefix, e.g. http://localhost:3000/api.
	BaseURL string `envconfig:"KAFFECITO_API_BASE_URL" required:"true"`

	// Timeout of zero leaves the transport default in place; no explicit
	// timeout is configured unless the operator asks for one.
	Timeout time.Duration `envconfig:"KAFFECITO_HTTP_TIMEOUT" default:"0"`
}

func (a *APIConfig) validate() error {
	parsed, err := url.Parse(a.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("invalid API base URL %q", a.BaseURL)
	}
	a.BaseURL = strings.TrimRight(a.BaseURL, "/")
	return nil
}

type AppConfig struct {
	LogLevel string `envconfig:"KAFFECITO_LOG_LEVEL" default:"info"`

	// Table is the default table number used when a command does not
	// provide one explicitly. Zero means "ask".
	Table int `envconfig:"KAFFECITO_TABLE" default:"0"`
}

type SessionConfig struct {
	// StatePath locates the durable session database. Empty resolves to
	// ~/.kaffecito/state.db.
	StatePath string `envconfig:"KAFFECITO_STATE_PATH"`
}

func (s *SessionConfig) ensureStatePath() error {
	if s.StatePath != "" {
		return nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("resolving home directory: %w", err)
	}
	s.StatePath = filepath.Join(home, ".kaffecito", "state.db")
	return nil
}
