package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for Hawkins Lab Core.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Store      StoreConfig      `yaml:"store"`
	Security   SecurityConfig   `yaml:"security"`
	UpsideDown UpsideDownConfig `yaml:"upside_down"`
	WebSocket  WebSocketConfig  `yaml:"websocket"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host     string              `yaml:"host"`
	Port     int                 `yaml:"port"`
	Timeouts ServerTimeoutConfig `yaml:"timeouts"`
	CORS     CORSConfig          `yaml:"cors"`
}

// ServerTimeoutConfig contains HTTP timeout settings in seconds.
type ServerTimeoutConfig struct {
	Read  int `yaml:"read"`
	Write int `yaml:"write"`
	Idle  int `yaml:"idle"`
}

// CORSConfig contains Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
	AllowedMethods []string `yaml:"allowed_methods"`
	AllowedHeaders []string `yaml:"allowed_headers"`
}

// StoreConfig selects and configures the world-state store backend.
type StoreConfig struct {
	// Backend is one of "file", "sqlite", or "memory".
	Backend string `yaml:"backend"`

	// Path is the JSON document path for the file backend.
	Path string `yaml:"path"`

	// Database configures the sqlite backend.
	Database DatabaseConfig `yaml:"database"`
}

// DatabaseConfig contains SQLite database settings.
type DatabaseConfig struct {
	Path        string `yaml:"path"`
	WALMode     bool   `yaml:"wal_mode"`
	BusyTimeout int    `yaml:"busy_timeout"`
}

// SecurityConfig contains auth settings: the token secret, the fixed
// credential pair, and the static gate values.
type SecurityConfig struct {
	JWT         JWTConfig        `yaml:"jwt"`
	Credentials CredentialConfig `yaml:"credentials"`

	// APIKey is accepted in the X-API-Key or X-Hawkins-API-Key header.
	APIKey string `yaml:"api_key"`

	// LabID is the required X-Hawkins-Lab-ID header value for evidence upload.
	LabID string `yaml:"lab_id"`
}

// JWTConfig contains JWT token settings.
type JWTConfig struct {
	Secret        string `yaml:"secret"`
	TokenTTLHours int    `yaml:"token_ttl_hours"`
}

// CredentialConfig is the single configured login pair.
type CredentialConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// UpsideDownConfig contains the flaky-endpoint settings.
type UpsideDownConfig struct {
	// GlitchFailureRate is the probability (percent, 0-100) that
	// GET /upside-down/glitch answers 503.
	GlitchFailureRate float64 `yaml:"glitch_failure_rate"`
}

// WebSocketConfig contains settings for the request-log stream.
type WebSocketConfig struct {
	MaxMessageSize int `yaml:"max_message_size"`
	PingInterval   int `yaml:"ping_interval"`
	PongTimeout    int `yaml:"pong_timeout"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// Returns an error if the file cannot be read or parsed, or if validation fails.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with the playground defaults.
// Every default matches the documented out-of-the-box behaviour:
// admin/stranger123 credentials, a 24-hour token, a 30% glitch rate.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 3000,
			Timeouts: ServerTimeoutConfig{
				Read:  30,
				Write: 30,
				Idle:  60,
			},
		},
		Store: StoreConfig{
			Backend: "file",
			Path:    "./data/db.json",
			Database: DatabaseConfig{
				Path:        "./data/hawkins.db",
				WALMode:     true,
				BusyTimeout: 5,
			},
		},
		Security: SecurityConfig{
			JWT: JWTConfig{
				Secret:        "default-secret-key-change-in-production",
				TokenTTLHours: 24,
			},
			Credentials: CredentialConfig{
				Username: "admin",
				Password: "stranger123",
			},
			APIKey: "hawkins-civilian-2024",
			LabID:  "LAB-001",
		},
		UpsideDown: UpsideDownConfig{
			GlitchFailureRate: 30,
		},
		WebSocket: WebSocketConfig{
			MaxMessageSize: 8192,
			PingInterval:   30,
			PongTimeout:    10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables follow the pattern: HAWKINS_SECTION_KEY
func applyEnvOverrides(cfg *Config) {
	// Server
	if v := os.Getenv("HAWKINS_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("HAWKINS_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}

	// Store
	if v := os.Getenv("HAWKINS_STORE_BACKEND"); v != "" {
		cfg.Store.Backend = v
	}
	if v := os.Getenv("HAWKINS_STORE_PATH"); v != "" {
		cfg.Store.Path = v
	}
	if v := os.Getenv("HAWKINS_DATABASE_PATH"); v != "" {
		cfg.Store.Database.Path = v
	}

	// Security (always override these in real deployments)
	if v := os.Getenv("HAWKINS_JWT_SECRET"); v != "" {
		cfg.Security.JWT.Secret = v
	}
	if v := os.Getenv("HAWKINS_USERNAME"); v != "" {
		cfg.Security.Credentials.Username = v
	}
	if v := os.Getenv("HAWKINS_PASSWORD"); v != "" {
		cfg.Security.Credentials.Password = v
	}
	if v := os.Getenv("HAWKINS_API_KEY"); v != "" {
		cfg.Security.APIKey = v
	}
	if v := os.Getenv("HAWKINS_LAB_ID"); v != "" {
		cfg.Security.LabID = v
	}

	// Upside Down
	if v := os.Getenv("HAWKINS_GLITCH_FAILURE_RATE"); v != "" {
		if rate, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.UpsideDown.GlitchFailureRate = rate
		}
	}
}

// minJWTSecretLength is the shortest accepted token secret. Shorter
// secrets make forged agent tokens practical to brute-force.
const minJWTSecretLength = 16

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, "server.port must be between 1 and 65535")
	}

	switch c.Store.Backend {
	case "file", "sqlite", "memory":
	default:
		errs = append(errs, "store.backend must be file, sqlite, or memory")
	}
	if c.Store.Backend == "file" && c.Store.Path == "" {
		errs = append(errs, "store.path is required for the file backend")
	}
	if c.Store.Backend == "sqlite" && c.Store.Database.Path == "" {
		errs = append(errs, "store.database.path is required for the sqlite backend")
	}

	if len(c.Security.JWT.Secret) < minJWTSecretLength {
		errs = append(errs, "security.jwt.secret must be at least 16 characters")
	}
	if c.Security.JWT.TokenTTLHours <= 0 {
		errs = append(errs, "security.jwt.token_ttl_hours must be positive")
	}
	if c.Security.Credentials.Username == "" || c.Security.Credentials.Password == "" {
		errs = append(errs, "security.credentials.username and password are required")
	}

	if c.UpsideDown.GlitchFailureRate < 0 || c.UpsideDown.GlitchFailureRate > 100 {
		errs = append(errs, "upside_down.glitch_failure_rate must be between 0 and 100")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// TokenTTL returns the configured token lifetime as a Duration.
func (c *SecurityConfig) TokenTTL() time.Duration {
	return time.Duration(c.JWT.TokenTTLHours) * time.Hour
}

// ReadTimeout returns the server read timeout as a Duration.
func (c *ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(c.Timeouts.Read) * time.Second
}

// WriteTimeout returns the server write timeout as a Duration.
func (c *ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(c.Timeouts.Write) * time.Second
}

// IdleTimeout returns the server idle timeout as a Duration.
func (c *ServerConfig) IdleTimeout() time.Duration {
	return time.Duration(c.Timeouts.Idle) * time.Second
}
