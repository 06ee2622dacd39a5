package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// AI responder modes.
const (
	AIModeOpenAI  = "openai"
	AIModeBackend = "backend"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Backend BackendConfig
	AI      AIConfig
	Logging LoggingConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port            string
	Environment     string
	ShutdownTimeout time.Duration
}

// BackendConfig holds health backend connection configuration
type BackendConfig struct {
	BaseURL         string
	Timeout         time.Duration
	WebSocketURL    string
	RefreshInterval time.Duration
}

// AIConfig holds fallback responder configuration. Mode selects the
// implementation: "openai" talks to an OpenAI-compatible endpoint
// directly, "backend" delegates to the health backend's chat route.
type AIConfig struct {
	Mode    string
	BaseURL string
	APIKey  string
	Model   string
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string // json or console
}

// Load reads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	// Read from environment variables
	v.AutomaticEnv()

	// Bind specific environment variables
	bindEnvVars(v)

	// Unmarshal into config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.shutdowntimeout", 30*time.Second)

	// Backend defaults
	v.SetDefault("backend.timeout", 10*time.Second)
	v.SetDefault("backend.refreshinterval", 30*time.Second)

	// AI defaults
	v.SetDefault("ai.mode", AIModeBackend)
	v.SetDefault("ai.model", "gpt-4o-mini")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// bindEnvVars binds environment variables to config keys
func bindEnvVars(v *viper.Viper) {
	// Server
	v.BindEnv("server.port", "PORT")
	v.BindEnv("server.environment", "ENV", "ENVIRONMENT")

	// Backend
	v.BindEnv("backend.baseurl", "BACKEND_BASE_URL")
	v.BindEnv("backend.timeout", "BACKEND_TIMEOUT")
	v.BindEnv("backend.websocketurl", "BACKEND_WEBSOCKET_URL")
	v.BindEnv("backend.refreshinterval", "BACKEND_REFRESH_INTERVAL")

	// AI
	v.BindEnv("ai.mode", "AI_MODE")
	v.BindEnv("ai.baseurl", "AI_BASE_URL", "OPENAI_BASE_URL")
	v.BindEnv("ai.apikey", "AI_API_KEY", "OPENAI_API_KEY")
	v.BindEnv("ai.model", "AI_MODEL")

	// Logging
	v.BindEnv("logging.level", "LOG_LEVEL")
	v.BindEnv("logging.format", "LOG_FORMAT")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend.baseurl is required")
	}

	if c.Backend.WebSocketURL == "" {
		return fmt.Errorf("backend.websocketurl is required")
	}

	switch c.AI.Mode {
	case AIModeOpenAI:
		if c.AI.APIKey == "" {
			return fmt.Errorf("ai.apikey is required in openai mode")
		}
		if c.AI.Model == "" {
			return fmt.Errorf("ai.model is required in openai mode")
		}
	case AIModeBackend:
		// Delegates to the backend; nothing extra to check.
	default:
		return fmt.Errorf("ai.mode must be %q or %q", AIModeOpenAI, AIModeBackend)
	}

	return nil
}
