package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Mongo   MongoConfig
	Auth    AuthConfig
	AI      AIConfig
	Sweeper SweeperConfig
	Logging LoggingConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port            string
	Environment     string
	ShutdownTimeout time.Duration
	Timezone        string
}

// MongoConfig holds MongoDB connection configuration
type MongoConfig struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

// AuthConfig holds token and registration configuration
type AuthConfig struct {
	JWTSecret            string
	AccessTokenExpiry    time.Duration
	RefreshTokenExpiry   time.Duration
	ProviderRegisterCode string
}

// AIConfig holds the chat completion service configuration
type AIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// SweeperConfig holds the dose sweeper worker configuration
type SweeperConfig struct {
	Interval time.Duration
	Cutoff   time.Duration
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string // json or console
}

// Load reads configuration from environment variables with defaults
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.AutomaticEnv()
	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.shutdowntimeout", 30*time.Second)
	v.SetDefault("server.timezone", "Local")

	v.SetDefault("mongo.database", "mycardiacrehab")
	v.SetDefault("mongo.connecttimeout", 10*time.Second)

	v.SetDefault("auth.accesstokenexpiry", 15*time.Minute)
	v.SetDefault("auth.refreshtokenexpiry", 7*24*time.Hour)

	v.SetDefault("ai.model", "gpt-4o-mini")

	v.SetDefault("sweeper.interval", 15*time.Minute)
	v.SetDefault("sweeper.cutoff", 24*time.Hour)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// bindEnvVars binds environment variables to config keys
func bindEnvVars(v *viper.Viper) {
	v.BindEnv("server.port", "PORT")
	v.BindEnv("server.environment", "ENV", "ENVIRONMENT")
	v.BindEnv("server.timezone", "APP_TIMEZONE")

	v.BindEnv("mongo.uri", "MONGO_URI")
	v.BindEnv("mongo.database", "MONGO_DATABASE")

	v.BindEnv("auth.jwtsecret", "JWT_SECRET")
	v.BindEnv("auth.providerregistercode", "PROVIDER_REGISTER_CODE")

	v.BindEnv("ai.apikey", "OPENAI_API_KEY")
	v.BindEnv("ai.baseurl", "OPENAI_BASE_URL")
	v.BindEnv("ai.model", "OPENAI_MODEL")

	v.BindEnv("logging.level", "LOG_LEVEL")
	v.BindEnv("logging.format", "LOG_FORMAT")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Mongo.URI == "" {
		return fmt.Errorf("mongo.uri is required")
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwtsecret is required")
	}

	if c.Auth.ProviderRegisterCode == "" {
		return fmt.Errorf("auth.providerregistercode is required")
	}

	if c.AI.APIKey == "" {
		return fmt.Errorf("ai.apikey is required")
	}

	if _, err := time.LoadLocation(c.Server.Timezone); err != nil {
		return fmt.Errorf("invalid server.timezone %q: %w", c.Server.Timezone, err)
	}

	return nil
}

// Location resolves the configured timezone. Validate guarantees it parses.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Server.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
