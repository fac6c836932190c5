package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Load loads the configuration from file and environment. Environment
// variables use the SFCLI_ prefix with underscores for nesting, e.g.
// SFCLI_SUPERFAKTURA_API_KEY. A missing config file is fine as long as the
// credentials arrive through the environment.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	v.SetEnvPrefix("SFCLI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unmarshal only sees keys viper knows about, so keys without defaults
	// must be bound explicitly for env-only configuration to work.
	for _, key := range []string{
		"superfaktura.email",
		"superfaktura.api_key",
		"superfaktura.company_id",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env for %s: %w", key, err)
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".sfcli"))
		}

		// Check /etc
		v.AddConfigPath("/etc/sfcli/")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
		if configPath != "" {
			return nil, fmt.Errorf("config file not found: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// SuperFaktura defaults
	v.SetDefault("superfaktura.base_url", "https://moja.superfaktura.sk")
	v.SetDefault("superfaktura.timeout_seconds", 15)

	// Safety defaults
	v.SetDefault("safety.confirm_delete", true)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.SuperFaktura.Email == "" {
		return fmt.Errorf("superfaktura.email is required")
	}

	if cfg.SuperFaktura.APIKey == "" || cfg.SuperFaktura.APIKey == "your-api-key-here" {
		return fmt.Errorf("superfaktura.api_key must be set to a valid API key")
	}

	if cfg.SuperFaktura.TimeoutSeconds < 0 {
		return fmt.Errorf("superfaktura.timeout_seconds must not be negative")
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
