package config

// Config represents the complete configuration structure
type Config struct {
	SuperFaktura SuperFakturaConfig `mapstructure:"superfaktura"`
	Safety       SafetyConfig       `mapstructure:"safety"`
	Logging      LoggingConfig      `mapstructure:"logging"`
}

// SuperFakturaConfig holds SuperFaktura API connection details
type SuperFakturaConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	Email     string `mapstructure:"email"`
	APIKey    string `mapstructure:"api_key"`
	CompanyID int    `mapstructure:"company_id"`
	// TimeoutSeconds bounds every single API request.
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// SafetyConfig contains safety-related settings
type SafetyConfig struct {
	// ConfirmDelete asks before destructive operations when attached to a
	// terminal.
	ConfirmDelete bool `mapstructure:"confirm_delete"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
