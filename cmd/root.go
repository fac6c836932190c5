package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mhric/sfcli/config"
	"github.com/mhric/sfcli/superfaktura"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	client  *superfaktura.Client

	// Build information, injected by main
	version   = "dev"
	buildTime = "unknown"

	// Global flags
	outputJSON bool
	email      string
	apiKey     string
	companyID  int
	baseURL    string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "sfcli",
	Short: "A command-line client for the SuperFaktura invoicing service",
	Long: `sfcli manages contacts, invoices and payments in your SuperFaktura
account from the command line. Credentials come from a config file,
SFCLI_* environment variables, or flags.`,
	PersistentPreRunE: initializeApp,
	SilenceUsage:      true,
}

// SetVersion stores build information for the version and update commands.
func SetVersion(v, bt string) {
	version = v
	buildTime = bt
	rootCmd.Version = fmt.Sprintf("%s (built %s)", v, bt)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, renderError(err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "print results as JSON")
	rootCmd.PersistentFlags().StringVar(&email, "email", "", "SuperFaktura account email (overrides config)")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "SuperFaktura API key (overrides config)")
	rootCmd.PersistentFlags().IntVar(&companyID, "company-id", 0, "company ID for multi-company accounts (overrides config)")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "API base URL (overrides config)")
}

// initializeApp initializes the configuration and the API client
func initializeApp(cmd *cobra.Command, args []string) error {
	// Credential flags count as configuration, so apply them before
	// validation would reject an otherwise empty config.
	if email != "" {
		os.Setenv("SFCLI_SUPERFAKTURA_EMAIL", email)
	}
	if apiKey != "" {
		os.Setenv("SFCLI_SUPERFAKTURA_API_KEY", apiKey)
	}

	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if companyID != 0 {
		cfg.SuperFaktura.CompanyID = companyID
	}
	if baseURL != "" {
		cfg.SuperFaktura.BaseURL = baseURL
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	// Create API client
	client, err = superfaktura.NewClient(superfaktura.Config{
		BaseURL:   cfg.SuperFaktura.BaseURL,
		Email:     cfg.SuperFaktura.Email,
		APIKey:    cfg.SuperFaktura.APIKey,
		CompanyID: cfg.SuperFaktura.CompanyID,
		Timeout:   time.Duration(cfg.SuperFaktura.TimeoutSeconds) * time.Second,
	}, logger, superfaktura.WithUserAgent("sfcli/"+version))
	if err != nil {
		return fmt.Errorf("failed to create SuperFaktura client: %w", err)
	}

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format; color only when the config allows it and stderr is a
	// terminal.
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}
