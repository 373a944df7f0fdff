package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/terrazza/bizplanner/internal/engine"
)

const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"

	maxProjectionMonths = 120
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Planner   PlannerConfig
	MongoDB   MongoDBConfig
	Sheets    SheetsConfig
	AI        AIConfig
	Reporting ReportingConfig
	WhatsApp  WhatsAppConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port      string
	LogLevel  string
	LogFormat string
}

// PlannerConfig holds projection defaults and wage assumptions.
type PlannerConfig struct {
	ProjectionMonths   int
	WeekdayMonthlyRate float64
	WeekendMonthlyRate float64
	// HourlyWage overrides both monthly rates when positive.
	HourlyWage   float64
	WeekdayHours float64
	WeekendHours float64
}

// LaborRates resolves the wage assumptions used by the calculator.
func (c PlannerConfig) LaborRates() engine.LaborRates {
	if c.HourlyWage > 0 {
		return engine.RatesFromWage(c.HourlyWage, c.WeekdayHours, c.WeekendHours)
	}
	return engine.LaborRates{
		WeekdayMonthly: c.WeekdayMonthlyRate,
		WeekendMonthly: c.WeekendMonthlyRate,
	}
}

// MongoDBConfig holds settings for MongoDB. An empty URI selects the in-memory store.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// SheetsConfig contains configuration required to export to Google Sheets.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// Enabled reports whether spreadsheet export is configured.
func (c SheetsConfig) Enabled() bool {
	return c.SpreadsheetID != ""
}

// AIConfig holds settings for the narrative report providers.
type AIConfig struct {
	Provider       string
	GeminiKey      string
	GeminiModel    string
	AnthropicKey   string
	AnthropicModel string
}

// ReportingConfig holds scheduler-related settings.
type ReportingConfig struct {
	CronSchedule string
	Timezone     string
}

// WhatsAppConfig contains credentials for pushing digests through the Meta WhatsApp Cloud API.
type WhatsAppConfig struct {
	AccessToken     string
	PhoneNumberID   string
	BaseURL         string
	APIVersion      string
	DigestRecipient string
	// VerifyToken answers Meta's webhook subscription challenge. Empty disables the inbound webhook.
	VerifyToken string
}

// Enabled reports whether digests should be pushed over WhatsApp.
func (c WhatsAppConfig) Enabled() bool {
	return c.AccessToken != ""
}

// WebhookEnabled reports whether operator commands are accepted over the inbound webhook.
func (c WhatsAppConfig) WebhookEnabled() bool {
	return c.Enabled() && c.VerifyToken != ""
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env files are fine when the environment is set directly.
		_ = godotenv.Load()
	}

	var p numberParser
	cfg := &Config{
		Server: ServerConfig{
			Port:      getenvWithDefault("APP_PORT", "8080"),
			LogLevel:  getenvWithDefault("LOG_LEVEL", "info"),
			LogFormat: getenvWithDefault("LOG_FORMAT", "json"),
		},
		Planner: PlannerConfig{
			ProjectionMonths:   p.intValue("PROJECTION_MONTHS", 10),
			WeekdayMonthlyRate: p.floatValue("LABOR_WEEKDAY_MONTHLY_RATE", 2156880),
			WeekendMonthlyRate: p.floatValue("LABOR_WEEKEND_MONTHLY_RATE", 861200),
			HourlyWage:         p.floatValue("LABOR_HOURLY_WAGE", 0),
			WeekdayHours:       p.floatValue("LABOR_WEEKDAY_HOURS", 209),
			WeekendHours:       p.floatValue("LABOR_WEEKEND_HOURS", 83.45),
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "bizplanner"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DATABASE_ID"),
		},
		AI: AIConfig{
			Provider:       strings.ToLower(getenvWithDefault("AI_PROVIDER", ProviderGemini)),
			GeminiKey:      os.Getenv("GEMINI_API_KEY"),
			GeminiModel:    getenvWithDefault("GEMINI_MODEL", "gemini-2.0-flash"),
			AnthropicKey:   os.Getenv("ANTHROPIC_API_KEY"),
			AnthropicModel: os.Getenv("ANTHROPIC_MODEL"),
		},
		Reporting: ReportingConfig{
			CronSchedule: lookupWithDefault("REPORT_CRON_SCHEDULE", "0 21 * * *"),
			Timezone:     getenvWithDefault("TIMEZONE", "Asia/Seoul"),
		},
		WhatsApp: WhatsAppConfig{
			AccessToken:     os.Getenv("WHATSAPP_TOKEN"),
			PhoneNumberID:   os.Getenv("WHATSAPP_PHONE_NUMBER_ID"),
			BaseURL:         getenvWithDefault("WHATSAPP_BASE_URL", "https://graph.facebook.com"),
			APIVersion:      getenvWithDefault("WHATSAPP_API_VERSION", "v20.0"),
			DigestRecipient: os.Getenv("WHATSAPP_DIGEST_RECIPIENT"),
			VerifyToken:     os.Getenv("WHATSAPP_VERIFY_TOKEN"),
		},
	}
	if p.err != nil {
		return nil, p.err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated and consistent.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch c.Server.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("unsupported LOG_FORMAT %q", c.Server.LogFormat)
	}

	if c.Planner.ProjectionMonths < 0 || c.Planner.ProjectionMonths > maxProjectionMonths {
		return fmt.Errorf("PROJECTION_MONTHS must be between 0 and %d", maxProjectionMonths)
	}

	if c.Planner.HourlyWage < 0 {
		return errors.New("LABOR_HOURLY_WAGE must not be negative")
	}

	if c.MongoDB.URI != "" && c.MongoDB.DBName == "" {
		return errors.New("MONGODB_DB_NAME must be provided with MONGODB_URI")
	}

	if c.Sheets.SpreadsheetID != "" && c.Sheets.CredentialsPath == "" {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH must be provided with GOOGLE_SHEET_DATABASE_ID")
	}

	switch c.AI.Provider {
	case ProviderGemini, ProviderAnthropic:
	default:
		return fmt.Errorf("unsupported AI_PROVIDER %q", c.AI.Provider)
	}

	if c.WhatsApp.Enabled() {
		switch {
		case c.WhatsApp.PhoneNumberID == "":
			return errors.New("WHATSAPP_PHONE_NUMBER_ID must be provided with WHATSAPP_TOKEN")
		case c.WhatsApp.DigestRecipient == "":
			return errors.New("WHATSAPP_DIGEST_RECIPIENT must be provided with WHATSAPP_TOKEN")
		case c.WhatsApp.BaseURL == "":
			return errors.New("WHATSAPP_BASE_URL must not be empty")
		case c.WhatsApp.APIVersion == "":
			return errors.New("WHATSAPP_API_VERSION must not be empty")
		}
	}

	if c.Reporting.CronSchedule != "" && c.Reporting.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}

	return nil
}

// NarratorKey returns the API key of the selected AI provider.
func (c AIConfig) NarratorKey() string {
	if c.Provider == ProviderAnthropic {
		return c.AnthropicKey
	}
	return c.GeminiKey
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// lookupWithDefault differs from getenvWithDefault in that an explicitly empty
// variable is returned as empty.
func lookupWithDefault(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(value)
	}
	return fallback
}

// numberParser keeps the first parse failure so Load can report it once.
type numberParser struct {
	err error
}

func (p *numberParser) intValue(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" || p.err != nil {
		return fallback
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		p.err = fmt.Errorf("%s must be an integer: %w", key, err)
		return fallback
	}
	return v
}

func (p *numberParser) floatValue(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" || p.err != nil {
		return fallback
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		p.err = fmt.Errorf("%s must be a number: %w", key, err)
		return fallback
	}
	return v
}
