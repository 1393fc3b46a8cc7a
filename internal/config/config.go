package config

import (
	"fmt"

	"github.com/spf13/viper"
)

const (
	ApprovalModeAuto   = "auto"
	ApprovalModeManual = "manual"
)

type Config struct {
	Port        string `mapstructure:"PORT"`
	Env         string `mapstructure:"ENV"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	DBMaxConns  int32  `mapstructure:"DB_MAX_CONNS"`
	DBMinConns  int32  `mapstructure:"DB_MIN_CONNS"`

	SessionSecret   string `mapstructure:"SESSION_SECRET"`
	SessionTTLHours int    `mapstructure:"SESSION_TTL_HOURS"`
	ApprovalMode    string `mapstructure:"APPROVAL_MODE"`

	NarrativeBaseURL        string `mapstructure:"NARRATIVE_BASE_URL"`
	NarrativeAPIKey         string `mapstructure:"NARRATIVE_API_KEY"`
	NarrativeModel          string `mapstructure:"NARRATIVE_MODEL"`
	NarrativeTimeoutSeconds int    `mapstructure:"NARRATIVE_TIMEOUT_SECONDS"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MIN_CONNS", 2)
	v.SetDefault("SESSION_TTL_HOURS", 168) // 7 days
	v.SetDefault("APPROVAL_MODE", ApprovalModeManual)
	v.SetDefault("NARRATIVE_BASE_URL", "https://api.openai.com/v1")
	v.SetDefault("NARRATIVE_MODEL", "gpt-4o-mini")
	v.SetDefault("NARRATIVE_TIMEOUT_SECONDS", 30)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("SESSION_SECRET")
	v.BindEnv("SESSION_TTL_HOURS")
	v.BindEnv("APPROVAL_MODE")
	v.BindEnv("NARRATIVE_BASE_URL")
	v.BindEnv("NARRATIVE_API_KEY")
	v.BindEnv("NARRATIVE_MODEL")
	v.BindEnv("NARRATIVE_TIMEOUT_SECONDS")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate checks that the configuration is safe to run. The session
// signing secret is always required: without it every issued token would
// verify against an empty key. APPROVAL_MODE must be one of the two
// supported workflows so the registration behavior is never ambiguous at
// runtime.
func (c *Config) Validate() error {
	if c.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET is required")
	}
	if c.IsProduction() && len(c.SessionSecret) < 32 {
		return fmt.Errorf("SESSION_SECRET must be at least 32 characters in production, got %d", len(c.SessionSecret))
	}
	if c.ApprovalMode != ApprovalModeAuto && c.ApprovalMode != ApprovalModeManual {
		return fmt.Errorf("APPROVAL_MODE must be %q or %q, got %q", ApprovalModeAuto, ApprovalModeManual, c.ApprovalMode)
	}
	if c.IsProduction() && c.NarrativeAPIKey == "" {
		return fmt.Errorf("NARRATIVE_API_KEY is required in production")
	}
	if c.SessionTTLHours <= 0 {
		return fmt.Errorf("SESSION_TTL_HOURS must be positive, got %d", c.SessionTTLHours)
	}
	return nil
}
