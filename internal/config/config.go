package config

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	CORS      CORSConfig
	Mail      MailConfig
	Reference ReferenceConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port            string
	Host            string
	Addr            string // Combined host:port for convenience
	ShutdownTimeout time.Duration
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// MailConfig holds the SendGrid credential and the estimate email envelope.
// An empty SendGridAPIKey leaves mail unconfigured.
type MailConfig struct {
	SendGridAPIKey string
	SendGridHost   string
	From           string
	FromName       string
	CC             []string
	Subject        string
}

// ReferenceConfig holds the fernet keys and lifetime of estimate references.
type ReferenceConfig struct {
	Keys           []string
	TTL            time.Duration
	KeepKeys       int
	RotateSchedule string
}

// RateLimitConfig bounds how often one client may request estimate emails.
type RateLimitConfig struct {
	EmailPerMinute int
	EmailBurst     int
}

// LogConfig selects the log level and output format.
type LogConfig struct {
	Level  string
	Pretty bool
}

// env mirrors the supported environment variables. Keys are the lower-cased
// variable names, which is how viper stores them. A variable set to the empty
// string overrides its default, so MAIL_CC= disables the copy.
type env struct {
	ServerHost              string        `mapstructure:"server_host"`
	ServerPort              string        `mapstructure:"server_port"`
	ServerShutdownTimeout   time.Duration `mapstructure:"server_shutdown_timeout"`
	CORSAllowedOrigins      string        `mapstructure:"cors_allowed_origins"`
	SendGridAPIKey          string        `mapstructure:"sendgrid_api_key"`
	SendGridHost            string        `mapstructure:"sendgrid_host"`
	MailFrom                string        `mapstructure:"mail_from"`
	MailFromName            string        `mapstructure:"mail_from_name"`
	MailCC                  string        `mapstructure:"mail_cc"`
	MailSubject             string        `mapstructure:"mail_subject"`
	ReferenceKeys           string        `mapstructure:"reference_keys"`
	ReferenceTTL            time.Duration `mapstructure:"reference_ttl"`
	ReferenceKeepKeys       int           `mapstructure:"reference_keep_keys"`
	ReferenceRotateSchedule string        `mapstructure:"reference_rotate_schedule"`
	EmailRatePerMinute      int           `mapstructure:"email_rate_per_minute"`
	EmailRateBurst          int           `mapstructure:"email_rate_burst"`
	LogLevel                string        `mapstructure:"log_level"`
	LogPretty               bool          `mapstructure:"log_pretty"`
}

var defaults = map[string]any{
	"server_host":               "localhost",
	"server_port":               "5001",
	"server_shutdown_timeout":   "30s",
	"cors_allowed_origins":      "http://localhost:3000,http://localhost",
	"sendgrid_api_key":          "",
	"sendgrid_host":             "https://api.sendgrid.com",
	"mail_from":                 "info@exilex.com",
	"mail_from_name":            "Exilex Legal Professional Corporation",
	"mail_cc":                   "info@exilex.com",
	"mail_subject":              "Your Exilex Closing Costs Estimate",
	"reference_keys":            "",
	"reference_ttl":             "720h",
	"reference_keep_keys":       3,
	"reference_rotate_schedule": "@daily",
	"email_rate_per_minute":     5,
	"email_rate_burst":          3,
	"log_level":                 "info",
	"log_pretty":                false,
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()

	var e env
	if err := v.Unmarshal(&e); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if e.ReferenceTTL < 0 {
		return nil, fmt.Errorf("REFERENCE_TTL must not be negative, got %s", e.ReferenceTTL)
	}
	if e.ReferenceKeepKeys < 1 {
		return nil, fmt.Errorf("REFERENCE_KEEP_KEYS must be at least 1, got %d", e.ReferenceKeepKeys)
	}
	if e.EmailRatePerMinute < 0 || e.EmailRateBurst < 0 {
		return nil, fmt.Errorf("EMAIL_RATE_PER_MINUTE and EMAIL_RATE_BURST must not be negative")
	}

	config := &Config{
		Server: ServerConfig{
			Port:            e.ServerPort,
			Host:            e.ServerHost,
			ShutdownTimeout: e.ServerShutdownTimeout,
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(e.CORSAllowedOrigins),
		},
		Mail: MailConfig{
			SendGridAPIKey: strings.TrimSpace(e.SendGridAPIKey),
			SendGridHost:   e.SendGridHost,
			From:           e.MailFrom,
			FromName:       e.MailFromName,
			CC:             splitList(e.MailCC),
			Subject:        e.MailSubject,
		},
		Reference: ReferenceConfig{
			Keys:           splitList(e.ReferenceKeys),
			TTL:            e.ReferenceTTL,
			KeepKeys:       e.ReferenceKeepKeys,
			RotateSchedule: strings.TrimSpace(e.ReferenceRotateSchedule),
		},
		RateLimit: RateLimitConfig{
			EmailPerMinute: e.EmailRatePerMinute,
			EmailBurst:     e.EmailRateBurst,
		},
		Log: LogConfig{
			Level:  strings.ToLower(strings.TrimSpace(e.LogLevel)),
			Pretty: e.LogPretty,
		},
	}

	// Combine host and port
	config.Server.Addr = net.JoinHostPort(config.Server.Host, config.Server.Port)

	return config, nil
}

// MailConfigured reports whether a SendGrid API key is set.
func (c *Config) MailConfigured() bool {
	return c.Mail.SendGridAPIKey != ""
}

// splitList splits a comma-separated value, dropping blank entries.
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
