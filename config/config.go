package config

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// AppConfig holds the application configuration
type AppConfig struct {
	Port             string        `mapstructure:"PORT"`
	Env              string        `mapstructure:"ENV"`
	LogLevel         string        `mapstructure:"LOG_LEVEL"`
	RedisAddress     string        `mapstructure:"REDIS_URL"`
	RedisPoolSize    int           `mapstructure:"REDIS_POOL_SIZE"`
	RedisMinIdle     int           `mapstructure:"REDIS_MIN_IDLE_CONNS"`
	RedisDialTimeout time.Duration `mapstructure:"REDIS_DIAL_TIMEOUT"`
	RedisReadTimeout time.Duration `mapstructure:"REDIS_READ_TIMEOUT"`
	RedisMaxRetries  int           `mapstructure:"REDIS_MAX_RETRIES"`
	CacheTTL         time.Duration `mapstructure:"CACHE_TTL"`
	SessionKey       string        `mapstructure:"SESSION_KEY"`
	SessionTTL       time.Duration `mapstructure:"SESSION_TTL"`
	CORSOrigins      []string      `mapstructure:"CORS_ORIGINS"`
	RateLimitRPS     float64       `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst   int           `mapstructure:"RATE_LIMIT_BURST"`
	SimulatedDelay   time.Duration `mapstructure:"SIMULATED_DELAY"`
	PalmScanDelay    time.Duration `mapstructure:"PALM_SCAN_DELAY"`
	PaymentDelay     time.Duration `mapstructure:"PAYMENT_DELAY"`
	InvoiceDueDays   int           `mapstructure:"INVOICE_DUE_DAYS"`
	ConsultationFee  float64       `mapstructure:"CONSULTATION_FEE"`
	SeedMockData     bool          `mapstructure:"SEED_MOCK_DATA"`
	SMTPHost         string        `mapstructure:"SMTP_HOST"`
	SMTPPort         int           `mapstructure:"SMTP_PORT"`
	SMTPUser         string        `mapstructure:"SMTP_USER"`
	SMTPPass         string        `mapstructure:"SMTP_PASS"`
	SMTPFrom         string        `mapstructure:"SMTP_FROM"`
}

var keys = []string{
	"PORT", "ENV", "LOG_LEVEL",
	"REDIS_URL", "REDIS_POOL_SIZE", "REDIS_MIN_IDLE_CONNS", "REDIS_DIAL_TIMEOUT", "REDIS_READ_TIMEOUT", "REDIS_MAX_RETRIES",
	"CACHE_TTL", "SESSION_KEY", "SESSION_TTL", "CORS_ORIGINS", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST",
	"SIMULATED_DELAY", "PALM_SCAN_DELAY", "PAYMENT_DELAY", "INVOICE_DUE_DAYS", "CONSULTATION_FEE", "SEED_MOCK_DATA",
	"SMTP_HOST", "SMTP_PORT", "SMTP_USER", "SMTP_PASS", "SMTP_FROM",
}

// Load reads the configuration from the environment and an optional .env file.
func Load() (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("PORT", "8930")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("REDIS_POOL_SIZE", 10)
	v.SetDefault("REDIS_MIN_IDLE_CONNS", 5)
	v.SetDefault("REDIS_DIAL_TIMEOUT", "30s")
	v.SetDefault("REDIS_READ_TIMEOUT", "10s")
	v.SetDefault("REDIS_MAX_RETRIES", 3)
	v.SetDefault("CACHE_TTL", "30s")
	v.SetDefault("SESSION_TTL", "12h")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT_RPS", 15)
	v.SetDefault("RATE_LIMIT_BURST", 30)
	v.SetDefault("SIMULATED_DELAY", "1s")
	v.SetDefault("PALM_SCAN_DELAY", "2s")
	v.SetDefault("PAYMENT_DELAY", "1s")
	v.SetDefault("INVOICE_DUE_DAYS", 14)
	v.SetDefault("CONSULTATION_FEE", 50)
	v.SetDefault("SEED_MOCK_DATA", true)
	v.SetDefault("SMTP_PORT", 587)

	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, errors.Wrapf(err, "failed to bind %s", key)
		}
	}

	// The .env file is optional.
	_ = v.ReadInConfig()

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal configuration")
	}

	if len(cfg.CORSOrigins) == 1 && strings.Contains(cfg.CORSOrigins[0], ",") {
		cfg.CORSOrigins = strings.Split(cfg.CORSOrigins[0], ",")
	}
	for i, origin := range cfg.CORSOrigins {
		cfg.CORSOrigins[i] = strings.TrimSpace(origin)
	}

	if err := cfg.resolveSessionKey(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveSessionKey checks the PASETO key length. Development gets a random
// key when none is configured, so sessions die with the process.
func (c *AppConfig) resolveSessionKey() error {
	if c.SessionKey == "" && !c.IsProduction() {
		key := make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return errors.Wrap(err, "failed to generate session key")
		}
		c.SessionKey = string(key)
		return nil
	}
	if len(c.SessionKey) != 32 {
		return errors.Errorf("SESSION_KEY must be 32 bytes long, got %d", len(c.SessionKey))
	}
	return nil
}

func (c *AppConfig) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}

// RedisEnabled reports whether a Redis URL was configured.
func (c *AppConfig) RedisEnabled() bool {
	return c.RedisAddress != ""
}

// SMTPEnabled reports whether receipts can be mailed.
func (c *AppConfig) SMTPEnabled() bool {
	return c.SMTPHost != ""
}

// GetSessionKey returns the symmetric key used for session tokens.
func (c *AppConfig) GetSessionKey() []byte {
	return []byte(c.SessionKey)
}
