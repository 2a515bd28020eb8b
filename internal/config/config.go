package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v6"
)

const (
	STORE_DRIVER_POSTGRES = "postgres"
	STORE_DRIVER_SQLITE   = "sqlite"
)

type Config struct {
	Port           uint16   `env:"PORT" envDefault:"8000"`
	Debug          bool     `env:"DEBUG" envDefault:"false"`
	TZ             string   `env:"TZ" envDefault:"Local"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	SentryDsn      *url.URL `env:"SENTRY_DSN"`

	// AuthTokenHash is the bcrypt hash of the access token. Requests are not
	// authenticated when it is empty.
	AuthTokenHash    string `env:"AUTH_TOKEN_HASH"`
	AuthSecret       string `env:"AUTH_SECRET"`
	BcryptHasherCost int    `env:"BCRYPT_HASHER_COST" envDefault:"12"`

	StoreDriver   string `env:"STORE_DRIVER" envDefault:"postgres"`
	PostgresqlURL string `env:"POSTGRESQL_URL"`
	SqlitePath    string `env:"SQLITE_PATH" envDefault:"mealremind.db"`
	RedisURL      string `env:"REDIS_URL,required"`
	RedisPrefix   string `env:"REDIS_PREFIX" envDefault:"mealremind"`

	RabbitmqURL       string `env:"RABBITMQ_URL,required"`
	RabbitmqExchange  string `env:"RABBITMQ_EXCHANGE" envDefault:""`
	RabbitmqSyncQueue string `env:"SYNC_QUEUE" envDefault:"reminders-sync"`

	RescheduleDebounce    time.Duration `env:"RESCHEDULE_DEBOUNCE" envDefault:"100ms"`
	RetryDelay            time.Duration `env:"RETRY_DELAY" envDefault:"5s"`
	WakeLockTTL           time.Duration `env:"WAKE_LOCK_TTL" envDefault:"30s"`
	PeriodicSyncEnabled   bool          `env:"PERIODIC_SYNC_ENABLED" envDefault:"true"`
	MaxCustomSounds       int           `env:"MAX_CUSTOM_SOUNDS" envDefault:"10"`
	SoundPreviewRateLimit uint16        `env:"SOUND_PREVIEW_RATE_LIMIT" envDefault:"30"`
	CustomSoundRateLimit  uint16        `env:"CUSTOM_SOUND_RATE_LIMIT" envDefault:"10"`

	AppURL         url.URL       `env:"APP_URL" envDefault:"http://localhost:8080/"`
	AssetOriginURL url.URL       `env:"ASSET_ORIGIN_URL" envDefault:"http://localhost:8080/"`
	AssetCacheName string        `env:"ASSET_CACHE_NAME" envDefault:"mealremind-cache-v1"`
	AssetTimeout   time.Duration `env:"ASSET_TIMEOUT" envDefault:"10s"`

	AwsRegion        string `env:"AWS_REGION" envDefault:"eu-central-1"`
	AwsAccessKey     string `env:"AWS_ACCESS_KEY"`
	AwsSecretKey     string `env:"AWS_SECRET_KEY"`
	EmailSender      string `env:"EMAIL_SENDER"`
	EmailRecipient   string `env:"EMAIL_RECIPIENT"`
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID   int64  `env:"TELEGRAM_CHAT_ID"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreDriver {
	case STORE_DRIVER_POSTGRES:
		if c.PostgresqlURL == "" {
			return fmt.Errorf("POSTGRESQL_URL must be set for the %s store", c.StoreDriver)
		}
	case STORE_DRIVER_SQLITE:
		if c.SqlitePath == "" {
			return fmt.Errorf("SQLITE_PATH must be set for the %s store", c.StoreDriver)
		}
	default:
		return fmt.Errorf("invalid STORE_DRIVER value: %q", c.StoreDriver)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid TZ value: %w", err)
	}
	if c.AuthTokenHash != "" && c.AuthSecret == "" {
		return fmt.Errorf("AUTH_SECRET must be set together with AUTH_TOKEN_HASH")
	}
	return nil
}

// Location is the device-local zone reminder times are interpreted in.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.TZ)
}

func (c *Config) IsEmailEnabled() bool {
	return c.EmailSender != "" && c.EmailRecipient != ""
}

func (c *Config) IsTelegramEnabled() bool {
	return c.TelegramBotToken != "" && c.TelegramChatID != 0
}
