package utils

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Content  ContentConfig
	Stripe   StripeConfig
	Email    EmailConfig
	Telegram TelegramConfig
	Search   SearchConfig
	Events   EventsConfig
}

type AppConfig struct {
	Name     string
	Env      string
	Port     string
	Debug    bool
	LogPath  string
	BaseURL  string
	Origins  []string
	Locale   string
	Currency string
}

type DatabaseConfig struct {
	URL      string
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	MaxConns int32
}

type ContentConfig struct {
	URI        string
	Database   string
	Collection string
}

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
}

type EmailConfig struct {
	Host       string
	Port       int
	User       string
	Password   string
	From       string
	OpsAddress string
}

type TelegramConfig struct {
	BotToken  string
	OpsChatID int64
}

type SearchConfig struct {
	Host   string
	APIKey string
	Index  string
}

type EventsConfig struct {
	Driver         string
	KafkaBrokers   []string
	KafkaTopic     string
	RabbitURL      string
	RabbitExchange string
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.App.Env, "production")
}

// DSN returns DATABASE_URL when set, otherwise builds a keyword/value string from the DB_* parts.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.SSLMode)
	if d.Port != "" {
		dsn += " port=" + d.Port
	}
	return dsn
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")

	v.SetDefault("APP_NAME", "Fairway Sri Lanka")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("APP_BASE_URL", "http://localhost:3000")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("DEFAULT_LOCALE", "en")
	v.SetDefault("DEFAULT_CURRENCY", "USD")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("MONGO_DATABASE", "fairway")
	v.SetDefault("MONGO_COLLECTION", "documents")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("MEILI_INDEX", "catalog")
	v.SetDefault("EVENTS_DRIVER", "none")
	v.SetDefault("KAFKA_TOPIC", "booking-events")
	v.SetDefault("RABBITMQ_EXCHANGE", "bookings")

	// .env is optional; deployments pass everything through the environment.
	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read .env: %w", err)
			}
		}
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:     v.GetString("APP_NAME"),
			Env:      v.GetString("APP_ENV"),
			Port:     v.GetString("PORT"),
			Debug:    v.GetBool("DEBUG"),
			LogPath:  v.GetString("LOG_PATH"),
			BaseURL:  strings.TrimRight(v.GetString("APP_BASE_URL"), "/"),
			Origins:  splitList(v.GetString("CORS_ORIGINS")),
			Locale:   v.GetString("DEFAULT_LOCALE"),
			Currency: strings.ToUpper(v.GetString("DEFAULT_CURRENCY")),
		},
		Database: DatabaseConfig{
			URL:      v.GetString("DATABASE_URL"),
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASS"),
			SSLMode:  v.GetString("DB_SSLMODE"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
		},
		Content: ContentConfig{
			URI:        v.GetString("MONGO_URI"),
			Database:   v.GetString("MONGO_DATABASE"),
			Collection: v.GetString("MONGO_COLLECTION"),
		},
		Stripe: StripeConfig{
			SecretKey:     v.GetString("STRIPE_SECRET_KEY"),
			WebhookSecret: v.GetString("STRIPE_WEBHOOK_SECRET"),
		},
		Email: EmailConfig{
			Host:       v.GetString("SMTP_HOST"),
			Port:       v.GetInt("SMTP_PORT"),
			User:       v.GetString("SMTP_USER"),
			Password:   v.GetString("SMTP_PASS"),
			From:       v.GetString("EMAIL_FROM"),
			OpsAddress: v.GetString("OPS_EMAIL"),
		},
		Telegram: TelegramConfig{
			BotToken:  v.GetString("TELEGRAM_BOT_TOKEN"),
			OpsChatID: v.GetInt64("TELEGRAM_OPS_CHAT_ID"),
		},
		Search: SearchConfig{
			Host:   v.GetString("MEILI_HOST"),
			APIKey: v.GetString("MEILI_API_KEY"),
			Index:  v.GetString("MEILI_INDEX"),
		},
		Events: EventsConfig{
			Driver:         strings.ToLower(v.GetString("EVENTS_DRIVER")),
			KafkaBrokers:   splitList(v.GetString("KAFKA_BROKERS")),
			KafkaTopic:     v.GetString("KAFKA_TOPIC"),
			RabbitURL:      v.GetString("RABBITMQ_URL"),
			RabbitExchange: v.GetString("RABBITMQ_EXCHANGE"),
		},
	}

	return config, nil
}

// Validate only enforces required settings in production. Elsewhere a
// missing value just leaves the matching integration disabled.
func (c *Config) Validate() error {
	if !c.IsProduction() {
		return nil
	}

	var missing []string
	if c.Database.URL == "" && (c.Database.Host == "" || c.Database.Name == "") {
		missing = append(missing, "DATABASE_URL")
	}
	if c.Content.URI == "" {
		missing = append(missing, "MONGO_URI")
	}
	if c.Stripe.SecretKey == "" {
		missing = append(missing, "STRIPE_SECRET_KEY")
	}
	if IsPlaceholderSecret(c.Stripe.WebhookSecret) {
		missing = append(missing, "STRIPE_WEBHOOK_SECRET")
	}
	if c.Email.Host == "" {
		missing = append(missing, "SMTP_HOST")
	}
	if c.Search.Host == "" {
		missing = append(missing, "MEILI_HOST")
	}
	if c.App.BaseURL == "" {
		missing = append(missing, "APP_BASE_URL")
	}

	switch c.Events.Driver {
	case "", "none":
	case "kafka":
		if len(c.Events.KafkaBrokers) == 0 {
			missing = append(missing, "KAFKA_BROKERS")
		}
	case "rabbitmq":
		if c.Events.RabbitURL == "" {
			missing = append(missing, "RABBITMQ_URL")
		}
	default:
		return fmt.Errorf("unknown EVENTS_DRIVER %q", c.Events.Driver)
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

// IsPlaceholderSecret reports whether a webhook secret was never configured.
func IsPlaceholderSecret(secret string) bool {
	s := strings.TrimSpace(strings.ToLower(secret))
	return s == "" ||
		strings.HasPrefix(s, "whsec_placeholder") ||
		strings.HasPrefix(s, "placeholder")
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
