// Package config loads application settings from the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

// Config holds every externally supplied setting.
type Config struct {
	AppName     string `validate:"required"`
	AppVersion  string `validate:"required"`
	AppPort     string `validate:"required"`
	Debug       bool
	LogLevel    string `validate:"required,oneof=trace debug info warn error"`
	DatabaseURL string `validate:"required"`

	SecretKey        string        `validate:"required"`
	AccessTokenTTL   time.Duration `validate:"gt=0"`
	BcryptCost       int           `validate:"gte=4,lte=31"`
	CORSAllowOrigins []string

	RabbitMQURL    string
	EventsExchange string `validate:"required_with=RabbitMQURL"`
}

// EventsEnabled reports whether lifecycle events should be published to RabbitMQ.
func (c *Config) EventsEnabled() bool {
	return c.RabbitMQURL != ""
}

// Load reads an optional .env file, then the process environment.
func Load() (*Config, error) {
	// A missing .env file is not an error; the environment may be set some other way.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "Task Management API")
	v.SetDefault("APP_VERSION", "1.0.0")
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_CONN_STRING", "sqlite:///./database.db")
	v.SetDefault("SECRET_KEY", "change-this-in-production")
	v.SetDefault("ACCESS_TOKEN_EXPIRE_MINUTES", 30)
	v.SetDefault("BCRYPT_COST", bcrypt.DefaultCost)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("EVENTS_EXCHANGE", "taskhub.events")
}

func fromViper(v *viper.Viper) (*Config, error) {
	databaseURL := v.GetString("DATABASE_URL")
	if databaseURL == "" {
		databaseURL = v.GetString("DB_CONN_STRING")
	}

	cfg := &Config{
		AppName:          v.GetString("APP_NAME"),
		AppVersion:       v.GetString("APP_VERSION"),
		AppPort:          v.GetString("APP_PORT"),
		Debug:            v.GetBool("DEBUG"),
		LogLevel:         strings.ToLower(v.GetString("LOG_LEVEL")),
		DatabaseURL:      databaseURL,
		SecretKey:        v.GetString("SECRET_KEY"),
		AccessTokenTTL:   time.Duration(v.GetInt("ACCESS_TOKEN_EXPIRE_MINUTES")) * time.Minute,
		BcryptCost:       v.GetInt("BCRYPT_COST"),
		CORSAllowOrigins: splitList(v.GetString("CORS_ORIGINS")),
		RabbitMQURL:      v.GetString("RABBITMQ_URL"),
		EventsExchange:   v.GetString("EVENTS_EXCHANGE"),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
