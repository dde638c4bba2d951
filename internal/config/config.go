package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	Session SessionConfig
	Mail    MailConfig
	Client  ClientConfig
}

type ServerConfig struct {
	Port          string
	IsDevelopment bool
}

type MongoConfig struct {
	URI      string
	Database string
}

// RedisConfig is optional; without it email dispatch runs in-process.
type RedisConfig struct {
	URL string
}

type SessionConfig struct {
	Secret string
	Issuer string
	Expiry int64 // seconds
}

type MailConfig struct {
	Token       string
	SenderEmail string
	SenderName  string
}

type ClientConfig struct {
	// URL is the public client origin used to build reset links.
	URL string
}

// Load reads configuration from the environment. Missing required values
// fail here so the process never starts half-configured.
func Load() (*Config, error) {
	viper.AutomaticEnv()
	if p := os.Getenv("CONFIG_FILE"); p != "" {
		viper.SetConfigFile(p)
		_ = viper.ReadInConfig()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:          getEnvOrDefault("PORT", "8080"),
			IsDevelopment: viper.GetBool("DEV_MODE"),
		},
		Mongo: MongoConfig{
			URI:      viper.GetString("MONGODB_URI"),
			Database: getEnvOrDefault("MONGODB_DATABASE", "authgate"),
		},
		Redis: RedisConfig{
			URL: viper.GetString("REDIS_URL"),
		},
		Session: SessionConfig{
			Secret: viper.GetString("JWT_SECRET"),
			Issuer: getEnvOrDefault("JWT_ISSUER", "authgate"),
			Expiry: viper.GetInt64("SESSION_EXPIRY"),
		},
		Mail: MailConfig{
			Token:       viper.GetString("MAILTRAP_TOKEN"),
			SenderEmail: getEnvOrDefault("MAIL_SENDER_EMAIL", "hello@demomailtrap.com"),
			SenderName:  getEnvOrDefault("MAIL_SENDER_NAME", "Authgate"),
		},
		Client: ClientConfig{
			URL: strings.TrimRight(viper.GetString("CLIENT_URL"), "/"),
		},
	}
	if cfg.Session.Expiry <= 0 {
		cfg.Session.Expiry = 604800 // 7 days
	}

	var missing []string
	if cfg.Mongo.URI == "" {
		missing = append(missing, "MONGODB_URI")
	}
	if cfg.Session.Secret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if cfg.Mail.Token == "" {
		missing = append(missing, "MAILTRAP_TOKEN")
	}
	if cfg.Client.URL == "" {
		missing = append(missing, "CLIENT_URL")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return cfg, nil
}

func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
