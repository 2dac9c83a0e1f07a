package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	S3       S3Config       `mapstructure:"s3"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Google   GoogleConfig   `mapstructure:"google"`
	OpenAI   OpenAIConfig   `mapstructure:"openai"`
	Dining   DiningConfig   `mapstructure:"dining"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// AuthConfig controls session lifetimes and the duplicate-login throttle.
type AuthConfig struct {
	SessionTTL        time.Duration `mapstructure:"session_ttl"`
	LoginCooldown     time.Duration `mapstructure:"login_cooldown"`
	ThrottleRetention time.Duration `mapstructure:"throttle_retention"`
}

// GoogleConfig holds Google Sign-In verification settings.
// AllowTestBypass skips ID token signature verification for requests that
// explicitly ask for test_mode. Never enable this in production.
type GoogleConfig struct {
	ClientID        string `mapstructure:"client_id"`
	AllowTestBypass bool   `mapstructure:"allow_test_bypass"`
}

type OpenAIConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type DiningConfig struct {
	FeedURL string `mapstructure:"feed_url"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Environment variable handling, e.g. auth.session_ttl -> AUTH_SESSION_TTL
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("database.uri", "mongodb://localhost:27017")
	viper.SetDefault("database.name", "fitsocial")
	viper.SetDefault("s3.use_ssl", true)
	viper.SetDefault("auth.session_ttl", "24h")
	viper.SetDefault("auth.login_cooldown", "3s")
	viper.SetDefault("auth.throttle_retention", "1m")
	viper.SetDefault("google.allow_test_bypass", false)
	viper.SetDefault("openai.model", "gpt-4o-mini")
	viper.SetDefault("dining.feed_url", "https://now.dining.cornell.edu/api/1.0/dining/eateries.json")

	err = viper.ReadInConfig()
	// A missing config file is fine; env vars and defaults still apply.
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		err = nil
	} else if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		return
	}

	return config, nil
}
