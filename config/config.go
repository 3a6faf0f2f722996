package config

import (
	"os"
	"time"

	"github.com/spf13/viper"
)

// DefaultSourceURL is the fixed remote resource the directory is built from.
const DefaultSourceURL = "https://srijandubey.github.io/campus-api-mock/SRM-C1-25.json"

type Config struct {
	App       AppConfig
	Directory DirectoryConfig
	Session   SessionConfig
	Redis     RedisConfig
}

type AppConfig struct {
	Port     string
	Env      string
	LogLevel string
}

type DirectoryConfig struct {
	SourceURL    string
	FetchTimeout time.Duration
	CacheTTL     time.Duration
}

type SessionConfig struct {
	Secret  string
	IdleTTL time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Enabled reports whether a Redis host was configured.
func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

func LoadConfig() (*Config, error) {
	return LoadConfigFrom(".env")
}

// LoadConfigFrom reads path when it exists and lets the environment override it.
func LoadConfigFrom(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DIRECTORY_SOURCE_URL", DefaultSourceURL)
	v.SetDefault("DIRECTORY_FETCH_TIMEOUT", "10s")
	v.SetDefault("DIRECTORY_CACHE_TTL", "0s")
	v.SetDefault("SESSION_IDLE_TTL", "30m")
	v.SetDefault("REDIS_PORT", "6379")

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	fetchTimeout, err := time.ParseDuration(v.GetString("DIRECTORY_FETCH_TIMEOUT"))
	if err != nil || fetchTimeout <= 0 {
		fetchTimeout = 10 * time.Second
	}

	cacheTTL, err := time.ParseDuration(v.GetString("DIRECTORY_CACHE_TTL"))
	if err != nil || cacheTTL < 0 {
		cacheTTL = 0
	}

	idleTTL, err := time.ParseDuration(v.GetString("SESSION_IDLE_TTL"))
	if err != nil || idleTTL <= 0 {
		idleTTL = 30 * time.Minute
	}

	config := &Config{
		App: AppConfig{
			Port:     v.GetString("APP_PORT"),
			Env:      v.GetString("APP_ENV"),
			LogLevel: v.GetString("LOG_LEVEL"),
		},
		Directory: DirectoryConfig{
			SourceURL:    v.GetString("DIRECTORY_SOURCE_URL"),
			FetchTimeout: fetchTimeout,
			CacheTTL:     cacheTTL,
		},
		Session: SessionConfig{
			Secret:  v.GetString("SESSION_SECRET"),
			IdleTTL: idleTTL,
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
	}

	return config, nil
}
