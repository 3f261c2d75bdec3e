package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env string

	API      APIConfig
	Log      LogConfig
	Status   StatusConfig
	Export   ExportConfig
	Messages MessagesConfig
	Watch    WatchConfig
}

// APIConfig locates the UniHub admin API the console talks to.
type APIConfig struct {
	BaseURL string
	Prefix  string
	Timeout time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

// StatusConfig controls the optional local status server.
type StatusConfig struct {
	Enabled bool
	Port    int
}

// ExportConfig controls roster export output.
type ExportConfig struct {
	Dir string
}

// MessagesConfig tunes transient screen messages.
type MessagesConfig struct {
	SuccessTTL time.Duration
}

// WatchConfig tunes the live aggregate view.
type WatchConfig struct {
	RefreshInterval time.Duration
	TickInterval    time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")

	cfg.API = APIConfig{
		BaseURL: strings.TrimRight(v.GetString("API_BASE_URL"), "/"),
		Prefix:  v.GetString("API_PREFIX"),
		Timeout: parseDuration(v.GetString("HTTP_TIMEOUT"), 30*time.Second),
	}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Status = StatusConfig{
		Enabled: v.GetBool("ENABLE_STATUS_SERVER"),
		Port:    v.GetInt("STATUS_PORT"),
	}

	cfg.Export = ExportConfig{
		Dir: v.GetString("EXPORT_DIR"),
	}

	cfg.Messages = MessagesConfig{
		SuccessTTL: parseDuration(v.GetString("SUCCESS_MESSAGE_TTL"), 2*time.Second),
	}

	cfg.Watch = WatchConfig{
		RefreshInterval: parseDuration(v.GetString("WATCH_REFRESH_INTERVAL"), 10*time.Second),
		TickInterval:    parseDuration(v.GetString("WATCH_TICK_INTERVAL"), 50*time.Millisecond),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)

	v.SetDefault("API_BASE_URL", "http://localhost:8080")
	v.SetDefault("API_PREFIX", "/api/v1/admin")
	v.SetDefault("HTTP_TIMEOUT", "30s")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ENABLE_STATUS_SERVER", false)
	v.SetDefault("STATUS_PORT", 9090)

	v.SetDefault("EXPORT_DIR", "./exports")

	v.SetDefault("SUCCESS_MESSAGE_TTL", "2s")
	v.SetDefault("WATCH_REFRESH_INTERVAL", "10s")
	v.SetDefault("WATCH_TICK_INTERVAL", "50ms")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}
