package config

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/Alturino/storefront/internal/log"
)

type Api struct {
	BaseUrl        string `mapstructure:"base_url"        json:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" json:"timeout_seconds"`
}

type Storage struct {
	Backend string `mapstructure:"backend" json:"backend"`
	Dir     string `mapstructure:"dir"     json:"dir"`
	Key     string `mapstructure:"key"     json:"key"`
}

type Cache struct {
	Host     string `mapstructure:"host"     json:"host"`
	Password string `mapstructure:"password" json:"password"`
	Database int    `mapstructure:"database" json:"database"`
	Port     uint16 `mapstructure:"port"     json:"port"`
}

type Listing struct {
	PageSize         int `mapstructure:"page_size"          json:"page_size"`
	SearchDebounceMs int `mapstructure:"search_debounce_ms" json:"search_debounce_ms"`
}

type Application struct {
	Env  string `mapstructure:"env"  json:"env"`
	Host string `mapstructure:"host" json:"host"`
	Port int    `mapstructure:"port" json:"port"`
}

type Otel struct {
	Host string `mapstructure:"host" json:"host"`
	Port int    `mapstructure:"port" json:"port"`
}

type Config struct {
	Api         `mapstructure:"api"         json:"api"`
	Storage     `mapstructure:"storage"     json:"storage"`
	Cache       `mapstructure:"cache"       json:"cache"`
	Listing     `mapstructure:"listing"     json:"listing"`
	Application `mapstructure:"application" json:"application"`
	Otel        `mapstructure:"otel"        json:"otel"`
}

func (c Config) SearchDebounce() time.Duration {
	return time.Duration(c.Listing.SearchDebounceMs) * time.Millisecond
}

func (c Config) ApiTimeout() time.Duration {
	return time.Duration(c.Api.TimeoutSeconds) * time.Second
}

var (
	once   sync.Once
	config *Config
)

func InitConfig(c context.Context, filename string) *Config {
	cfg := Config{}
	once.Do(func() {
		logger := zerolog.Ctx(c).
			With().
			Str(log.KeyTag, "main InitConfig").
			Str(log.KeyProcess, "init config").
			Str("filename", filename).
			Logger()

		viper.SetConfigName(filename)
		viper.AddConfigPath("./env")
		viper.SetConfigType("yaml")
		viper.AutomaticEnv()

		viper.SetDefault("api.base_url", "https://fakestoreapi.com")
		viper.SetDefault("api.timeout_seconds", 30)
		viper.SetDefault("storage.backend", "file")
		viper.SetDefault("storage.dir", ".storefront")
		viper.SetDefault("storage.key", "cartProducts")
		viper.SetDefault("listing.page_size", 8)
		viper.SetDefault("listing.search_debounce_ms", 500)
		viper.SetDefault("application.host", "0.0.0.0")
		viper.SetDefault("application.port", 8080)

		logger = logger.With().Str(log.KeyProcess, "reading config").Logger()
		logger.Info().Msg("reading config")
		if err := viper.ReadInConfig(); err != nil {
			// missing file is fine, defaults and env cover every knob
			logger.Info().Err(err).Msg("config file not found, using defaults")
		}
		logger.Info().Msg("read config")

		logger = logger.With().Str(log.KeyProcess, "unmarshaling config").Logger()
		logger.Info().Msg("unmarshaling config")
		if err := viper.Unmarshal(&cfg); err != nil {
			err = fmt.Errorf("error unmarshaling config with error=%w", err)
			logger.Fatal().Err(err).Msg(err.Error())
		}
		config = &cfg
		logger = logger.With().Any(log.KeyConfig, cfg).Logger()
		logger.Info().Msg("unmarshaled config")
	})
	return config
}
