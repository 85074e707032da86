package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type APIConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
	UploadTimeout  time.Duration
}

type KeystoreConfig struct {
	// Backend selects where the token/role pair is persisted: "file" or "redis".
	Backend      string
	Path         string
	RedisAddr    string
	RedisPassword string
	RedisDB      int
}

type RefreshConfig struct {
	// Enabled turns on the cron-driven job list refresh.
	Enabled  bool
	Schedule string
}

type TelegramConfig struct {
	Enabled bool
	Token   string
	ChatID  int64
}

type NotifyConfig struct {
	DisplayDuration time.Duration
	Telegram        TelegramConfig
}

type AppConfig struct {
	Environment string
	API         APIConfig
	Keystore    KeystoreConfig
	Refresh     RefreshConfig
	Notify      NotifyConfig
}

func Load() (*AppConfig, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("$HOME/.careerhub")

	v.SetEnvPrefix("CAREERHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")

	v.SetDefault("api.baseurl", "https://localhost:8443/api")
	v.SetDefault("api.requesttimeout", "15s")
	v.SetDefault("api.uploadtimeout", "60s")

	v.SetDefault("keystore.backend", "file")
	v.SetDefault("keystore.path", "$HOME/.careerhub/credentials.json")
	v.SetDefault("keystore.redisaddr", "127.0.0.1:6379")
	v.SetDefault("keystore.redisdb", 0)

	v.SetDefault("refresh.enabled", false)
	// midnight, when the "published today" partition rolls over
	v.SetDefault("refresh.schedule", "0 0 0 * * *")

	v.SetDefault("notify.displayduration", "5s")
	v.SetDefault("notify.telegram.enabled", false)
}
