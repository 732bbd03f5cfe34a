package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type AppConfig struct {
	Port    string `mapstructure:"APP_PORT" validate:"required,numeric"`
	Env     string `mapstructure:"APP_ENV" validate:"required,oneof=development staging production test"`
	LogFile string `mapstructure:"LOG_FILE"`
	LogLvl  string `mapstructure:"LOG_LEVEL" validate:"required,oneof=trace debug info warn warning error fatal panic"`

	CacheEnabled        bool `mapstructure:"DIALOG_CACHE_ENABLED"`
	RecognizerCacheSize int  `mapstructure:"DIALOG_RECOGNIZER_CACHE_SIZE" validate:"gt=0"`
	GeneratorCacheSize  int  `mapstructure:"DIALOG_GENERATOR_CACHE_SIZE" validate:"gt=0"`

	SessionMax         int           `mapstructure:"SESSION_MAX" validate:"gt=0"`
	SessionIdleTimeout time.Duration `mapstructure:"SESSION_IDLE_TIMEOUT" validate:"gte=0"`

	RateLimitRPS   float64 `mapstructure:"RATE_LIMIT_RPS" validate:"gt=0"`
	RateLimitBurst int     `mapstructure:"RATE_LIMIT_BURST" validate:"gt=0"`

	RedisAddress    string        `mapstructure:"REDIS_ADDRESS" validate:"omitempty,hostname_port"`
	RedisPassword   string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB         int           `mapstructure:"REDIS_DB" validate:"gte=0"`
	RedisHistoryTTL time.Duration `mapstructure:"REDIS_HISTORY_TTL" validate:"gte=0"`

	JWTSecret string `mapstructure:"JWT_ACCESS_TOKEN_SECRET"`

	OpenAIAPIKey      string `mapstructure:"OPENAI_API_KEY"`
	ElevenLabsAPIKey  string `mapstructure:"ELEVENLABS_API_KEY"`
	ElevenLabsVoiceID string `mapstructure:"ELEVENLABS_VOICE_ID"`
}

var defaults = map[string]interface{}{
	"APP_PORT":                     "3000",
	"APP_ENV":                      "development",
	"LOG_LEVEL":                    "debug",
	"LOG_FILE":                     "./storage/logs/app.log",
	"DIALOG_CACHE_ENABLED":         true,
	"DIALOG_RECOGNIZER_CACHE_SIZE": 100,
	"DIALOG_GENERATOR_CACHE_SIZE":  200,
	"SESSION_MAX":                  1000,
	"SESSION_IDLE_TIMEOUT":         "30m",
	"RATE_LIMIT_RPS":               50,
	"RATE_LIMIT_BURST":             100,
	"REDIS_ADDRESS":                "",
	"REDIS_PASSWORD":               "",
	"REDIS_DB":                     0,
	"REDIS_HISTORY_TTL":            "24h",
	"JWT_ACCESS_TOKEN_SECRET":      "",
	"OPENAI_API_KEY":               "",
	"ELEVENLABS_API_KEY":           "",
	"ELEVENLABS_VOICE_ID":          "",
}

// LoadConfig reads the process environment (a .env file is expected to have
// been loaded already) on top of built-in defaults and validates the result.
func LoadConfig() (*AppConfig, error) {
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := NewValidator().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func (c *AppConfig) RedisEnabled() bool {
	return c.RedisAddress != ""
}
