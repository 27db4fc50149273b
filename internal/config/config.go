package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
)

type Config struct {
	Bot         Bot         `mapstructure:"bot"`
	Telegram    Telegram    `mapstructure:"telegram"`
	Chat        Chat        `mapstructure:"chat"`
	Gemini      Provider    `mapstructure:"gemini"`
	OpenRouter  Provider    `mapstructure:"openrouter"`
	OpenWeather APIKey      `mapstructure:"openweather"`
	News        News        `mapstructure:"news"`
	HuggingFace HuggingFace `mapstructure:"huggingface"`
	FAL         FAL         `mapstructure:"fal"`
	FMP         FMP         `mapstructure:"fmp"`
	TTS         TTS         `mapstructure:"tts"`
	Media       Media       `mapstructure:"media"`
	HTTP        Timeout     `mapstructure:"http"`
	Handler     Timeout     `mapstructure:"handler"`
	Reminder    Reminder    `mapstructure:"reminder"`
	Metrics     Metrics     `mapstructure:"metrics"`
}

type Bot struct {
	LogLevel string `mapstructure:"log_level" validate:"oneof=debug info warn error"`
}

type Telegram struct {
	BotToken string `mapstructure:"bot_token" validate:"required"`
}

type Chat struct {
	Provider     string `mapstructure:"provider" validate:"oneof=gemini openrouter"`
	SystemPrompt string `mapstructure:"system_prompt"`
}

// Provider configures a chat backend. The key is only required for the backend selected in chat.provider.
type Provider struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model" validate:"required"`
}

type APIKey struct {
	APIKey string `mapstructure:"api_key" validate:"required"`
}

type News struct {
	APIKey   string `mapstructure:"api_key" validate:"required"`
	Country  string `mapstructure:"country" validate:"required,len=2"`
	Category string `mapstructure:"category" validate:"required"`
}

type HuggingFace struct {
	APIKey string `mapstructure:"api_key" validate:"required"`
	URL    string `mapstructure:"url" validate:"required,url"`
	Model  string `mapstructure:"model" validate:"required"`
}

// FAL is optional. Without a key speech recognition is disabled.
type FAL struct {
	APIKey     string `mapstructure:"api_key"`
	WhisperURL string `mapstructure:"whisper_url" validate:"required,url"`
}

func (f FAL) Enabled() bool {
	return f.APIKey != ""
}

type FMP struct {
	APIKey string `mapstructure:"api_key"`
}

type TTS struct {
	URL      string `mapstructure:"url" validate:"required,url"`
	Language string `mapstructure:"language" validate:"required"`
}

type Media struct {
	Dir string `mapstructure:"dir"`
}

type Timeout struct {
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

type Reminder struct {
	DeliveryTimeout time.Duration `mapstructure:"delivery_timeout" validate:"gt=0"`
}

type Metrics struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr" validate:"required_if=Enabled true"`
}

// secrets keeps the environment variable names the bot has always used.
var secrets = map[string]string{
	"telegram.bot_token":  "TELEGRAM_BOT_TOKEN",
	"gemini.api_key":      "GEMINI_API_KEY",
	"openrouter.api_key":  "OPENROUTER_API_KEY",
	"openweather.api_key": "OPENWEATHER_API_KEY",
	"news.api_key":        "NEWS_API_KEY",
	"huggingface.api_key": "HF_API_KEY",
	"fal.api_key":         "FAL_API_KEY",
	"fmp.api_key":         "FMP_API_KEY",
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func setDefaults(v *viper.Viper) {
	v.SetDefault("bot.log_level", "info")
	v.SetDefault("chat.provider", ProviderGemini)
	v.SetDefault("chat.system_prompt", "You are Ryzex AI, a friendly Telegram assistant. Keep answers short.")
	v.SetDefault("gemini.model", "gemini-2.5-flash")
	v.SetDefault("openrouter.model", "google/gemini-2.5-flash")
	v.SetDefault("news.country", "in")
	v.SetDefault("news.category", "technology")
	v.SetDefault("huggingface.url", "https://api-inference.huggingface.co/models/")
	v.SetDefault("huggingface.model", "gsdf/Counterfeit-V2.5")
	v.SetDefault("fal.whisper_url", "https://fal.run/fal-ai/whisper")
	v.SetDefault("tts.url", "https://translate.google.com/translate_tts")
	v.SetDefault("tts.language", "en")
	v.SetDefault("media.dir", "")
	v.SetDefault("http.timeout", "20s")
	v.SetDefault("handler.timeout", "60s")
	v.SetDefault("reminder.delivery_timeout", "30s")
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.addr", ":9090")
}

// Load reads dir/.env into the environment, then dir/config.toml if present. Every key can be overridden from
// the environment, e.g. HTTP_TIMEOUT for http.timeout; secrets use their historical variable names.
func Load(dir string) (Config, error) {
	if err := godotenv.Load(filepath.Join(dir, ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("error reading .env: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(dir)

	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, env := range secrets {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("error binding %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	switch c.Chat.Provider {
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("invalid config: %s is required for chat provider %s", secrets["gemini.api_key"],
				ProviderGemini)
		}
	case ProviderOpenRouter:
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("invalid config: %s is required for chat provider %s", secrets["openrouter.api_key"],
				ProviderOpenRouter)
		}
	}

	return nil
}
