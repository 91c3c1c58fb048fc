package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"schedule-planner/pkg/credential"
)

// ErrMissingGeminiKey halts startup.
var ErrMissingGeminiKey = errors.New("GEMINI_API_KEY is required")

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig
	CORS       CORSConfig
	RateLimit  RateLimitConfig

	// Schedule planner specifics
	Schedule ScheduleConfig
	Gemini   GeminiConfig
	OpenAI   OpenAIConfig
	Google   GoogleConfig
	Telegram TelegramConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type CORSConfig struct {
	AllowedOrigins []string
}

type RateLimitConfig struct {
	PerMin int
}

type ScheduleConfig struct {
	Timezone             string
	Vision               bool
	DefaultEventDuration time.Duration
	CommitTimeout        time.Duration
	CommitConcurrency    int
	InvocationTimeout    time.Duration
}

type GeminiConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// OpenAIConfig enables voice notes. Empty APIKey disables transcription.
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

type GoogleConfig struct {
	ClientID        string
	ClientSecret    string
	ProjectID       string
	RedirectURI     string
	CredentialsPath string
	TokenPath       string
	CalendarID      string
	TaskListID      string
}

type TelegramConfig struct {
	BotToken    string
	WebhookURL  string
	SecretToken string
	NgrokAPIURL string
}

// Load loads configuration using Viper, after pulling secrets from .env if present.
// Config file name: config.yaml, searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/app/")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = v.GetString("environment.name")
	cfg.HTTPServer.Port = v.GetInt("http_server.port")
	cfg.HTTPServer.Mode = v.GetString("http_server.mode")
	cfg.Logger.Level = v.GetString("logger.level")
	cfg.Logger.Mode = v.GetString("logger.mode")
	cfg.Logger.Encoding = v.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = v.GetBool("logger.color_enabled")
	cfg.CORS.AllowedOrigins = splitList(v.GetString("cors.allowed_origins"))
	cfg.RateLimit.PerMin = v.GetInt("rate_limit.per_min")

	// Schedule pipeline
	cfg.Schedule.Timezone = v.GetString("schedule.timezone")
	cfg.Schedule.Vision = v.GetBool("schedule.vision")
	cfg.Schedule.DefaultEventDuration = v.GetDuration("schedule.default_event_duration")
	cfg.Schedule.CommitTimeout = v.GetDuration("schedule.commit_timeout")
	cfg.Schedule.CommitConcurrency = v.GetInt("schedule.commit_concurrency")
	cfg.Schedule.InvocationTimeout = v.GetDuration("schedule.invocation_timeout")

	// Gemini
	cfg.Gemini.APIKey = v.GetString("gemini.api_key")
	if key := v.GetString("gemini_api_key"); key != "" {
		cfg.Gemini.APIKey = key
	}
	cfg.Gemini.Model = v.GetString("gemini.model")
	cfg.Gemini.Timeout = v.GetDuration("gemini.timeout")
	if cfg.Gemini.APIKey == "" {
		return nil, ErrMissingGeminiKey
	}

	// OpenAI (voice)
	cfg.OpenAI.APIKey = v.GetString("openai.api_key")
	if key := v.GetString("openai_key"); key != "" {
		cfg.OpenAI.APIKey = key
	}
	cfg.OpenAI.BaseURL = v.GetString("openai.base_url")
	cfg.OpenAI.Model = v.GetString("openai.model")

	// Google
	cfg.Google.ClientID = v.GetString("google.client_id")
	cfg.Google.ClientSecret = v.GetString("google.client_secret")
	cfg.Google.ProjectID = v.GetString("google.project_id")
	cfg.Google.RedirectURI = v.GetString("google.redirect_uri")
	cfg.Google.CredentialsPath = v.GetString("google.credentials_path")
	cfg.Google.TokenPath = v.GetString("google.token_path")
	cfg.Google.CalendarID = v.GetString("google.calendar_id")
	cfg.Google.TaskListID = v.GetString("google.task_list_id")

	// Telegram
	cfg.Telegram.BotToken = v.GetString("telegram.bot_token")
	cfg.Telegram.WebhookURL = v.GetString("telegram.webhook_url")
	cfg.Telegram.SecretToken = v.GetString("telegram.secret_token")
	cfg.Telegram.NgrokAPIURL = v.GetString("telegram.ngrok_api_url")

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment.name", "development")
	v.SetDefault("http_server.port", 8080)
	v.SetDefault("http_server.mode", "debug")
	v.SetDefault("logger.level", "debug")
	v.SetDefault("logger.mode", "debug")
	v.SetDefault("logger.encoding", "console")
	v.SetDefault("logger.color_enabled", true)
	v.SetDefault("rate_limit.per_min", 60)

	v.SetDefault("schedule.timezone", "Asia/Kolkata")
	v.SetDefault("schedule.vision", true)
	v.SetDefault("schedule.default_event_duration", "1h")
	v.SetDefault("schedule.commit_timeout", "15s")
	v.SetDefault("schedule.commit_concurrency", 1)
	v.SetDefault("schedule.invocation_timeout", "2m")

	v.SetDefault("gemini.model", "gemini-2.5-flash")
	v.SetDefault("gemini.timeout", "30s")
	v.SetDefault("openai.model", "whisper-1")

	v.SetDefault("google.credentials_path", "credentials.json")
	v.SetDefault("google.token_path", "token.json")
	v.SetDefault("google.calendar_id", "primary")
	v.SetDefault("google.task_list_id", "@default")

	v.SetDefault("telegram.ngrok_api_url", "http://ngrok:4040")
}

// LoadOptions maps the Google settings onto the credential loader.
func (c GoogleConfig) LoadOptions() credential.LoadOptions {
	return credential.LoadOptions{
		CredentialsPath: c.CredentialsPath,
		TokenPath:       c.TokenPath,
		Client: credential.OAuthClientConfig{
			ClientID:     c.ClientID,
			ClientSecret: c.ClientSecret,
			ProjectID:    c.ProjectID,
			RedirectURL:  c.RedirectURI,
		},
	}
}

// splitList splits comma separated values since viper does not parse arrays from env.
func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
