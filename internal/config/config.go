package config

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// ErrMissingAPIKey is returned by Validate when no OpenAI key is configured.
var ErrMissingAPIKey = errors.New("OPENAI_API_KEY not found in environment variables")

// Config holds the application configuration
type Config struct {
	LLM       LLMConfig
	Assistant AssistantConfig
	Server    ServerConfig
	Football  FootballConfig
	Log       LogConfig
}

// LLMConfig holds the LLM configuration used by the tactics service
type LLMConfig struct {
	BaseURL      string  `mapstructure:"base_url"`
	APIKey       string  `mapstructure:"api_key"`
	Model        string  `mapstructure:"model"`
	MaxTokens    int     `mapstructure:"max_tokens"`
	Temperature  float32 `mapstructure:"temperature"`
	SystemPrompt string  `mapstructure:"system_prompt"`
}

// AssistantConfig holds the interactive assistant settings
type AssistantConfig struct {
	Model string `mapstructure:"model"`
	// TranscriptPath enables the SQLite transcript when non-empty.
	TranscriptPath string `mapstructure:"transcript_path"`
}

// ServerConfig holds the server configuration
type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// FootballConfig holds the football-data API configuration
type FootballConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("llm.base_url", "https://api.openai.com/v1")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", "gpt-4o")
	v.SetDefault("llm.max_tokens", 1000)
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.system_prompt", "You are an expert football tactics analyst.")

	v.SetDefault("assistant.model", "gpt-4")
	v.SetDefault("assistant.transcript_path", "")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "9000")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000", "https://your-production-domain.com"})

	v.SetDefault("football.api_key", "")
	v.SetDefault("football.base_url", "https://api.football-data.org/v4")

	v.SetDefault("log.level", "info")
}

// Load reads configuration from defaults, an optional YAML file and the
// environment. The file is CONFIG_PATH when set, otherwise ./config.yaml if
// it exists.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("stattact")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range map[string]string{
		"llm.api_key":      "OPENAI_API_KEY",
		"llm.base_url":     "OPENAI_BASE_URL",
		"football.api_key": "FOOTBALL_API_KEY",
	} {
		if err := v.BindEnv(key, env); err != nil {
			return nil, err
		}
	}

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, err
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate reports settings both binaries cannot run without.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.LLM.APIKey) == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// Address returns the host:port the API service listens on.
func (s ServerConfig) Address() string {
	return s.Host + ":" + s.Port
}
