package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the search service
type Config struct {
	General   GeneralConfig   `mapstructure:"general"`
	Server    ServerConfig    `mapstructure:"server"`
	Providers ProvidersConfig `mapstructure:"providers"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Capture   CaptureConfig   `mapstructure:"capture"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// GeneralConfig contains general application settings
type GeneralConfig struct {
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// ProvidersConfig groups the news provider settings
type ProvidersConfig struct {
	GoogleNews GoogleNewsConfig `mapstructure:"google_news"`
	Outlets    []OutletConfig   `mapstructure:"outlets"`
	YouTube    YouTubeConfig    `mapstructure:"youtube"`
	WebSearch  WebSearchConfig  `mapstructure:"web_search"`
}

// GoogleNewsConfig contains Google News RSS settings
type GoogleNewsConfig struct {
	Endpoint   string        `mapstructure:"endpoint"`
	MaxResults int           `mapstructure:"max_results"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// OutletConfig declares a single site-restricted outlet provider
type OutletConfig struct {
	Name       string `mapstructure:"name"`
	Site       string `mapstructure:"site"`
	MaxResults int    `mapstructure:"max_results"`
}

// YouTubeConfig contains YouTube results page settings
type YouTubeConfig struct {
	MaxResults int           `mapstructure:"max_results"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// WebSearchConfig contains web search settings backing the outlet providers
type WebSearchConfig struct {
	Provider     string        `mapstructure:"provider"` // serper or brave
	SerperAPIKey string        `mapstructure:"serper_api_key"`
	BraveAPIKey  string        `mapstructure:"brave_api_key"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

func (w WebSearchConfig) Validate() error {
	switch w.Provider {
	case "serper":
		if strings.TrimSpace(w.SerperAPIKey) == "" {
			return fmt.Errorf("providers.web_search.serper_api_key is required for the serper provider")
		}
	case "brave":
		if strings.TrimSpace(w.BraveAPIKey) == "" {
			return fmt.Errorf("providers.web_search.brave_api_key is required for the brave provider")
		}
	case "":
	default:
		return fmt.Errorf("providers.web_search.provider must be serper or brave, got %q", w.Provider)
	}
	return nil
}

// LLMConfig contains the report synthesis provider settings
type LLMConfig struct {
	Provider    string        `mapstructure:"provider"` // gemini or openai
	APIKey      string        `mapstructure:"api_key"`
	BaseURL     string        `mapstructure:"base_url"`
	Model       string        `mapstructure:"model"`
	Temperature float64       `mapstructure:"temperature"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// Enabled reports whether a usable provider is configured. Without a provider
// and credential the service still runs; reports come from the deterministic
// fallback instead of a model.
func (l LLMConfig) Enabled() bool {
	return l.Provider != "" && strings.TrimSpace(l.APIKey) != ""
}

func (l LLMConfig) Validate() error {
	switch l.Provider {
	case "gemini", "openai", "":
	default:
		return fmt.Errorf("llm.provider must be gemini or openai, got %q", l.Provider)
	}
	if l.Enabled() && l.MaxTokens <= 0 {
		return fmt.Errorf("llm.max_tokens must be > 0")
	}
	return nil
}

// CaptureConfig controls screenshot and page content capture
type CaptureConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	Dir           string        `mapstructure:"dir"`
	Timeout       time.Duration `mapstructure:"timeout"`
	MaxConcurrent int           `mapstructure:"max_concurrent"`
	TTL           time.Duration `mapstructure:"ttl"`
}

func (c CaptureConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if strings.TrimSpace(c.Dir) == "" {
		return fmt.Errorf("capture.dir is required when capture is enabled")
	}
	if c.MaxConcurrent <= 0 {
		return fmt.Errorf("capture.max_concurrent must be > 0")
	}
	return nil
}

// StorageConfig contains persistence settings
type StorageConfig struct {
	Interests string      `mapstructure:"interests"` // inmemory or redis
	Redis     RedisConfig `mapstructure:"redis"`
}

func (s StorageConfig) Validate() error {
	switch s.Interests {
	case "inmemory", "":
	case "redis":
		return s.Redis.Validate()
	default:
		return fmt.Errorf("storage.interests must be inmemory or redis, got %q", s.Interests)
	}
	return nil
}

// RedisConfig contains Redis connection settings
type RedisConfig struct {
	Host     string        `mapstructure:"host"`
	Port     string        `mapstructure:"port"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

func (r RedisConfig) Validate() error {
	if strings.TrimSpace(r.Host) == "" {
		return fmt.Errorf("storage.redis.host is required")
	}
	if strings.TrimSpace(r.Port) == "" {
		return fmt.Errorf("storage.redis.port is required")
	}
	return nil
}

// TelemetryConfig contains tracing settings
type TelemetryConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
}

// LoadConfig loads config from file
func LoadConfig(path string) *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("json")

	viper.SetDefault("general.log_level", "info")
	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("providers.google_news.endpoint", "https://news.google.com/rss/search")
	viper.SetDefault("providers.google_news.max_results", 10)
	viper.SetDefault("providers.google_news.timeout", 10*time.Second)
	viper.SetDefault("providers.youtube.max_results", 3)
	viper.SetDefault("providers.youtube.timeout", 10*time.Second)
	viper.SetDefault("providers.web_search.timeout", 10*time.Second)
	viper.SetDefault("llm.provider", "gemini")
	viper.SetDefault("llm.model", "gemini-2.0-flash")
	viper.SetDefault("llm.temperature", 0.4)
	viper.SetDefault("llm.max_tokens", 2048)
	viper.SetDefault("llm.timeout", 30*time.Second)
	viper.SetDefault("capture.dir", "./screenshots")
	viper.SetDefault("capture.timeout", 15*time.Second)
	viper.SetDefault("capture.max_concurrent", 3)
	viper.SetDefault("capture.ttl", 24*time.Hour)
	viper.SetDefault("storage.interests", "inmemory")
	viper.SetDefault("storage.redis.timeout", 5*time.Second)

	if path == "" {
		viper.AddConfigPath("./config")
		viper.AddConfigPath(".")
		exe, _ := os.Executable()
		exeDir := filepath.Dir(exe)
		viper.AddConfigPath(exeDir)
		viper.AddConfigPath(filepath.Join(exeDir, ".."))
	} else {
		viper.SetConfigFile(path)
	}

	viper.SetEnvPrefix("NEWSIGHT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		panic(fmt.Errorf("fatal error config file: %w", err))
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		panic(fmt.Errorf("fatal error config file: %w", err))
	}

	if err := config.Providers.WebSearch.Validate(); err != nil {
		panic(err)
	}
	if err := config.LLM.Validate(); err != nil {
		panic(err)
	}
	if err := config.Capture.Validate(); err != nil {
		panic(err)
	}
	if err := config.Storage.Validate(); err != nil {
		panic(err)
	}
	return &config
}
