package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/gommon/bytes"
	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTPAddr       string
	LogLevel       slog.Level
	BodyLimit      string
	LLMModel       string
	LLMTemperature float32
	LLMTimeout     time.Duration
	OpenAIAPIKey   string
	OpenAIBaseURL  string
}

// fileConfig is the optional YAML file named by CONFIG_FILE. Environment
// variables take precedence over every value in it.
type fileConfig struct {
	HTTPAddr  string `yaml:"http_addr"`
	LogLevel  string `yaml:"log_level"`
	BodyLimit string `yaml:"body_limit"`
	LLM       struct {
		Model       string   `yaml:"model"`
		Temperature *float32 `yaml:"temperature"`
		Timeout     string   `yaml:"timeout"`
	} `yaml:"llm"`
	OpenAI struct {
		APIKey  string `yaml:"api_key"`
		BaseURL string `yaml:"base_url"`
	} `yaml:"openai"`
}

func Load() (Config, error) {
	var fc fileConfig
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &fc); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	c := Config{
		HTTPAddr:      envOr("HTTP_ADDR", or(portAddr(), or(fc.HTTPAddr, ":8080"))),
		BodyLimit:     envOr("BODY_LIMIT", or(fc.BodyLimit, "64K")),
		LLMModel:      envOr("LLM_MODEL", or(fc.LLM.Model, "gpt-4.1-mini")),
		OpenAIAPIKey:  envOr("OPENAI_API_KEY", fc.OpenAI.APIKey),
		OpenAIBaseURL: envOr("OPENAI_BASE_URL", or(fc.OpenAI.BaseURL, "https://api.openai.com/v1")),
		LLMTimeout:    30 * time.Second,
	}

	if n, err := bytes.Parse(c.BodyLimit); err != nil || n <= 0 {
		return Config{}, fmt.Errorf("invalid BODY_LIMIT %q: must be a positive size such as 64K or 1M", c.BodyLimit)
	}

	if fc.LLM.Temperature != nil {
		c.LLMTemperature = *fc.LLM.Temperature
	}
	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		t, err := strconv.ParseFloat(v, 32)
		if err != nil {
			return Config{}, fmt.Errorf("invalid LLM_TEMPERATURE %q: %w", v, err)
		}
		c.LLMTemperature = float32(t)
	}
	if c.LLMTemperature < 0 || c.LLMTemperature > 2 {
		return Config{}, fmt.Errorf("invalid LLM_TEMPERATURE %v: must be between 0 and 2", c.LLMTemperature)
	}

	if v := envOr("LLM_TIMEOUT", fc.LLM.Timeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid LLM_TIMEOUT %q: %w", v, err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("invalid LLM_TIMEOUT %q: must be positive", v)
		}
		c.LLMTimeout = d
	}

	level, err := parseLogLevel(envOr("LOG_LEVEL", or(fc.LogLevel, "info")))
	if err != nil {
		return Config{}, err
	}
	c.LogLevel = level

	return c, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func or(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}

// portAddr honours the PORT convention of hosting platforms.
func portAddr() string {
	if p := os.Getenv("PORT"); p != "" {
		return ":" + p
	}
	return ""
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
}
