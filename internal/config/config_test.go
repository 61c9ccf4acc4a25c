package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/randomtoy/horoscope-go/internal/config"
)

var configEnv = []string{
	"CONFIG_FILE", "HTTP_ADDR", "PORT", "BODY_LIMIT", "LOG_LEVEL",
	"LLM_MODEL", "LLM_TEMPERATURE", "LLM_TIMEOUT", "OPENAI_API_KEY", "OPENAI_BASE_URL",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configEnv {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	c, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr: %s", c.HTTPAddr)
	}
	if c.LLMModel != "gpt-4.1-mini" {
		t.Errorf("LLMModel: %s", c.LLMModel)
	}
	if c.OpenAIBaseURL != "https://api.openai.com/v1" {
		t.Errorf("OpenAIBaseURL: %s", c.OpenAIBaseURL)
	}
	if c.LLMTimeout != 30*time.Second {
		t.Errorf("LLMTimeout: %s", c.LLMTimeout)
	}
	if c.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel: %s", c.LogLevel)
	}
	if c.BodyLimit != "64K" {
		t.Errorf("BodyLimit: %s", c.BodyLimit)
	}
	if c.OpenAIAPIKey != "" {
		t.Errorf("expected no API key, got %q", c.OpenAIAPIKey)
	}
}

func TestLoad_Env(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "3000")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("LLM_TEMPERATURE", "0.7")
	t.Setenv("LLM_TIMEOUT", "5s")
	t.Setenv("LOG_LEVEL", "DEBUG")

	c, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c.HTTPAddr != ":3000" {
		t.Errorf("HTTPAddr: %s", c.HTTPAddr)
	}
	if c.OpenAIAPIKey != "sk-test" {
		t.Errorf("OpenAIAPIKey: %s", c.OpenAIAPIKey)
	}
	if c.LLMTemperature != 0.7 {
		t.Errorf("LLMTemperature: %v", c.LLMTemperature)
	}
	if c.LLMTimeout != 5*time.Second {
		t.Errorf("LLMTimeout: %s", c.LLMTimeout)
	}
	if c.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel: %s", c.LogLevel)
	}
}

func TestLoad_FileOverriddenByEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "horoscope.yaml")
	yaml := `
http_addr: ":9090"
log_level: warn
llm:
  model: gpt-4o-mini
  temperature: 0.4
  timeout: 12s
openai:
  api_key: sk-file
  base_url: https://proxy.example/v1
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("LLM_MODEL", "gpt-4.1-mini")

	c, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c.HTTPAddr != ":9090" {
		t.Errorf("HTTPAddr: %s", c.HTTPAddr)
	}
	if c.LogLevel != slog.LevelWarn {
		t.Errorf("LogLevel: %s", c.LogLevel)
	}
	if c.LLMModel != "gpt-4.1-mini" {
		t.Errorf("expected env to win, LLMModel: %s", c.LLMModel)
	}
	if c.LLMTemperature != 0.4 {
		t.Errorf("LLMTemperature: %v", c.LLMTemperature)
	}
	if c.LLMTimeout != 12*time.Second {
		t.Errorf("LLMTimeout: %s", c.LLMTimeout)
	}
	if c.OpenAIAPIKey != "sk-file" || c.OpenAIBaseURL != "https://proxy.example/v1" {
		t.Errorf("OpenAI: %q %q", c.OpenAIAPIKey, c.OpenAIBaseURL)
	}
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string][2]string{
		"bad timeout":      {"LLM_TIMEOUT", "soon"},
		"negative timeout": {"LLM_TIMEOUT", "-1s"},
		"bad temperature":  {"LLM_TEMPERATURE", "hot"},
		"hot temperature":  {"LLM_TEMPERATURE", "2.5"},
		"bad body limit":   {"BODY_LIMIT", "lots"},
		"zero body limit":  {"BODY_LIMIT", "0"},
		"bad log level":    {"LOG_LEVEL", "loud"},
		"missing file":     {"CONFIG_FILE", "/nonexistent/horoscope.yaml"},
	}

	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(kv[0], kv[1])

			if _, err := config.Load(); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "horoscope.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_FileInvalid(t *testing.T) {
	cases := map[string]string{
		"temperature out of range": "llm:\n  temperature: 7\n",
		"bad body limit":           "body_limit: lots\n",
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("CONFIG_FILE", writeConfigFile(t, content))

			if _, err := config.Load(); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestLoad_AddrPrecedence(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_FILE", writeConfigFile(t, "http_addr: \":9090\"\n"))
	t.Setenv("PORT", "3000")

	c, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.HTTPAddr != ":3000" {
		t.Errorf("expected PORT to win over the file, got %s", c.HTTPAddr)
	}

	t.Setenv("HTTP_ADDR", "127.0.0.1:4000")
	c, err = config.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.HTTPAddr != "127.0.0.1:4000" {
		t.Errorf("expected HTTP_ADDR to win over PORT, got %s", c.HTTPAddr)
	}
}
