// Package config resolves settings for the tracklog binaries from an optional
// .env file, an optional YAML file and the process environment, in that order
// of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPort          = "8080"
	DefaultSubmitTimeout = 10 * time.Second
	configPathEnv        = "TRACKLOG_CONFIG"
)

var DefaultDBPath = filepath.Join("data", "events.db")

type Config struct {
	Port              string
	DBPath            string
	TelegramBotToken  string
	APIURL            string
	SubmitTimeout     time.Duration
	ValidateEventType bool
}

// fileConfig mirrors Config for YAML decoding. Values stay strings so the
// same parsing applies to file and environment input.
type fileConfig struct {
	Port              string `yaml:"port"`
	DBPath            string `yaml:"db_path"`
	TelegramBotToken  string `yaml:"telegram_bot_token"`
	APIURL            string `yaml:"api_url"`
	SubmitTimeout     string `yaml:"submit_timeout"`
	ValidateEventType string `yaml:"validate_event_type"`
}

// Load reads .env from the working directory when present, then the YAML file
// named by TRACKLOG_CONFIG, then environment variables.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	file, err := readFileConfig(os.Getenv(configPathEnv))
	if err != nil {
		return Config{}, err
	}

	port, err := resolvePort(getEnv("PORT", file.Port))
	if err != nil {
		return Config{}, err
	}

	submitTimeout := DefaultSubmitTimeout
	if raw := getEnv("SUBMIT_TIMEOUT", file.SubmitTimeout); raw != "" {
		submitTimeout, err = time.ParseDuration(raw)
		if err != nil || submitTimeout <= 0 {
			return Config{}, fmt.Errorf("invalid SUBMIT_TIMEOUT %q: must be a positive duration", raw)
		}
	}

	validateEventType := false
	if raw := getEnv("VALIDATE_EVENT_TYPE", file.ValidateEventType); raw != "" {
		validateEventType, err = strconv.ParseBool(raw)
		if err != nil {
			return Config{}, fmt.Errorf("invalid VALIDATE_EVENT_TYPE %q: %w", raw, err)
		}
	}

	return Config{
		Port:              port,
		DBPath:            getEnv("DB_PATH", fallback(file.DBPath, DefaultDBPath)),
		TelegramBotToken:  strings.TrimSpace(getEnv("TELEGRAM_BOT_TOKEN", file.TelegramBotToken)),
		APIURL:            strings.TrimSpace(getEnv("API_URL", file.APIURL)),
		SubmitTimeout:     submitTimeout,
		ValidateEventType: validateEventType,
	}, nil
}

// ValidateBot reports the settings the conversational front-end cannot start
// without.
func (cfg Config) ValidateBot() error {
	var missing []string
	if cfg.TelegramBotToken == "" {
		missing = append(missing, "TELEGRAM_BOT_TOKEN")
	}
	if cfg.APIURL == "" {
		missing = append(missing, "API_URL")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required settings: %s", strings.Join(missing, ", "))
	}
	return nil
}

func readFileConfig(path string) (fileConfig, error) {
	if strings.TrimSpace(path) == "" {
		return fileConfig{}, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fileConfig{}, fmt.Errorf("read config file: %w", err)
	}

	parsed := fileConfig{}
	if err := yaml.Unmarshal(content, &parsed); err != nil {
		return fileConfig{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return parsed, nil
}

func resolvePort(raw string) (string, error) {
	port := strings.TrimSpace(raw)
	if port == "" {
		return DefaultPort, nil
	}

	value, err := strconv.Atoi(port)
	if err != nil || value < 1 || value > 65535 {
		return "", fmt.Errorf("invalid PORT %q: must be between 1 and 65535", raw)
	}
	return port, nil
}

func getEnv(key string, fallbackValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallbackValue
	}
	return value
}

func fallback(value string, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}
