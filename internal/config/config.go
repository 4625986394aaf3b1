package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr string
	Store    StoreConfig
	Slack    SlackConfig
	Reminder ReminderConfig
}

type StoreConfig struct {
	// Backend: "cloudflare" или "memory" (для локальной разработки)
	Backend     string
	BaseURL     string
	APIToken    string
	AccountID   string
	NamespaceID string
	// Timeout - таймаут одного запроса к хранилищу
	Timeout time.Duration
	// MaxRetries - бюджет повторов при конфликте конкурентной записи
	MaxRetries int
}

type SlackConfig struct {
	BotToken string
	APIURL   string
}

type ReminderConfig struct {
	Enabled bool
	// Roster - статический список получателей; пустой список означает
	// "все известные пользователи из команд"
	Roster   []string
	Interval time.Duration
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
		Store: StoreConfig{
			Backend:     getEnv("KV_BACKEND", "cloudflare"),
			BaseURL:     getEnv("CLOUDFLARE_BASE_URL", "https://api.cloudflare.com/client/v4"),
			APIToken:    getEnv("CLOUDFLARE_API_TOKEN", ""),
			AccountID:   getEnv("CLOUDFLARE_ACCOUNT_ID", ""),
			NamespaceID: getEnv("CLOUDFLARE_NAMESPACE_ID", ""),
			Timeout:     getDurationEnv("KV_TIMEOUT", 5*time.Second),
			MaxRetries:  getIntEnv("KV_MAX_RETRIES", 3),
		},
		Slack: SlackConfig{
			BotToken: getEnv("SLACK_BOT_TOKEN", ""),
			APIURL:   getEnv("SLACK_API_URL", "https://slack.com/api"),
		},
		Reminder: ReminderConfig{
			Enabled:  getBoolEnv("REMINDER_ENABLED", false),
			Roster:   getListEnv("REMINDER_ROSTER"),
			Interval: getDurationEnv("REMINDER_INTERVAL", 24*time.Hour),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getListEnv(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}
