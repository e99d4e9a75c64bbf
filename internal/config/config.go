package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config структура конфигурации клиента
type Config struct {
	APIBaseURL   string
	AuthToken    string
	PollInterval time.Duration
	HTTPTimeout  time.Duration
	AppEnv       string // Окружение приложения
}

// LoadConfig загружает переменные из .env
func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("⚠️ .env файл не найден, используем переменные окружения")
	}

	cfg := &Config{
		APIBaseURL:   getEnv("OBMEN_API_URL", ""),
		AuthToken:    getEnv("OBMEN_AUTH_TOKEN", ""),
		PollInterval: getDuration("OBMEN_POLL_INTERVAL", 10*time.Second),
		HTTPTimeout:  getDuration("OBMEN_HTTP_TIMEOUT", 10*time.Second),
		AppEnv:       getEnv("APP_ENV", "production"), // По умолчанию production
	}

	if cfg.APIBaseURL == "" {
		log.Fatal("❌ Ошибка: не задана обязательная переменная окружения OBMEN_API_URL")
	}

	return cfg
}

// getEnv получает переменную окружения или использует дефолтное значение
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getDuration получает переменную окружения как интервал времени
func getDuration(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		log.Printf("⚠️ Неверное значение %s=%q, используем %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}
