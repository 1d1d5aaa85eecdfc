package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Auth     AuthConfig
	Ai       AIConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type AuthConfig struct {
	JwtSecret        string
	RegistrationCode string
}

type AIConfig struct {
	Provider string // "openai", "huggingface"
	BaseURL  string
	Model    string
	APIKey   string

	// Wall-clock budgets in seconds
	InsightTimeoutSec  int
	SummaryTimeoutSec  int
	DialogueTimeoutSec int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "Reflect360"),
		},
		Auth: AuthConfig{
			JwtSecret:        getEnv("JWT_SECRET", ""),
			RegistrationCode: getEnv("REGISTRATION_CODE", ""),
		},
		Ai: AIConfig{
			Provider:           getEnv("LLM_PROVIDER", "openai"),
			BaseURL:            getEnv("LLM_BASE_URL", ""),
			Model:              getEnv("LLM_MODEL", "gpt-4o-mini"),
			APIKey:             getEnv("LLM_API_KEY", ""),
			InsightTimeoutSec:  getEnvAsInt("AI_INSIGHT_TIMEOUT_SEC", 15),
			SummaryTimeoutSec:  getEnvAsInt("AI_SUMMARY_TIMEOUT_SEC", 25),
			DialogueTimeoutSec: getEnvAsInt("AI_DIALOGUE_TIMEOUT_SEC", 25),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
