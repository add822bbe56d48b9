package config

import (
	"os"
	"strconv"
	"time"
)

// Config carries all env-sourced settings. Call godotenv.Load before FromEnv
// if a .env file should be honored.
type Config struct {
	Port           string
	DBPath         string
	GeminiAPIKey   string
	GeminiModel    string
	GeminiEndpoint string
	LoadTimeout    time.Duration
	AITimeout      time.Duration
}

func FromEnv() Config {
	return Config{
		Port:           envOr("PORT", "8000"),
		DBPath:         envOr("DB_PATH", "hr_insights.db"),
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		GeminiModel:    envOr("GEMINI_MODEL", "gemini-2.0-flash"),
		GeminiEndpoint: os.Getenv("GEMINI_ENDPOINT"),
		LoadTimeout:    secondsOr("LOAD_TIMEOUT_SEC", 15),
		AITimeout:      secondsOr("AI_TIMEOUT_SEC", 30),
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func secondsOr(k string, def int) time.Duration {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return time.Duration(def) * time.Second
}
