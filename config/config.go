package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port       string
	DBDriver   string
	DSN        string
	CORSOrigin string

	// Daily-estimate warning threshold, in hours.
	ThresholdHours float64

	SMTPHost  string
	SMTPPort  int
	SMTPUser  string
	SMTPPass  string
	EmailFrom string
}

// Load reads configuration from the environment, with a .env file as
// fallback for local development.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:           getenv("PORT", "8000"),
		DBDriver:       getenv("DB_DRIVER", "mysql"),
		DSN:            getenv("DB_DSN", defaultDSN()),
		CORSOrigin:     getenv("CORS_ORIGIN", "http://localhost:3000"),
		ThresholdHours: getfloat("THRESHOLD_HOURS", 8),
		SMTPHost:       os.Getenv("SMTP_HOST"),
		SMTPPort:       getint("SMTP_PORT", 587),
		SMTPUser:       os.Getenv("SMTP_USER"),
		SMTPPass:       os.Getenv("SMTP_PASS"),
		EmailFrom:      os.Getenv("EMAIL_FROM"),
	}
}

func defaultDSN() string {
	return fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		getenv("DB_USER", "admin"),
		getenv("DB_PASSWORD", "12345678"),
		getenv("DB_HOST", "127.0.0.1"),
		getenv("DB_PORT", "3306"),
		getenv("DB_NAME", "taskdbgo"),
	)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getint(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getfloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
