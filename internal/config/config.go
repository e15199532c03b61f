package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var (
	JwtSecret           string
	DbHost              string
	DbPort              string
	DbUser              string
	DbPassword          string
	DbName              string
	DbTimeout           time.Duration
	ServerPort          string
	Issuer              string
	LogLevel            string
	LogFormat           string
	RateLimitPerSecond  float64
	RateLimitBurst      int
	ValidationRulesFile string
	AllowedOrigins      []string
	SessionIdleTimeout  time.Duration
	SessionSweepPeriod  time.Duration
)

func LoadConfig() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	JwtSecret = getEnv("JWT_SECRET", "defaultsecret")
	DbHost = getEnv("DB_HOST", "localhost")
	DbPort = getEnv("DB_PORT", "5432")
	DbUser = getEnv("DB_USER", "postgres")
	DbPassword = getEnv("DB_PASSWORD", "password")
	DbName = getEnv("DB_NAME", "programhub")
	ServerPort = getEnv("SERVER_PORT", "8080")
	Issuer = getEnv("Issuer", "programhub")
	LogLevel = getEnv("LOG_LEVEL", "info")
	LogFormat = getEnv("LOG_FORMAT", "text")
	ValidationRulesFile = getEnv("VALIDATION_RULES_FILE", "")

	DbTimeout = time.Duration(getEnvInt("DB_TIMEOUT_SECONDS", 5)) * time.Second
	RateLimitBurst = getEnvInt("RATE_LIMIT_BURST", 10)
	RateLimitPerSecond, err = strconv.ParseFloat(getEnv("RATE_LIMIT_PER_SECOND", "5"), 64)
	if err != nil || RateLimitPerSecond <= 0 {
		RateLimitPerSecond = 5
	}

	SessionIdleTimeout = time.Duration(getEnvInt("SESSION_IDLE_MINUTES", 30)) * time.Minute
	SessionSweepPeriod = time.Duration(getEnvInt("SESSION_SWEEP_MINUTES", 5)) * time.Minute

	AllowedOrigins = splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:,http://127.0.0.1:"))
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
