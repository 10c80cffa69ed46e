package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr string
	GinMode string

	APIBaseURL string
	APITimeout time.Duration

	// StorageDriver selects the durable client storage: memory, mysql or redis.
	StorageDriver string
	MySQLDSN      string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	SessionTTL        time.Duration
	DurableTTL        time.Duration
	TokenCookieMaxAge int

	CORSAllowedOrigins []string
	SignInRatePerMin   int
	// JanitorSpec is a cron spec; empty uses jobs.DefaultJanitorSpec.
	JanitorSpec string
}

func LoadEnv() Env {
	if err := godotenv.Load(); err != nil {
		log.Println("[CONFIG] no .env file found, using process environment")
	}

	return Env{
		AppAddr: getEnv("APP_ADDR", ":8080"),
		GinMode: strings.TrimSpace(os.Getenv("GIN_MODE")),

		APIBaseURL: strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:5000/api"), "/"),
		APITimeout: getDurationEnv("API_TIMEOUT", 10*time.Second),

		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", "memory")),
		MySQLDSN:      getEnv("MYSQL_DSN", "root:@tcp(127.0.0.1:3306)/flight_front?parseTime=true&charset=utf8mb4&timeout=5s"),
		RedisAddr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getIntEnv("REDIS_DB", 0),

		SessionTTL:        getDurationEnv("SESSION_TTL", 24*time.Hour),
		DurableTTL:        getDurationEnv("DURABLE_TTL", 30*24*time.Hour),
		TokenCookieMaxAge: getIntEnv("TOKEN_COOKIE_MAX_AGE", 86400),

		CORSAllowedOrigins: getStringSliceEnv("CORS_ALLOWED_ORIGINS", []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
		}),
		SignInRatePerMin: getIntEnv("SIGNIN_RATE_PER_MIN", 10),
		JanitorSpec:      getEnv("JANITOR_SPEC", ""),
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

// getStringSliceEnv reads a comma-separated list; empty items are dropped.
func getStringSliceEnv(key string, fallback []string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
