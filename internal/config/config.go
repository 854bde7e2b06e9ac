package config

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Config holds application configuration from environment.
type Config struct {
	HTTPPort           string
	DatabaseURL        string
	DBPoolSize         int
	RedisURL           string
	RedisPoolSize      int
	KafkaBrokers       []string
	KafkaTopic         string
	KafkaPartitions    int
	SessionSecret      string
	SessionTTL         time.Duration
	CookieSecure       bool
	PasswordIterations int
	LoginGenericErrors bool
	LogLevel           string
}

var (
	cfg     *Config
	cfgOnce sync.Once
)

// Get returns the application config (loads once from env).
func Get() *Config {
	cfgOnce.Do(func() {
		cfg = Load()
	})
	return cfg
}

// Load reads a fresh Config from the environment. Most callers want Get.
func Load() *Config {
	return &Config{
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		DBPoolSize:         getIntEnv("DB_POOL_SIZE", 20),
		RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379/0"),
		RedisPoolSize:      getIntEnv("REDIS_POOL_SIZE", 10),
		KafkaBrokers:       getSliceEnv("KAFKA_BROKERS"),
		KafkaTopic:         getEnv("KAFKA_ACTIVITY_TOPIC", "todo-activity"),
		KafkaPartitions:    getIntEnv("KAFKA_PARTITIONS", 3),
		SessionSecret:      os.Getenv("SESSION_SECRET"),
		SessionTTL:         time.Duration(getIntEnv("SESSION_TTL_HOURS", 720)) * time.Hour,
		CookieSecure:       getBoolEnv("COOKIE_SECURE", false),
		PasswordIterations: getIntEnv("PASSWORD_ITERATIONS", 600000),
		LoginGenericErrors: getBoolEnv("LOGIN_GENERIC_ERRORS", false),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getIntEnv(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return defaultVal
}

func getBoolEnv(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultVal
}

// getSliceEnv splits a comma-separated list. Unset means an empty slice.
func getSliceEnv(key string) []string {
	var out []string
	for _, s := range strings.Split(os.Getenv(key), ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
