package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"HTTP_PORT", "DB_POOL_SIZE", "KAFKA_BROKERS", "SESSION_TTL_HOURS", "COOKIE_SECURE", "PASSWORD_ITERATIONS", "LOGIN_GENERIC_ERRORS"} {
		t.Setenv(k, "")
	}

	c := Load()
	if c.HTTPPort != "8080" {
		t.Errorf("HTTPPort: got %q, want 8080", c.HTTPPort)
	}
	if c.DBPoolSize != 20 {
		t.Errorf("DBPoolSize: got %d, want 20", c.DBPoolSize)
	}
	if len(c.KafkaBrokers) != 0 {
		t.Errorf("KafkaBrokers: got %v, want empty", c.KafkaBrokers)
	}
	if c.SessionTTL != 720*time.Hour {
		t.Errorf("SessionTTL: got %v, want 720h", c.SessionTTL)
	}
	if c.CookieSecure || c.LoginGenericErrors {
		t.Error("boolean flags should default to false")
	}
	if c.PasswordIterations != 600000 {
		t.Errorf("PasswordIterations: got %d", c.PasswordIterations)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("KAFKA_BROKERS", " k1:9092, ,k2:9092 ")
	t.Setenv("SESSION_TTL_HOURS", "2")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("DB_POOL_SIZE", "not-a-number")

	c := Load()
	if c.HTTPPort != "9000" {
		t.Errorf("HTTPPort: got %q", c.HTTPPort)
	}
	if len(c.KafkaBrokers) != 2 || c.KafkaBrokers[0] != "k1:9092" || c.KafkaBrokers[1] != "k2:9092" {
		t.Errorf("KafkaBrokers: got %v", c.KafkaBrokers)
	}
	if c.SessionTTL != 2*time.Hour {
		t.Errorf("SessionTTL: got %v", c.SessionTTL)
	}
	if !c.CookieSecure {
		t.Error("CookieSecure: want true")
	}
	if c.DBPoolSize != 20 {
		t.Errorf("DBPoolSize should fall back to default, got %d", c.DBPoolSize)
	}
}
