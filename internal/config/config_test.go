package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CHAT_ADDR", "")
	t.Setenv("CHAT_DB_PATH", "")
	t.Setenv("REDIS_CONNSTRING", "")
	t.Setenv("OTLP_ENDPOINT", "")

	cfg := Load()

	if cfg.Addr != ":8080" {
		t.Errorf("Addr default: got %q, want %q", cfg.Addr, ":8080")
	}
	if cfg.DBPath != "./chat.db" {
		t.Errorf("DBPath default: got %q, want %q", cfg.DBPath, "./chat.db")
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("RedisAddr default: got %q, want %q", cfg.RedisAddr, "localhost:6379")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CHAT_ADDR", ":9000")
	t.Setenv("CHAT_DB_PATH", "/tmp/test.db")
	t.Setenv("REDIS_CONNSTRING", "redis:6380")
	t.Setenv("OTLP_ENDPOINT", "collector:4317")

	cfg := Load()

	if cfg.Addr != ":9000" {
		t.Errorf("Addr: got %q, want %q", cfg.Addr, ":9000")
	}
	if cfg.DBPath != "/tmp/test.db" {
		t.Errorf("DBPath: got %q, want %q", cfg.DBPath, "/tmp/test.db")
	}
	if cfg.RedisAddr != "redis:6380" {
		t.Errorf("RedisAddr: got %q, want %q", cfg.RedisAddr, "redis:6380")
	}
	if cfg.OTLPEndpoint != "collector:4317" {
		t.Errorf("OTLPEndpoint: got %q, want %q", cfg.OTLPEndpoint, "collector:4317")
	}
}
