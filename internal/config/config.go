package config

import "os"

// Config carries the runtime settings of the server, all sourced from the
// environment.
type Config struct {
	Addr         string
	DBPath       string
	RedisAddr    string
	OTLPEndpoint string
}

// Load reads the configuration from environment variables, falling back to
// local-development defaults.
func Load() Config {
	return Config{
		Addr:         getenv("CHAT_ADDR", ":8080"),
		DBPath:       getenv("CHAT_DB_PATH", "./chat.db"),
		RedisAddr:    getenv("REDIS_CONNSTRING", "localhost:6379"),
		OTLPEndpoint: getenv("OTLP_ENDPOINT", "otel-collector:4317"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
