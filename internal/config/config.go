package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	ServerPort int

	DatabaseURL string

	JWTSecret []byte

	GCSBucket    string
	GCSProjectID string

	KafkaBrokers []string

	LogLevel string
}

func Load() Config {
	return Config{
		ServerPort: EnvIntDefault("SERVER_PORT", 8080),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		JWTSecret: []byte(os.Getenv("JWT_SECRET")),

		GCSBucket:    os.Getenv("GCS_BUCKET_NAME"),
		GCSProjectID: os.Getenv("GCS_PROJECT_ID"),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),

		LogLevel: os.Getenv("LOG_LEVEL"),
	}
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
