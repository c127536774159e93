// Package config reads process configuration from the environment so main
// stays lean. Every knob has a development default; production overrides via
// GUILD_* variables.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config captures everything the server process needs at startup.
type Config struct {
	Addr            string
	Env             string
	JWTSigningKey   string
	AccessTokenTTL  time.Duration
	ShutdownTimeout time.Duration

	// DatabaseURL selects the Postgres backend when set; empty runs the
	// in-memory backend, which is enough for local development.
	DatabaseURL string

	Minio MinioConfig
}

// MinioConfig is the object-storage connection for supporting documents.
// Document features are disabled when Endpoint is empty.
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// FromEnv builds a Config from environment variables.
func FromEnv() Config {
	return Config{
		Addr:            getenv("GUILD_ADDR", ":8080"),
		Env:             getenv("GUILD_ENV", "development"),
		JWTSigningKey:   getenv("GUILD_JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		AccessTokenTTL:  getduration("GUILD_ACCESS_TOKEN_TTL", time.Hour),
		ShutdownTimeout: getduration("GUILD_SHUTDOWN_TIMEOUT", 10*time.Second),
		DatabaseURL:     os.Getenv("GUILD_DATABASE_URL"),
		Minio: MinioConfig{
			Endpoint:  os.Getenv("GUILD_MINIO_ENDPOINT"),
			AccessKey: os.Getenv("GUILD_MINIO_ACCESS_KEY"),
			SecretKey: os.Getenv("GUILD_MINIO_SECRET_KEY"),
			Bucket:    getenv("GUILD_MINIO_BUCKET", "guild-documents"),
			UseSSL:    getbool("GUILD_MINIO_USE_SSL"),
		},
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getduration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getbool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}
