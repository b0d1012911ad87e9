package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config carries everything the process needs; it is built once in main and
// handed to the App instead of living in package-level globals.
type Config struct {
	ListenAddr string
	DBDSN      string
	JWTSecret  []byte
	UploadBase string
}

// LoadConfig reads the environment (after loading a local .env if present).
// DB_DSN is mandatory; JWT_SECRET falls back to a development default.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		ListenAddr: ":8081",
		UploadBase: "uploads",
	}
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("UPLOAD_BASE"); v != "" {
		cfg.UploadBase = v
	}
	cfg.DBDSN = os.Getenv("DB_DSN")
	if cfg.DBDSN == "" {
		return Config{}, fmt.Errorf("DB_DSN is not set; a Postgres DSN is required")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-insecure-secret-change" // development fallback
	}
	cfg.JWTSecret = []byte(secret)
	return cfg, nil
}
