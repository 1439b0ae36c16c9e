package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	BackendURL  string
	ListenAddr  string
	TokenPath   string
	LogLevel    string
	CORSOrigin  string
	HTTPTimeout time.Duration
}

func New() *Config {
	// Local overrides; missing .env is fine.
	_ = godotenv.Load()

	return &Config{
		BackendURL:  getEnv("BACKENDURL", "http://localhost:5001"),
		ListenAddr:  getEnv("LISTENADDR", "127.0.0.1:8080"),
		TokenPath:   getEnv("TOKENPATH", defaultTokenPath()),
		LogLevel:    getEnv("LOGLEVEL", "info"),
		CORSOrigin:  getEnv("CORSORIGIN", "http://localhost:3000"),
		HTTPTimeout: getDuration("HTTPTIMEOUT", 30*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func defaultTokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tablero-session.json"
	}
	return home + "/.tablero-session.json"
}
