package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port       string
	DBDSN      string
	MediaDir   string
	LogFile    string
	JWTSecret  string
	TokenTTL   time.Duration
	AdminEmail string
	AdminPass  string
}

func Load() Config {
	cfg := Config{
		Port:       getenv("PORT", "8080"),
		DBDSN:      getenv("DB_DSN", "atelier.db"), // sqlite file in project root
		MediaDir:   getenv("MEDIA_DIR", "./media"),
		LogFile:    getenv("LOG_FILE", "./atelier.log"),
		JWTSecret:  getenv("JWT_SECRET", "dev-secret-change-me"),
		TokenTTL:   24 * time.Hour,
		AdminEmail: getenv("ADMIN_EMAIL", "admin@atelier.test"),
		AdminPass:  getenv("ADMIN_PASSWORD", "Passw0rd!"),
	}
	if v := os.Getenv("TOKEN_TTL_HOURS"); v != "" {
		if h, err := strconv.Atoi(v); err == nil && h > 0 {
			cfg.TokenTTL = time.Duration(h) * time.Hour
		}
	}
	log.Printf("[config] PORT=%s DB_DSN=%s MEDIA_DIR=%s LOG_FILE=%s TOKEN_TTL=%s",
		cfg.Port, cfg.DBDSN, cfg.MediaDir, cfg.LogFile, cfg.TokenTTL)
	return cfg
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
