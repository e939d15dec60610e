package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr       string
	DBDSN      string
	UploadDir  string
	CORSOrigin string
	LogFile    string
}

func Load() Config {
	// .env is optional; real env vars win either way.
	_ = godotenv.Load()

	cfg := Config{
		Addr:       getenv("ADDR", ":8000"),
		DBDSN:      getenv("DB_DSN", "shopapi.db"),
		UploadDir:  getenv("UPLOAD_DIR", "uploads/images"),
		CORSOrigin: getenv("CORS_ORIGIN", "http://localhost:5173"),
		LogFile:    getenv("LOG_FILE", ""),
	}
	log.Printf("[config] ADDR=%s DB_DSN=%s UPLOAD_DIR=%s CORS_ORIGIN=%s", cfg.Addr, cfg.DBDSN, cfg.UploadDir, cfg.CORSOrigin)
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
