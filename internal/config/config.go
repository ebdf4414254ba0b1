package config

import (
	"os"
	"strconv"
)

// Config holds the application configuration
type Config struct {
	Port           string
	DBPath         string // upload-history log, not the derived model
	MaxUploadBytes int64
}

// Load reads configuration from the environment with defaults
func Load() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./data/probenplan.db"
	}

	maxUpload := int64(20 * 1024 * 1024)
	if v := os.Getenv("MAX_UPLOAD_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			maxUpload = n
		}
	}

	return &Config{
		Port:           port,
		DBPath:         dbPath,
		MaxUploadBytes: maxUpload,
	}
}
