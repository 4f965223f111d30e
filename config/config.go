package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port           string
	OutputDir      string
	MaxWorkers     int
	YTDLPPath      string
	ExtractTimeout time.Duration
	NATSUrl        string
}

func Load() *Config {
	cfg := &Config{
		Port:           getEnv("PORT", "4242"),
		OutputDir:      getEnv("OUTPUT_DIR", "data"),
		MaxWorkers:     getIntEnv("MAX_WORKERS", 5),
		YTDLPPath:      getEnv("YTDLP_PATH", "yt-dlp"),
		ExtractTimeout: getDurationEnv("EXTRACT_TIMEOUT", "10m"),
		NATSUrl:        getEnv("NATS_URL", ""),
	}

	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = 5
	}

	log.Printf("Config loaded - OutputDir: %s, MaxWorkers: %d, ExtractTimeout: %v",
		cfg.OutputDir, cfg.MaxWorkers, cfg.ExtractTimeout)

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue string) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
