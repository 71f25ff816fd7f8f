// File: internal/config/config.go
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort    string
	DatabasePath  string
	LastFMAPIKey  string
	LastFMBaseURL string
	// LastFMTimeout bounds every call to the external song API. The original
	// service had no timeout at all; an explicit value is required here.
	LastFMTimeout time.Duration
	// SongLimit is the number of tracks requested per lookup.
	SongLimit   int
	Environment string
}

// Load reads configuration from environment variables or .env file.
func Load() *Config {
	env := os.Getenv("ENV")
	if strings.ToLower(env) != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found; continuing with environment variables")
		}
	}

	cfg := &Config{
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		DatabasePath:  getEnv("DATABASE_PATH", "tunegen.db"),
		LastFMAPIKey:  getEnv("LASTFM_API_KEY", ""),
		LastFMBaseURL: getEnv("LASTFM_BASE_URL", "http://ws.audioscrobbler.com/2.0/"),
		LastFMTimeout: time.Duration(getEnvAsInt("LASTFM_TIMEOUT_SECONDS", 10)) * time.Second,
		SongLimit:     getEnvAsInt("SONG_LIMIT", 5),
		Environment:   env,
	}

	// Validation for production environments
	if strings.ToLower(env) == "production" {
		missing := []string{}
		if cfg.LastFMAPIKey == "" {
			missing = append(missing, "LASTFM_API_KEY")
		}
		if cfg.LastFMBaseURL == "" {
			missing = append(missing, "LASTFM_BASE_URL")
		}
		if len(missing) > 0 {
			log.Fatalf("Missing required production environment variables: %v", missing)
		}
	}

	return cfg
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an env var as an integer, with a fallback.
func getEnvAsInt(key string, defaultValue int) int {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(strValue)
	if err != nil {
		log.Printf("Warning: could not parse env var %s as integer. Using default value.", key)
		return defaultValue
	}
	return intValue
}
