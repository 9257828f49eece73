// Package config loads runtime settings from environment variables.
package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds every runtime setting the server needs.
type Config struct {
	ListenAddr string
	DataDir    string

	OMDBAPIKey  string
	OMDBBaseURL string

	TMDBAPIKey       string
	TMDBBaseURL      string
	TMDBImageBaseURL string

	LogFile      string
	LogMaxSizeMB int
}

// Load reads the configuration from the environment, falling back to
// defaults where a variable is unset. Base URLs are normally left at their
// defaults; they exist so tests and proxies can point clients elsewhere.
func Load() Config {
	return Config{
		ListenAddr: envOr("LISTEN_ADDR", ":8080"),
		DataDir:    envOr("DATA_DIR", "data"),

		OMDBAPIKey:  os.Getenv("OMDB_API_KEY"),
		OMDBBaseURL: os.Getenv("OMDB_BASE_URL"),

		TMDBAPIKey:       os.Getenv("TMDB_API_KEY"),
		TMDBBaseURL:      os.Getenv("TMDB_BASE_URL"),
		TMDBImageBaseURL: os.Getenv("TMDB_IMAGE_BASE_URL"),

		LogFile:      os.Getenv("LOG_FILE"),
		LogMaxSizeMB: envIntOr("LOG_MAX_SIZE_MB", 20),
	}
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}
