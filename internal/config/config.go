package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"league-activity/internal/constants"
)

type Config struct {
	RiotAPIKey string
	DBPath     string
	ServerPort string

	// RedisURL selects the preferred cache backend. Empty means
	// fallback-only mode.
	RedisURL string

	RefreshTTL            time.Duration
	RankedSampleThreshold int
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		RiotAPIKey:            getEnv("RIOT_API_KEY", ""),
		DBPath:                getEnv("DB_PATH", "league.db"),
		ServerPort:            getEnv("SERVER_PORT", "8080"),
		RedisURL:              getEnv("REDIS_URL", ""),
		RefreshTTL:            getEnvDuration("REFRESH_TTL", constants.ActivityRefreshTTL),
		RankedSampleThreshold: getEnvInt("RANKED_SAMPLE_THRESHOLD", constants.RankedSampleThreshold),
	}

	if cfg.RiotAPIKey == "" {
		return nil, fmt.Errorf("RIOT_API_KEY is required")
	}

	logger.Info().
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Bool("redis_configured", cfg.RedisURL != "").
		Dur("refresh_ttl", cfg.RefreshTTL).
		Int("ranked_sample_threshold", cfg.RankedSampleThreshold).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
