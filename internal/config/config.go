package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/mcoot/battleship-go/internal/model"
)

// Config holds settings shared by the server and the terminal game
type Config struct {
	StorageType string // memory, redis, postgres or file; empty lets the binary choose
	RedisURL    string
	DatabaseURL string
	DataDir     string // directory for the file store

	HTTPHost string
	HTTPPort int

	LogLevel  slog.Level
	Snapshots bool
	MatchTTL  time.Duration
	Targeting string
}

// Default returns the configuration used when nothing is set
func Default() Config {
	return Config{
		HTTPPort:  8080,
		LogLevel:  slog.LevelInfo,
		Snapshots: true,
		MatchTTL:  24 * time.Hour,
		Targeting: model.TargetingHunt,
	}
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over the .env file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("reading .env: %w", err)
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from an environment lookup function
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get("STORAGE_TYPE"); ok {
		cfg.StorageType = strings.ToLower(v)
	}
	if v, ok := get("REDIS_URL"); ok {
		cfg.RedisURL = v
	}
	if v, ok := get("DATABASE_URL"); ok {
		cfg.DatabaseURL = v
	}
	if v, ok := get("DATA_DIR"); ok {
		cfg.DataDir = v
	}
	if v, ok := get("HTTP_HOST"); ok {
		cfg.HTTPHost = v
	}
	if v, ok := get("HTTP_PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			return Config{}, fmt.Errorf("invalid HTTP_PORT %q", v)
		}
		cfg.HTTPPort = port
	}
	if v, ok := get("LOG_LEVEL"); ok {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return Config{}, fmt.Errorf("invalid LOG_LEVEL %q", v)
		}
	}
	if v, ok := get("SNAPSHOTS"); ok {
		switch strings.ToLower(v) {
		case "on", "true", "1", "yes":
			cfg.Snapshots = true
		case "off", "false", "0", "no":
			cfg.Snapshots = false
		default:
			return Config{}, fmt.Errorf("invalid SNAPSHOTS %q: use on or off", v)
		}
	}
	if v, ok := get("MATCH_TTL"); ok {
		ttl, err := time.ParseDuration(v)
		if err != nil || ttl < 0 {
			return Config{}, fmt.Errorf("invalid MATCH_TTL %q", v)
		}
		cfg.MatchTTL = ttl
	}
	if v, ok := get("TARGETING_STRATEGY"); ok {
		v = strings.ToLower(v)
		if !slices.Contains(model.ValidTargetingStrategies(), v) {
			return Config{}, fmt.Errorf("invalid TARGETING_STRATEGY %q: use one of %s",
				v, strings.Join(model.ValidTargetingStrategies(), ", "))
		}
		cfg.Targeting = v
	}

	return cfg, nil
}
