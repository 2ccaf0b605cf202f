package cli

import (
	"log/slog"

	"github.com/mcoot/battleship-go/internal/config"
	"github.com/mcoot/battleship-go/internal/factory"
)

// DefaultSession is the match id used when --session is not given
const DefaultSession = "default"

// Config holds CLI configuration
type Config struct {
	// ServerURL switches the CLI to play against a running server
	ServerURL string

	StorageType string
	RedisURL    string
	DatabaseURL string
	DataDir     string

	Session string
	Output  string
	Verbose bool

	env config.Config
}

// DefaultConfig returns a Config seeded from the environment and .env
func DefaultConfig() (*Config, error) {
	env, err := config.Load()
	if err != nil {
		return nil, err
	}
	return configFrom(env), nil
}

func configFrom(env config.Config) *Config {
	storageType := env.StorageType
	if storageType == "" {
		// Statistics should survive between runs of the terminal game
		storageType = factory.StorageTypeFile
	}
	return &Config{
		StorageType: storageType,
		RedisURL:    env.RedisURL,
		DatabaseURL: env.DatabaseURL,
		DataDir:     env.DataDir,
		Session:     DefaultSession,
		Output:      "text",
		env:         env,
	}
}

// Remote reports whether commands go to a server instead of a local engine
func (c *Config) Remote() bool {
	return c.ServerURL != ""
}

// FactoryConfig builds the local engine's configuration, flags taking
// precedence over the environment
func (c *Config) FactoryConfig(logger *slog.Logger) factory.Config {
	env := c.env
	env.StorageType = c.StorageType
	env.RedisURL = c.RedisURL
	env.DatabaseURL = c.DatabaseURL
	env.DataDir = c.DataDir
	return factory.ConfigFrom(env, logger)
}

// LogLevel is the level for diagnostics written to stderr
func (c *Config) LogLevel() slog.Level {
	if c.Verbose {
		return slog.LevelDebug
	}
	return max(c.env.LogLevel, slog.LevelWarn)
}
