package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/mcoot/battleship-go/internal/config"
	"github.com/mcoot/battleship-go/internal/dependencies/clock"
	"github.com/mcoot/battleship-go/internal/dependencies/random"
	"github.com/mcoot/battleship-go/internal/events"
	"github.com/mcoot/battleship-go/internal/services/combat"
	"github.com/mcoot/battleship-go/internal/services/fleet"
	"github.com/mcoot/battleship-go/internal/services/match"
	"github.com/mcoot/battleship-go/internal/services/snapshot"
	"github.com/mcoot/battleship-go/internal/services/stats"
	"github.com/mcoot/battleship-go/internal/services/targeting"
	"github.com/mcoot/battleship-go/internal/storage"
	filestorage "github.com/mcoot/battleship-go/internal/storage/file"
	"github.com/mcoot/battleship-go/internal/storage/memory"
	pgstorage "github.com/mcoot/battleship-go/internal/storage/postgres"
	redisstorage "github.com/mcoot/battleship-go/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory   = "memory"
	StorageTypeRedis    = "redis"
	StorageTypePostgres = "postgres"
	StorageTypeFile     = "file"
)

// App contains all wired application components
type App struct {
	// Storage
	Store storage.Store

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	FleetService    *fleet.Service
	CombatService   *combat.Service
	Targeting       targeting.Strategy
	StatsService    *stats.Service
	Snapshots       snapshot.ServiceInterface
	MatchController *match.Controller
	HubManager      *events.HubManager
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// DatabaseURL is the Postgres connection string (required if StorageType is "postgres")
	DatabaseURL string
	// DataDir is where the file store keeps its records
	// If empty, the user config directory is used
	DataDir string
	// DisableSnapshots turns off match resumability
	DisableSnapshots bool
	// MatchTTL is how long an untouched snapshot is kept; zero keeps it forever
	MatchTTL time.Duration
	// Targeting names the computer's targeting strategy; empty means hunt
	Targeting string
}

// ConfigFrom translates environment configuration into a factory Config
func ConfigFrom(c config.Config, logger *slog.Logger) Config {
	cfg := Config{
		Logger:           logger,
		StorageType:      c.StorageType,
		DatabaseURL:      c.DatabaseURL,
		DataDir:          c.DataDir,
		DisableSnapshots: !c.Snapshots,
		MatchTTL:         c.MatchTTL,
		Targeting:        c.Targeting,
	}
	if c.RedisURL != "" {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = c.RedisURL
		cfg.RedisConfig = &redisCfg
	}
	return cfg
}

// New creates a new application with all dependencies wired
func New(ctx context.Context, cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	store, err := newStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	strategy, err := targeting.New(cfg.Targeting, rnd)
	if err != nil {
		_ = closeStore(store)
		return nil, err
	}

	return newWithDependencies(store, clk, rnd, strategy, snapshotsFor(store, cfg, logger), logger), nil
}

func newStore(ctx context.Context, cfg Config) (storage.Store, error) {
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		return memory.New(), nil
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		return redisstorage.New(*cfg.RedisConfig)
	case StorageTypePostgres:
		if cfg.DatabaseURL == "" {
			return nil, errors.New("DatabaseURL required when StorageType is postgres")
		}
		return pgstorage.New(ctx, cfg.DatabaseURL)
	case StorageTypeFile:
		dir := cfg.DataDir
		if dir == "" {
			var err error
			if dir, err = filestorage.DefaultDir(); err != nil {
				return nil, err
			}
		}
		return filestorage.New(dir)
	default:
		return nil, fmt.Errorf("invalid StorageType %q: must be memory, redis, postgres or file", storageType)
	}
}

func snapshotsFor(store storage.Store, cfg Config, logger *slog.Logger) snapshot.ServiceInterface {
	if cfg.DisableSnapshots {
		return snapshot.Nop{}
	}
	return snapshot.New(store, cfg.MatchTTL, logger)
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Store,
	clk clock.Clock,
	fleetRandom random.Random,
	strategy targeting.Strategy,
	snapshots snapshot.ServiceInterface,
	logger *slog.Logger,
) *App {
	fleetService := fleet.New(fleetRandom, logger)
	combatService := combat.New(clk, logger)
	statsService := stats.New(store, logger)
	hubManager := events.NewHubManager(logger)
	matchController := match.NewController(
		fleetService,
		combatService,
		strategy,
		statsService,
		snapshots,
		hubManager,
		clk,
		logger,
	)

	return &App{
		Store:           store,
		Clock:           clk,
		Random:          fleetRandom,
		FleetService:    fleetService,
		CombatService:   combatService,
		Targeting:       strategy,
		StatsService:    statsService,
		Snapshots:       snapshots,
		MatchController: matchController,
		HubManager:      hubManager,
	}
}

// Close stops the event hubs and releases the store's connections
func (a *App) Close() error {
	a.HubManager.Close()
	return closeStore(a.Store)
}

func closeStore(store storage.Store) error {
	if c, ok := store.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
