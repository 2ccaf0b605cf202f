package stats

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/mcoot/battleship-go/internal/model"
	"github.com/mcoot/battleship-go/internal/storage"
)

// Service owns the cumulative statistics record.
// Store failures are logged and never returned: statistics must not block play.
type Service struct {
	store  storage.Store
	logger *slog.Logger

	mu     sync.Mutex
	loaded bool
	stats  model.Statistics
}

// New creates a new stats Service
func New(store storage.Store, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger.With(slog.String("component", "stats")),
	}
}

// Load returns the statistics, reading the store only on the first call.
// A missing, corrupt or unreachable record yields all zeros.
func (s *Service) Load(ctx context.Context) model.Statistics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

// Record counts a finished match and persists the new totals
func (s *Service) Record(ctx context.Context, winner model.Side) model.Statistics {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stats = s.loadLocked(ctx).Record(winner)

	data, err := json.Marshal(s.stats)
	if err != nil {
		s.logger.Warn("failed to encode statistics", slog.String("error", err.Error()))
		return s.stats
	}
	if err := s.store.Set(ctx, storage.StatsKey(), data, 0); err != nil {
		s.logger.Warn("failed to save statistics", slog.String("error", err.Error()))
	}

	s.logger.Info("statistics recorded",
		slog.String("winner", string(winner)),
		slog.Int("games_played", s.stats.GamesPlayed),
		slog.Int("wins", s.stats.Wins),
		slog.Int("losses", s.stats.Losses),
	)
	return s.stats
}

func (s *Service) loadLocked(ctx context.Context) model.Statistics {
	if s.loaded {
		return s.stats
	}
	s.loaded = true

	data, err := s.store.Get(ctx, storage.StatsKey())
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("failed to load statistics", slog.String("error", err.Error()))
		}
		return s.stats
	}

	var stats model.Statistics
	if err := json.Unmarshal(data, &stats); err != nil || !valid(stats) {
		s.logger.Warn("discarding corrupt statistics record")
		return s.stats
	}
	s.stats = stats
	return s.stats
}

func valid(stats model.Statistics) bool {
	return stats.Wins >= 0 && stats.Losses >= 0 && stats.GamesPlayed >= stats.Wins+stats.Losses
}

// ServiceInterface for dependency injection
type ServiceInterface interface {
	Load(ctx context.Context) model.Statistics
	Record(ctx context.Context, winner model.Side) model.Statistics
}

var _ ServiceInterface = (*Service)(nil)
