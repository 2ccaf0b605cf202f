package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mcoot/battleship-go/internal/model"
	"github.com/mcoot/battleship-go/internal/storage"
)

// Version is bumped whenever the encoded form changes incompatibly
const Version = 1

// document is the stored form of a match
type document struct {
	Version int          `json:"version"`
	Match   *model.Match `json:"match"`
}

// Service saves and restores match snapshots
type Service struct {
	store  storage.Store
	ttl    time.Duration
	logger *slog.Logger
}

// New creates a new snapshot Service. Snapshots expire after ttl; zero keeps them forever.
func New(store storage.Store, ttl time.Duration, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		ttl:    ttl,
		logger: logger.With(slog.String("component", "snapshot")),
	}
}

// Save writes the full match state
func (s *Service) Save(ctx context.Context, m *model.Match) error {
	data, err := Encode(m)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, storage.MatchKey(m.ID), data, s.ttl)
}

// Load restores a match exactly as saved. A missing or unreadable snapshot
// is reported as ErrMatchNotFound.
func (s *Service) Load(ctx context.Context, id model.MatchID) (*model.Match, error) {
	data, err := s.store.Get(ctx, storage.MatchKey(id))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, model.ErrMatchNotFound
		}
		return nil, err
	}

	m, err := Decode(data)
	if err != nil {
		s.logger.Warn("discarding corrupt snapshot",
			slog.String("match_id", string(id)),
			slog.String("error", err.Error()),
		)
		return nil, model.ErrMatchNotFound
	}
	return m, nil
}

// Delete removes a match snapshot
func (s *Service) Delete(ctx context.Context, id model.MatchID) error {
	return s.store.Delete(ctx, storage.MatchKey(id))
}

// Encode serializes a match with the current version
func Encode(m *model.Match) ([]byte, error) {
	return json.Marshal(document{Version: Version, Match: m})
}

// Decode parses and validates an encoded match
func Decode(data []byte) (*model.Match, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Version != Version {
		return nil, fmt.Errorf("unsupported snapshot version %d", doc.Version)
	}
	if doc.Match == nil {
		return nil, errors.New("snapshot has no match")
	}
	if err := validate(doc.Match); err != nil {
		return nil, err
	}

	m := doc.Match
	if m.PlayerFleet == nil {
		m.PlayerFleet = model.Fleet{}
	}
	if m.ComputerFleet == nil {
		m.ComputerFleet = model.Fleet{}
	}
	if m.Moves == nil {
		m.Moves = []model.Move{}
	}
	return m, nil
}

func validate(m *model.Match) error {
	if m.ID == "" {
		return errors.New("snapshot has no match id")
	}
	switch m.Phase {
	case model.PhasePlacing, model.PhaseInProgress, model.PhaseOver:
	default:
		return fmt.Errorf("unknown phase %q", m.Phase)
	}
	switch m.Turn {
	case model.SidePlayer, model.SideComputer:
	default:
		return fmt.Errorf("unknown turn %q", m.Turn)
	}
	for _, b := range []*model.Board{m.PlayerBoard, m.ComputerBoard} {
		if err := validateBoard(b); err != nil {
			return err
		}
	}
	for _, c := range m.Targeting.HuntQueue {
		if !c.InBounds() {
			return fmt.Errorf("hunt candidate %v out of bounds", c)
		}
	}
	return nil
}

func validateBoard(b *model.Board) error {
	if b == nil {
		return errors.New("snapshot is missing a board")
	}
	if b.Size != model.BoardSize || len(b.Cells) != model.BoardSize {
		return fmt.Errorf("board size %d, want %d", b.Size, model.BoardSize)
	}
	for _, row := range b.Cells {
		if len(row) != model.BoardSize {
			return fmt.Errorf("board row length %d, want %d", len(row), model.BoardSize)
		}
		for _, cell := range row {
			switch cell {
			case model.CellEmpty, model.CellOccupied, model.CellHit, model.CellMiss:
			default:
				return fmt.Errorf("unknown cell state %q", cell)
			}
		}
	}
	return nil
}

// Nop discards snapshots; used when resumability is switched off
type Nop struct{}

func (Nop) Save(ctx context.Context, m *model.Match) error { return nil }

func (Nop) Load(ctx context.Context, id model.MatchID) (*model.Match, error) {
	return nil, model.ErrMatchNotFound
}

func (Nop) Delete(ctx context.Context, id model.MatchID) error { return nil }

// ServiceInterface for dependency injection
type ServiceInterface interface {
	Save(ctx context.Context, m *model.Match) error
	Load(ctx context.Context, id model.MatchID) (*model.Match, error)
	Delete(ctx context.Context, id model.MatchID) error
}

var (
	_ ServiceInterface = (*Service)(nil)
	_ ServiceInterface = Nop{}
)
