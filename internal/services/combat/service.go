package combat

import (
	"log/slog"

	"github.com/mcoot/battleship-go/internal/dependencies/clock"
	"github.com/mcoot/battleship-go/internal/model"
)

// Service resolves shots against a match
type Service struct {
	clock  clock.Clock
	logger *slog.Logger
}

// New creates a new combat Service
func New(clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		clock:  clock,
		logger: logger.With(slog.String("component", "combat")),
	}
}

// Fire resolves a shot by side at the opponent's board.
// A rejected shot leaves the match untouched: no turn change, no move logged.
func (s *Service) Fire(m *model.Match, side model.Side, target model.Coordinate) (model.ShotOutcome, error) {
	if m.Phase != model.PhaseInProgress {
		return model.ShotOutcome{}, model.ErrMatchNotActive
	}
	if m.Turn != side {
		return model.ShotOutcome{}, model.ErrNotYourTurn
	}

	opponent := side.Opponent()
	board := m.BoardFor(opponent)
	result, err := board.ResolveShot(target)
	if err != nil {
		return model.ShotOutcome{}, err
	}

	outcome := model.ShotOutcome{
		Side:   side,
		Target: target,
		Result: result,
	}

	if result == model.ShotHit {
		if placement, ok := m.FleetFor(opponent).Covering(target); ok && placement.IsSunk(board) {
			outcome.Sunk = placement.Ship
		}
	}

	m.Moves = append(m.Moves, model.Move{
		Side:   side,
		Target: target,
		Result: result,
		Sunk:   outcome.Sunk,
	})
	m.UpdatedAt = s.clock.Now()

	if !board.HasSurvivingShips() {
		m.Phase = model.PhaseOver
		m.Winner = side
		outcome.MatchOver = true

		s.logger.Info("match over",
			slog.String("match_id", string(m.ID)),
			slog.String("winner", string(side)),
			slog.Int("moves", len(m.Moves)),
		)
		return outcome, nil
	}

	m.Turn = opponent

	s.logger.Debug("shot resolved",
		slog.String("match_id", string(m.ID)),
		slog.String("side", string(side)),
		slog.String("target", target.String()),
		slog.String("result", string(result)),
	)

	return outcome, nil
}

// ServiceInterface for dependency injection
type ServiceInterface interface {
	Fire(m *model.Match, side model.Side, target model.Coordinate) (model.ShotOutcome, error)
}

var _ ServiceInterface = (*Service)(nil)
