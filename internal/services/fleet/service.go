package fleet

import (
	"fmt"
	"log/slog"

	"github.com/mcoot/battleship-go/internal/dependencies/random"
	"github.com/mcoot/battleship-go/internal/model"
)

// MaxPlacementAttempts bounds the random search for a single ship.
// A 10x10 board always has room for the catalog, so hitting this means
// the random source is broken.
const MaxPlacementAttempts = 10000

// Service validates and commits ship placements
type Service struct {
	random random.Random
	logger *slog.Logger
}

// New creates a new fleet Service
func New(random random.Random, logger *slog.Logger) *Service {
	return &Service{
		random: random,
		logger: logger.With(slog.String("component", "fleet")),
	}
}

// CanPlace reports whether every footprint cell is on the board and Empty
func (s *Service) CanPlace(board *model.Board, ship model.ShipSpec, origin model.Coordinate, orientation model.Orientation) bool {
	for _, cell := range model.Footprint(origin, orientation, ship.Length) {
		state, err := board.CellAt(cell)
		if err != nil || state != model.CellEmpty {
			return false
		}
	}
	return true
}

// Place commits a ship to the board and returns the fleet with the new placement.
// On error neither the board nor the fleet is changed.
func (s *Service) Place(board *model.Board, fleet model.Fleet, ship model.ShipSpec, origin model.Coordinate, orientation model.Orientation) (model.Fleet, error) {
	if fleet.Has(ship.Name) {
		return fleet, fmt.Errorf("%w: %s", model.ErrDuplicateShip, ship.Name)
	}
	if !s.CanPlace(board, ship, origin, orientation) {
		return fleet, fmt.Errorf("%w: %s at %s %s", model.ErrInvalidPlacement, ship.Name, origin, orientation)
	}

	placement := model.Placement{
		Ship:        ship.Name,
		Origin:      origin,
		Orientation: orientation,
		Length:      ship.Length,
	}
	for _, cell := range placement.Footprint() {
		// CanPlace has checked every cell
		_ = board.SetOccupied(cell)
	}

	updated := make(model.Fleet, 0, len(fleet)+1)
	updated = append(updated, fleet...)
	updated = append(updated, placement)
	return updated, nil
}

// PlaceRandomFleet lays out the whole catalog on a fresh board
func (s *Service) PlaceRandomFleet() (*model.Board, model.Fleet, error) {
	board := model.NewBoard()
	fleet := model.Fleet{}

	for _, ship := range model.Catalog() {
		placed := false
		for attempt := 0; attempt < MaxPlacementAttempts; attempt++ {
			origin := model.Coordinate{
				Row: s.random.Intn(model.BoardSize),
				Col: s.random.Intn(model.BoardSize),
			}
			orientation := model.Horizontal
			if s.random.Intn(2) == 1 {
				orientation = model.Vertical
			}

			if !s.CanPlace(board, ship, origin, orientation) {
				continue
			}

			var err error
			fleet, err = s.Place(board, fleet, ship, origin, orientation)
			if err != nil {
				return nil, nil, err
			}
			placed = true
			break
		}

		if !placed {
			s.logger.Error("random placement exhausted",
				slog.String("ship", string(ship.Name)),
				slog.Int("attempts", MaxPlacementAttempts),
			)
			return nil, nil, fmt.Errorf("%w: %s after %d attempts", model.ErrPlacementExhausted, ship.Name, MaxPlacementAttempts)
		}
	}

	return board, fleet, nil
}

// ServiceInterface for dependency injection
type ServiceInterface interface {
	CanPlace(board *model.Board, ship model.ShipSpec, origin model.Coordinate, orientation model.Orientation) bool
	Place(board *model.Board, fleet model.Fleet, ship model.ShipSpec, origin model.Coordinate, orientation model.Orientation) (model.Fleet, error)
	PlaceRandomFleet() (*model.Board, model.Fleet, error)
}

var _ ServiceInterface = (*Service)(nil)
