package targeting

import (
	"fmt"

	"github.com/mcoot/battleship-go/internal/dependencies/random"
	"github.com/mcoot/battleship-go/internal/model"
)

// Strategy decides where the computer fires next.
// Board is always the player's board as the computer sees it.
type Strategy interface {
	// ChooseTarget returns an unresolved cell, updating state as candidates
	// are consumed. It returns false only when every cell is resolved.
	ChooseTarget(state *model.TargetingState, board *model.Board) (model.Coordinate, bool)

	// RecordResult feeds the outcome of the chosen shot back into state
	RecordResult(state *model.TargetingState, board *model.Board, target model.Coordinate, result model.ShotResult)

	// Name is the strategy's registered name
	Name() string
}

// New returns the strategy registered under name
func New(name string, rnd random.Random) (Strategy, error) {
	switch name {
	case model.TargetingHunt, "":
		return NewHuntStrategy(rnd), nil
	case model.TargetingRandom:
		return NewRandomStrategy(rnd), nil
	default:
		return nil, fmt.Errorf("unknown targeting strategy: %s", name)
	}
}

// chooseRandom picks uniformly among the cells not yet fired upon
func chooseRandom(rnd random.Random, board *model.Board) (model.Coordinate, bool) {
	candidates := board.Unresolved()
	if len(candidates) == 0 {
		return model.Coordinate{}, false
	}
	return candidates[rnd.Intn(len(candidates))], true
}
