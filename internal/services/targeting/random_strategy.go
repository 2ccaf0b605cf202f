package targeting

import (
	"github.com/mcoot/battleship-go/internal/dependencies/random"
	"github.com/mcoot/battleship-go/internal/model"
)

// RandomStrategy never hunts: every shot is a blind pick
type RandomStrategy struct {
	random random.Random
}

// NewRandomStrategy creates a new RandomStrategy
func NewRandomStrategy(rnd random.Random) *RandomStrategy {
	return &RandomStrategy{random: rnd}
}

// ChooseTarget picks a random unresolved cell
func (s *RandomStrategy) ChooseTarget(state *model.TargetingState, board *model.Board) (model.Coordinate, bool) {
	return chooseRandom(s.random, board)
}

func (s *RandomStrategy) Name() string { return model.TargetingRandom }

// RecordResult does nothing
func (s *RandomStrategy) RecordResult(state *model.TargetingState, board *model.Board, target model.Coordinate, result model.ShotResult) {
}

var _ Strategy = (*RandomStrategy)(nil)
