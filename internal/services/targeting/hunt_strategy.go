package targeting

import (
	"github.com/mcoot/battleship-go/internal/dependencies/random"
	"github.com/mcoot/battleship-go/internal/model"
)

// HuntStrategy searches at random until it scores a hit, then tries the
// neighbours of each hit in first-in-first-out order.
type HuntStrategy struct {
	random random.Random
}

// NewHuntStrategy creates a new HuntStrategy
func NewHuntStrategy(rnd random.Random) *HuntStrategy {
	return &HuntStrategy{random: rnd}
}

// ChooseTarget dequeues the oldest unresolved hunt candidate, discarding any
// that were resolved since they were queued. An empty queue clears the hunt
// and falls back to a random pick.
func (s *HuntStrategy) ChooseTarget(state *model.TargetingState, board *model.Board) (model.Coordinate, bool) {
	for len(state.HuntQueue) > 0 {
		next := state.HuntQueue[0]
		state.HuntQueue = state.HuntQueue[1:]
		if !board.IsResolved(next) {
			return next, true
		}
	}

	state.HuntQueue = nil
	state.LastHit = nil
	return chooseRandom(s.random, board)
}

// RecordResult queues the unresolved neighbours of a hit, skipping any
// already queued. A miss that leaves the queue empty ends the hunt.
func (s *HuntStrategy) RecordResult(state *model.TargetingState, board *model.Board, target model.Coordinate, result model.ShotResult) {
	if result != model.ShotHit {
		if len(state.HuntQueue) == 0 {
			state.LastHit = nil
		}
		return
	}

	hit := target
	state.LastHit = &hit
	for _, n := range target.Neighbors() {
		if board.IsResolved(n) || state.Queued(n) {
			continue
		}
		state.HuntQueue = append(state.HuntQueue, n)
	}
}

func (s *HuntStrategy) Name() string { return model.TargetingHunt }

var _ Strategy = (*HuntStrategy)(nil)
