package model

import "time"

// MatchID uniquely identifies a match
type MatchID string

// Phase is the top-level state of a match
type Phase string

const (
	PhasePlacing    Phase = "placing"
	PhaseInProgress Phase = "in_progress"
	PhaseOver       Phase = "over"
)

// Side identifies one of the two participants
type Side string

const (
	SidePlayer   Side = "player"
	SideComputer Side = "computer"
)

// Opponent returns the other side
func (s Side) Opponent() Side {
	if s == SidePlayer {
		return SideComputer
	}
	return SidePlayer
}

// Match owns both boards and fleets, the turn, and the computer's targeting state
type Match struct {
	ID            MatchID        `json:"id"`
	Phase         Phase          `json:"phase"`
	Turn          Side           `json:"turn"`
	Winner        Side           `json:"winner,omitempty"`
	PlayerBoard   *Board         `json:"playerBoard"`
	ComputerBoard *Board         `json:"computerBoard"`
	PlayerFleet   Fleet          `json:"playerFleet"`
	ComputerFleet Fleet          `json:"computerFleet"`
	Targeting     TargetingState `json:"targeting"`
	Moves         []Move         `json:"moves"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// NewMatch creates a match in the Placing phase with empty boards.
// The player always takes the first shot.
func NewMatch(id MatchID, now time.Time) *Match {
	return &Match{
		ID:            id,
		Phase:         PhasePlacing,
		Turn:          SidePlayer,
		PlayerBoard:   NewBoard(),
		ComputerBoard: NewBoard(),
		PlayerFleet:   Fleet{},
		ComputerFleet: Fleet{},
		Moves:         []Move{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// ReadyToStart returns true if the player's fleet has every catalog ship
func (m *Match) ReadyToStart() bool {
	return m.PlayerFleet.Complete()
}

// BoardFor returns the board owned by the given side
func (m *Match) BoardFor(side Side) *Board {
	if side == SidePlayer {
		return m.PlayerBoard
	}
	return m.ComputerBoard
}

// FleetFor returns the fleet owned by the given side
func (m *Match) FleetFor(side Side) Fleet {
	if side == SidePlayer {
		return m.PlayerFleet
	}
	return m.ComputerFleet
}

// SetFleet replaces the fleet owned by the given side
func (m *Match) SetFleet(side Side, fleet Fleet) {
	if side == SidePlayer {
		m.PlayerFleet = fleet
	} else {
		m.ComputerFleet = fleet
	}
}

// IsOver returns true if the match has a winner
func (m *Match) IsOver() bool {
	return m.Phase == PhaseOver
}

// Clone returns a deep copy of the match
func (m *Match) Clone() *Match {
	clone := *m
	clone.PlayerBoard = m.PlayerBoard.Clone()
	clone.ComputerBoard = m.ComputerBoard.Clone()
	clone.PlayerFleet = append(Fleet{}, m.PlayerFleet...)
	clone.ComputerFleet = append(Fleet{}, m.ComputerFleet...)
	clone.Targeting = m.Targeting.Clone()
	clone.Moves = append([]Move{}, m.Moves...)
	return &clone
}

// TargetingState is the computer's search memory
type TargetingState struct {
	LastHit   *Coordinate  `json:"lastHit,omitempty"`
	HuntQueue []Coordinate `json:"huntQueue"`
}

// Hunting returns true if there are queued candidates
func (t TargetingState) Hunting() bool {
	return len(t.HuntQueue) > 0
}

// Queued returns true if the coordinate is already a hunt candidate
func (t TargetingState) Queued(c Coordinate) bool {
	for _, q := range t.HuntQueue {
		if q == c {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the targeting state
func (t TargetingState) Clone() TargetingState {
	clone := TargetingState{HuntQueue: append([]Coordinate{}, t.HuntQueue...)}
	if t.LastHit != nil {
		lastHit := *t.LastHit
		clone.LastHit = &lastHit
	}
	return clone
}

// Move is one resolved shot in the match log
type Move struct {
	Side   Side       `json:"side"`
	Target Coordinate `json:"target"`
	Result ShotResult `json:"result"`
	Sunk   ShipName   `json:"sunk,omitempty"`
}

// ShotOutcome describes a resolved shot to the caller
type ShotOutcome struct {
	Side      Side       `json:"side"`
	Target    Coordinate `json:"target"`
	Result    ShotResult `json:"result"`
	Sunk      ShipName   `json:"sunk,omitempty"`
	MatchOver bool       `json:"matchOver"`
}
