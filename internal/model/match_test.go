package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewMatch(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewMatch("m1", now)

	assert.Equal(t, PhasePlacing, m.Phase)
	assert.Equal(t, SidePlayer, m.Turn)
	assert.False(t, m.ReadyToStart())
	assert.Equal(t, now, m.CreatedAt)
}

func TestMatch_CloneIsDeep(t *testing.T) {
	m := NewMatch("m1", time.Now())
	hit := Coordinate{Row: 2, Col: 2}
	m.Targeting = TargetingState{LastHit: &hit, HuntQueue: []Coordinate{{Row: 1, Col: 2}}}

	clone := m.Clone()
	clone.Targeting.HuntQueue[0] = Coordinate{Row: 9, Col: 9}
	clone.Targeting.LastHit.Row = 7
	clone.PlayerBoard.Cells[0][0] = CellMiss
	clone.PlayerFleet = append(clone.PlayerFleet, Placement{Ship: Carrier})

	assert.Equal(t, Coordinate{Row: 1, Col: 2}, m.Targeting.HuntQueue[0])
	assert.Equal(t, 2, m.Targeting.LastHit.Row)
	assert.Equal(t, CellEmpty, m.PlayerBoard.Cells[0][0])
	assert.Empty(t, m.PlayerFleet)
}

func TestSide_Opponent(t *testing.T) {
	assert.Equal(t, SideComputer, SidePlayer.Opponent())
	assert.Equal(t, SidePlayer, SideComputer.Opponent())
}

func TestStatistics_Record(t *testing.T) {
	s := Statistics{}.Record(SidePlayer).Record(SideComputer).Record(SidePlayer)
	assert.Equal(t, Statistics{GamesPlayed: 3, Wins: 2, Losses: 1}, s)
}
