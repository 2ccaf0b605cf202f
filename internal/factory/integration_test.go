package factory

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/battleship-go/internal/command"
	"github.com/mcoot/battleship-go/internal/model"
	"github.com/mcoot/battleship-go/internal/services/match"
	"github.com/mcoot/battleship-go/internal/storage"
	redisstorage "github.com/mcoot/battleship-go/internal/storage/redis"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

// run parses and executes a line of player input
func (s *IntegrationSuite) run(app *TestApp, id model.MatchID, line string) *match.Result {
	cmd, err := command.Parse(line)
	s.Require().NoError(err, line)
	result, err := app.MatchController.Execute(s.ctx, id, cmd)
	s.Require().NoError(err, line)
	return result
}

// Test: a whole match played through text commands, ending in a player win
func (s *IntegrationSuite) TestCompleteMatchFlow() {
	// Computer fleet: one ship per row from A1
	s.app.QueueStackedFleet()
	_, err := s.app.MatchController.CreateMatch(s.ctx, "m1")
	s.Require().NoError(err)

	// Player fleet on rows F-J, out of reach of the computer's first shots
	for _, line := range []string{
		"place carrier F1 H",
		"place battleship G1 h",
		"place cruiser H1 horizontal",
		"place submarine I1 H",
		"place J1 H",
	} {
		s.run(s.app, "m1", line)
	}
	result := s.run(s.app, "m1", "start")
	s.Equal(model.PhaseInProgress, result.Match.Phase)

	lengths := []int{5, 4, 3, 3, 2}
	var last *match.Result
	for row, length := range lengths {
		for col := 1; col <= length; col++ {
			last = s.run(s.app, "m1", fmt.Sprintf("fire %c%d", 'A'+row, col))
		}
	}

	s.Equal(model.PhaseOver, last.Match.Phase)
	s.Equal(model.SidePlayer, last.Match.Winner)
	s.Len(last.Shots, 1, "no computer reply after the winning shot")
	s.Equal(model.Destroyer, last.Shots[0].Sunk)
	s.Len(last.Match.Moves, 17+16)
	s.Require().NotNil(last.Statistics)
	s.Equal(model.Statistics{GamesPlayed: 1, Wins: 1, Losses: 0}, *last.Statistics)

	// The computer never hit anything
	s.Equal(0, last.Match.PlayerBoard.Count(model.CellHit))
	s.Equal(16, last.Match.PlayerBoard.Count(model.CellMiss))

	// Statistics are visible to a fresh process sharing the store
	other := NewTestAppWithStore(s.app.Store)
	s.Equal(model.Statistics{GamesPlayed: 1, Wins: 1, Losses: 0}, other.MatchController.Statistics(s.ctx))

	// Firing after the end is rejected and changes nothing
	cmd, err := command.Parse("fire J10")
	s.Require().NoError(err)
	_, err = s.app.MatchController.Execute(s.ctx, "m1", cmd)
	s.ErrorIs(err, model.ErrMatchNotActive)

	// Reset starts over without touching statistics
	s.app.QueueStackedFleet()
	result = s.run(s.app, "m1", "reset")
	s.Equal(model.PhasePlacing, result.Match.Phase)
	s.Empty(result.Match.Moves)
	s.Equal(1, s.app.MatchController.Statistics(s.ctx).GamesPlayed)
}

// Test: a match interrupted mid-hunt resumes in another process on the same Redis
func (s *IntegrationSuite) TestResumeAcrossProcessesOnRedis() {
	store, mini := NewTestRedisStore(s.T())
	first := NewTestAppWithStore(store)

	first.QueueStackedFleet() // computer
	_, err := first.MatchController.CreateMatch(s.ctx, "m1")
	s.Require().NoError(err)
	first.QueueStackedFleet() // player
	s.run(first, "m1", "auto")
	s.run(first, "m1", "start")

	// Both shots hit a Carrier at A1; the computer starts hunting around it
	result := s.run(first, "m1", "fire A1")
	s.Require().Len(result.Shots, 2)
	s.Equal(model.ShotHit, result.Shots[1].Result)
	s.Equal(
		[]model.Coordinate{model.MustParseCoordinate("B1"), model.MustParseCoordinate("A2")},
		result.Match.Targeting.HuntQueue,
	)
	s.True(mini.Exists(storage.MatchKey("m1")))

	second := NewTestAppWithStore(store)
	resumed, err := second.MatchController.GetMatch(s.ctx, "m1")
	s.Require().NoError(err)
	s.Equal(result.Match.PlayerBoard.Cells, resumed.PlayerBoard.Cells)
	s.Equal(result.Match.ComputerBoard.Cells, resumed.ComputerBoard.Cells)
	s.Equal(result.Match.Targeting.HuntQueue, resumed.Targeting.HuntQueue)

	// The resumed computer carries on with the queued candidate
	result = s.run(second, "m1", "fire A2")
	s.Require().Len(result.Shots, 2)
	s.Equal(model.MustParseCoordinate("B1"), result.Shots[1].Target)
	s.Equal(model.ShotHit, result.Shots[1].Result)
}

// Test: text commands that are not match commands are rejected by the controller
func (s *IntegrationSuite) TestHelpIsNotAMatchCommand() {
	s.app.QueueStackedFleet()
	_, err := s.app.MatchController.CreateMatch(s.ctx, "m1")
	s.Require().NoError(err)

	_, err = s.app.MatchController.Execute(s.ctx, "m1", command.Help{})
	s.ErrorIs(err, model.ErrMalformedCommand)
}

func TestNewWithMemoryStorage(t *testing.T) {
	app, err := New(context.Background(), Config{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer app.Close()

	if app.MatchController == nil || app.HubManager == nil {
		t.Fatal("expected wired controller and hub manager")
	}
}

func TestNewWithRedisStorage(t *testing.T) {
	_, mini := NewTestRedisStore(t)
	redisCfg := redisstorage.DefaultConfig()
	redisCfg.URL = "redis://" + mini.Addr()
	cfg := Config{StorageType: StorageTypeRedis, RedisConfig: &redisCfg}

	app, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer app.Close()

	ctx := context.Background()
	if _, err := app.MatchController.CreateMatch(ctx, "m1"); err != nil {
		t.Fatalf("CreateMatch: %v", err)
	}
	if !mini.Exists(storage.MatchKey("m1")) {
		t.Fatal("expected a snapshot in redis")
	}
}

func TestNewWithFileStorage(t *testing.T) {
	app, err := New(context.Background(), Config{StorageType: StorageTypeFile, DataDir: t.TempDir()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer app.Close()

	if _, err := app.MatchController.CreateMatch(context.Background(), "m1"); err != nil {
		t.Fatalf("CreateMatch: %v", err)
	}
	if _, err := app.Store.Get(context.Background(), storage.MatchKey("m1")); err != nil {
		t.Fatalf("expected a snapshot on disk: %v", err)
	}
}

func TestNewWithSnapshotsDisabled(t *testing.T) {
	app, err := New(context.Background(), Config{DisableSnapshots: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer app.Close()

	if _, err := app.MatchController.CreateMatch(context.Background(), "m1"); err != nil {
		t.Fatalf("CreateMatch: %v", err)
	}
	if _, err := app.Store.Get(context.Background(), storage.MatchKey("m1")); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected no snapshot, got %v", err)
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	for name, cfg := range map[string]Config{
		"unknown storage":  {StorageType: "floppy"},
		"redis no config":  {StorageType: StorageTypeRedis},
		"postgres no url":  {StorageType: StorageTypePostgres},
		"unknown strategy": {Targeting: "psychic"},
	} {
		if _, err := New(context.Background(), cfg); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}
