package factory

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/mcoot/battleship-go/internal/dependencies/mocks"
	"github.com/mcoot/battleship-go/internal/model"
	"github.com/mcoot/battleship-go/internal/services/snapshot"
	"github.com/mcoot/battleship-go/internal/services/targeting"
	"github.com/mcoot/battleship-go/internal/storage"
	"github.com/mcoot/battleship-go/internal/storage/memory"
	redisstorage "github.com/mcoot/battleship-go/internal/storage/redis"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock    *mocks.MockClock
	FleetRandom  *mocks.MockRandom
	TargetRandom *mocks.MockRandom
}

// NewTestApp creates an App backed by memory storage with mocked dependencies
func NewTestApp() *TestApp {
	return newTestApp(memory.New())
}

// NewTestAppWithStore creates a test App on top of an existing store, so two
// apps can share persisted state
func NewTestAppWithStore(store storage.Store) *TestApp {
	return newTestApp(store)
}

// NewTestRedisStore starts an in-process Redis server for the test and
// returns a store connected to it
func NewTestRedisStore(t *testing.T) (*redisstorage.Storage, *miniredis.Miniredis) {
	t.Helper()
	mini := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mini.Addr()})
	store := redisstorage.NewWithClient(client, redisstorage.DefaultConfig())
	t.Cleanup(func() { _ = store.Close() })
	return store, mini
}

func newTestApp(store storage.Store) *TestApp {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	fleetRandom := mocks.NewMockRandom()
	targetRandom := mocks.NewMockRandom()

	strategy := targeting.NewHuntStrategy(targetRandom)
	app := newWithDependencies(store, mockClock, fleetRandom, strategy, snapshot.New(store, 0, logger), logger)

	return &TestApp{
		App:          app,
		MockClock:    mockClock,
		FleetRandom:  fleetRandom,
		TargetRandom: targetRandom,
	}
}

// QueueStackedFleet makes the next random fleet lay every ship horizontally
// from column 1, one per row starting at A
func (t *TestApp) QueueStackedFleet() {
	for row := range model.Catalog() {
		t.FleetRandom.QueueIntn(row, 0, 0)
	}
}
