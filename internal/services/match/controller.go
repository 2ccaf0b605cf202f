package match

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/mcoot/battleship-go/internal/command"
	"github.com/mcoot/battleship-go/internal/dependencies/clock"
	"github.com/mcoot/battleship-go/internal/events"
	"github.com/mcoot/battleship-go/internal/model"
	"github.com/mcoot/battleship-go/internal/services/combat"
	"github.com/mcoot/battleship-go/internal/services/fleet"
	"github.com/mcoot/battleship-go/internal/services/snapshot"
	"github.com/mcoot/battleship-go/internal/services/stats"
	"github.com/mcoot/battleship-go/internal/services/targeting"
)

// Result is what a command hands back to the caller to render
type Result struct {
	Match      *model.Match        // State after the command
	Shots      []model.ShotOutcome // The player's shot then the computer's reply, if any
	Events     []model.Event
	Statistics *model.Statistics // Set for stats requests and when a match ends
	Show       model.Side        // Set for show requests
}

// slot holds one live match. Its mutex serializes commands for that match.
type slot struct {
	mu    sync.Mutex
	match *model.Match
}

// Controller runs the match state machine: Placing → InProgress → Over.
// Matches live in memory; snapshots are written through on every change.
type Controller struct {
	fleet     fleet.ServiceInterface
	combat    combat.ServiceInterface
	targeting targeting.Strategy
	stats     stats.ServiceInterface
	snapshots snapshot.ServiceInterface
	publisher events.Publisher
	clock     clock.Clock
	logger    *slog.Logger

	mu    sync.Mutex
	slots map[model.MatchID]*slot
}

// NewController creates a new match Controller
func NewController(
	fleetService fleet.ServiceInterface,
	combatService combat.ServiceInterface,
	strategy targeting.Strategy,
	statsService stats.ServiceInterface,
	snapshots snapshot.ServiceInterface,
	publisher events.Publisher,
	clk clock.Clock,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		fleet:     fleetService,
		combat:    combatService,
		targeting: strategy,
		stats:     statsService,
		snapshots: snapshots,
		publisher: publisher,
		clock:     clk,
		logger:    logger.With(slog.String("component", "match")),
		slots:     make(map[model.MatchID]*slot),
	}
}

// CreateMatch starts a new match in the Placing phase with the computer's
// fleet already laid out. An empty id is replaced with a generated one.
func (c *Controller) CreateMatch(ctx context.Context, id model.MatchID) (*Result, error) {
	if id == "" {
		id = model.MatchID(uuid.NewString())
	}

	m, err := c.newMatch(id)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if _, exists := c.slots[id]; exists {
		c.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", model.ErrMatchExists, id)
	}
	s := &slot{match: m}
	c.slots[id] = s
	s.mu.Lock()
	c.mu.Unlock()
	defer s.mu.Unlock()

	result := &Result{Match: m.Clone()}
	result.Events = append(result.Events, c.event(m, model.EventMatchCreated, "", nil))
	c.publish(result.Events)
	c.save(ctx, m)

	c.logger.Info("match created",
		slog.String("match_id", string(id)),
	)
	return result, nil
}

// GetMatch returns a copy of a match, resuming it from its snapshot if it
// is not already live
func (c *Controller) GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error) {
	s, err := c.slot(ctx, id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.match.Clone(), nil
}

// ResumeMatch restores a match from its snapshot, replacing any live copy
func (c *Controller) ResumeMatch(ctx context.Context, id model.MatchID) (*model.Match, error) {
	m, err := c.loadSnapshot(ctx, id)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	s, ok := c.slots[id]
	if !ok {
		c.slots[id] = &slot{match: m}
		c.mu.Unlock()
	} else {
		c.mu.Unlock()
		s.mu.Lock()
		s.match = m
		s.mu.Unlock()
	}

	c.logger.Info("match resumed",
		slog.String("match_id", string(id)),
		slog.String("phase", string(m.Phase)),
	)
	return m.Clone(), nil
}

// PlaceShip places a named ship on the player's board
func (c *Controller) PlaceShip(ctx context.Context, id model.MatchID, ship model.ShipName, origin model.Coordinate, orientation model.Orientation) (*Result, error) {
	spec, err := model.LookupShip(string(ship))
	if err != nil {
		return nil, err
	}
	return c.mutate(ctx, id, func(m *model.Match, r *Result) error {
		return c.placeShip(m, r, spec, origin, orientation)
	})
}

// PlaceNextShip places the first ship of the catalog not yet on the player's board
func (c *Controller) PlaceNextShip(ctx context.Context, id model.MatchID, origin model.Coordinate, orientation model.Orientation) (*Result, error) {
	return c.mutate(ctx, id, func(m *model.Match, r *Result) error {
		spec, ok := m.PlayerFleet.NextUnplaced()
		if !ok {
			if m.Phase != model.PhasePlacing {
				return model.ErrAlreadyStarted
			}
			return fmt.Errorf("%w: every ship is already placed", model.ErrDuplicateShip)
		}
		return c.placeShip(m, r, spec, origin, orientation)
	})
}

func (c *Controller) placeShip(m *model.Match, r *Result, spec model.ShipSpec, origin model.Coordinate, orientation model.Orientation) error {
	if m.Phase != model.PhasePlacing {
		return model.ErrAlreadyStarted
	}

	updated, err := c.fleet.Place(m.PlayerBoard, m.PlayerFleet, spec, origin, orientation)
	if err != nil {
		return err
	}
	m.PlayerFleet = updated

	placement, _ := updated.Find(spec.Name)
	r.Events = append(r.Events, c.event(m, model.EventShipPlaced, model.SidePlayer, model.ShipPlacedPayload{Placement: placement}))
	if m.ReadyToStart() {
		r.Events = append(r.Events, c.event(m, model.EventFleetReady, model.SidePlayer, nil))
	}
	return nil
}

// PlaceRandomFleet replaces the player's fleet with a random layout
func (c *Controller) PlaceRandomFleet(ctx context.Context, id model.MatchID) (*Result, error) {
	return c.mutate(ctx, id, func(m *model.Match, r *Result) error {
		if m.Phase != model.PhasePlacing {
			return model.ErrAlreadyStarted
		}

		board, placed, err := c.fleet.PlaceRandomFleet()
		if err != nil {
			return err
		}
		m.PlayerBoard = board
		m.PlayerFleet = placed

		for _, p := range placed {
			r.Events = append(r.Events, c.event(m, model.EventShipPlaced, model.SidePlayer, model.ShipPlacedPayload{Placement: p}))
		}
		r.Events = append(r.Events, c.event(m, model.EventFleetReady, model.SidePlayer, nil))
		return nil
	})
}

// Start moves a match with a complete player fleet into battle
func (c *Controller) Start(ctx context.Context, id model.MatchID) (*Result, error) {
	return c.mutate(ctx, id, func(m *model.Match, r *Result) error {
		if m.Phase != model.PhasePlacing {
			return model.ErrAlreadyStarted
		}
		if !m.ReadyToStart() {
			next, _ := m.PlayerFleet.NextUnplaced()
			return fmt.Errorf("%w: %s not placed", model.ErrFleetIncomplete, next.Name)
		}

		m.Phase = model.PhaseInProgress
		m.Turn = model.SidePlayer
		r.Events = append(r.Events, c.event(m, model.EventMatchStarted, model.SidePlayer, nil))

		c.logger.Info("match started", slog.String("match_id", string(m.ID)))
		return nil
	})
}

// Fire resolves the player's shot and, unless it ended the match, the
// computer's reply, as one turn cycle
func (c *Controller) Fire(ctx context.Context, id model.MatchID, target model.Coordinate) (*Result, error) {
	return c.mutate(ctx, id, func(m *model.Match, r *Result) error {
		outcome, err := c.combat.Fire(m, model.SidePlayer, target)
		if err != nil {
			return err
		}
		c.recordShot(m, r, outcome)

		if outcome.MatchOver {
			return nil
		}
		return c.computerTurn(m, r)
	})
}

// computerTurn lets the targeting strategy pick and fire the computer's shot
func (c *Controller) computerTurn(m *model.Match, r *Result) error {
	target, ok := c.targeting.ChooseTarget(&m.Targeting, m.PlayerBoard)
	if !ok {
		return errors.New("computer has no cell left to target")
	}

	outcome, err := c.combat.Fire(m, model.SideComputer, target)
	if err != nil {
		return fmt.Errorf("computer shot at %s: %w", target, err)
	}
	c.targeting.RecordResult(&m.Targeting, m.PlayerBoard, target, outcome.Result)
	c.recordShot(m, r, outcome)
	return nil
}

func (c *Controller) recordShot(m *model.Match, r *Result, outcome model.ShotOutcome) {
	r.Shots = append(r.Shots, outcome)
	r.Events = append(r.Events, c.event(m, model.EventShotFired, outcome.Side, model.ShotFiredPayload{
		Target: outcome.Target,
		Result: outcome.Result,
	}))
	if outcome.Sunk != "" {
		r.Events = append(r.Events, c.event(m, model.EventShipSunk, outcome.Side, model.ShipSunkPayload{Ship: outcome.Sunk}))
	}
}

// Reset discards the match and replaces it with a fresh one under the same id
func (c *Controller) Reset(ctx context.Context, id model.MatchID) (*Result, error) {
	fresh, err := c.newMatch(id)
	if err != nil {
		return nil, err
	}

	s, err := c.slot(ctx, id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.match = fresh

	result := &Result{Match: fresh.Clone()}
	result.Events = append(result.Events,
		c.event(fresh, model.EventMatchReset, model.SidePlayer, nil),
		c.event(fresh, model.EventMatchCreated, "", nil),
	)
	c.publish(result.Events)

	if err := c.snapshots.Delete(ctx, id); err != nil {
		c.logger.Warn("failed to delete snapshot",
			slog.String("match_id", string(id)),
			slog.String("error", err.Error()),
		)
	}
	c.save(ctx, fresh)

	c.logger.Info("match reset", slog.String("match_id", string(id)))
	return result, nil
}

// Statistics returns the cumulative statistics
func (c *Controller) Statistics(ctx context.Context) model.Statistics {
	return c.stats.Load(ctx)
}

// Execute dispatches a parsed text command against a match
func (c *Controller) Execute(ctx context.Context, id model.MatchID, cmd command.Command) (*Result, error) {
	if !command.IsStateChanging(cmd) {
		return c.query(ctx, id, cmd)
	}

	switch cmd := cmd.(type) {
	case command.Place:
		if cmd.Ship == "" {
			return c.PlaceNextShip(ctx, id, cmd.Origin, cmd.Orientation)
		}
		return c.PlaceShip(ctx, id, cmd.Ship, cmd.Origin, cmd.Orientation)
	case command.PlaceRandom:
		return c.PlaceRandomFleet(ctx, id)
	case command.Start:
		return c.Start(ctx, id)
	case command.Fire:
		return c.Fire(ctx, id, cmd.Target)
	case command.Reset:
		return c.Reset(ctx, id)
	default:
		return nil, fmt.Errorf("%w: %s is not a match command", model.ErrMalformedCommand, cmd.Name())
	}
}

// query answers commands that only read state; no snapshot is written
func (c *Controller) query(ctx context.Context, id model.MatchID, cmd command.Command) (*Result, error) {
	switch cmd := cmd.(type) {
	case command.Stats:
		totals := c.Statistics(ctx)
		return &Result{Statistics: &totals}, nil
	case command.Show:
		m, err := c.GetMatch(ctx, id)
		if err != nil {
			return nil, err
		}
		return &Result{Match: m, Show: cmd.Board}, nil
	default:
		return nil, fmt.Errorf("%w: %s is not a match command", model.ErrMalformedCommand, cmd.Name())
	}
}

// mutate applies fn to a copy of the match and commits the copy only if fn
// succeeds, so a failed command leaves the match exactly as it was
func (c *Controller) mutate(ctx context.Context, id model.MatchID, fn func(m *model.Match, r *Result) error) (*Result, error) {
	s, err := c.slot(ctx, id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	wasOver := s.match.IsOver()
	work := s.match.Clone()
	result := &Result{}
	if err := fn(work, result); err != nil {
		return nil, err
	}

	work.UpdatedAt = c.clock.Now()
	s.match = work

	if !wasOver && work.IsOver() {
		totals := c.stats.Record(ctx, work.Winner)
		result.Statistics = &totals
		result.Events = append(result.Events, c.event(work, model.EventMatchOver, work.Winner, model.MatchOverPayload{
			Winner:     work.Winner,
			Statistics: totals,
		}))
		c.logger.Info("match finished",
			slog.String("match_id", string(id)),
			slog.String("winner", string(work.Winner)),
		)
	}

	result.Match = work.Clone()
	c.publish(result.Events)
	c.save(ctx, work)
	return result, nil
}

// slot returns the live slot for id, resuming from a snapshot on a miss
func (c *Controller) slot(ctx context.Context, id model.MatchID) (*slot, error) {
	c.mu.Lock()
	s, ok := c.slots[id]
	c.mu.Unlock()
	if ok {
		return s, nil
	}

	m, err := c.loadSnapshot(ctx, id)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Another caller may have resumed the match while this load was in
	// flight. Its copy may already be ahead, so keep it.
	if s, ok := c.slots[id]; ok {
		return s, nil
	}

	s = &slot{match: m}
	c.slots[id] = s
	c.logger.Info("match resumed",
		slog.String("match_id", string(id)),
		slog.String("phase", string(m.Phase)),
	)
	return s, nil
}

// loadSnapshot reads a saved match. Any store failure reads as not found.
func (c *Controller) loadSnapshot(ctx context.Context, id model.MatchID) (*model.Match, error) {
	m, err := c.snapshots.Load(ctx, id)
	if err != nil {
		if !errors.Is(err, model.ErrMatchNotFound) {
			c.logger.Warn("failed to load snapshot",
				slog.String("match_id", string(id)),
				slog.String("error", err.Error()),
			)
			err = model.ErrMatchNotFound
		}
		return nil, err
	}
	return m, nil
}

func (c *Controller) newMatch(id model.MatchID) (*model.Match, error) {
	board, computerFleet, err := c.fleet.PlaceRandomFleet()
	if err != nil {
		return nil, err
	}

	m := model.NewMatch(id, c.clock.Now())
	m.ComputerBoard = board
	m.ComputerFleet = computerFleet
	return m, nil
}

func (c *Controller) event(m *model.Match, eventType model.EventType, side model.Side, payload any) model.Event {
	return model.Event{
		Type:      eventType,
		Timestamp: c.clock.Now(),
		MatchID:   m.ID,
		Side:      side,
		Payload:   payload,
	}
}

func (c *Controller) publish(evts []model.Event) {
	for _, e := range evts {
		c.publisher.Publish(e)
	}
}

// save writes a snapshot; failures never reach the player
func (c *Controller) save(ctx context.Context, m *model.Match) {
	if err := c.snapshots.Save(ctx, m); err != nil {
		c.logger.Warn("failed to save snapshot",
			slog.String("match_id", string(m.ID)),
			slog.String("error", err.Error()),
		)
	}
}
