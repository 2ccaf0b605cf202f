package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	// Placement events
	EventMatchCreated EventType = "match_created"
	EventShipPlaced   EventType = "ship_placed"
	EventFleetReady   EventType = "fleet_ready"

	// Battle events
	EventMatchStarted EventType = "match_started"
	EventShotFired    EventType = "shot_fired"
	EventShipSunk     EventType = "ship_sunk"
	EventMatchOver    EventType = "match_over"

	EventMatchReset EventType = "match_reset"
)

// Event is emitted for every state change the UI layer may want to render
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	MatchID   MatchID   `json:"matchId"`
	Side      Side      `json:"side,omitempty"` // The side that acted, if any
	Payload   any       `json:"payload,omitempty"`
}

// ShipPlacedPayload contains data for ship placed events
type ShipPlacedPayload struct {
	Placement Placement `json:"placement"`
}

// ShotFiredPayload contains data for shot fired events
type ShotFiredPayload struct {
	Target Coordinate `json:"target"`
	Result ShotResult `json:"result"`
}

// ShipSunkPayload contains data for ship sunk events
type ShipSunkPayload struct {
	Ship ShipName `json:"ship"`
}

// MatchOverPayload contains data for match over events
type MatchOverPayload struct {
	Winner     Side       `json:"winner"`
	Statistics Statistics `json:"statistics"`
}
