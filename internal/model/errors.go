package model

import "errors"

// Common errors used across the application
var (
	// Coordinate and command errors
	ErrOutOfBounds      = errors.New("coordinate is out of bounds")
	ErrMalformedCommand = errors.New("malformed command")

	// Placement errors
	ErrInvalidPlacement   = errors.New("invalid placement")
	ErrDuplicateShip      = errors.New("ship is already placed")
	ErrAlreadyOccupied    = errors.New("cell is already occupied")
	ErrUnknownShip        = errors.New("unknown ship")
	ErrPlacementExhausted = errors.New("random placement attempts exhausted")

	// Combat errors
	ErrAlreadyTargeted = errors.New("cell has already been targeted")
	ErrNotYourTurn     = errors.New("not this side's turn")
	ErrMatchNotActive  = errors.New("match is not in progress")

	// Match errors
	ErrMatchNotFound   = errors.New("match not found")
	ErrMatchExists     = errors.New("match already exists")
	ErrFleetIncomplete = errors.New("not all ships have been placed")
	ErrAlreadyStarted  = errors.New("match has already started")
)
