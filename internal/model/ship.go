package model

import (
	"fmt"
	"strings"
)

// ShipName identifies an entry in the ship catalog
type ShipName string

const (
	Carrier    ShipName = "Carrier"
	Battleship ShipName = "Battleship"
	Cruiser    ShipName = "Cruiser"
	Submarine  ShipName = "Submarine"
	Destroyer  ShipName = "Destroyer"
)

// ShipSpec is a catalog entry
type ShipSpec struct {
	Name   ShipName `json:"name"`
	Length int      `json:"length"`
}

var catalog = []ShipSpec{
	{Name: Carrier, Length: 5},
	{Name: Battleship, Length: 4},
	{Name: Cruiser, Length: 3},
	{Name: Submarine, Length: 3},
	{Name: Destroyer, Length: 2},
}

// Catalog returns the fixed fleet every side places, in placement order
func Catalog() []ShipSpec {
	result := make([]ShipSpec, len(catalog))
	copy(result, catalog)
	return result
}

// LookupShip finds a catalog entry by name, ignoring case
func LookupShip(name string) (ShipSpec, error) {
	for _, spec := range catalog {
		if strings.EqualFold(string(spec.Name), strings.TrimSpace(name)) {
			return spec, nil
		}
	}
	return ShipSpec{}, fmt.Errorf("%w: %q", ErrUnknownShip, name)
}

// Orientation is the direction a ship extends from its origin
type Orientation string

const (
	Horizontal Orientation = "horizontal" // extends right
	Vertical   Orientation = "vertical"   // extends down
)

// ParseOrientation accepts H, HORIZONTAL, V or VERTICAL in any case
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "H", "HORIZONTAL":
		return Horizontal, nil
	case "V", "VERTICAL":
		return Vertical, nil
	default:
		return "", fmt.Errorf("%w: orientation %q", ErrMalformedCommand, s)
	}
}

// Footprint returns the cells a ship of the given length occupies when laid
// from origin in orientation. Cells may fall outside the board.
func Footprint(origin Coordinate, orientation Orientation, length int) []Coordinate {
	cells := make([]Coordinate, length)
	for i := 0; i < length; i++ {
		if orientation == Horizontal {
			cells[i] = Coordinate{Row: origin.Row, Col: origin.Col + i}
		} else {
			cells[i] = Coordinate{Row: origin.Row + i, Col: origin.Col}
		}
	}
	return cells
}

// Placement records where one ship sits on a board
type Placement struct {
	Ship        ShipName    `json:"ship"`
	Origin      Coordinate  `json:"origin"`
	Orientation Orientation `json:"orientation"`
	Length      int         `json:"length"`
}

// Footprint returns the cells this placement occupies
func (p Placement) Footprint() []Coordinate {
	return Footprint(p.Origin, p.Orientation, p.Length)
}

// Covers returns true if the placement occupies the given cell
func (p Placement) Covers(c Coordinate) bool {
	for _, cell := range p.Footprint() {
		if cell == c {
			return true
		}
	}
	return false
}

// Fleet is the set of one side's placements, in the order they were made
type Fleet []Placement

// Has returns true if the named ship has been placed
func (f Fleet) Has(name ShipName) bool {
	_, ok := f.Find(name)
	return ok
}

// Find returns the placement for the named ship
func (f Fleet) Find(name ShipName) (Placement, bool) {
	for _, p := range f {
		if p.Ship == name {
			return p, true
		}
	}
	return Placement{}, false
}

// Covering returns the placement occupying the given cell, if any
func (f Fleet) Covering(c Coordinate) (Placement, bool) {
	for _, p := range f {
		if p.Covers(c) {
			return p, true
		}
	}
	return Placement{}, false
}

// Complete returns true if every catalog ship has a placement
func (f Fleet) Complete() bool {
	for _, spec := range catalog {
		if !f.Has(spec.Name) {
			return false
		}
	}
	return true
}

// NextUnplaced returns the first catalog ship without a placement
func (f Fleet) NextUnplaced() (ShipSpec, bool) {
	for _, spec := range catalog {
		if !f.Has(spec.Name) {
			return spec, true
		}
	}
	return ShipSpec{}, false
}

// IsSunk returns true if every cell of the placement has been hit on board
func (p Placement) IsSunk(board *Board) bool {
	for _, cell := range p.Footprint() {
		state, err := board.CellAt(cell)
		if err != nil || state != CellHit {
			return false
		}
	}
	return true
}
