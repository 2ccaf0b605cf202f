package model

import (
	"fmt"
	"strconv"
	"strings"
)

// BoardSize is the dimension of every board (BoardSize x BoardSize)
const BoardSize = 10

// Coordinate identifies a cell on a board
type Coordinate struct {
	Row int `json:"row"` // 0-indexed, rendered as a letter A..J
	Col int `json:"col"` // 0-indexed, rendered as a number 1..10
}

// InBounds returns true if both components lie within [0, BoardSize)
func (c Coordinate) InBounds() bool {
	return c.Row >= 0 && c.Row < BoardSize && c.Col >= 0 && c.Col < BoardSize
}

// String renders the coordinate as letter+number, e.g. "A1"
func (c Coordinate) String() string {
	if !c.InBounds() {
		return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
	}
	return fmt.Sprintf("%c%d", 'A'+c.Row, c.Col+1)
}

// Neighbors returns the in-bounds orthogonal neighbours in the order
// up, down, left, right
func (c Coordinate) Neighbors() []Coordinate {
	candidates := []Coordinate{
		{Row: c.Row - 1, Col: c.Col},
		{Row: c.Row + 1, Col: c.Col},
		{Row: c.Row, Col: c.Col - 1},
		{Row: c.Row, Col: c.Col + 1},
	}
	result := make([]Coordinate, 0, len(candidates))
	for _, n := range candidates {
		if n.InBounds() {
			result = append(result, n)
		}
	}
	return result
}

// ParseCoordinate converts "A1".."J10" (case-insensitive) to a Coordinate.
// Well-formed input naming a cell off the board yields ErrOutOfBounds;
// anything else yields ErrMalformedCommand.
func ParseCoordinate(s string) (Coordinate, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return Coordinate{}, fmt.Errorf("%w: coordinate %q", ErrMalformedCommand, s)
	}

	letter := s[0]
	if letter >= 'a' && letter <= 'z' {
		letter -= 'a' - 'A'
	}
	if letter < 'A' || letter > 'Z' {
		return Coordinate{}, fmt.Errorf("%w: coordinate %q", ErrMalformedCommand, s)
	}

	digits := s[1:]
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return Coordinate{}, fmt.Errorf("%w: coordinate %q", ErrMalformedCommand, s)
		}
	}
	// Column numbers are written without leading zeros
	if len(digits) > 1 && digits[0] == '0' {
		return Coordinate{}, fmt.Errorf("%w: coordinate %q", ErrMalformedCommand, s)
	}
	if len(digits) > 2 {
		return Coordinate{}, fmt.Errorf("%w: %s", ErrOutOfBounds, strings.ToUpper(s))
	}
	number, err := strconv.Atoi(digits)
	if err != nil {
		return Coordinate{}, fmt.Errorf("%w: coordinate %q", ErrMalformedCommand, s)
	}

	coord := Coordinate{Row: int(letter - 'A'), Col: number - 1}
	if !coord.InBounds() {
		return Coordinate{}, fmt.Errorf("%w: %s", ErrOutOfBounds, strings.ToUpper(s))
	}
	return coord, nil
}

// MustParseCoordinate is ParseCoordinate for literals known to be valid
func MustParseCoordinate(s string) Coordinate {
	c, err := ParseCoordinate(s)
	if err != nil {
		panic(err)
	}
	return c
}
