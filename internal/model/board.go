package model

import "fmt"

// CellState is the per-cell state of a board
type CellState string

const (
	CellEmpty    CellState = "empty"
	CellOccupied CellState = "occupied"
	CellHit      CellState = "hit"
	CellMiss     CellState = "miss"
)

// IsResolved returns true for the terminal states Hit and Miss
func (s CellState) IsResolved() bool {
	return s == CellHit || s == CellMiss
}

// ShotResult is the outcome of resolving a single shot
type ShotResult string

const (
	ShotHit  ShotResult = "hit"
	ShotMiss ShotResult = "miss"
)

// Board is one side's grid
type Board struct {
	Size  int           `json:"size"`
	Cells [][]CellState `json:"cells"` // Row-major: Cells[row][col]
}

// NewBoard creates a board with every cell empty
func NewBoard() *Board {
	cells := make([][]CellState, BoardSize)
	for row := range cells {
		cells[row] = make([]CellState, BoardSize)
		for col := range cells[row] {
			cells[row][col] = CellEmpty
		}
	}
	return &Board{
		Size:  BoardSize,
		Cells: cells,
	}
}

// CellAt returns the state of the cell at the given coordinate
func (b *Board) CellAt(c Coordinate) (CellState, error) {
	if !b.contains(c) {
		return "", fmt.Errorf("%w: %s", ErrOutOfBounds, c)
	}
	return b.Cells[c.Row][c.Col], nil
}

// SetOccupied marks an empty cell as holding part of a ship
func (b *Board) SetOccupied(c Coordinate) error {
	state, err := b.CellAt(c)
	if err != nil {
		return err
	}
	if state != CellEmpty {
		return fmt.Errorf("%w: %s", ErrAlreadyOccupied, c)
	}
	b.Cells[c.Row][c.Col] = CellOccupied
	return nil
}

// ResolveShot transitions Occupied to Hit or Empty to Miss.
// A cell that is already Hit or Miss is left untouched.
func (b *Board) ResolveShot(c Coordinate) (ShotResult, error) {
	state, err := b.CellAt(c)
	if err != nil {
		return "", err
	}

	switch state {
	case CellOccupied:
		b.Cells[c.Row][c.Col] = CellHit
		return ShotHit, nil
	case CellEmpty:
		b.Cells[c.Row][c.Col] = CellMiss
		return ShotMiss, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrAlreadyTargeted, c)
	}
}

// HasSurvivingShips returns true if any cell is still Occupied
func (b *Board) HasSurvivingShips() bool {
	return b.Count(CellOccupied) > 0
}

// IsResolved returns true if the cell has already been fired upon.
// Out-of-bounds coordinates are never resolved.
func (b *Board) IsResolved(c Coordinate) bool {
	if !b.contains(c) {
		return false
	}
	return b.Cells[c.Row][c.Col].IsResolved()
}

// Count returns the number of cells in the given state
func (b *Board) Count(state CellState) int {
	count := 0
	for row := 0; row < b.Size; row++ {
		for col := 0; col < b.Size; col++ {
			if b.Cells[row][col] == state {
				count++
			}
		}
	}
	return count
}

// Unresolved returns every coordinate not yet fired upon, in row-major order
func (b *Board) Unresolved() []Coordinate {
	var result []Coordinate
	for row := 0; row < b.Size; row++ {
		for col := 0; col < b.Size; col++ {
			if !b.Cells[row][col].IsResolved() {
				result = append(result, Coordinate{Row: row, Col: col})
			}
		}
	}
	return result
}

// Clone returns a deep copy of the board
func (b *Board) Clone() *Board {
	cells := make([][]CellState, len(b.Cells))
	for i := range b.Cells {
		cells[i] = make([]CellState, len(b.Cells[i]))
		copy(cells[i], b.Cells[i])
	}
	return &Board{Size: b.Size, Cells: cells}
}

func (b *Board) contains(c Coordinate) bool {
	return c.Row >= 0 && c.Row < b.Size && c.Col >= 0 && c.Col < b.Size
}
