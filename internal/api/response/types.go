package response

import (
	"time"

	"github.com/mcoot/battleship-go/internal/model"
	"github.com/mcoot/battleship-go/internal/services/match"
)

// Board is a rendered grid, row-major
type Board struct {
	Size  int                 `json:"size"`
	Cells [][]model.CellState `json:"cells"`
}

// BoardFromModel converts a board. With hideShips set, unhit ship cells are
// reported as empty.
func BoardFromModel(b *model.Board, hideShips bool) Board {
	cells := make([][]model.CellState, len(b.Cells))
	for r, row := range b.Cells {
		cells[r] = make([]model.CellState, len(row))
		for c, cell := range row {
			if hideShips && cell == model.CellOccupied {
				cell = model.CellEmpty
			}
			cells[r][c] = cell
		}
	}
	return Board{Size: b.Size, Cells: cells}
}

// Ship is a placed ship
type Ship struct {
	Name        string `json:"name"`
	Length      int    `json:"length"`
	Origin      string `json:"origin"`
	Orientation string `json:"orientation"`
	Sunk        bool   `json:"sunk"`
}

// FleetFromModel converts a fleet. With sunkOnly set, ships still afloat are left out.
func FleetFromModel(fleet model.Fleet, board *model.Board, sunkOnly bool) []Ship {
	ships := make([]Ship, 0, len(fleet))
	for _, p := range fleet {
		sunk := p.IsSunk(board)
		if sunkOnly && !sunk {
			continue
		}
		ships = append(ships, Ship{
			Name:        string(p.Ship),
			Length:      p.Length,
			Origin:      p.Origin.String(),
			Orientation: string(p.Orientation),
			Sunk:        sunk,
		})
	}
	return ships
}

// Match is the public view of a match. The computer's fleet stays hidden
// until it is hit or the match ends.
type Match struct {
	ID            string    `json:"id"`
	Phase         string    `json:"phase"`
	Turn          string    `json:"turn"`
	Winner        string    `json:"winner,omitempty"`
	NextShip      string    `json:"next_ship,omitempty"`
	PlayerBoard   Board     `json:"player_board"`
	ComputerBoard Board     `json:"computer_board"`
	PlayerFleet   []Ship    `json:"player_fleet"`
	ComputerFleet []Ship    `json:"computer_fleet"`
	MoveCount     int       `json:"move_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// MatchFromModel converts a model.Match to its public view
func MatchFromModel(m *model.Match) Match {
	reveal := m.IsOver()

	resp := Match{
		ID:            string(m.ID),
		Phase:         string(m.Phase),
		Turn:          string(m.Turn),
		Winner:        string(m.Winner),
		PlayerBoard:   BoardFromModel(m.PlayerBoard, false),
		ComputerBoard: BoardFromModel(m.ComputerBoard, !reveal),
		PlayerFleet:   FleetFromModel(m.PlayerFleet, m.PlayerBoard, false),
		ComputerFleet: FleetFromModel(m.ComputerFleet, m.ComputerBoard, !reveal),
		MoveCount:     len(m.Moves),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	if m.Phase == model.PhasePlacing {
		if next, ok := m.PlayerFleet.NextUnplaced(); ok {
			resp.NextShip = string(next.Name)
		}
	}
	return resp
}

// Shot is the outcome of one shot
type Shot struct {
	Side      string `json:"side"`
	Target    string `json:"target"`
	Result    string `json:"result"`
	Sunk      string `json:"sunk,omitempty"`
	MatchOver bool   `json:"match_over"`
}

// ShotFromModel converts a model.ShotOutcome
func ShotFromModel(o model.ShotOutcome) Shot {
	return Shot{
		Side:      string(o.Side),
		Target:    o.Target.String(),
		Result:    string(o.Result),
		Sunk:      string(o.Sunk),
		MatchOver: o.MatchOver,
	}
}

// Statistics are the cumulative results across matches
type Statistics struct {
	GamesPlayed int `json:"games_played"`
	Wins        int `json:"wins"`
	Losses      int `json:"losses"`
}

// StatisticsFromModel converts model.Statistics
func StatisticsFromModel(s model.Statistics) Statistics {
	return Statistics{
		GamesPlayed: s.GamesPlayed,
		Wins:        s.Wins,
		Losses:      s.Losses,
	}
}

// CommandResponse is returned by every match command
type CommandResponse struct {
	Match      *Match      `json:"match,omitempty"`
	Shots      []Shot      `json:"shots,omitempty"`
	Statistics *Statistics `json:"statistics,omitempty"`
	Show       string      `json:"show,omitempty"`
}

// CommandResponseFromResult converts a controller result
func CommandResponseFromResult(r *match.Result) CommandResponse {
	var resp CommandResponse
	if r.Match != nil {
		m := MatchFromModel(r.Match)
		resp.Match = &m
	}
	for _, shot := range r.Shots {
		resp.Shots = append(resp.Shots, ShotFromModel(shot))
	}
	if r.Statistics != nil {
		s := StatisticsFromModel(*r.Statistics)
		resp.Statistics = &s
	}
	resp.Show = string(r.Show)
	return resp
}

// HealthResponse is the health check body
type HealthResponse struct {
	Status   string `json:"status"`
	Opponent string `json:"opponent,omitempty"`
}

// MessageResponse carries a plain message
type MessageResponse struct {
	Message string `json:"message"`
}
