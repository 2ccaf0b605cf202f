package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mcoot/battleship-go/internal/api/response"
	"github.com/mcoot/battleship-go/internal/command"
	"github.com/mcoot/battleship-go/internal/model"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	out    io.Writer
	errOut io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, out, errOut io.Writer) *Output {
	return &Output{format: format, out: out, errOut: errOut}
}

// JSON reports whether output is machine readable
func (o *Output) JSON() bool {
	return o.format == "json"
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.JSON() {
		o.printJSON(data)
		return
	}

	switch v := data.(type) {
	case response.Statistics:
		o.printStatistics(v)
	case response.Match:
		o.printMatch(v)
	case HealthResult:
		fmt.Fprintf(o.out, "Status: %s\n", v.Status)
		if v.Opponent != "" {
			fmt.Fprintf(o.out, "Opponent: %s\n", v.Opponent)
		}
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.JSON() {
		data, _ := json.Marshal(map[string]any{
			"error": map[string]string{"message": err.Error()},
		})
		fmt.Fprintln(o.errOut, string(data))
		return
	}
	fmt.Fprintf(o.errOut, "Error: %s\n", err)
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.JSON() {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.out, string(data))
		return
	}
	fmt.Fprintln(o.out, msg)
}

// Prompt asks for the next line of input; JSON output has no prompt
func (o *Output) Prompt() {
	if !o.JSON() {
		fmt.Fprint(o.out, "> ")
	}
}

// PrintResult reports what a match command did
func (o *Output) PrintResult(cmd command.Command, resp response.CommandResponse) {
	if o.JSON() {
		o.printJSON(resp)
		return
	}

	switch cmd := cmd.(type) {
	case command.Place, command.PlaceRandom:
		o.printPlacement(resp.Match)
	case command.Start:
		fmt.Fprintln(o.out, "Battle stations! You fire first.")
		o.printBoard("Enemy waters", resp.Match.ComputerBoard)
	case command.Fire:
		o.printShots(resp)
	case command.Reset:
		fmt.Fprintln(o.out, "New match started. Place your ships (type help for commands).")
		o.printPlacement(resp.Match)
	case command.Stats:
		o.printStatistics(*resp.Statistics)
	case command.Show:
		if cmd.Board == model.SideComputer {
			o.printBoard("Enemy waters", resp.Match.ComputerBoard)
		} else {
			o.printBoard("Your waters", resp.Match.PlayerBoard)
		}
	}
}

// PrintOpened greets the player with the match they are about to play
func (o *Output) PrintOpened(m response.Match, resumed bool) {
	if o.JSON() {
		o.printJSON(map[string]any{"resumed": resumed, "match": m})
		return
	}

	if resumed {
		fmt.Fprintf(o.out, "Resuming match %s.\n", m.ID)
	} else {
		fmt.Fprintf(o.out, "New match %s. Place your ships (type help for commands).\n", m.ID)
	}
	o.printMatch(m)
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.out)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printMatch(m response.Match) {
	if m.Phase == string(model.PhasePlacing) {
		o.printPlacement(&m)
		return
	}
	o.printBoard("Enemy waters", m.ComputerBoard)
	o.printBoard("Your waters", m.PlayerBoard)
	if m.Winner != "" {
		o.printWinner(m.Winner)
	}
}

func (o *Output) printPlacement(m *response.Match) {
	o.printBoard("Your waters", m.PlayerBoard)
	if m.NextShip != "" {
		spec, _ := model.LookupShip(m.NextShip)
		fmt.Fprintf(o.out, "Next ship: %s (length %d)\n", spec.Name, spec.Length)
	} else if m.Phase == string(model.PhasePlacing) {
		fmt.Fprintln(o.out, "Fleet ready. Type start to begin.")
	}
}

func (o *Output) printShots(resp response.CommandResponse) {
	for _, shot := range resp.Shots {
		if shot.Side == string(model.SidePlayer) {
			fmt.Fprintf(o.out, "You fire at %s: %s.", shot.Target, shot.Result)
			if shot.Sunk != "" {
				fmt.Fprintf(o.out, " You sank the enemy %s!", shot.Sunk)
			}
		} else {
			fmt.Fprintf(o.out, "Computer fires at %s: %s.", shot.Target, shot.Result)
			if shot.Sunk != "" {
				fmt.Fprintf(o.out, " It sank your %s!", shot.Sunk)
			}
		}
		fmt.Fprintln(o.out)
	}

	m := resp.Match
	o.printBoard("Enemy waters", m.ComputerBoard)
	if m.Winner == "" {
		return
	}

	o.printBoard("Your waters", m.PlayerBoard)
	o.printWinner(m.Winner)
	if resp.Statistics != nil {
		o.printStatistics(*resp.Statistics)
	}
	fmt.Fprintln(o.out, "Type reset to play again.")
}

func (o *Output) printWinner(winner string) {
	if winner == string(model.SidePlayer) {
		fmt.Fprintln(o.out, "You win! Every enemy ship is sunk.")
	} else {
		fmt.Fprintln(o.out, "The computer wins. Your fleet is lost.")
	}
}

func (o *Output) printStatistics(s response.Statistics) {
	fmt.Fprintf(o.out, "Games played: %d  Wins: %d  Losses: %d\n", s.GamesPlayed, s.Wins, s.Losses)
}

// cellSymbols renders each cell state
var cellSymbols = map[model.CellState]string{
	model.CellEmpty:    ".",
	model.CellOccupied: "#",
	model.CellHit:      "X",
	model.CellMiss:     "o",
}

func (o *Output) printBoard(title string, b response.Board) {
	fmt.Fprintln(o.out, RenderBoard(title, b))
}

// RenderBoard draws a board as a lettered, numbered grid
func RenderBoard(title string, b response.Board) string {
	var sb strings.Builder
	sb.WriteString(title)
	sb.WriteString("\n  ")
	for col := 1; col <= len(b.Cells); col++ {
		fmt.Fprintf(&sb, "%3d", col)
	}
	for row, cells := range b.Cells {
		fmt.Fprintf(&sb, "\n%c ", 'A'+row)
		for _, cell := range cells {
			fmt.Fprintf(&sb, "%3s", cellSymbols[cell])
		}
	}
	return sb.String()
}

// HealthResult response type
type HealthResult struct {
	Status   string `json:"status"`
	Opponent string `json:"opponent,omitempty"`
}
