// Package command turns a line of user input into a typed Command.
// The engine only ever sees the variants defined here.
package command

import (
	"fmt"
	"strings"

	"github.com/mcoot/battleship-go/internal/model"
)

// Command is one of the variants below
type Command interface {
	// Name returns the verb the command was parsed from
	Name() string
}

// Place lays a ship on the player's board. An empty Ship means the next
// unplaced ship in catalog order.
type Place struct {
	Ship        model.ShipName
	Origin      model.Coordinate
	Orientation model.Orientation
}

// PlaceRandom places the player's remaining fleet at random
type PlaceRandom struct{}

// Start moves the match from Placing to InProgress
type Start struct{}

// Fire shoots at the computer's board
type Fire struct {
	Target model.Coordinate
}

// Reset discards the match and begins a fresh one
type Reset struct{}

// Stats shows cumulative statistics
type Stats struct{}

// Show renders one side's board
type Show struct {
	Board model.Side
}

// Help lists the available commands
type Help struct{}

// Quit ends the session
type Quit struct{}

func (Place) Name() string       { return "place" }
func (PlaceRandom) Name() string { return "auto" }
func (Start) Name() string       { return "start" }
func (Fire) Name() string        { return "fire" }
func (Reset) Name() string       { return "reset" }
func (Stats) Name() string       { return "stats" }
func (Show) Name() string        { return "show" }
func (Help) Name() string        { return "help" }
func (Quit) Name() string        { return "quit" }

// IsStateChanging returns true for commands that may mutate a match
func IsStateChanging(cmd Command) bool {
	switch cmd.(type) {
	case Place, PlaceRandom, Start, Fire, Reset:
		return true
	default:
		return false
	}
}

// Parse converts a line of input to a Command
func Parse(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty command", model.ErrMalformedCommand)
	}

	verb := strings.ToLower(fields[0])
	args := fields[1:]

	switch verb {
	case "place":
		return parsePlace(args)
	case "auto":
		if err := arity(verb, args, 0); err != nil {
			return nil, err
		}
		return PlaceRandom{}, nil
	case "start", "ready":
		if err := arity(verb, args, 0); err != nil {
			return nil, err
		}
		return Start{}, nil
	case "fire", "shoot":
		if err := arity(verb, args, 1); err != nil {
			return nil, err
		}
		target, err := model.ParseCoordinate(args[0])
		if err != nil {
			return nil, err
		}
		return Fire{Target: target}, nil
	case "reset":
		if err := arity(verb, args, 0); err != nil {
			return nil, err
		}
		return Reset{}, nil
	case "stats":
		if err := arity(verb, args, 0); err != nil {
			return nil, err
		}
		return Stats{}, nil
	case "show":
		return parseShow(args)
	case "help", "?":
		return Help{}, nil
	case "quit", "exit":
		return Quit{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown command %q", model.ErrMalformedCommand, fields[0])
	}
}

// parsePlace handles "place <coord> <orientation>", "place <ship> <coord> <orientation>"
// and "place random"
func parsePlace(args []string) (Command, error) {
	switch len(args) {
	case 1:
		if strings.EqualFold(args[0], "random") {
			return PlaceRandom{}, nil
		}
	case 2:
		return placeAt("", args[0], args[1])
	case 3:
		spec, err := model.LookupShip(args[0])
		if err != nil {
			return nil, err
		}
		return placeAt(spec.Name, args[1], args[2])
	}
	return nil, fmt.Errorf("%w: usage: place [ship] <coordinate> <H|V>", model.ErrMalformedCommand)
}

func placeAt(ship model.ShipName, coord, orientation string) (Command, error) {
	origin, err := model.ParseCoordinate(coord)
	if err != nil {
		return nil, err
	}
	o, err := model.ParseOrientation(orientation)
	if err != nil {
		return nil, err
	}
	return Place{Ship: ship, Origin: origin, Orientation: o}, nil
}

func parseShow(args []string) (Command, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%w: usage: show <player|computer>", model.ErrMalformedCommand)
	}
	switch strings.ToLower(args[0]) {
	case "player", "me":
		return Show{Board: model.SidePlayer}, nil
	case "computer", "ai", "enemy":
		return Show{Board: model.SideComputer}, nil
	default:
		return nil, fmt.Errorf("%w: unknown board %q", model.ErrMalformedCommand, args[0])
	}
}

func arity(verb string, args []string, want int) error {
	if len(args) != want {
		return fmt.Errorf("%w: %s takes %d argument(s), got %d", model.ErrMalformedCommand, verb, want, len(args))
	}
	return nil
}

// Usage describes every command, one per line
const Usage = `Commands:
  place <coordinate> <H|V>         place the next ship in the fleet
  place <ship> <coordinate> <H|V>  place a specific ship
  auto                             lay out the whole fleet at random
  start                            begin the battle once every ship is placed
  fire <coordinate>                shoot at the computer's board, e.g. fire B3
  show <player|computer>           show a board
  stats                            show wins and losses
  reset                            abandon this match and start a new one
  quit                             leave the game`
