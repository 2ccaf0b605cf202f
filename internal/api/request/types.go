package request

// CreateMatchRequest is the request body for creating a match
type CreateMatchRequest struct {
	ID string `json:"id,omitempty"` // Generated when empty
}

// PlaceShipRequest is the request body for placing a ship. An empty ship
// places the next unplaced ship of the catalog.
type PlaceShipRequest struct {
	Ship        string `json:"ship,omitempty"`
	Origin      string `json:"origin"`
	Orientation string `json:"orientation"`
}

// FireRequest is the request body for firing at the computer's board
type FireRequest struct {
	Target string `json:"target"`
}

// CommandRequest carries one line of text command input
type CommandRequest struct {
	Command string `json:"command"`
}
