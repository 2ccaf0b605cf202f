package model

// Statistics are cumulative results across every finished match
type Statistics struct {
	GamesPlayed int `json:"gamesPlayed"`
	Wins        int `json:"wins"`
	Losses      int `json:"losses"`
}

// Record returns the statistics with one more finished match
func (s Statistics) Record(winner Side) Statistics {
	s.GamesPlayed++
	if winner == SidePlayer {
		s.Wins++
	} else {
		s.Losses++
	}
	return s
}
