package domain

import "time"

// SessionRecord is what a live game needs to be rebuilt with Replay.
type SessionRecord struct {
	ID         string    `json:"id"`
	Rows       int       `json:"rows"`
	Cols       int       `json:"cols"`
	Players    int       `json:"players"`
	Difficulty string    `json:"difficulty"`
	Client     string    `json:"client,omitempty"`
	Moves      []int     `json:"moves"`
	CreatedAt  time.Time `json:"created_at"`
}

// Restore replays the record into a fresh game.
func (r *SessionRecord) Restore() (*Game, error) {
	return Replay(r.Rows, r.Cols, r.Players, r.Moves)
}
