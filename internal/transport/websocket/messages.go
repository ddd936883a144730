package websocket

import "github.com/iamasit07/conn4/internal/view"

const (
	TypeInit     = "init"
	TypeDrop     = "drop"
	TypeRestart  = "restart"
	TypeState    = "state"
	TypeBoard    = "board"
	TypeGameOver = "game_over"
	TypeError    = "error"
)

// ClientMessage is sent by the page. Column is a pointer so a drop without
// one can be told apart from a drop into column 0.
type ClientMessage struct {
	Type   string `json:"type"`
	Token  string `json:"token,omitempty"`
	Column *int   `json:"column,omitempty"`
}

type ServerMessage struct {
	Type            string      `json:"type"`
	Message         string      `json:"message,omitempty"`
	SessionID       string      `json:"sessionId,omitempty"`
	Difficulty      string      `json:"difficulty,omitempty"`
	DifficultyLabel string      `json:"difficultyLabel,omitempty"`
	Board           *view.Board `json:"board,omitempty"`
	AllowRestart    *bool       `json:"allowRestart,omitempty"`
}
