package domain

// PlayerID is the content of a single board cell.
type PlayerID int

const (
	Empty   PlayerID = 0
	PlayerA PlayerID = 1
	PlayerB PlayerID = 2
)

const (
	DefaultRows = 6
	DefaultCols = 7
	MinRows     = 4
	MinCols     = 4
	ToWin       = 4

	DefaultMaxRows = 20
	DefaultMaxCols = 20
)

// to represent the game status
type GameStatus string

const (
	StatusNotStarted GameStatus = "not_started"
	StatusInProgress GameStatus = "in_progress"
	StatusWon        GameStatus = "won"
	StatusDraw       GameStatus = "draw"
)

// Outcome is what a single accepted move led to.
type Outcome string

const (
	OutcomeContinue Outcome = "continue"
	OutcomeWinner   Outcome = "winner"
	OutcomeDraw     Outcome = "draw"
)

// MoveResult describes an accepted move.
type MoveResult struct {
	Outcome Outcome  `json:"outcome"`
	Row     int      `json:"row"`
	Column  int      `json:"column"`
	Player  PlayerID `json:"player"`
	Winner  PlayerID `json:"winner,omitempty"`
	Turn    int      `json:"turn"`
}

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidConfiguration Error = "invalid configuration"
	ErrInvalidColumn        Error = "invalid column"
	ErrColumnFull           Error = "column is full"
	ErrGameAlreadyOver      Error = "game is already over"
)
