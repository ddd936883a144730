package domain

// Game is the Connect-Four engine. It owns one board and is not safe for
// concurrent use; callers that share a Game must serialize access.
type Game struct {
	board       *Board
	playerCount int
	currentTurn int
	isOver      bool
	winner      PlayerID
	moves       []int
}

func NewGame(rows, cols, playerCount int) (*Game, error) {
	if rows < MinRows || cols < MinCols {
		return nil, ErrInvalidConfiguration
	}
	if playerCount != 1 && playerCount != 2 {
		return nil, ErrInvalidConfiguration
	}

	return &Game{
		board:       NewBoard(rows, cols),
		playerCount: playerCount,
		winner:      Empty,
	}, nil
}

// Replay rebuilds a game by applying moves in order through DropPiece.
func Replay(rows, cols, playerCount int, moves []int) (*Game, error) {
	g, err := NewGame(rows, cols, playerCount)
	if err != nil {
		return nil, err
	}
	for _, column := range moves {
		if _, err := g.DropPiece(column); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// PlayerForTurn maps a turn counter to the player who moves on it. With one
// player every turn belongs to PlayerA; with two, even turns are PlayerA's
// and odd turns PlayerB's.
func PlayerForTurn(turn, playerCount int) PlayerID {
	if playerCount == 1 || turn%2 == 0 {
		return PlayerA
	}
	return PlayerB
}

// DropPiece drops the current player's disk into column. A rejected call
// leaves the game untouched.
func (g *Game) DropPiece(column int) (MoveResult, error) {
	if column < 0 || column >= g.board.cols {
		return MoveResult{}, ErrInvalidColumn
	}
	if g.isOver {
		return MoveResult{}, ErrGameAlreadyOver
	}

	row, ok := g.board.LowestEmptyRow(column)
	if !ok {
		return MoveResult{}, ErrColumnFull
	}

	player := PlayerForTurn(g.currentTurn, g.playerCount)
	g.board.place(row, column, player)
	g.currentTurn++
	g.moves = append(g.moves, column)

	result := MoveResult{
		Outcome: OutcomeContinue,
		Row:     row,
		Column:  column,
		Player:  player,
		Turn:    g.currentTurn,
	}

	if w, won := CheckWin(g.board); won {
		g.isOver = true
		g.winner = w
		result.Outcome = OutcomeWinner
		result.Winner = w
		return result, nil
	}

	if g.board.IsFull() {
		g.isOver = true
		result.Outcome = OutcomeDraw
	}

	return result, nil
}

func (g *Game) LowestEmptyRow(column int) (int, bool) {
	return g.board.LowestEmptyRow(column)
}

func (g *Game) Snapshot() [][]PlayerID { return g.board.Snapshot() }
func (g *Game) IsOver() bool           { return g.isOver }
func (g *Game) CurrentTurn() int       { return g.currentTurn }
func (g *Game) PlayerCount() int       { return g.playerCount }
func (g *Game) Rows() int              { return g.board.rows }
func (g *Game) Cols() int              { return g.board.cols }

// Winner returns the winning player, if the game ended in a win.
func (g *Game) Winner() (PlayerID, bool) {
	return g.winner, g.winner != Empty
}

// NextPlayer is the player who will own the next accepted drop.
func (g *Game) NextPlayer() PlayerID {
	return PlayerForTurn(g.currentTurn, g.playerCount)
}

// Moves returns the accepted columns in play order.
func (g *Game) Moves() []int {
	out := make([]int, len(g.moves))
	copy(out, g.moves)
	return out
}

func (g *Game) Status() GameStatus {
	switch {
	case g.winner != Empty:
		return StatusWon
	case g.isOver:
		return StatusDraw
	case g.currentTurn == 0:
		return StatusNotStarted
	default:
		return StatusInProgress
	}
}
