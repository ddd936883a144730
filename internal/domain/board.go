package domain

// Board is a rows x cols grid. Row 0 is the top row, rows-1 the bottom.
type Board struct {
	rows  int
	cols  int
	cells [][]PlayerID
}

func NewBoard(rows, cols int) *Board {
	cells := make([][]PlayerID, rows)
	for i := range cells {
		cells[i] = make([]PlayerID, cols)
	}
	return &Board{rows: rows, cols: cols, cells: cells}
}

func (b *Board) Rows() int { return b.rows }
func (b *Board) Cols() int { return b.cols }

// At returns the cell at (row, col). Out of range positions read as Empty.
func (b *Board) At(row, col int) PlayerID {
	if !b.inBounds(row, col) {
		return Empty
	}
	return b.cells[row][col]
}

func (b *Board) inBounds(row, col int) bool {
	return row >= 0 && row < b.rows && col >= 0 && col < b.cols
}

// LowestEmptyRow returns the greatest row index in column whose cell is
// Empty, or false when the column is full or out of range.
func (b *Board) LowestEmptyRow(column int) (int, bool) {
	if column < 0 || column >= b.cols {
		return -1, false
	}
	// scanning from the bottom up, the first empty cell is where a disk lands
	for row := b.rows - 1; row >= 0; row-- {
		if b.cells[row][column] == Empty {
			return row, true
		}
	}
	return -1, false
}

// place assumes row came from LowestEmptyRow.
func (b *Board) place(row, column int, player PlayerID) {
	b.cells[row][column] = player
}

// IsFull reports whether the top row has no empty cell left. Gravity keeps
// this equivalent to the whole board being full.
func (b *Board) IsFull() bool {
	for c := 0; c < b.cols; c++ {
		if b.cells[0][c] == Empty {
			return false
		}
	}
	return true
}

// Snapshot returns a deep copy of the grid
func (b *Board) Snapshot() [][]PlayerID {
	out := make([][]PlayerID, b.rows)
	for i := range b.cells {
		out[i] = make([]PlayerID, b.cols)
		copy(out[i], b.cells[i])
	}
	return out
}
