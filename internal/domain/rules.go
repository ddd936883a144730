package domain

// directions are the four line orientations a win can take:
// horizontal, vertical, down-right and down-left.
var directions = [4][2]int{
	{0, 1},
	{1, 0},
	{1, 1},
	{1, -1},
}

// CheckWin scans the whole board for ToWin equal, non-empty cells in a line.
// Every cell is tried as the start of a line in every direction, so short
// diagonals near the corners need no special handling.
func CheckWin(b *Board) (PlayerID, bool) {
	for _, d := range directions {
		dr, dc := d[0], d[1]
		for r := 0; r < b.rows; r++ {
			for c := 0; c < b.cols; c++ {
				if p := lineOwner(b, r, c, dr, dc); p != Empty {
					return p, true
				}
			}
		}
	}
	return Empty, false
}

// lineOwner returns the player holding all ToWin cells starting at (row, col)
// along (dr, dc), or Empty.
func lineOwner(b *Board, row, col, dr, dc int) PlayerID {
	endRow, endCol := row+(ToWin-1)*dr, col+(ToWin-1)*dc
	if !b.inBounds(row, col) || !b.inBounds(endRow, endCol) {
		return Empty
	}

	first := b.cells[row][col]
	if first == Empty {
		return Empty
	}
	for i := 1; i < ToWin; i++ {
		if b.cells[row+i*dr][col+i*dc] != first {
			return Empty
		}
	}
	return first
}
