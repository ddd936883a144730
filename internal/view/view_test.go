package view

import (
	"testing"

	"github.com/iamasit07/conn4/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestDisplayName(t *testing.T) {
	require.Equal(t, "Player A", DisplayName(domain.PlayerA))
	require.Equal(t, "Player B", DisplayName(domain.PlayerB))
	require.Equal(t, "", DisplayName(domain.Empty))
}

func TestCellImage(t *testing.T) {
	require.Equal(t, "static/1x1.png", CellImage(domain.Empty))
	require.Equal(t, "static/conn4_star.gif", CellImage(domain.PlayerA))
	require.Equal(t, "static/conn4_black.gif", CellImage(domain.PlayerB))
	require.Equal(t, "static/1x1.png", CellImage(domain.PlayerID(9)))
}

func TestNormalizeDifficulty(t *testing.T) {
	d, ok := NormalizeDifficulty("")
	require.True(t, ok)
	require.Equal(t, "easy", d)

	d, ok = NormalizeDifficulty(" HARD ")
	require.True(t, ok)
	require.Equal(t, "hard", d)
	require.Equal(t, "Hard", DifficultyLabel(d))

	_, ok = NormalizeDifficulty("impossible")
	require.False(t, ok)
	require.Equal(t, "Unknown", DifficultyLabel("impossible"))
}

func TestStatusText(t *testing.T) {
	g, err := domain.NewGame(6, 7, 2)
	require.NoError(t, err)
	require.Equal(t, StatusPrompt, StatusText(g))

	for _, c := range []int{3, 0, 3, 0, 3, 0, 3} {
		_, err := g.DropPiece(c)
		require.NoError(t, err)
	}
	require.Equal(t, "Player A Wins", StatusText(g))
}

func TestRenderBoard(t *testing.T) {
	g, err := domain.NewGame(6, 7, 2)
	require.NoError(t, err)
	_, err = g.DropPiece(4)
	require.NoError(t, err)

	b := RenderBoard(g)
	require.Equal(t, 6, b.Rows)
	require.Equal(t, 7, b.Cols)
	require.Equal(t, 1, b.Turn)
	require.False(t, b.Over)
	require.Equal(t, "Player B", b.Next)
	require.Empty(t, b.Winner)
	require.Equal(t, Cell{Player: domain.PlayerA, Image: "static/conn4_star.gif"}, b.Cells[5][4])
	require.Equal(t, Cell{Player: domain.Empty, Image: "static/1x1.png"}, b.Cells[0][0])
}
