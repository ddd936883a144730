// Package view maps engine state to the strings and assets a page renders.
package view

import (
	"strings"

	"github.com/iamasit07/conn4/internal/domain"
)

var displayNames = map[domain.PlayerID]string{
	domain.PlayerA: "Player A",
	domain.PlayerB: "Player B",
}

var cellImages = map[domain.PlayerID]string{
	domain.Empty:   "static/1x1.png",
	domain.PlayerA: "static/conn4_star.gif",
	domain.PlayerB: "static/conn4_black.gif",
}

var difficultyLabels = map[string]string{
	"easy":   "Easy",
	"medium": "Medium",
	"hard":   "Hard",
}

const (
	StatusPrompt = "Make your move."
	StatusDraw   = "Draw"
)

func DisplayName(p domain.PlayerID) string {
	if name, ok := displayNames[p]; ok {
		return name
	}
	return ""
}

func CellImage(p domain.PlayerID) string {
	if img, ok := cellImages[p]; ok {
		return img
	}
	return cellImages[domain.Empty]
}

// NormalizeDifficulty lower-cases d and defaults it to "easy". The second
// result is false for unknown values.
func NormalizeDifficulty(d string) (string, bool) {
	d = strings.ToLower(strings.TrimSpace(d))
	if d == "" {
		return "easy", true
	}
	_, ok := difficultyLabels[d]
	return d, ok
}

func DifficultyLabel(d string) string {
	if label, ok := difficultyLabels[d]; ok {
		return label
	}
	return "Unknown"
}

// StatusText is the line shown under the board.
func StatusText(g *domain.Game) string {
	if w, ok := g.Winner(); ok {
		return DisplayName(w) + " Wins"
	}
	if g.IsOver() {
		return StatusDraw
	}
	return StatusPrompt
}

// Cell is one rendered board position.
type Cell struct {
	Player domain.PlayerID `json:"player"`
	Image  string          `json:"image"`
}

// Board is a rendered snapshot, top row first.
type Board struct {
	Rows   int      `json:"rows"`
	Cols   int      `json:"cols"`
	Cells  [][]Cell `json:"cells"`
	Status string   `json:"status"`
	Over   bool     `json:"over"`
	Winner string   `json:"winner,omitempty"`
	Next   string   `json:"next,omitempty"`
	Turn   int      `json:"turn"`
}

func RenderBoard(g *domain.Game) Board {
	snap := g.Snapshot()
	cells := make([][]Cell, len(snap))
	for r, row := range snap {
		cells[r] = make([]Cell, len(row))
		for c, p := range row {
			cells[r][c] = Cell{Player: p, Image: CellImage(p)}
		}
	}

	b := Board{
		Rows:   g.Rows(),
		Cols:   g.Cols(),
		Cells:  cells,
		Status: StatusText(g),
		Over:   g.IsOver(),
		Turn:   g.CurrentTurn(),
	}
	if w, ok := g.Winner(); ok {
		b.Winner = DisplayName(w)
	}
	if !g.IsOver() {
		b.Next = DisplayName(g.NextPlayer())
	}
	return b
}
