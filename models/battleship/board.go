package battleship

import (
	"fmt"
	"strings"
)

const (
	BoardSymbolWater     = '.'
	BoardSymbolShip      = '#'
	BoardSymbolBomb      = 'o'
	BoardSymbolHit       = '*'
	BoardSymbolOldHit    = 'x'
	boardColumnSeparator = " "
)

// BoardView is everything needed to draw the board after a round.
type BoardView struct {
	BoardSize  int           `json:"board_size"`
	Hits       []Coordinates `json:"hits"`
	Bombs      []Bomb        `json:"bombs"`
	HitHistory []Coordinates `json:"hit_history"`
	Undamaged  []Coordinates `json:"undamaged"`
}

// RenderBoard draws the board as text, one row per y. A cell hit
// this round wins over an older hit, which wins over a bomb, which
// wins over an undamaged ship cell.
func RenderBoard(view BoardView) string {
	grid := make([][]rune, view.BoardSize)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(string(BoardSymbolWater), view.BoardSize))
	}

	mark := func(c Coordinates, symbol rune) {
		if c.InBounds(view.BoardSize) {
			grid[c.Y][c.X] = symbol
		}
	}

	for _, c := range view.Undamaged {
		mark(c, BoardSymbolShip)
	}
	for _, b := range view.Bombs {
		mark(b.Position, BoardSymbolBomb)
	}
	for _, c := range view.HitHistory {
		mark(c, BoardSymbolOldHit)
	}
	for _, c := range view.Hits {
		mark(c, BoardSymbolHit)
	}

	var sb strings.Builder
	sb.WriteString("  ")
	for x := 0; x < view.BoardSize; x++ {
		sb.WriteString(boardColumnSeparator)
		sb.WriteString(fmt.Sprint(x % 10))
	}
	sb.WriteByte('\n')

	for y, row := range grid {
		fmt.Fprintf(&sb, "%2d", y)
		for _, cell := range row {
			sb.WriteString(boardColumnSeparator)
			sb.WriteRune(cell)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func Legend() string {
	return fmt.Sprintf("%c water  %c ship  %c bomb  %c hit this turn  %c hit before",
		BoardSymbolWater, BoardSymbolShip, BoardSymbolBomb, BoardSymbolHit, BoardSymbolOldHit)
}
