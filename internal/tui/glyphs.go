package tui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/vancomm/minesweeper-tui/internal/mines"
)

var numberColors = [...]tcell.Color{
	tcell.ColorWhite, // 0 is drawn as a tile
	tcell.ColorWhite,
	tcell.ColorDarkCyan,
	tcell.ColorGreen,
	tcell.ColorYellow,
	tcell.ColorOlive,
	tcell.ColorDarkMagenta,
	tcell.ColorRed,
	tcell.ColorMaroon,
}

// wide maps an ASCII rune to its fullwidth form so digits line up with
// the two-column emoji tiles.
func wide(r rune) rune {
	return r + 0xFEE0
}

func cellGlyph(s mines.CellState) (rune, tcell.Style) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	if n, ok := s.Count(); ok {
		if n == 0 {
			return '🟫', style
		}
		return wide('0' + rune(n)), tcell.StyleDefault.Foreground(numberColors[n])
	}
	switch s {
	case mines.Flagged:
		return '🚩', style
	case mines.Bomb:
		return '💣', style
	case mines.Cross:
		return '❌', style
	case mines.Exploded:
		return '💥', style
	default:
		return '🟩', style
	}
}

var chillFaces = [...]rune{'😊', '🙂', '😐', '😕', '😟', '😩', '😱', '🤯', '🙃'}

func face(state mines.GameState, chill mines.AdjacentBombCount) rune {
	switch state {
	case mines.Initialised:
		return '🫥'
	case mines.Won:
		return '🥳'
	case mines.Lost:
		return '😵'
	default:
		return chillFaces[min(chill, mines.MaxAdjacentBombs)]
	}
}
