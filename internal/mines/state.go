package mines

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// AdjacentBombCount is the number of bombs among a cell's neighbours.
type AdjacentBombCount uint8

const MaxAdjacentBombs AdjacentBombCount = 8

func NewAdjacentBombCount(n int) (AdjacentBombCount, error) {
	if n < 0 || n > int(MaxAdjacentBombs) {
		return 0, fmt.Errorf("%w: got %d", ErrCountOutOfRange, n)
	}
	return AdjacentBombCount(n), nil
}

// Inc returns the count plus one. It fails rather than exceed 8.
func (n AdjacentBombCount) Inc() (AdjacentBombCount, error) {
	return NewAdjacentBombCount(int(n) + 1)
}

type CellState int8

const (
	Unchecked CellState = -2
	Flagged   CellState = -1
	Bomb      CellState = 64
	Exploded  CellState = 65
	Cross     CellState = 66
	/*
	 * 0 to 8 mean the square is open (Checked) and hold the number of
	 * surrounding bombs. Bomb is a revealed bomb, Exploded is the one
	 * the player hit, Cross is a flag that turned out to be wrong.
	 */
)

// Checked is the state of a revealed safe cell with n bombs around it.
func Checked(n AdjacentBombCount) CellState {
	return CellState(n)
}

// Count reports the adjacent bomb count if s is a Checked state.
func (s CellState) Count() (AdjacentBombCount, bool) {
	if 0 <= s && s <= CellState(MaxAdjacentBombs) {
		return AdjacentBombCount(s), true
	}
	return 0, false
}

// risk feeds the chill factor: bombs are as bad as it gets.
func (s CellState) risk() AdjacentBombCount {
	if n, ok := s.Count(); ok {
		return n
	}
	switch s {
	case Bomb, Exploded:
		return MaxAdjacentBombs
	default:
		return 0
	}
}

// CellState implements [fmt.Stringer]
func (s CellState) String() string {
	switch s {
	case Unchecked:
		return " "
	case Flagged:
		return "*"
	case Bomb:
		return "B"
	case Exploded:
		return "X"
	case Cross:
		return "x"
	case 0, 1, 2, 3, 4, 5, 6, 7, 8:
		return strconv.Itoa(int(s))
	default:
		return "!"
	}
}

// Grid renders a snapshot for logs and test failures.
func Grid(width, height int, cells map[Cell]CellState) string {
	var b strings.Builder
	for y := range height {
		for x := range width {
			s, ok := cells[Cell{x, y}]
			if !ok {
				b.WriteString("? ")
				continue
			}
			b.WriteString(s.String() + " ")
		}
		b.WriteString("\n")
	}
	return b.String()
}

type GameState uint8

const (
	Initialised GameState = iota
	Playing
	Won
	Lost
)

// Complete reports whether the game has ended, won or lost.
func (s GameState) Complete() bool {
	return s == Won || s == Lost
}

// GameState implements [fmt.Stringer]
func (s GameState) String() string {
	switch s {
	case Initialised:
		return "initialised"
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "GameState(" + strconv.Itoa(int(s)) + ")"
	}
}

type MoveType uint8

const (
	Dig MoveType = iota
	Flag
	DigAround
)

// MoveType implements [fmt.Stringer]
func (m MoveType) String() string {
	switch m {
	case Dig:
		return "dig"
	case Flag:
		return "flag"
	case DigAround:
		return "dig-around"
	default:
		return "MoveType(" + strconv.Itoa(int(m)) + ")"
	}
}

func ParseMoveType(s string) (MoveType, error) {
	switch strings.ToLower(s) {
	case "dig", "d":
		return Dig, nil
	case "flag", "f":
		return Flag, nil
	case "dig-around", "chord", "c":
		return DigAround, nil
	default:
		return 0, fmt.Errorf("unknown move type %q", s)
	}
}

type GameStats struct {
	State          GameState
	FlagsRemaining int
	Elapsed        time.Duration // whole seconds
}
