// Package minestest provides a fixed [mines.Engine] for exercising front
// ends without a random board.
package minestest

import (
	"time"

	"github.com/vancomm/minesweeper-tui/internal/mines"
)

// FixtureEngine reports a 4x3 board showing every cell state once. The
// first snapshot lists all of them; after any move it reports no cells.
type FixtureEngine struct {
	updated bool
	Moves   []Move
}

type Move struct {
	Type mines.MoveType
	Cell mines.Cell
}

// [*FixtureEngine] implements [mines.Engine]
var _ mines.Engine = (*FixtureEngine)(nil)

func NewFixtureEngine() *FixtureEngine {
	return &FixtureEngine{}
}

func (e *FixtureEngine) Size() (width, height int) {
	return 4, 3
}

// Stats are the numbers the fixture always reports.
var Stats = mines.GameStats{
	State:          mines.Playing,
	FlagsRemaining: 33,
	Elapsed:        999 * time.Second,
}

// Cells is the fixture's initial board.
func Cells() map[mines.Cell]mines.CellState {
	return map[mines.Cell]mines.CellState{
		{X: 0, Y: 0}: mines.Checked(0),
		{X: 1, Y: 0}: mines.Checked(1),
		{X: 2, Y: 0}: mines.Checked(2),
		{X: 0, Y: 1}: mines.Checked(3),
		{X: 1, Y: 1}: mines.Checked(4),
		{X: 2, Y: 1}: mines.Checked(5),
		{X: 0, Y: 2}: mines.Checked(6),
		{X: 1, Y: 2}: mines.Checked(7),
		{X: 2, Y: 2}: mines.Checked(8),
		{X: 0, Y: 3}: mines.Unchecked,
		{X: 1, Y: 3}: mines.Flagged,
		{X: 2, Y: 3}: mines.Bomb,
	}
}

func (e *FixtureEngine) BoardState() (mines.GameStats, map[mines.Cell]mines.CellState) {
	if e.updated {
		return Stats, map[mines.Cell]mines.CellState{}
	}
	return Stats, Cells()
}

func (e *FixtureEngine) PlayMove(move mines.MoveType, cell mines.Cell) (mines.GameState, error) {
	e.updated = true
	e.Moves = append(e.Moves, Move{move, cell})
	return mines.Playing, nil
}

func (e *FixtureEngine) Clone() mines.Engine {
	return NewFixtureEngine()
}

func (e *FixtureEngine) ChillFactor(mines.Cell) (mines.AdjacentBombCount, error) {
	return mines.MaxAdjacentBombs, nil
}
