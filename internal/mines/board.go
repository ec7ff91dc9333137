package mines

import "fmt"

// board keeps the ground truth and the player's view side by side, both
// row-major (y*width + x) over the whole grid.
type board struct {
	width, height int
	truth         []CellState // Checked(n) or Bomb
	play          []CellState // what the player sees
}

func newBoard(width, height int) *board {
	size := max(width, 0) * max(height, 0)
	b := &board{
		width:  width,
		height: height,
		truth:  make([]CellState, size),
		play:   make([]CellState, size),
	}
	b.reset()
	return b
}

func (b *board) reset() {
	for i := range b.truth {
		b.truth[i] = Checked(0)
		b.play[i] = Unchecked
	}
}

func (b *board) index(c Cell) (int, error) {
	if !c.inBounds(b.width, b.height) {
		return 0, fmt.Errorf("%w: %s on %dx%d board", ErrOutOfRange, c, b.width, b.height)
	}
	return c.Y*b.width + c.X, nil
}

// at is index for cells already known to be on the board.
func (b *board) at(c Cell) int {
	return c.Y*b.width + c.X
}

func (b *board) cell(i int) Cell {
	return Cell{X: i % b.width, Y: i / b.width}
}

func (b *board) neighbors(c Cell) []Cell {
	return c.Neighbors(b.width, b.height)
}

func (b *board) snapshot() map[Cell]CellState {
	cells := make(map[Cell]CellState, len(b.play))
	for i, s := range b.play {
		cells[b.cell(i)] = s
	}
	return cells
}
