package mines

import "fmt"

// Cell addresses a square on the board. X is the column, Y the row.
type Cell struct {
	X, Y int
}

// Cell implements [fmt.Stringer]
func (c Cell) String() string {
	return fmt.Sprintf("%d:%d", c.X, c.Y)
}

func (c Cell) inBounds(width, height int) bool {
	return 0 <= c.X && c.X < width && 0 <= c.Y && c.Y < height
}

// Neighbors returns the in-bounds cells touching c, never c itself.
func (c Cell) Neighbors(width, height int) []Cell {
	cells := make([]Cell, 0, 8)
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			n := Cell{c.X + dx, c.Y + dy}
			if n.inBounds(width, height) {
				cells = append(cells, n)
			}
		}
	}
	return cells
}
