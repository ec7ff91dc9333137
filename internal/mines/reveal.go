package mines

import (
	"github.com/gammazero/deque"
	"github.com/zyedidia/generic/mapset"
)

// revealSafePatch opens the connected region of zero cells around start
// plus the numbered cells bordering it. Flags are left alone. Every cell
// is visited at most once, so the loop is bounded by the board size.
func (g *Game) revealSafePatch(start Cell) {
	var queue deque.Deque[Cell]
	visited := mapset.New[Cell]()
	queue.PushBack(start)

	for queue.Len() > 0 {
		c := queue.PopFront()
		if visited.Has(c) {
			continue
		}
		visited.Put(c)

		i := g.board.at(c)
		n, ok := g.board.truth[i].Count()
		if !ok {
			continue
		}
		if n == 0 {
			for _, next := range g.board.neighbors(c) {
				queue.PushBack(next)
			}
		}
		if g.board.play[i] == Unchecked {
			g.board.play[i] = g.board.truth[i]
			g.checkedCells++
		}
	}
}
