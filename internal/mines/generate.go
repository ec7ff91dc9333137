package mines

import (
	"fmt"
	"math/rand/v2"

	"github.com/zyedidia/generic/mapset"
)

// safeZone is the clicked cell and everything touching it.
func (b *board) safeZone(clicked Cell) mapset.Set[Cell] {
	safe := mapset.New[Cell]()
	safe.Put(clicked)
	for _, c := range b.neighbors(clicked) {
		safe.Put(c)
	}
	return safe
}

// generate places bombCount bombs outside the safe zone around clicked.
// Every free cell gets a Bernoulli trial at bombCount/total per pass and
// passes repeat until all bombs are down.
//
// panics [AssertionError]
func (b *board) generate(clicked Cell, bombCount int, r *rand.Rand) error {
	safe := b.safeZone(clicked)
	if candidates := len(b.truth) - safe.Size(); bombCount > candidates {
		return fmt.Errorf(
			"%w: %d bombs do not fit in the %d cells outside the safe zone",
			ErrInvalidConfiguration, bombCount, candidates,
		)
	}

	probability := float64(bombCount) / float64(len(b.truth))
	remaining := bombCount
	passes := 0
	for remaining > 0 {
		passes++
		for x := range b.width {
			for y := range b.height {
				c := Cell{x, y}
				if safe.Has(c) || b.truth[b.at(c)] == Bomb {
					continue
				}
				if r.Float64() <= probability {
					b.placeBomb(c)
					remaining--
				}
				if remaining == 0 {
					Log.WithField("passes", passes).Debug("bombs placed")
					return nil
				}
			}
		}
	}
	return nil
}

// panics [AssertionError]
func (b *board) placeBomb(c Cell) {
	b.truth[b.at(c)] = Bomb
	for _, n := range b.neighbors(c) {
		i := b.at(n)
		count, ok := b.truth[i].Count()
		if !ok {
			continue
		}
		next, err := count.Inc()
		if err != nil {
			panic(AssertionError{fmt.Sprintf("cell %s: %v", n, err)})
		}
		b.truth[i] = Checked(next)
	}
}
