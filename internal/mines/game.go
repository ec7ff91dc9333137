package mines

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

// Engine is everything a front end needs from a game. [Game] is the real
// thing; minestest.FixtureEngine is a fixed board for UI tests.
type Engine interface {
	Size() (width, height int)
	BoardState() (GameStats, map[Cell]CellState)
	PlayMove(move MoveType, cell Cell) (GameState, error)
	Clone() Engine
	ChillFactor(cell Cell) (AdjacentBombCount, error)
}

type Option func(*Game)

// WithRand sets the source used to lay out bombs.
func WithRand(r *rand.Rand) Option {
	return func(g *Game) { g.rand = r }
}

// WithClock sets the clock that times the game.
func WithClock(c clock.Clock) Option {
	return func(g *Game) { g.clock = c }
}

// Game is a single minesweeper session. The bomb layout is generated on
// the first move so the first dig always opens an area. A Game is not
// safe for concurrent use.
type Game struct {
	state       GameState
	board       *board
	initialised bool

	width, height int
	bombCount     int
	checkedCells  int
	flaggedCells  int
	totalCells    int

	rand         *rand.Rand
	clock        clock.Clock
	startedAt    time.Time
	started      bool
	completeTime time.Duration
}

// [*Game] implements [Engine]
var _ Engine = (*Game)(nil)

func New(width, height, bombCount int, opts ...Option) *Game {
	g := &Game{
		state:      Initialised,
		board:      newBoard(width, height),
		width:      width,
		height:     height,
		bombCount:  bombCount,
		totalCells: max(width, 0) * max(height, 0),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rand == nil {
		g.rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if g.clock == nil {
		g.clock = clock.New()
	}
	return g
}

func (g *Game) Size() (width, height int) {
	return g.width, g.height
}

func (g *Game) BombCount() int {
	return g.bombCount
}

// Clone starts a new game with the same dimensions and bomb count. It
// shares the rand source and clock but none of the board.
func (g *Game) Clone() Engine {
	return New(g.width, g.height, g.bombCount, WithRand(g.rand), WithClock(g.clock))
}

func (g *Game) elapsed() time.Duration {
	if !g.started {
		return 0
	}
	return g.clock.Since(g.startedAt).Truncate(time.Second)
}

func (g *Game) BoardState() (GameStats, map[Cell]CellState) {
	elapsed := g.completeTime
	if !g.state.Complete() {
		elapsed = g.elapsed()
	}
	stats := GameStats{
		State:          g.state,
		FlagsRemaining: g.bombCount - g.flaggedCells,
		Elapsed:        elapsed,
	}
	return stats, g.board.snapshot()
}

// ChillFactor is the highest risk visible on cell and its neighbours:
// the revealed count for checked cells, 8 for bombs, 0 otherwise.
func (g *Game) ChillFactor(cell Cell) (AdjacentBombCount, error) {
	i, err := g.board.index(cell)
	if err != nil {
		return 0, err
	}
	chill := g.board.play[i].risk()
	for _, n := range g.board.neighbors(cell) {
		chill = max(chill, g.board.play[g.board.at(n)].risk())
	}
	return chill, nil
}

// PlayMove applies one move and returns the resulting state. Once the
// game is complete every move is a no-op that returns the final state.
func (g *Game) PlayMove(move MoveType, cell Cell) (GameState, error) {
	if g.state.Complete() {
		return g.state, nil
	}

	// NOTE: x == width and y == height pass this check. The lookup below
	// still rejects them before anything is touched.
	if cell.X < 0 || cell.Y < 0 || cell.X > g.width || cell.Y > g.height {
		return g.state, fmt.Errorf("%w: %s", ErrOutOfRange, cell)
	}
	i, err := g.board.index(cell)
	if err != nil {
		return g.state, err
	}

	if g.bombCount < 0 || g.bombCount >= g.totalCells {
		return g.state, fmt.Errorf(
			"%w: %d bombs on %d cells, the maximum is %d",
			ErrInvalidConfiguration, g.bombCount, g.totalCells, g.totalCells-1,
		)
	}

	if err := g.initialise(cell); err != nil {
		return g.state, err
	}

	switch move {
	case Dig:
		g.digCell(i, true)
	case Flag:
		g.flagCell(i)
	case DigAround:
		g.digAroundCell(cell)
	default:
		return g.state, fmt.Errorf("unknown move %s", move)
	}

	Log.WithFields(logrus.Fields{
		"move":    move.String(),
		"cell":    cell.String(),
		"state":   g.state.String(),
		"checked": g.checkedCells,
		"flagged": g.flaggedCells,
	}).Debug("move played")

	return g.state, nil
}

func (g *Game) initialise(clicked Cell) (err error) {
	if g.initialised {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			var ae AssertionError
			if e, ok := r.(error); ok && errors.As(e, &ae) {
				Log.WithError(ae).Error("board generation aborted")
				g.board.reset()
				err = fmt.Errorf("generate board: %w", ae)
				return
			}
			panic(r)
		}
	}()

	if err := g.board.generate(clicked, g.bombCount, g.rand); err != nil {
		return err
	}

	g.initialised = true
	g.startedAt = g.clock.Now()
	g.started = true
	g.state = Playing

	Log.WithFields(logrus.Fields{
		"width":  g.width,
		"height": g.height,
		"bombs":  g.bombCount,
		"first":  clicked.String(),
	}).Debug("board initialised")
	return nil
}

func (g *Game) isWon() bool {
	return g.checkedCells+g.flaggedCells == g.totalCells &&
		g.flaggedCells == g.bombCount
}

func (g *Game) winGame() {
	g.completeTime = g.elapsed()
	g.state = Won
}

// loseGame ends the game and uncovers every bomb the player did not flag
// or hit, crossing out flags that sit on safe cells.
func (g *Game) loseGame() {
	g.completeTime = g.elapsed()
	g.state = Lost
	for i, truth := range g.board.truth {
		play := g.board.play[i]
		if truth == Bomb {
			if play != Flagged && play != Exploded {
				g.board.play[i] = Bomb
			}
		} else if play == Flagged {
			g.board.play[i] = Cross
		}
	}
}

func (g *Game) digCell(i int, alsoUnflag bool) {
	switch g.board.play[i] {
	case Unchecked:
		g.board.play[i] = g.board.truth[i]
		if g.board.play[i] == Bomb {
			g.board.play[i] = Exploded
			g.loseGame()
			return
		}
		if n, _ := g.board.play[i].Count(); n == 0 {
			g.revealSafePatch(g.board.cell(i))
		}
		g.checkedCells++
		if g.isWon() {
			g.winGame()
		}
	case Flagged:
		if alsoUnflag {
			g.board.play[i] = Unchecked
			g.flaggedCells--
		}
	}
}

func (g *Game) flagCell(i int) {
	switch g.board.play[i] {
	case Unchecked:
		g.board.play[i] = Flagged
		g.flaggedCells++
		if g.isWon() {
			g.winGame()
		}
	case Flagged:
		g.board.play[i] = Unchecked
		g.flaggedCells--
	}
}

// digAroundCell chords on a checked cell: when the flags around it match
// its count, every neighbour is dug. Flagged neighbours stay flagged.
func (g *Game) digAroundCell(cell Cell) {
	n, ok := g.board.play[g.board.at(cell)].Count()
	if !ok {
		return
	}
	neighbors := g.board.neighbors(cell)
	flagged := 0
	for _, c := range neighbors {
		if g.board.play[g.board.at(c)] == Flagged {
			flagged++
		}
	}
	if flagged != int(n) {
		return
	}
	for _, c := range neighbors {
		g.digCell(g.board.at(c), false)
		if g.state.Complete() {
			return
		}
	}
}
