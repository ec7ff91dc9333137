// Package tui draws a minesweeper game on a tcell screen and turns mouse
// and keyboard events into moves.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-tui/internal/mines"
	"github.com/vancomm/minesweeper-tui/internal/scores"
)

var Log = logrus.New()

const (
	statsRow     = 0
	separatorRow = 1
	boardTop     = 2

	minColumns  = 24
	counterMax  = 999
	doubleClick = 400 * time.Millisecond
	saveTimeout = 5 * time.Second
)

// ScoreKeeper records a finished game and reports the best time for its
// preset.
type ScoreKeeper interface {
	Record(ctx context.Context, preset string, elapsed time.Duration, won bool) (scores.Best, error)
}

type Cuer interface {
	Cue(state mines.GameState)
}

type ViewOption func(*GameView)

func WithScores(s ScoreKeeper) ViewOption {
	return func(v *GameView) {
		v.scores = s
	}
}

func WithCues(c Cuer) ViewOption {
	return func(v *GameView) {
		v.cues = c
	}
}

// WithClock sets the clock used to detect double clicks.
func WithClock(c clock.Clock) ViewOption {
	return func(v *GameView) {
		v.clock = c
	}
}

// GameView owns the current game and everything needed to draw it.
// It is not safe for concurrent use; [Run] drives it from one goroutine.
type GameView struct {
	engine mines.Engine
	preset string
	scores ScoreKeeper
	cues   Cuer
	clock  clock.Clock

	cells    map[mines.Cell]mines.CellState
	stats    mines.GameStats
	chill    mines.AdjacentBombCount
	cursor   mines.Cell
	best     scores.Best
	recorded bool

	buttons  tcell.ButtonMask
	lastDig  time.Time
	lastCell mines.Cell
}

func NewGameView(engine mines.Engine, preset string, opts ...ViewOption) *GameView {
	v := &GameView{
		engine: engine,
		preset: preset,
		clock:  clock.New(),
		cells:  make(map[mines.Cell]mines.CellState),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Size reports the screen area the view needs.
func (v *GameView) Size() (columns, rows int) {
	w, h := v.engine.Size()
	columns = max(w*2, minColumns)
	rows = boardTop + h
	if v.stats.State.Complete() {
		rows += 2
	}
	return columns, rows
}

// refresh merges the engine's latest cell updates into the view.
func (v *GameView) refresh() {
	stats, cells := v.engine.BoardState()
	v.stats = stats
	for c, s := range cells {
		v.cells[c] = s
	}
}

func (v *GameView) Draw(screen tcell.Screen) {
	v.refresh()
	screen.Clear()

	columns, _ := v.Size()
	v.drawStats(screen, columns)
	separator(screen, separatorRow, columns)
	v.drawBoard(screen)
	if v.stats.State.Complete() {
		v.drawPanel(screen, columns)
	}
	screen.Show()
}

func (v *GameView) drawStats(screen tcell.Screen, columns int) {
	style := tcell.StyleDefault
	flags := min(max(v.stats.FlagsRemaining, -99), counterMax)
	secs := min(int(v.stats.Elapsed/time.Second), counterMax)

	x := putRune(screen, 0, statsRow, '🚩', style)
	putCounter(screen, x, statsRow, flags, style)

	putRune(screen, columns/2-1, statsRow, face(v.stats.State, v.chill), style)

	x = putRune(screen, columns-8, statsRow, '🕑', style)
	putCounter(screen, x, statsRow, secs, style)
}

func (v *GameView) drawBoard(screen tcell.Screen) {
	for c, s := range v.cells {
		r, style := cellGlyph(s)
		if c == v.cursor && !v.stats.State.Complete() {
			style = style.Reverse(true)
		}
		putRune(screen, c.X*2, boardTop+c.Y, r, style)
	}
}

func (v *GameView) panelRow() int {
	_, h := v.engine.Size()
	return boardTop + h + 1
}

func (v *GameView) drawPanel(screen tcell.Screen, columns int) {
	style := tcell.StyleDefault
	row := v.panelRow()
	separator(screen, row-1, columns)

	x := putRune(screen, 0, row, '🏆', style)
	if v.best.Set {
		putCounter(screen, x, row, min(int(v.best.Time/time.Second), counterMax), style)
	} else {
		putString(screen, x, row, "---", style)
	}

	half := columns/2 - 1
	putRune(screen, half, row, '┃', style)
	putString(screen, half+2, row, "Retry?", style.Bold(true))
}

// cellAt maps a screen position to the board cell drawn there. Each cell
// spans two columns.
func (v *GameView) cellAt(x, y int) (mines.Cell, bool) {
	if x < 0 {
		return mines.Cell{}, false
	}
	if x%2 == 1 {
		x--
	}
	c := mines.Cell{X: x / 2, Y: y - boardTop}
	w, h := v.engine.Size()
	if c.X >= w || c.Y < 0 || c.Y >= h {
		return mines.Cell{}, false
	}
	return c, true
}

func (v *GameView) onRetry(x, y int) bool {
	columns, _ := v.Size()
	return v.stats.State.Complete() && y == v.panelRow() && x >= columns/2-1
}

// HandleEvent applies ev to the game. It reports whether the player
// asked to quit.
func (v *GameView) HandleEvent(ev tcell.Event) (quit bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return v.handleKey(ev.Key(), ev.Rune())
	case *tcell.EventMouse:
		x, y := ev.Position()
		v.handleMouse(x, y, ev.Buttons())
	}
	return false
}

func (v *GameView) handleMouse(x, y int, buttons tcell.ButtonMask) {
	pressed := buttons &^ v.buttons
	v.buttons = buttons

	switch {
	case pressed&tcell.Button1 != 0:
		if v.onRetry(x, y) {
			v.Retry()
			return
		}
		cell, ok := v.cellAt(x, y)
		if !ok {
			return
		}
		v.cursor = cell
		now := v.clock.Now()
		if cell == v.lastCell && now.Sub(v.lastDig) <= doubleClick {
			v.lastDig = time.Time{}
			v.play(mines.DigAround, cell)
			return
		}
		v.lastDig, v.lastCell = now, cell
		v.play(mines.Dig, cell)
	case pressed&(tcell.Button2|tcell.Button3) != 0:
		if cell, ok := v.cellAt(x, y); ok {
			v.cursor = cell
			v.play(mines.Flag, cell)
		}
	case buttons == tcell.ButtonNone:
		if cell, ok := v.cellAt(x, y); ok {
			v.updateChill(cell)
		}
	}
}

func (v *GameView) handleKey(key tcell.Key, r rune) (quit bool) {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		v.moveCursor(0, -1)
	case tcell.KeyDown:
		v.moveCursor(0, 1)
	case tcell.KeyLeft:
		v.moveCursor(-1, 0)
	case tcell.KeyRight:
		v.moveCursor(1, 0)
	case tcell.KeyEnter:
		v.play(mines.Dig, v.cursor)
	case tcell.KeyRune:
		switch r {
		case 'q':
			return true
		case 'k':
			v.moveCursor(0, -1)
		case 'j':
			v.moveCursor(0, 1)
		case 'h':
			v.moveCursor(-1, 0)
		case 'l':
			v.moveCursor(1, 0)
		case ' ', 'd':
			v.play(mines.Dig, v.cursor)
		case 'f':
			v.play(mines.Flag, v.cursor)
		case 'c':
			v.play(mines.DigAround, v.cursor)
		case 'r':
			if v.stats.State.Complete() {
				v.Retry()
			}
		}
	}
	return false
}

func (v *GameView) moveCursor(dx, dy int) {
	w, h := v.engine.Size()
	v.cursor.X = min(max(v.cursor.X+dx, 0), w-1)
	v.cursor.Y = min(max(v.cursor.Y+dy, 0), h-1)
	v.updateChill(v.cursor)
}

func (v *GameView) updateChill(cell mines.Cell) {
	chill, err := v.engine.ChillFactor(cell)
	if err != nil {
		Log.WithError(err).WithField("cell", cell).Debug("no chill factor")
		return
	}
	v.chill = chill
}

func (v *GameView) play(move mines.MoveType, cell mines.Cell) {
	state, err := v.engine.PlayMove(move, cell)
	if err != nil {
		Log.WithError(err).WithFields(logrus.Fields{
			"move": move,
			"cell": cell,
		}).Warn("move rejected")
		return
	}
	if state.Complete() && !v.recorded {
		v.finish(state)
	}
}

// finish records the result and plays the cue once per game.
func (v *GameView) finish(state mines.GameState) {
	v.recorded = true
	v.refresh()
	Log.WithFields(logrus.Fields{
		"preset":  v.preset,
		"state":   state,
		"elapsed": v.stats.Elapsed,
	}).Info("game over")

	if v.scores != nil {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		best, err := v.scores.Record(ctx, v.preset, v.stats.Elapsed, state == mines.Won)
		if err != nil {
			Log.WithError(err).Error("unable to record score")
		}
		v.best = best
	}
	if v.cues != nil {
		v.cues.Cue(state)
	}
}

// Retry starts a fresh game with the same dimensions.
func (v *GameView) Retry() {
	v.engine = v.engine.Clone()
	v.cells = make(map[mines.Cell]mines.CellState)
	v.stats = mines.GameStats{}
	v.chill = 0
	v.best = scores.Best{}
	v.recorded = false
	v.lastDig = time.Time{}
	v.refresh()
}

func putRune(screen tcell.Screen, x, y int, r rune, style tcell.Style) int {
	screen.SetContent(x, y, r, nil, style)
	return x + 2
}

func putString(screen tcell.Screen, x, y int, s string, style tcell.Style) {
	for _, r := range s {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// putCounter draws n as three fullwidth digits.
func putCounter(screen tcell.Screen, x, y, n int, style tcell.Style) {
	for _, r := range fmt.Sprintf("%03d", n) {
		x = putRune(screen, x, y, wide(r), style)
	}
}

func separator(screen tcell.Screen, y, columns int) {
	for x := range columns {
		screen.SetContent(x, y, '━', nil, tcell.StyleDefault)
	}
}
