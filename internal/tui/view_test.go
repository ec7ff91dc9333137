package tui

import (
	"context"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-tui/internal/mines"
	"github.com/vancomm/minesweeper-tui/internal/mines/minestest"
	"github.com/vancomm/minesweeper-tui/internal/scores"
)

func TestMain(m *testing.M) {
	Log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	m.Run()
}

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(40, 12)
	t.Cleanup(screen.Fini)
	return screen
}

func runeAt(screen tcell.Screen, x, y int) rune {
	r, _, _, _ := screen.GetContent(x, y)
	return r
}

type recordedScore struct {
	preset  string
	elapsed time.Duration
	won     bool
}

type fakeScores struct {
	calls []recordedScore
	best  scores.Best
}

func (f *fakeScores) Record(_ context.Context, preset string, elapsed time.Duration, won bool) (scores.Best, error) {
	f.calls = append(f.calls, recordedScore{preset, elapsed, won})
	return f.best, nil
}

type fakeCues struct {
	states []mines.GameState
}

func (f *fakeCues) Cue(state mines.GameState) {
	f.states = append(f.states, state)
}

func TestDrawFixture(t *testing.T) {
	screen := newScreen(t)
	v := NewGameView(minestest.NewFixtureEngine(), "easy")
	v.Draw(screen)

	// stats row
	assert.Equal(t, '🚩', runeAt(screen, 0, 0))
	assert.Equal(t, []rune{'０', '３', '３'}, []rune{runeAt(screen, 2, 0), runeAt(screen, 4, 0), runeAt(screen, 6, 0)})
	assert.Equal(t, '😊', runeAt(screen, minColumns/2-1, 0))
	assert.Equal(t, '🕑', runeAt(screen, minColumns-8, 0))
	assert.Equal(t, '９', runeAt(screen, minColumns-6, 0))
	assert.Equal(t, '━', runeAt(screen, 0, separatorRow))

	tests := []struct {
		cell mines.Cell
		want rune
	}{
		{mines.Cell{X: 0, Y: 0}, '🟫'},
		{mines.Cell{X: 1, Y: 0}, '１'},
		{mines.Cell{X: 2, Y: 2}, '８'},
		{mines.Cell{X: 0, Y: 3}, '🟩'},
		{mines.Cell{X: 1, Y: 3}, '🚩'},
		{mines.Cell{X: 2, Y: 3}, '💣'},
	}
	for _, tt := range tests {
		t.Run(tt.cell.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, runeAt(screen, tt.cell.X*2, boardTop+tt.cell.Y))
		})
	}
}

func TestDrawKeepsCellsBetweenUpdates(t *testing.T) {
	screen := newScreen(t)
	engine := minestest.NewFixtureEngine()
	v := NewGameView(engine, "easy")
	v.Draw(screen)

	v.HandleEvent(tcell.NewEventMouse(3, boardTop+1, tcell.Button1, tcell.ModNone))
	require.Equal(t, []minestest.Move{{Type: mines.Dig, Cell: mines.Cell{X: 1, Y: 1}}}, engine.Moves)

	_, cells := engine.BoardState()
	require.Empty(t, cells)

	v.Draw(screen)
	assert.Equal(t, '４', runeAt(screen, 2, boardTop+1))
}

func TestCellAt(t *testing.T) {
	v := NewGameView(minestest.NewFixtureEngine(), "easy")
	tests := []struct {
		name string
		x, y int
		want mines.Cell
		ok   bool
	}{
		{"first column", 0, 2, mines.Cell{X: 0, Y: 0}, true},
		{"second half of a tile", 1, 2, mines.Cell{X: 0, Y: 0}, true},
		{"last cell", 7, 4, mines.Cell{X: 3, Y: 2}, true},
		{"stats row", 0, 0, mines.Cell{}, false},
		{"right of board", 8, 2, mines.Cell{}, false},
		{"below board", 0, 5, mines.Cell{}, false},
		{"negative", -1, 2, mines.Cell{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := v.cellAt(tt.x, tt.y)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMouseButtons(t *testing.T) {
	mock := clock.NewMock()
	engine := minestest.NewFixtureEngine()
	v := NewGameView(engine, "easy", WithClock(mock))

	click := func(x, y int, b tcell.ButtonMask) {
		v.HandleEvent(tcell.NewEventMouse(x, y, b, tcell.ModNone))
		v.HandleEvent(tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone))
	}

	click(0, 2, tcell.Button1)
	mock.Add(100 * time.Millisecond)
	click(0, 2, tcell.Button1)
	mock.Add(time.Second)
	click(0, 2, tcell.Button1)
	click(2, 2, tcell.Button2)
	click(4, 2, tcell.Button3)

	c := func(x, y int) mines.Cell { return mines.Cell{X: x, Y: y} }
	assert.Equal(t, []minestest.Move{
		{Type: mines.Dig, Cell: c(0, 0)},
		{Type: mines.DigAround, Cell: c(0, 0)},
		{Type: mines.Dig, Cell: c(0, 0)},
		{Type: mines.Flag, Cell: c(1, 0)},
		{Type: mines.Flag, Cell: c(2, 0)},
	}, engine.Moves)
}

func TestHeldButtonIsNotRepeated(t *testing.T) {
	engine := minestest.NewFixtureEngine()
	v := NewGameView(engine, "easy", WithClock(clock.NewMock()))

	v.HandleEvent(tcell.NewEventMouse(0, 2, tcell.Button1, tcell.ModNone))
	v.HandleEvent(tcell.NewEventMouse(2, 2, tcell.Button1, tcell.ModNone))
	assert.Len(t, engine.Moves, 1)
}

func TestMotionSetsChill(t *testing.T) {
	v := NewGameView(minestest.NewFixtureEngine(), "easy")
	v.HandleEvent(tcell.NewEventMouse(0, 2, tcell.ButtonNone, tcell.ModNone))
	assert.Equal(t, mines.MaxAdjacentBombs, v.chill)
	assert.Equal(t, '🙃', face(mines.Playing, v.chill))
}

func TestKeyboard(t *testing.T) {
	engine := minestest.NewFixtureEngine()
	v := NewGameView(engine, "easy")

	assert.False(t, v.handleKey(tcell.KeyRune, 'l'))
	v.handleKey(tcell.KeyDown, 0)
	v.handleKey(tcell.KeyRune, 'f')
	v.handleKey(tcell.KeyRune, ' ')
	v.handleKey(tcell.KeyRune, 'c')
	for range 10 {
		v.handleKey(tcell.KeyRight, 0)
	}
	v.handleKey(tcell.KeyEnter, 0)

	assert.Equal(t, []minestest.Move{
		{Type: mines.Flag, Cell: mines.Cell{X: 1, Y: 1}},
		{Type: mines.Dig, Cell: mines.Cell{X: 1, Y: 1}},
		{Type: mines.DigAround, Cell: mines.Cell{X: 1, Y: 1}},
		{Type: mines.Dig, Cell: mines.Cell{X: 3, Y: 1}},
	}, engine.Moves)

	assert.True(t, v.handleKey(tcell.KeyRune, 'q'))
	assert.True(t, v.handleKey(tcell.KeyEscape, 0))
	assert.True(t, v.handleKey(tcell.KeyCtrlC, 0))
}

func TestFinishedGame(t *testing.T) {
	screen := newScreen(t)
	keeper := &fakeScores{best: scores.Best{Time: 7 * time.Second, Set: true}}
	cues := &fakeCues{}
	mock := clock.NewMock()

	// no bombs, so the first dig wins
	game := mines.New(4, 3, 0, mines.WithClock(mock))
	v := NewGameView(game, "tiny", WithScores(keeper), WithCues(cues), WithClock(mock))
	v.Draw(screen)
	assert.Equal(t, '🫥', runeAt(screen, minColumns/2-1, 0))

	v.HandleEvent(tcell.NewEventMouse(0, 2, tcell.Button1, tcell.ModNone))
	v.HandleEvent(tcell.NewEventMouse(0, 2, tcell.ButtonNone, tcell.ModNone))
	v.handleKey(tcell.KeyRune, 'd')
	v.Draw(screen)

	require.Equal(t, []recordedScore{{"tiny", 0, true}}, keeper.calls)
	assert.Equal(t, []mines.GameState{mines.Won}, cues.states)

	row := v.panelRow()
	assert.Equal(t, '🥳', runeAt(screen, minColumns/2-1, 0))
	assert.Equal(t, '🏆', runeAt(screen, 0, row))
	assert.Equal(t, '７', runeAt(screen, 6, row))
	assert.Equal(t, 'R', runeAt(screen, minColumns/2+1, row))

	_, rows := v.Size()
	assert.Equal(t, row+1, rows)

	v.HandleEvent(tcell.NewEventMouse(minColumns/2+1, row, tcell.Button1, tcell.ModNone))
	v.Draw(screen)
	assert.Equal(t, mines.Initialised, v.stats.State)
	assert.False(t, v.recorded)
	assert.Equal(t, '🟩', runeAt(screen, 0, boardTop))
	assert.NotEqual(t, '🏆', runeAt(screen, 0, row))
}

func TestRunStopsWithContext(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, screen, NewGameView(minestest.NewFixtureEngine(), "easy"))
	}()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}
}
