package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-tui/internal/config"
	"github.com/vancomm/minesweeper-tui/internal/logging"
	"github.com/vancomm/minesweeper-tui/internal/mines"
	"github.com/vancomm/minesweeper-tui/internal/scores"
	"github.com/vancomm/minesweeper-tui/internal/sound"
	"github.com/vancomm/minesweeper-tui/internal/tui"
)

var (
	log = logrus.New()

	configPath string
	presetName string
	mute       bool
)

func init() {
	const (
		configUsage = "config file path"
		presetUsage = "board preset: easy, medium or hard"
	)
	flag.StringVar(&configPath, "config", "", configUsage)
	flag.StringVar(&configPath, "c", "", configUsage+" (shorthand)")
	flag.StringVar(&presetName, "preset", "", presetUsage)
	flag.StringVar(&presetName, "p", "", presetUsage+" (shorthand)")
	flag.BoolVar(&mute, "mute", false, "disable sound")
}

func loadConfig() config.Config {
	c, err := config.Load(configPath)
	if err != nil {
		log.Fatal(err)
	}
	if presetName != "" {
		c.Preset = presetName
	}
	if mute {
		c.Sound = false
	}
	return c
}

func main() {
	mainCtx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	flag.Parse()

	c := loadConfig()
	preset, err := c.GamePreset()
	if err != nil {
		log.Fatal(err)
	}

	if err := logging.Setup(c, log, mines.Log, scores.Log, sound.Log, tui.Log); err != nil {
		log.Fatal(err)
	}
	log.Info("starting up, preset = ", preset)
	log.WithFields(c.Fields()).Debug("config")

	store, err := scores.Open(mainCtx, c)
	if err != nil {
		fmt.Fprintln(os.Stderr, "unable to open score store:", err)
		os.Exit(1)
	}
	defer store.Close()

	if best, err := store.Best(mainCtx, preset.Name); err != nil {
		log.WithError(err).Warn("unable to read best time")
	} else if best.Set {
		log.WithField("best", best.Time).Debug("loaded best time")
	}

	player := sound.New(c.Sound)
	defer player.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintln(os.Stderr, "unable to create screen:", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintln(os.Stderr, "unable to initialise screen:", err)
		os.Exit(1)
	}

	game := mines.New(preset.Width, preset.Height, preset.BombCount)
	view := tui.NewGameView(game, preset.Name,
		tui.WithScores(store),
		tui.WithCues(player),
	)

	if err := tui.Run(mainCtx, screen, view); err != nil {
		log.WithError(err).Error("exit reason")
		fmt.Fprintln(os.Stderr, "exit reason:", err)
	}
	log.Info("shutting down")
}
