// Package logging points every logrus logger in the game at a rotating
// log file. The terminal belongs to the UI, so nothing goes to stderr.
package logging

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/vancomm/minesweeper-tui/internal/config"
)

func Level(c config.Config) logrus.Level {
	if c.Development {
		return logrus.DebugLevel
	}
	return logrus.InfoLevel
}

// Setup configures log and any package loggers in others the same way.
func Setup(c config.Config, log *logrus.Logger, others ...*logrus.Logger) error {
	level := Level(c)
	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   c.Log.File,
		MaxSize:    c.Log.MaxSizeMB,
		MaxBackups: c.Log.MaxBackups,
		MaxAge:     c.Log.MaxAgeDays,
		Level:      level,
		Formatter: &logrus.TextFormatter{
			DisableColors: true,
			FullTimestamp: true,
		},
	})
	if err != nil {
		return fmt.Errorf("unable to open log file %s: %w", c.Log.File, err)
	}

	for _, l := range append([]*logrus.Logger{log}, others...) {
		l.SetLevel(level)
		l.SetOutput(io.Discard)
		l.AddHook(hook)
	}
	return nil
}
