// Package scores keeps the best winning time for each difficulty preset.
package scores

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-tui/internal/config"
)

var Log = logrus.New()

// Best is the stored record for one preset. Time is whole seconds and is
// only meaningful when Set is true.
type Best struct {
	Time     time.Duration
	Set      bool
	Improved bool // the last Record beat or created it
}

type Store interface {
	Best(ctx context.Context, preset string) (Best, error)
	// Record stores elapsed if the game was won and it beats the current
	// best. Losses leave the record alone. It returns the best after the
	// update.
	Record(ctx context.Context, preset string, elapsed time.Duration, won bool) (Best, error)
	Close() error
}

// Open picks Postgres when a database is configured and the score file
// otherwise.
func Open(ctx context.Context, c config.Config) (Store, error) {
	if c.DatabaseURL != "" {
		Log.Info("keeping scores in postgres")
		return NewPostgresStore(ctx, c.DatabaseURL)
	}
	Log.WithField("file", c.ScoreFile).Info("keeping scores in file")
	return NewFileStore(c.ScoreFile)
}

func seconds(d time.Duration) int64 {
	return int64(d / time.Second)
}

func better(best Best, elapsed time.Duration) bool {
	return !best.Set || seconds(elapsed) < seconds(best.Time)
}
