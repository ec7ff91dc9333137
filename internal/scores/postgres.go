package scores

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vancomm/minesweeper-tui/internal/config"
)

const createTopScore = `
CREATE TABLE IF NOT EXISTS top_score (
	preset       text        PRIMARY KEY,
	best_seconds bigint      NOT NULL,
	updated_at   timestamptz NOT NULL DEFAULT now()
);`

type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, dbURL string) (*PostgresStore, error) {
	cfg, err := config.NewPgxpoolConfig(dbURL)
	if err != nil {
		return nil, err
	}
	db, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}
	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func isUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UndefinedTable
}

// withTable runs fn and, if the table does not exist yet, creates it and
// runs fn once more.
func (s *PostgresStore) withTable(ctx context.Context, fn func() error) error {
	err := fn()
	if !isUndefinedTable(err) {
		return err
	}
	Log.Info("creating top_score table")
	if _, err := s.db.Exec(ctx, createTopScore); err != nil {
		return fmt.Errorf("unable to create top_score: %w", err)
	}
	return fn()
}

func (s *PostgresStore) Best(ctx context.Context, preset string) (Best, error) {
	var best Best
	err := s.withTable(ctx, func() error {
		var secs int64
		err := s.db.QueryRow(ctx,
			`SELECT best_seconds FROM top_score WHERE preset = @preset`,
			pgx.NamedArgs{"preset": preset},
		).Scan(&secs)
		if errors.Is(err, pgx.ErrNoRows) {
			best = Best{}
			return nil
		}
		if err != nil {
			return err
		}
		best = Best{Time: time.Duration(secs) * time.Second, Set: true}
		return nil
	})
	return best, err
}

func (s *PostgresStore) Record(ctx context.Context, preset string, elapsed time.Duration, won bool) (Best, error) {
	best, err := s.Best(ctx, preset)
	if err != nil || !won || !better(best, elapsed) {
		return best, err
	}

	var secs int64
	err = s.db.QueryRow(ctx, `
		INSERT INTO top_score (preset, best_seconds)
		VALUES (@preset, @seconds)
		ON CONFLICT (preset) DO UPDATE
			SET best_seconds = LEAST(top_score.best_seconds, EXCLUDED.best_seconds),
				updated_at = now()
		RETURNING best_seconds`,
		pgx.NamedArgs{"preset": preset, "seconds": seconds(elapsed)},
	).Scan(&secs)
	if err != nil {
		return best, fmt.Errorf("unable to record score: %w", err)
	}
	return Best{
		Time:     time.Duration(secs) * time.Second,
		Set:      true,
		Improved: secs == seconds(elapsed),
	}, nil
}

func (s *PostgresStore) Close() error {
	s.db.Close()
	return nil
}
