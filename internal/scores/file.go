package scores

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

type topScore struct {
	Scores map[string]int64 `yaml:"scores"` // seconds, by preset name
}

// FileStore keeps scores in a small YAML file:
//
//	scores:
//	  easy: 42
//	  hard: 311
type FileStore struct {
	path string
}

// NewFileStore opens path, writing an empty score file if there is none.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := s.save(topScore{Scores: map[string]int64{}}); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, fmt.Errorf("unable to stat score file: %w", err)
	}
	return s, nil
}

func (s *FileStore) load() (topScore, error) {
	ts := topScore{Scores: map[string]int64{}}
	b, err := os.ReadFile(s.path)
	if err != nil {
		return ts, fmt.Errorf("unable to read score file: %w", err)
	}
	if err := yaml.Unmarshal(b, &ts); err != nil {
		return ts, fmt.Errorf("unable to parse score file %s: %w", s.path, err)
	}
	if ts.Scores == nil {
		ts.Scores = map[string]int64{}
	}
	return ts, nil
}

func (s *FileStore) save(ts topScore) error {
	b, err := yaml.Marshal(ts)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("unable to create score dir: %w", err)
	}
	if err := os.WriteFile(s.path, b, 0o644); err != nil {
		return fmt.Errorf("unable to write score file: %w", err)
	}
	return nil
}

func (s *FileStore) Best(_ context.Context, preset string) (Best, error) {
	ts, err := s.load()
	if err != nil {
		return Best{}, err
	}
	secs, ok := ts.Scores[preset]
	return Best{Time: time.Duration(secs) * time.Second, Set: ok}, nil
}

func (s *FileStore) Record(ctx context.Context, preset string, elapsed time.Duration, won bool) (Best, error) {
	ts, err := s.load()
	if err != nil {
		return Best{}, err
	}
	secs, ok := ts.Scores[preset]
	best := Best{Time: time.Duration(secs) * time.Second, Set: ok}
	if !won || !better(best, elapsed) {
		return best, nil
	}

	ts.Scores[preset] = seconds(elapsed)
	if err := s.save(ts); err != nil {
		return best, err
	}
	Log.WithFields(logrus.Fields{
		"preset":  preset,
		"seconds": seconds(elapsed),
	}).Info("new best time")
	return Best{Time: elapsed.Truncate(time.Second), Set: true, Improved: true}, nil
}

func (s *FileStore) Close() error {
	return nil
}
