package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	DefaultLogFile   = "minesweeper.log"
	DefaultScoreFile = "minesweeper_top_score.yaml"
)

type LogConfig struct {
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

type Config struct {
	Preset      string    `yaml:"preset"`
	Development bool      `yaml:"development"`
	Sound       bool      `yaml:"sound"`
	ScoreFile   string    `yaml:"score_file"`
	DatabaseURL string    `yaml:"database_url"`
	Log         LogConfig `yaml:"log"`
}

// Default places the log and score files next to the executable.
func Default() Config {
	dir := "."
	if exe, err := os.Executable(); err == nil {
		dir = filepath.Dir(exe)
	}
	return Config{
		Preset:    Easy.Name,
		Sound:     true,
		ScoreFile: filepath.Join(dir, DefaultScoreFile),
		Log: LogConfig{
			File:       filepath.Join(dir, DefaultLogFile),
			MaxSizeMB:  5,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// Load reads the YAML file at path over [Default] and then applies env
// overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	config := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return config, fmt.Errorf("unable to read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(b, &config); err != nil {
				return config, fmt.Errorf("unable to parse config %s: %w", path, err)
			}
		}
	}
	config.applyEnv()
	if _, err := config.GamePreset(); err != nil {
		return config, err
	}
	return config, nil
}

func (c *Config) applyEnv() {
	if development, ok := os.LookupEnv("DEVELOPMENT"); ok {
		c.Development = development != "0"
	}
	if preset, ok := os.LookupEnv("MINES_PRESET"); ok {
		c.Preset = preset
	}
	if file, ok := os.LookupEnv("MINES_LOG_FILE"); ok {
		c.Log.File = file
	}
	if file, ok := os.LookupEnv("MINES_SCORE_FILE"); ok {
		c.ScoreFile = file
	}
	c.DatabaseURL = DatabaseURL(c.DatabaseURL)
}

func (c Config) GamePreset() (Preset, error) {
	return PresetByName(c.Preset)
}

func (c Config) Fields() logrus.Fields {
	return logrus.Fields{
		"preset":       c.Preset,
		"development":  c.Development,
		"sound":        c.Sound,
		"score_file":   c.ScoreFile,
		"use_database": c.DatabaseURL != "",
		"log_file":     c.Log.File,
	}
}
