package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Database is the score database described by the POSTGRES_* variables.
type Database struct {
	Username string
	Password string
	Host     string
	Port     uint16
	DBName   string
	SSLMode  string
}

var errNoDatabase = errors.New("no database configured")

func requireEnv(key string) (string, error) {
	if v, ok := os.LookupEnv(key); ok {
		return v, nil
	}
	return "", fmt.Errorf("%w: %s is not set", errNoDatabase, key)
}

// password prefers POSTGRES_PASSWORD and falls back to the file named by
// POSTGRES_PASSWORD_FILE, as docker secrets are mounted.
func password() (string, error) {
	if p, ok := os.LookupEnv("POSTGRES_PASSWORD"); ok {
		return p, nil
	}
	file, err := requireEnv("POSTGRES_PASSWORD_FILE")
	if err != nil {
		return "", err
	}
	b, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("unable to read password file: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

func DatabaseFromEnv() (Database, error) {
	var (
		db  = Database{SSLMode: "disable"}
		err error
	)
	fields := []struct {
		key string
		dst *string
	}{
		{"POSTGRES_USER", &db.Username},
		{"POSTGRES_HOST", &db.Host},
		{"POSTGRES_DB", &db.DBName},
	}
	for _, f := range fields {
		if *f.dst, err = requireEnv(f.key); err != nil {
			return db, err
		}
	}

	portStr, err := requireEnv("POSTGRES_PORT")
	if err != nil {
		return db, err
	}
	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil {
		return db, fmt.Errorf("invalid POSTGRES_PORT %q: %w", portStr, err)
	}
	db.Port = uint16(port)

	if db.Password, err = password(); err != nil {
		return db, err
	}
	if mode, ok := os.LookupEnv("POSTGRES_SSLMODE"); ok {
		db.SSLMode = mode
	}
	return db, nil
}

func (d Database) URL() string {
	u := url.URL{
		Scheme:   "postgresql",
		User:     url.UserPassword(d.Username, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     "/" + d.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(d.SSLMode),
	}
	return u.String()
}

// DatabaseURL picks the score database: explicit first, then DATABASE_URL,
// then POSTGRES_*. It returns "" when none is configured.
func DatabaseURL(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if dbURL, ok := os.LookupEnv("DATABASE_URL"); ok {
		return dbURL
	}
	if db, err := DatabaseFromEnv(); err == nil {
		return db.URL()
	}
	return ""
}

func NewPgxpoolConfig(dbURL string) (*pgxpool.Config, error) {
	if dbURL == "" {
		return nil, errNoDatabase
	}
	return pgxpool.ParseConfig(dbURL)
}
