package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// AppName is used for the XDG data directory and default file names.
const AppName = "cnlearn"

// Config is the root application configuration.
type Config struct {
	Store     StoreConfig     `yaml:"store"`
	Database  DatabaseConfig  `yaml:"database"`
	SQLite    SQLiteConfig    `yaml:"sqlite"`
	Segmenter SegmenterConfig `yaml:"segmenter"`
	Log       LogConfig       `yaml:"log"`
}

// StoreBackend selects the lexical store implementation.
type StoreBackend string

const (
	BackendPostgres StoreBackend = "postgres"
	BackendSQLite   StoreBackend = "sqlite"
)

// StoreConfig selects and tunes the lexical store.
type StoreConfig struct {
	Backend StoreBackend `yaml:"backend" env:"STORE_BACKEND" env-default:"sqlite"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// SQLiteConfig holds settings of the embedded SQLite store.
type SQLiteConfig struct {
	// Path of the database file. Empty means DefaultSQLitePath().
	Path string `yaml:"path" env:"SQLITE_PATH"`
}

// SegmenterConfig tunes word segmentation.
type SegmenterConfig struct {
	// MaxWordLength drops dictionary words longer than this many runes from
	// segmentation. Zero keeps every word.
	MaxWordLength int `yaml:"max_word_length" env:"SEGMENTER_MAX_WORD_LENGTH" env-default:"0"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// DefaultSQLitePath returns the dictionary database location under the XDG
// data directory, e.g. ~/.local/share/cnlearn/dictionary.db.
func DefaultSQLitePath() string {
	return filepath.Join(xdg.DataHome, AppName, "dictionary.db")
}

// DatabasePath returns the configured SQLite path or the default one.
func (c SQLiteConfig) DatabasePath() string {
	if c.Path != "" {
		return c.Path
	}
	return DefaultSQLitePath()
}
