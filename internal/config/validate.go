package config

import (
	"fmt"

	"github.com/heartmarshall/cnlearn/internal/domain"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically. An unknown
// backend fails alone; otherwise every rejected field is reported in one
// *domain.ValidationError.
func (c *Config) Validate() error {
	if _, err := ParseBackend(string(c.Store.Backend)); err != nil {
		return err
	}

	var errs []domain.FieldError
	reject := func(field, message string) {
		errs = append(errs, domain.FieldError{Field: field, Message: message})
	}

	if c.Store.Backend == BackendPostgres && c.Database.DSN == "" {
		reject("database.dsn", "required for the postgres backend")
	}

	if c.Database.MaxConns < 0 || c.Database.MinConns < 0 {
		reject("database", "connection limits must be >= 0")
	} else if c.Database.MaxConns > 0 && c.Database.MinConns > c.Database.MaxConns {
		reject("database.min_conns",
			fmt.Sprintf("must be <= max_conns (%d > %d)", c.Database.MinConns, c.Database.MaxConns))
	}

	if c.Segmenter.MaxWordLength < 0 {
		reject("segmenter.max_word_length",
			fmt.Sprintf("must be >= 0 (got %d)", c.Segmenter.MaxWordLength))
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ParseBackend maps a configuration string to a StoreBackend.
// Unknown values yield domain.ErrUnsupportedBackend.
func ParseBackend(s string) (StoreBackend, error) {
	switch b := StoreBackend(s); b {
	case BackendPostgres, BackendSQLite:
		return b, nil
	}
	return "", fmt.Errorf("store.backend %q: %w", s, domain.ErrUnsupportedBackend)
}
