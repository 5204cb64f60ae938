package testhelper

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/heartmarshall/cnlearn/internal/adapter/postgres"
	"github.com/heartmarshall/cnlearn/internal/config"
	"github.com/heartmarshall/cnlearn/migrations"
)

const (
	pgImage    = "postgres:17-alpine"
	pgUser     = "cnlearn"
	pgPassword = "cnlearn"
	pgDatabase = "dictionary"
)

var (
	dictionaryOnce sync.Once
	dictionaryDSN  string
	dictionaryErr  error
)

// SetupTestDB returns a pool on a migrated dictionary database. The
// PostgreSQL container is started once per test binary and shared; tests
// isolate themselves by using unique texts (see UniqueHan). The pool is
// closed via t.Cleanup.
func SetupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dictionaryOnce.Do(func() {
		dictionaryDSN, dictionaryErr = startDictionaryDB()
	})
	if dictionaryErr != nil {
		t.Fatalf("testhelper: start dictionary database: %v", dictionaryErr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, config.DatabaseConfig{
		DSN:             dictionaryDSN,
		MaxConns:        4,
		MinConns:        1,
		MaxConnLifetime: time.Hour,
		MaxConnIdleTime: time.Minute,
	})
	if err != nil {
		t.Fatalf("testhelper: %v", err)
	}
	t.Cleanup(pool.Close)

	return pool
}

// startDictionaryDB runs the container and applies the PostgreSQL
// migrations through the same path the application uses.
func startDictionaryDB() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        pgImage,
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     pgUser,
				"POSTGRES_PASSWORD": pgPassword,
				"POSTGRES_DB":       pgDatabase,
			},
			// The server restarts once after initdb.
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		},
		Started: true,
	})
	if err != nil {
		return "", fmt.Errorf("start container: %w", err)
	}

	endpoint, err := container.PortEndpoint(ctx, "5432/tcp", "")
	if err != nil {
		return "", fmt.Errorf("container endpoint: %w", err)
	}
	dsn := fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=disable", pgUser, pgPassword, endpoint, pgDatabase)

	pool, err := postgres.NewPool(ctx, config.DatabaseConfig{DSN: dsn, MaxConns: 1})
	if err != nil {
		return "", err
	}
	defer pool.Close()

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if _, err := migrations.Up(ctx, db, migrations.Postgres, logger); err != nil {
		return "", fmt.Errorf("migrate: %w", err)
	}

	return dsn, nil
}
