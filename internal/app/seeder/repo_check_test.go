package seeder_test

import (
	postgres "github.com/heartmarshall/cnlearn/internal/adapter/postgres"
	"github.com/heartmarshall/cnlearn/internal/adapter/postgres/lexicon"
	"github.com/heartmarshall/cnlearn/internal/adapter/sqlite"
	"github.com/heartmarshall/cnlearn/internal/app/seeder"
)

// Compile-time checks: both backends must satisfy the seeder contracts.
var (
	_ seeder.LexiconWriter = (*lexicon.Repo)(nil)
	_ seeder.LexiconWriter = (*sqlite.Store)(nil)
	_ seeder.TxManager     = (*postgres.TxManager)(nil)
	_ seeder.TxManager     = (*sqlite.Store)(nil)
)
