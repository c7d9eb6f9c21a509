// Package dbtest provides an in-memory SQLite database with the battleground
// schema for tests.
package dbtest

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/padraicbc/battleground/db"
)

// New opens a fresh in-memory database with all tables created.
// It is closed when the test ends.
func New(t testing.TB) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, "file::memory:")
	require.NoError(t, err)
	// Each connection to :memory: is a separate database.
	sqldb.SetMaxOpenConns(1)
	sqldb.SetMaxIdleConns(1)

	bdb := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { _ = bdb.Close() })

	require.NoError(t, db.CreateTables(context.Background(), bdb))
	return bdb
}

// Insert inserts each model in order, failing the test on error.
// Autoincrement keys are written back into the models.
func Insert(t testing.TB, bdb bun.IDB, models ...interface{}) {
	t.Helper()

	for _, m := range models {
		_, err := bdb.NewInsert().Model(m).Exec(context.Background())
		require.NoError(t, err, "insert %T", m)
	}
}
