package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/weakspot/internal/logger"
)

func TestOpen_AppliesMigrationsOnce(t *testing.T) {
	logger.SetDefault(logger.Discard())
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "weakspot.db")

	d, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, d.Ping(ctx))

	var tables int
	require.NoError(t, d.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('reports', 'report_games')`).Scan(&tables))
	assert.Equal(t, 2, tables)
	require.NoError(t, d.Close())

	d, err = Open(ctx, path)
	require.NoError(t, err)
	defer d.Close()

	var applied int
	require.NoError(t, d.QueryRowContext(ctx, `SELECT COUNT(*) FROM schema_migrations`).Scan(&applied))
	assert.Equal(t, 1, applied)
}

func TestWithParams(t *testing.T) {
	assert.Equal(t, "a.db?x=1", withParams("a.db", "x=1"))
	assert.Equal(t, "file:a.db?mode=rwc&x=1", withParams("file:a.db?mode=rwc", "x=1"))
}
