package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func readMigration(t *testing.T, name string) string {
	t.Helper()
	data, err := fs.ReadFile(FS, name)
	require.NoError(t, err)
	return string(data)
}

func TestFS_ContainsOrderedMigrations(t *testing.T) {
	names, err := fs.Glob(FS, "*.sql")
	require.NoError(t, err)
	require.Equal(t, []string{"00001_create_users.sql", "00002_create_graph.sql"}, names)

	for _, name := range names {
		sql := readMigration(t, name)
		require.Contains(t, sql, "-- +goose Up", name)
		require.Contains(t, sql, "-- +goose Down", name)
	}
}

func TestUsersMigration_Schema(t *testing.T) {
	sql := readMigration(t, "00001_create_users.sql")
	up := sql[:strings.Index(sql, "-- +goose Down")]

	// gen_random_uuid lives in pgcrypto before Postgres 13
	ext := strings.Index(up, `CREATE EXTENSION IF NOT EXISTS "pgcrypto";`)
	require.NotEqual(t, -1, ext)
	require.Less(t, ext, strings.Index(up, "gen_random_uuid()"))

	// duplicate registration is detected only through this constraint
	require.Contains(t, up, "CONSTRAINT users_email_key UNIQUE (email)")
	require.Contains(t, up, "is_verified_librarian BOOLEAN NOT NULL DEFAULT FALSE")
	require.Contains(t, up, "reputation INT NOT NULL DEFAULT 0")
}

func TestGraphMigration_Schema(t *testing.T) {
	sql := readMigration(t, "00002_create_graph.sql")
	require.Contains(t, sql, "name TEXT UNIQUE")
	require.Contains(t, sql, "source INTEGER REFERENCES nodes(id)")
	require.Contains(t, sql, "target INTEGER REFERENCES nodes(id)")
}
