package helper_test

import (
	"testing"

	"taskboard/config"
	"taskboard/helper"
	"taskboard/infras/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConnection(t *testing.T) (*config.Config, *database.Connection) {
	t.Helper()

	cfg := &config.Config{}
	cfg.DB.Driver = config.DriverSQLite
	cfg.DB.MigrationTable = "schema_migrations"

	conn, err := database.CreateSQLiteConnection(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return cfg, conn
}

func tableExists(t *testing.T, conn *database.Connection, name string) bool {
	t.Helper()

	var count int
	require.NoError(t, conn.DB.Get(&count, "SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", name))

	return count == 1
}

func TestUp_CreatesTodosTable(t *testing.T) {
	cfg, conn := newTestConnection(t)

	require.NoError(t, helper.Up(cfg, conn))
	assert.True(t, tableExists(t, conn, "todos"))

	// A second run is a no-op.
	require.NoError(t, helper.Up(cfg, conn))

	var columns []string
	require.NoError(t, conn.DB.Select(&columns, "SELECT name FROM pragma_table_info('todos') ORDER BY cid"))
	assert.Equal(t, []string{"_id", "title", "description", "status", "updated_at"}, columns)
}

func TestDown_DropsTodosTable(t *testing.T) {
	cfg, conn := newTestConnection(t)

	require.NoError(t, helper.Up(cfg, conn))
	require.NoError(t, helper.Down(cfg, conn))
	assert.False(t, tableExists(t, conn, "todos"))

	require.NoError(t, helper.StepUp(cfg, conn))
	assert.True(t, tableExists(t, conn, "todos"))

	require.NoError(t, helper.Drop(cfg, conn))
	assert.False(t, tableExists(t, conn, "todos"))
}

func TestRunner_UnknownAction(t *testing.T) {
	cfg, conn := newTestConnection(t)

	assert.ErrorContains(t, helper.Runner(cfg, conn, "sideways"), "unknown migration action")
}

func TestOpenDatabase_AutoMigrates(t *testing.T) {
	cfg := &config.Config{}
	cfg.DB.Driver = config.DriverSQLite
	cfg.DB.SQLite.DSN = ":memory:"
	cfg.DB.AutoMigrate = true
	cfg.DB.MigrationTable = "schema_migrations"

	conn, err := helper.OpenDatabase(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	assert.True(t, tableExists(t, conn, "todos"))
}

func TestOpenDatabase_UnsupportedDriver(t *testing.T) {
	cfg := &config.Config{}
	cfg.DB.Driver = "oracle"

	_, err := helper.OpenDatabase(cfg)
	assert.Error(t, err)
}
