package database_test

import (
	"context"
	"sync"
	"testing"

	"taskboard/config"
	"taskboard/infras/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_SQLiteInMemory(t *testing.T) {
	cfg := &config.Config{}
	cfg.DB.Driver = config.DriverSQLite
	cfg.DB.SQLite.DSN = ":memory:"

	conn, err := database.New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	assert.Equal(t, config.DriverSQLite, conn.Driver)
	assert.Equal(t, 1, conn.DB.Stats().MaxOpenConnections)

	_, err = conn.DB.Exec("CREATE TABLE counters (n INTEGER)")
	require.NoError(t, err)

	// Concurrent users all see the same in-memory database.
	var wg sync.WaitGroup

	for i := range 8 {
		wg.Add(1)

		go func(n int) {
			defer wg.Done()

			_, execErr := conn.DB.ExecContext(context.Background(), conn.DB.Rebind("INSERT INTO counters (n) VALUES (?)"), n)
			assert.NoError(t, execErr)
		}(i)
	}

	wg.Wait()

	var count int
	require.NoError(t, conn.DB.Get(&count, "SELECT COUNT(*) FROM counters"))
	assert.Equal(t, 8, count)
}

func TestSQLiteLowerFoldsUnicode(t *testing.T) {
	conn, err := database.CreateSQLiteConnection(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	var lowered string
	require.NoError(t, conn.DB.Get(&lowered, "SELECT lower('ÉCOLE Über')"))
	assert.Equal(t, "école über", lowered)

	var null *string
	require.NoError(t, conn.DB.Get(&null, "SELECT lower(NULL)"))
	assert.Nil(t, null)
}

func TestNew_UnsupportedDriver(t *testing.T) {
	cfg := &config.Config{}
	cfg.DB.Driver = "oracle"

	conn, err := database.New(cfg)
	assert.Nil(t, conn)
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestPostgresDSN(t *testing.T) {
	cfg := &config.Config{}
	cfg.DB.Postgres.Host = "db"
	cfg.DB.Postgres.Port = "5432"
	cfg.DB.Postgres.Username = "todo"
	cfg.DB.Postgres.Password = "p@ss"
	cfg.DB.Postgres.Name = "taskboard"
	cfg.DB.Postgres.SSLMode = "disable"

	assert.Equal(t, "postgres://todo:p%40ss@db:5432/taskboard?sslmode=disable", database.PostgresDSN(cfg))
}

func TestConnection_CloseNil(t *testing.T) {
	var conn *database.Connection

	assert.NoError(t, conn.Close())
}
