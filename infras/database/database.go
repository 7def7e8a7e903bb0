package database

//nolint:revive
import (
	"database/sql/driver"
	"fmt"
	"net"
	"net/url"
	"strings"

	"taskboard/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
	"modernc.org/sqlite"
)

const (
	sqliteDriverName = "sqlite"

	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10
)

func init() {
	// modernc registers itself as "sqlite", which sqlx does not map to a bind type.
	sqlx.BindDriver(sqliteDriverName, sqlx.QUESTION)

	// The built-in lower() only folds ASCII; postgres folds all of Unicode.
	if err := sqlite.RegisterDeterministicScalarFunction("lower", 1, unicodeLower); err != nil {
		log.Error().Err(err).Msg("Failed to register sqlite lower()")
	}
}

func unicodeLower(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch value := args[0].(type) {
	case string:
		return strings.ToLower(value), nil
	case []byte:
		return strings.ToLower(string(value)), nil
	default:
		return value, nil
	}
}

// Connection is the process-wide database handle. It is opened once at startup
// and shared by every repository.
type Connection struct {
	DB     *sqlx.DB
	Driver string
}

// New opens the configured database. There is no retry: a failure here is fatal
// to the process.
func New(cfg *config.Config) (*Connection, error) {
	switch cfg.DB.Driver {
	case config.DriverSQLite, "":
		return CreateSQLiteConnection(cfg.DB.SQLite.DSN)
	case config.DriverPostgres:
		return CreatePostgresConnection(cfg)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DB.Driver)
	}
}

// CreateSQLiteConnection opens a sqlite database on a single pooled connection.
// An in-memory database lives exactly as long as that connection, so the pool
// never opens a second one and never retires the first.
func CreateSQLiteConnection(dsn string) (*Connection, error) {
	if dsn == "" {
		dsn = ":memory:"
	}

	db, err := sqlx.Connect(sqliteDriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	log.Info().Str("driver", sqliteDriverName).Str("dsn", dsn).Msg("Connected to database")

	return &Connection{DB: db, Driver: config.DriverSQLite}, nil
}

// CreatePostgresConnection opens a pooled postgres connection.
func CreatePostgresConnection(cfg *config.Config) (*Connection, error) {
	pg := cfg.DB.Postgres

	db, err := sqlx.Connect(config.DriverPostgres, PostgresDSN(cfg))
	if err != nil {
		log.Error().
			Err(err).
			Str("host", pg.Host).
			Str("port", pg.Port).
			Str("dbName", pg.Name).
			Msg("Failed connecting to database")

		return nil, fmt.Errorf("failed to open postgres database: %w", err)
	}

	db.SetMaxIdleConns(postgresMaxIdleConnection)
	db.SetMaxOpenConns(postgresMaxOpenConnection)

	log.Info().
		Str("driver", config.DriverPostgres).
		Str("host", pg.Host).
		Str("port", pg.Port).
		Str("dbName", pg.Name).
		Msg("Connected to database")

	return &Connection{DB: db, Driver: config.DriverPostgres}, nil
}

// PostgresDSN builds the lib/pq connection URL from configuration.
func PostgresDSN(cfg *config.Config) string {
	pg := cfg.DB.Postgres

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(pg.Username, pg.Password),
		Host:     net.JoinHostPort(pg.Host, pg.Port),
		Path:     "/" + pg.Name,
		RawQuery: url.Values{"sslmode": []string{pg.SSLMode}}.Encode(),
	}

	return dsn.String()
}

func (c *Connection) Close() error {
	if c == nil || c.DB == nil {
		return nil
	}

	if err := c.DB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	log.Info().Str("driver", c.Driver).Msg("Database connection closed")

	return nil
}
