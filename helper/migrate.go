package helper

//nolint:revive
import (
	"embed"
	"errors"
	"fmt"

	"taskboard/config"
	"taskboard/infras/database"

	"github.com/golang-migrate/migrate/v4"
	migrateDatabase "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog/log"
)

const (
	ActionUp     = "up"
	ActionDown   = "down"
	ActionStepUp = "step-up"
	ActionDrop   = "drop"
)

//go:embed migrations
var migrationsFS embed.FS

// getMigrator binds golang-migrate to the already open connection. The
// returned instance must not be closed: closing it closes conn as well.
func getMigrator(cfg *config.Config, conn *database.Connection) (*migrate.Migrate, error) {
	var (
		driver migrateDatabase.Driver
		err    error
	)

	switch conn.Driver {
	case config.DriverSQLite:
		driver, err = sqlite.WithInstance(conn.DB.DB, &sqlite.Config{
			MigrationsTable: cfg.DB.MigrationTable,
		})
	case config.DriverPostgres:
		driver, err = postgres.WithInstance(conn.DB.DB, &postgres.Config{
			MigrationsTable: cfg.DB.MigrationTable,
		})
	default:
		return nil, fmt.Errorf("no migrations for driver %q", conn.Driver)
	}

	if err != nil {
		return nil, fmt.Errorf("error creating migrate driver: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations/"+conn.Driver)
	if err != nil {
		return nil, fmt.Errorf("error opening embedded migrations: %w", err)
	}

	mig, err := migrate.NewWithInstance("iofs", source, conn.Driver, driver)
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

func Runner(cfg *config.Config, conn *database.Connection, action string) error {
	mig, err := getMigrator(cfg, conn)
	if err != nil {
		return err
	}

	switch action {
	case ActionUp:
		if err := mig.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error running migrations: %w", err)
		}

		log.Info().Str("driver", conn.Driver).Msg("Database migrations completed successfully")

		return nil
	case ActionDown:
		if err := mig.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error rolling back migrations: %w", err)
		}

		log.Info().Str("driver", conn.Driver).Msg("Database migrations rolled back successfully")

		return nil
	case ActionStepUp:
		if err := mig.Steps(1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error running migrations: %w", err)
		}

		log.Info().Str("driver", conn.Driver).Msg("Database migrations completed successfully")

		return nil
	case ActionDrop:
		if err := mig.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error rolling back migrations: %w", err)
		}

		log.Info().Str("driver", conn.Driver).Msg("Database migrations rolled back successfully")

		return nil
	}

	return fmt.Errorf("unknown migration action %q", action)
}

func Up(cfg *config.Config, conn *database.Connection) error {
	return Runner(cfg, conn, ActionUp)
}

func StepUp(cfg *config.Config, conn *database.Connection) error {
	return Runner(cfg, conn, ActionStepUp)
}

func Down(cfg *config.Config, conn *database.Connection) error {
	return Runner(cfg, conn, ActionDown)
}

func Drop(cfg *config.Config, conn *database.Connection) error {
	return Runner(cfg, conn, ActionDrop)
}
