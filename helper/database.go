package helper

import (
	"fmt"

	"taskboard/config"
	"taskboard/infras/database"

	"github.com/rs/zerolog/log"
)

// OpenDatabase opens the shared connection and, when enabled, brings the schema
// up to date before anything else uses it.
func OpenDatabase(cfg *config.Config) (*database.Connection, error) {
	conn, err := database.New(cfg)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	if !cfg.DB.AutoMigrate {
		log.Debug().Msg("Automatic migrations disabled")

		return conn, nil
	}

	if err := Up(cfg, conn); err != nil {
		_ = conn.Close()

		return nil, fmt.Errorf("failed to prepare schema: %w", err)
	}

	return conn, nil
}
