package main

import (
	"os"

	"taskboard/config"
	"taskboard/helper"
	"taskboard/infras/database"
	"taskboard/shared/logger"

	"github.com/rs/zerolog/log"
)

const (
	argLength = 2
)

func main() {
	logger.InitLogger()

	if len(os.Args) < argLength {
		log.Fatal().Msg("Migration direction (up/down) is required")
	}

	cfg := config.Get()

	logger.SetLogLevel(cfg)

	action := os.Args[1]

	switch action {
	case helper.ActionUp, helper.ActionDown, helper.ActionDrop, helper.ActionStepUp:
	default:
		log.Fatal().Msg("Invalid direction. Use 'up', 'down', 'drop' or 'step-up'")
	}

	if cfg.DB.Driver == config.DriverSQLite && cfg.DB.SQLite.DSN == ":memory:" {
		log.Warn().Msg("Migrating an in-memory database has no lasting effect; set DB_SQLITE_DSN to a file")
	}

	conn, err := database.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	err = helper.Runner(cfg, conn, action)

	_ = conn.Close()

	if err != nil {
		log.Fatal().Err(err).Str("action", action).Msg("Migration failed")
	}
}
