package main

import (
	"taskboard/config"
	"taskboard/di"
	"taskboard/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title taskboard API
// @version 1.0
// @description REST surface of the taskboard task tracker.
// @BasePath /
func main() {
	logger.InitLogger()

	cfg := config.Get()

	logger.SetLogLevel(cfg)

	http, err := di.InitializeService()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize service")
	}

	http.Serve()
}
