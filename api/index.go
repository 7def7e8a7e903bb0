// Package handler exposes the API as a single serverless function.
package handler

import (
	"net/http"
	"sync"

	"taskboard/config"
	"taskboard/di"
	"taskboard/shared/logger"

	"github.com/rs/zerolog/log"
)

var (
	once    sync.Once
	app     http.Handler
	initErr error
)

// Handler serves one request, building the application on first use. Later
// invocations of a warm instance reuse the same database handle.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		logger.InitLogger()
		logger.SetLogLevel(config.Get())

		server, err := di.InitializeService()
		if err != nil {
			initErr = err

			return
		}

		app = server.Handler()
	})

	if initErr != nil {
		log.Error().Err(initErr).Msg("Failed to initialize service")
		http.Error(w, "Service unavailable", http.StatusServiceUnavailable)

		return
	}

	r.RequestURI = r.URL.String()

	app.ServeHTTP(w, r)
}
