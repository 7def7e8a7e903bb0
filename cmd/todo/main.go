package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"

	"taskboard/internal/board"
	"taskboard/internal/client"
	"taskboard/internal/tui"
	"taskboard/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", tui.DefaultConfigFileName, "config file path")
	baseURL := flag.String("url", "", "server address, overrides base_url")
	offline := flag.Bool("offline", false, "keep tasks in memory for this session only")
	logLevel := flag.String("log-level", "info", "log level")
	flag.Parse()

	logger.InitWriterLogger(os.Stderr)

	cfg, err := tui.LoadOrCreate(*configPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *configPath).Msg("Failed to load config")
	}

	if *baseURL != "" {
		cfg.BaseURL = *baseURL
	}

	if *offline {
		cfg.BaseURL = ""
	}

	logFile := openLogFile(cfg.LogFile)
	defer logFile.Close()

	logger.InitWriterLogger(logFile)
	logger.SetLevel(*logLevel)

	var api board.API
	if cfg.BaseURL != "" {
		api = client.New(cfg.BaseURL)
	}

	b := board.New(api, cfg.BoardOptions()...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Str("base_url", cfg.BaseURL).Bool("networked", b.Networked()).Msg("Starting terminal client")

	if err := tui.Run(ctx, b, cfg); err != nil {
		log.Error().Err(err).Msg("Terminal client stopped with error")
		stop()
		os.Exit(1) //nolint:gocritic
	}
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openLogFile falls back to discarding logs when no file is configured or it
// cannot be opened.
func openLogFile(path string) io.WriteCloser {
	if path == "" {
		return nopCloser{io.Discard}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Could not open log file, logs are discarded")

		return nopCloser{io.Discard}
	}

	return file
}
