package main

import (
	"flag"
	"net/http"
	"os"

	"parley/internal/app"
	"parley/internal/httpapi"
	"parley/internal/telemetry"
)

func main() {
	var (
		home    string
		listen  string
		verbose bool
	)
	flag.StringVar(&home, "home", "", "data dir (default ~/.parley)")
	flag.StringVar(&listen, "listen", "", "bind address (default from config)")
	flag.BoolVar(&verbose, "verbose", false, "debug logging")
	flag.Parse()

	if err := run(home, listen, verbose); err != nil {
		telemetry.NewLogger(false).Error("parleyd failed", "error", err)
		os.Exit(1)
	}
}

func run(home, listen string, verbose bool) error {
	if home == "" {
		dir, err := app.DefaultHome()
		if err != nil {
			return err
		}
		home = dir
	}
	cfg, err := app.LoadConfig(home)
	if err != nil {
		return err
	}
	if verbose {
		cfg.Verbose = true
	}
	if listen != "" {
		cfg.Listen = listen
	}

	logger := telemetry.NewLogger(cfg.Verbose)
	defer logger.Close()
	if cfg.LogFile != "" {
		if err := logger.WithFile(cfg.LogFile); err != nil {
			return err
		}
	}

	wire, err := app.NewWire(cfg)
	if err != nil {
		return err
	}
	defer wire.Close()

	srv := httpapi.NewServer(wire.Sessions, wire.Messages, wire.Queries, logger)
	logger.Info("parleyd listening", "addr", cfg.Listen, "storage", cfg.Storage, "home", cfg.Home)
	return http.ListenAndServe(cfg.Listen, srv.Handler())
}
