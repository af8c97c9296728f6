package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"bikeshare/internal/app"
	"bikeshare/internal/cli"
	"bikeshare/pkg/contracts"
)

func main() {
	configFile := flag.String("config", "", "path to the YAML config file (defaults to config.yaml or configs/config.yaml)")
	dataDir := flag.String("data-dir", "", "directory holding chicago.csv, new_york_city.csv and washington.csv")
	version := flag.Bool("version", false, "print the version and exit")
	flag.Parse()

	if *version {
		fmt.Println(contracts.GetFullVersionString())
		return
	}

	application, err := app.New(app.Options{ConfigFile: *configFile, DataDir: *dataDir})
	if err != nil {
		slog.Error("Failed to initialize application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shell := cli.NewShell(application.Analysis, os.Stdin, os.Stdout, application.Logger)
	runErr := shell.Run(ctx)

	if runErr != nil && ctx.Err() == nil {
		application.Logger.Error("Session error", slog.String("error", runErr.Error()))
	}
	// The log file is closed from here on
	if err := application.Shutdown(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "shutdown: %v\n", err)
	}
	if runErr != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", runErr)
		os.Exit(1)
	}
}
