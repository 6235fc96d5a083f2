package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/alexanderramin/mealplanner/internal/cli"
	"github.com/alexanderramin/mealplanner/internal/config"
	"github.com/alexanderramin/mealplanner/internal/db"
	"github.com/alexanderramin/mealplanner/internal/repository"
	"github.com/alexanderramin/mealplanner/internal/service"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(); err != nil {
		cli.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// Global flags are read ahead of cobra so they can take part in config
	// resolution; cobra parses the same set again for the commands.
	flags := cli.GlobalFlags()
	flags.ParseErrorsWhitelist.UnknownFlags = true
	flags.Usage = func() {}
	if err := flags.Parse(os.Args[1:]); err != nil && !errors.Is(err, pflag.ErrHelp) {
		return err
	}

	cfg, err := config.Load(flags)
	if err != nil {
		return err
	}

	// Records go to stderr, or to the TUI consoles while it runs.
	stderr := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})
	console := cli.NewConsoleHandler(slog.LevelInfo, stderr)
	logger := slog.New(console)

	repo, revisions, closeBackend, err := openBackend(cfg)
	if err != nil {
		return err
	}
	defer closeBackend()

	ctx := context.Background()
	store := service.NewPlanStore(repo, service.WithLogger(logger))
	store.Load(ctx)

	app := &cli.App{
		Plans:     store,
		Navigator: service.NewWeekNavigator(store),
		Revisions: revisions,
		Logger:    logger,
		Console:   console,
		Flags:     flags,
	}

	// Detect interactive terminal for the default command.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	execErr := cli.NewRootCmd(app).Execute()

	// The plan is written once on the way out, whatever the command did.
	saveErr := store.SaveMeals(ctx)
	if execErr != nil {
		return execErr
	}
	return saveErr
}

// openBackend returns the document repository for the configured backend
// and, for SQLite, the revision lister backing the history command.
func openBackend(cfg *config.Config) (repository.DocumentRepo, service.RevisionLister, func(), error) {
	if cfg.Backend != config.BackendSQLite {
		return repository.NewFileDocumentRepo(cfg.DataPath), nil, func() {}, nil
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("opening database: %w", err)
	}
	repo := repository.NewSQLiteDocumentRepo(database, db.NewSQLiteUnitOfWork(database))
	return repo, repo, func() { database.Close() }, nil
}
