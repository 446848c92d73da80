package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/alexanderramin/cityplan/internal/cli"
	"github.com/alexanderramin/cityplan/internal/config"
	"github.com/alexanderramin/cityplan/internal/db"
	"github.com/alexanderramin/cityplan/internal/planner"
	"github.com/alexanderramin/cityplan/internal/repository"
	"github.com/alexanderramin/cityplan/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	planRepo := repository.NewSQLitePlanRepo(database)
	selectionRepo := repository.NewSQLiteSelectionRepo(database)
	draftRepo := repository.NewSQLiteDraftRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	var observers []service.UseCaseObserver
	if cfg.LogUseCases {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	// Wire services
	engine := planner.NewEngine()
	app := &cli.App{
		Plans:        service.NewPlanService(planRepo, selectionRepo, draftRepo, uow, engine, observers...),
		Import:       service.NewImportService(uow, engine, observers...),
		Currency:     cfg.Currency,
		ExportFormat: cfg.ExportFormat,
	}

	// The wizard and browser need a terminal on both ends.
	app.IsInteractive = func() bool {
		in, out := os.Stdin.Fd(), os.Stdout.Fd()
		return (isatty.IsTerminal(in) || isatty.IsCygwinTerminal(in)) &&
			(isatty.IsTerminal(out) || isatty.IsCygwinTerminal(out))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.ExecuteContext(ctx)
}
