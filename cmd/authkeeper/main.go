package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"strings"

	"github.com/dmitrijs2005/authkeeper/internal/cli"
	"github.com/dmitrijs2005/authkeeper/internal/config"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/repositories/repomanager"
	"github.com/dmitrijs2005/authkeeper/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {

	ctx := context.Background()

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stderr, nil)))
	cfg := config.LoadConfig()

	if err := cfg.Validate(); err != nil {
		logger.Error(ctx, "invalid configuration", "err", err)
		os.Exit(1)
	}

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		logger.Error(ctx, "db init error", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		logger.Error(ctx, "migration error", "err", err)
		os.Exit(1)
	}

	service := services.NewAccountService(db, rm, cfg)
	app := cli.NewApp(service, logger, os.Stdin, os.Stdout)

	if err := app.Run(ctx, commandArgs(os.Args[1:])); err != nil {
		os.Exit(1)
	}
}

// commandArgs returns the leading subcommand and its positional arguments,
// stopping at the first configuration flag (those are parsed by the config
// package).
func commandArgs(args []string) []string {
	cmd := make([]string, 0, len(args))
	for _, a := range args {
		if strings.HasPrefix(a, "-") {
			break
		}
		cmd = append(cmd, a)
	}
	return cmd
}
