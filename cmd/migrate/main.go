// Command migrate applies or reverts the embedded database migrations.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"time"

	"blog/config"
	"blog/internal/infra/persistence/postgres"

	"github.com/pkg/errors"
	pgLib "github.com/slighter12/go-lib/database/postgres"
)

func main() {
	timeout := flag.Duration("timeout", time.Minute, "Maximum time allowed for the command")
	flag.Usage = printUsage
	flag.Parse()

	if flag.NArg() != 1 {
		printUsage()
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := run(ctx, flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, command string) error {
	var migrate func(context.Context, *sql.DB) error
	switch command {
	case "up":
		migrate = postgres.Migrate
	case "down":
		migrate = postgres.Rollback
	case "status":
		migrate = postgres.MigrationStatus
	default:
		printUsage()

		return errors.Errorf("unknown command %q", command)
	}

	cfg, err := config.New()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	db, err := pgLib.New(cfg.Postgres)
	if err != nil {
		return errors.Wrap(err, "failed to connect to PostgreSQL")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}
	defer sqlDB.Close()

	return migrate(ctx, sqlDB)
}

func printUsage() {
	fmt.Println("Usage: migrate [-timeout 1m] <command>")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  up        Apply all pending migrations")
	fmt.Println("  down      Revert the latest migration")
	fmt.Println("  status    Print the state of every migration")
}
