// Package main is the entry point for the Wilayah database migration tool.
// It applies the embedded schema migrations for both supported drivers.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/prn-tf/wilayah/internal/config"
	"github.com/prn-tf/wilayah/internal/repository/postgres"
	"github.com/prn-tf/wilayah/internal/repository/sqlite"
)

// Version information (set at build time)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// migrator is the subset of the sqlite and postgres DB types this tool needs.
type migrator interface {
	Migrate(ctx context.Context) error
	Version(ctx context.Context) (int, error)
	Close() error
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version":
		fmt.Printf("Wilayah Migration Tool\n")
		fmt.Printf("Version: %s\n", Version)
		fmt.Printf("Build Time: %s\n", BuildTime)
		fmt.Printf("Git Commit: %s\n", GitCommit)

	case "up", "status":
		if err := run(command, os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case "help", "-h", "--help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func run(command string, args []string) error {
	fs := flag.NewFlagSet(command, flag.ExitOnError)
	configPath := fs.String("config", "", "path to configuration file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	ctx := context.Background()
	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	switch command {
	case "up":
		if err := db.Migrate(ctx); err != nil {
			return err
		}
		version, err := db.Version(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Migrations applied, schema version %d\n", version)
		return nil

	case "status":
		version, err := db.Version(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Driver: %s\n", cfg.Database.Driver)
		fmt.Printf("Schema version: %d\n", version)
		return nil
	}
	return nil
}

func openDatabase(ctx context.Context, cfg *config.Config) (migrator, error) {
	logger := zerolog.Nop()
	if cfg.Database.Driver == "postgres" {
		return postgres.NewDB(ctx, cfg.Database, logger)
	}
	return sqlite.NewDB(ctx, sqlite.DefaultConfig(cfg.Database.Path), logger)
}

func printUsage() {
	fmt.Println(`Wilayah Migration Tool

Usage:
  wilayah-migrate <command> [arguments]

Commands:
  up          Apply all pending migrations
  status      Show the current schema version
  version     Print version information
  help        Show this help message

Examples:
  wilayah-migrate up
  wilayah-migrate up --config configs/config.yaml
  wilayah-migrate status

The database connection comes from the configuration file or the
WILAYAH_DATABASE_* environment variables.`)
}
