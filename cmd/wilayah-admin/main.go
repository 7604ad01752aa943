// Package main is the entry point for the Wilayah admin CLI.
// This tool provides administrative commands for managing user accounts.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/rs/zerolog"

	"github.com/prn-tf/wilayah/internal/config"
	"github.com/prn-tf/wilayah/internal/repository"
	"github.com/prn-tf/wilayah/internal/repository/postgres"
	"github.com/prn-tf/wilayah/internal/repository/sqlite"
	"github.com/prn-tf/wilayah/internal/service"
)

// Version information (set at build time)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version":
		fmt.Printf("Wilayah Admin CLI\n")
		fmt.Printf("Version: %s\n", Version)
		fmt.Printf("Build Time: %s\n", BuildTime)
		fmt.Printf("Git Commit: %s\n", GitCommit)

	case "user":
		if err := runUserCommand(os.Args[2:]); err != nil {
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

func runUserCommand(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("user subcommand required (create, list, delete)")
	}

	subcommand := args[0]
	ctx := context.Background()

	switch subcommand {
	case "create":
		fs := flag.NewFlagSet("user create", flag.ExitOnError)
		configPath := fs.String("config", "", "path to configuration file")
		username := fs.String("username", "", "display name for the account")
		email := fs.String("email", "", "login email (must be unique)")
		password := fs.String("password", "", "login password")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *username == "" || *email == "" || *password == "" {
			return fmt.Errorf("--username, --email and --password are required")
		}

		users, closeDB, err := openUserService(ctx, *configPath)
		if err != nil {
			return err
		}
		defer closeDB()

		out, err := users.Register(ctx, service.RegisterInput{
			Username: *username,
			Email:    *email,
			Password: *password,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Created user %d (%s)\n", out.User.ID, out.User.Email)
		return nil

	case "list":
		fs := flag.NewFlagSet("user list", flag.ExitOnError)
		configPath := fs.String("config", "", "path to configuration file")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}

		users, closeDB, err := openUserService(ctx, *configPath)
		if err != nil {
			return err
		}
		defer closeDB()

		list, err := users.List(ctx)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tUSERNAME\tEMAIL\tCREATED")
		for _, u := range list {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", u.ID, u.Username, u.Email, u.CreatedAt.Format("2006-01-02 15:04:05"))
		}
		return w.Flush()

	case "delete":
		fs := flag.NewFlagSet("user delete", flag.ExitOnError)
		configPath := fs.String("config", "", "path to configuration file")
		id := fs.String("id", "", "numeric id of the user to delete")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		userID, err := strconv.ParseInt(*id, 10, 64)
		if err != nil {
			return fmt.Errorf("--id must be a numeric user id")
		}

		users, closeDB, err := openUserService(ctx, *configPath)
		if err != nil {
			return err
		}
		defer closeDB()

		if err := users.Delete(ctx, userID); err != nil {
			return err
		}
		fmt.Printf("Deleted user %d\n", userID)
		return nil

	default:
		return fmt.Errorf("unknown user subcommand: %s", subcommand)
	}
}

// openUserService wires a UserService over the configured database.
// The returned func closes the underlying connection.
func openUserService(ctx context.Context, configPath string) (*service.UserService, func(), error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	logger := zerolog.Nop()

	var (
		repos   *repository.Repositories
		closeDB func()
	)
	if cfg.Database.Driver == "postgres" {
		db, err := postgres.NewDB(ctx, cfg.Database, logger)
		if err != nil {
			return nil, nil, err
		}
		repos = postgres.NewRepositories(db)
		closeDB = func() { _ = db.Close() }
	} else {
		sqliteCfg := sqlite.DefaultConfig(cfg.Database.Path)
		db, err := sqlite.NewDB(ctx, sqliteCfg, logger)
		if err != nil {
			return nil, nil, err
		}
		repos = sqlite.NewRepositories(db)
		closeDB = func() { _ = db.Close() }
	}

	return service.NewUserService(repos.User, logger), closeDB, nil
}

func printUsage() {
	fmt.Println(`Wilayah Admin CLI

Usage:
  wilayah-admin <command> [arguments]

Commands:
  user        Manage users (create, list, delete)
  version     Print version information
  help        Show this help message

Examples:
  wilayah-admin user create --username admin --email admin@example.com --password secret
  wilayah-admin user list
  wilayah-admin user delete --id 3

All user subcommands accept --config pointing to a configuration file;
without it the server defaults and WILAYAH_* environment variables apply.`)
}
