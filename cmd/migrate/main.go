package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/foodbridge/backend/internal/infrastructure/config"
	"github.com/foodbridge/backend/internal/infrastructure/logger"
	"github.com/foodbridge/backend/internal/infrastructure/migration"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

func main() {
	var (
		migrationsPath = flag.String("path", "migrations", "path to the migrations directory")
		logLevel       = flag.String("log-level", "info", "log level (debug, info, warn, error)")
		confirm        = flag.Bool("confirm", false, "confirm destructive commands")
	)
	flag.Usage = printUsage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	log, err := logger.New(&logger.Config{
		Level:      *logLevel,
		Format:     "console",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	path, err := filepath.Abs(*migrationsPath)
	if err != nil {
		log.Fatal("resolving migrations path", zap.Error(err))
	}

	log.Info("migration tool started",
		zap.String("command", command),
		zap.String("migrations_path", path),
	)

	// create and list work on the file system only
	switch command {
	case "create":
		name := requireArg(log, args, "migration name required: migrate create <name> [description]")
		description := ""
		if len(args) > 2 {
			description = args[2]
		}

		mf, err := migration.CreateMigration(path, name, description)
		if err != nil {
			log.Fatal("creating migration", zap.Error(err))
		}
		log.Info("migration created",
			zap.String("version", mf.Version),
			zap.String("up_file", mf.UpPath),
			zap.String("down_file", mf.DownPath),
		)
		return

	case "list":
		migrations, err := migration.ListMigrations(path)
		if err != nil {
			log.Fatal("listing migrations", zap.Error(err))
		}
		if len(migrations) == 0 {
			log.Info("no migrations found")
			return
		}
		log.Info("available migrations", zap.Int("count", len(migrations)))
		for _, name := range migrations {
			fmt.Println("  -", name)
		}
		return
	}

	// everything else talks to the database
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("loading configuration", zap.Error(err))
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("opening database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("pinging database", zap.Error(err))
	}

	m, err := migration.New(db, path, log)
	if err != nil {
		log.Fatal("creating migrator", zap.Error(err))
	}
	defer m.Close()

	switch command {
	case "up":
		if err := m.Up(); err != nil {
			log.Fatal("migrate up failed", zap.Error(err))
		}

	case "down":
		if err := m.Down(); err != nil {
			log.Fatal("migrate down failed", zap.Error(err))
		}

	case "step":
		raw := requireArg(log, args, "step count required: migrate step <n>")
		n, err := strconv.Atoi(raw)
		if err != nil {
			log.Fatal("invalid step count", zap.String("value", raw))
		}
		if err := m.Steps(n); err != nil {
			log.Fatal("migrate step failed", zap.Error(err))
		}

	case "goto":
		raw := requireArg(log, args, "version required: migrate goto <version>")
		version, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			log.Fatal("invalid version number", zap.String("value", raw))
		}
		if err := m.GoTo(uint(version)); err != nil {
			log.Fatal("migrate goto failed", zap.Error(err))
		}

	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			log.Fatal("reading version", zap.Error(err))
		}
		if version == 0 {
			log.Info("no migrations applied")
			return
		}
		log.Info("current migration version",
			zap.Uint("version", version),
			zap.Bool("dirty", dirty),
		)

	case "force":
		raw := requireArg(log, args, "version required: migrate force <version>")
		version, err := strconv.Atoi(raw)
		if err != nil {
			log.Fatal("invalid version number", zap.String("value", raw))
		}
		if err := m.Force(version); err != nil {
			log.Fatal("force version failed", zap.Error(err))
		}

	case "drop":
		if !*confirm {
			log.Fatal("drop destroys all data; rerun as: migrate -confirm drop")
		}
		if err := m.Drop(); err != nil {
			log.Fatal("drop failed", zap.Error(err))
		}

	default:
		log.Error("unknown command", zap.String("command", command))
		printUsage()
		os.Exit(1)
	}
}

func requireArg(log *zap.Logger, args []string, usage string) string {
	if len(args) < 2 {
		log.Fatal(usage)
	}
	return args[1]
}

func printUsage() {
	fmt.Println(`FoodBridge database migration tool

Usage:
  migrate [flags] <command> [arguments]

Commands:
  up                    apply all pending migrations
  down                  roll back all migrations
  step <n>              apply n migrations (negative rolls back)
  goto <version>        migrate to a specific version
  version               show the current migration version
  force <version>       stamp the version without running SQL (dirty-state recovery)
  drop                  drop all database objects (requires -confirm)
  create <name> [desc]  create a new up/down migration pair
  list                  list available migrations

Flags:
  -path string          path to the migrations directory (default "migrations")
  -log-level string     log level: debug, info, warn, error (default "info")
  -confirm              confirm destructive commands

Database settings come from FOODBRIDGE_DATABASE_* environment variables
(HOST, PORT, USER, PASSWORD, DBNAME, SSLMODE).

Examples:
  migrate up
  migrate step -1
  migrate create add_feedback_column "store post-completion feedback"
  migrate version`)
}
