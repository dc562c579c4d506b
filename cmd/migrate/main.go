// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/pressly/goose/v3"

	"github.com/carterperez-dev/cardfolio/internal/config"
	"github.com/carterperez-dev/cardfolio/internal/core"
	"github.com/carterperez-dev/cardfolio/migrations"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	command := "up"
	if args := flag.Args(); len(args) > 0 {
		command = args[0]
	}

	if err := run(*configPath, command); err != nil {
		slog.Error("migration error", "error", err)
		os.Exit(1)
	}
}

func run(configPath, command string) error {
	ctx := context.Background()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close() //nolint:errcheck // best-effort close

	goose.SetBaseFS(migrations.FS)

	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}

	switch command {
	case "up":
		err = goose.UpContext(ctx, db.DB.DB, ".")
	case "down":
		err = goose.DownContext(ctx, db.DB.DB, ".")
	case "status":
		err = goose.StatusContext(ctx, db.DB.DB, ".")
	default:
		slog.Error("unknown command", "command", command)
		os.Exit(2)
	}
	if err != nil {
		return err
	}

	slog.Info("migration complete", "command", command)
	return nil
}
