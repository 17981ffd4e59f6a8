package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	qrcodemigrations "github.com/ghuser/qrcodeapp/migrations/qrcode"
	"github.com/ghuser/qrcodeapp/pkg/config"
	"github.com/ghuser/qrcodeapp/pkg/logger"
	"github.com/ghuser/qrcodeapp/pkg/migrator"
)

// usage: migrate [up|down|status]
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg)

	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}
	if err := run(context.Background(), cmd, cfg.DatabaseURL, log); err != nil {
		log.Error("qrcode migrations failed", "command", cmd, "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd, dbURL string, log logger.Logger) error {
	m, err := migrator.Open(dbURL, qrcodemigrations.MigrationsFS)
	if err != nil {
		return err
	}
	defer m.Close() //nolint:errcheck

	switch cmd {
	case "up":
		applied, err := m.Up(ctx)
		if err != nil {
			return err
		}
		log.Info("qrcode migrations applied", "versions", applied)
	case "down":
		reverted, err := m.Down(ctx)
		if err != nil {
			return err
		}
		log.Info("qrcode migration rolled back", "versions", reverted)
	case "status":
		states, err := m.Status(ctx)
		if err != nil {
			return err
		}
		for _, s := range states {
			log.Info("migration", "version", s.Version, "source", s.Source, "applied", s.Applied)
		}
	default:
		return fmt.Errorf("%w: %q", migrator.ErrUnknownCommand, cmd)
	}
	return nil
}
