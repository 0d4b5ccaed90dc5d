// Package main - выгрузка рейтинга журнала в Excel.
//
// Загружает сохранённый журнал из настроенного хранилища и записывает
// таблицу в GRADEBOOK_EXPORT_PATH. Путь можно переопределить первым аргументом.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/alem-hub/gradebook/config"
	"github.com/alem-hub/gradebook/internal/application/command"
	"github.com/alem-hub/gradebook/internal/domain/roster"
	"github.com/alem-hub/gradebook/internal/infrastructure/export/xlsx"
	"github.com/alem-hub/gradebook/internal/infrastructure/persistence"
	"github.com/alem-hub/gradebook/pkg/logger"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	base, closeLog, err := logger.Open(cfg.Observability.LogFile, logger.ParseLevel(cfg.Observability.LogLevel))
	if err != nil {
		return err
	}
	defer closeLog()
	log := base.WithSessionID(uuid.NewString()).With(logger.Operation("export"))
	ctx = logger.WithContext(ctx, log)

	store, closeStore, err := persistence.Open(ctx, cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer closeStore()

	r := roster.New()
	if _, err := command.NewPersistenceHandler(r, store, cfg.Storage.Timeout).Load(ctx); err != nil {
		return fmt.Errorf("failed to load roster: %w", err)
	}

	path := cfg.Export.Path
	if len(args) > 0 && args[0] != "" {
		path = args[0]
	}

	res, err := xlsx.NewExporter(cfg.Export.Sheet, log).WriteFile(path, r)
	if err != nil {
		return err
	}

	fmt.Printf("Exported %d students to %s\n", res.Students, res.Path)
	return nil
}
