// Package main - точка входа интерактивного журнала успеваемости.
//
// При запуске журнал загружается из хранилища (JSON-файл или SQLite),
// затем пользователь работает с нумерованным меню. Сохранение - только
// по пункту меню 5.
//
// Архитектура:
// - Domain: студенты, журнал, рейтинг
// - Application: команды и запросы над журналом
// - Infrastructure: хранилища и экспорт
// - Interface: терминальное меню
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/alem-hub/gradebook/config"
	"github.com/alem-hub/gradebook/internal/domain/roster"
	"github.com/alem-hub/gradebook/internal/infrastructure/persistence"
	"github.com/alem-hub/gradebook/internal/interface/cli"
	"github.com/alem-hub/gradebook/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// MAIN
// ══════════════════════════════════════════════════════════════════════════════

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// ─────────────────────────────────────────────────────────────────────────
	// 1. КОНФИГУРАЦИЯ
	// ─────────────────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 2. ЛОГИРОВАНИЕ
	// Логи не смешиваются с меню: по умолчанию пишутся в файл.
	// ─────────────────────────────────────────────────────────────────────────
	base, closeLog, err := logger.Open(cfg.Observability.LogFile, logger.ParseLevel(cfg.Observability.LogLevel))
	if err != nil {
		return err
	}
	defer closeLog()

	log := base.WithSessionID(uuid.NewString())
	log.Info("starting gradebook",
		logger.String("env", string(cfg.App.Environment)),
		logger.String("version", cfg.App.Version),
		logger.Bool("development", cfg.IsDevelopment()),
		logger.String("store", string(cfg.Storage.Backend)),
		logger.Path(cfg.Storage.Path()),
	)

	// ─────────────────────────────────────────────────────────────────────────
	// 3. ХРАНИЛИЩЕ
	// ─────────────────────────────────────────────────────────────────────────
	store, closeStore, err := persistence.Open(ctx, cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Warn("failed to close store", logger.Err(err))
		}
	}()

	// ─────────────────────────────────────────────────────────────────────────
	// 4. СЕССИЯ
	// ─────────────────────────────────────────────────────────────────────────
	handlers := cli.NewHandlers(roster.New(), store, cfg.Storage.Timeout)
	session := cli.NewSession(os.Stdin, os.Stdout, handlers, cli.Config{Logger: log})

	if err := session.Run(ctx); err != nil {
		return fmt.Errorf("session: %w", err)
	}

	log.Info("gradebook stopped")
	return nil
}
