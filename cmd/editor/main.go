package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"blueprint-editor/internal/blueprint/editor"
	"blueprint-editor/internal/blueprint/handlers"
	"blueprint-editor/internal/blueprint/repository"
	"blueprint-editor/internal/blueprint/service"
	"blueprint-editor/internal/common/config"
	"blueprint-editor/internal/common/logging"
	"blueprint-editor/internal/common/middleware"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"go.uber.org/zap"
)

// ============================================================
// Editor Service
// ============================================================

func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel, cfg.Environment)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	tuning, err := editor.LoadTuning(cfg.TuningPath)
	if err != nil {
		logger.Fatal("load tuning", zap.String("path", cfg.TuningPath), zap.Error(err))
	}

	db, err := repository.OpenSQLite(cfg.DBPath)
	if err != nil {
		logger.Fatal("open db", zap.String("path", cfg.DBPath), zap.Error(err))
	}
	defer db.Close()

	repo, err := repository.New(db)
	if err != nil {
		logger.Fatal("create repository", zap.Error(err))
	}
	defer repo.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = repo.Init(ctx)
	cancel()
	if err != nil {
		logger.Fatal("init db", zap.Error(err))
	}

	sessions := service.NewSessionManager(tuning, logging.Component(logger, "sessions"))
	editorHandler := handlers.NewEditorHandler(sessions, repo, logging.Component(logger, "http"))

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		BodyLimit:    16 * 1024 * 1024,
		AppName:      "Blueprint Editor",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger(logging.Component(logger, "access")))
	app.Use(middleware.CORS())

	// ============================================================
	// Health Check Routes
	// ============================================================

	app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})

	app.Get("/health/ready", func(c fiber.Ctx) error {
		if err := db.Ping(); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "db unavailable"})
		}
		return c.JSON(fiber.Map{"status": "ready", "sessions": sessions.Len()})
	})

	// ============================================================
	// Editor Routes
	// ============================================================

	editorHandler.Register(app.Group("/api/v1/sessions"))

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	logger.Info("starting editor service",
		zap.String("addr", addr),
		zap.String("env", cfg.Environment),
		zap.String("db", cfg.DBPath),
	)

	if err := app.Listen(addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
