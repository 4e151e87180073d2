package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/terraincognita07/tracklog/internal/api"
	"github.com/terraincognita07/tracklog/internal/cli"
	"github.com/terraincognita07/tracklog/internal/config"
	"github.com/terraincognita07/tracklog/internal/db"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config init failed: %v", err)
	}

	if len(os.Args) > 1 {
		if err := runCommand(os.Args[1:], cfg); err != nil {
			log.Fatalf("%v", err)
		}
		return
	}

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	app := newApp(api.NewHandler(database))

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("tracklog api listening on http://0.0.0.0:%s (db: %s)", cfg.Port, cfg.DBPath)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func newApp(handler *api.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Tracklog",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(api.RequestIDMiddleware())
	app.Use(logger.New(logger.Config{
		Format: "${time} | ${status} | ${latency} | ${method} ${path} | ${locals:request_id}\n",
	}))

	api.RegisterRoutes(app, handler)
	return app
}

func runCommand(args []string, cfg config.Config) error {
	switch args[0] {
	case "init-db":
		return cli.RunInitDBCommand(cfg.DBPath, os.Stdout)
	default:
		return fmt.Errorf("unknown command %q (supported: init-db)", args[0])
	}
}
