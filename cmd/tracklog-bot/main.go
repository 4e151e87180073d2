package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/terraincognita07/tracklog/internal/config"
	"github.com/terraincognita07/tracklog/internal/dialogue"
	"github.com/terraincognita07/tracklog/internal/ingest"
	"github.com/terraincognita07/tracklog/internal/telegram"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config init failed: %v", err)
	}
	if err := cfg.ValidateBot(); err != nil {
		log.Fatalf("bot config invalid: %v", err)
	}

	bot, err := telegram.New(cfg.TelegramBotToken, newDialogue(cfg))
	if err != nil {
		log.Fatalf("bot init failed: %v", err)
	}

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	log.Printf("tracklog bot polling (api: %s, submit timeout: %s)", cfg.APIURL, cfg.SubmitTimeout)
	if err := bot.Run(sigCtx); err != nil {
		log.Fatalf("bot exited: %v", err)
	}
	log.Printf("tracklog bot stopped")
}

func newDialogue(cfg config.Config) *dialogue.Manager {
	client := ingest.NewClient(cfg.APIURL, cfg.SubmitTimeout)
	return dialogue.NewManager(client, dialogue.Config{ValidateEventType: cfg.ValidateEventType})
}
