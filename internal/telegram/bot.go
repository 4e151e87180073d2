// Package telegram connects the collection dialogue to Telegram long polling.
package telegram

import (
	"context"
	"fmt"
	"log"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/terraincognita07/tracklog/internal/dialogue"
)

const (
	defaultPollTimeout = 60
	defaultWorkers     = 8
	workerQueueSize    = 64
)

type botAPI interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
	Send(message tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Dialogue interface {
	Handle(ctx context.Context, userID int64, input dialogue.Input) []dialogue.Reply
}

type Bot struct {
	api         botAPI
	dialogue    Dialogue
	pollTimeout int
	workers     int
	queueSize   int
}

func New(token string, conversation Dialogue) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connect telegram bot: %w", err)
	}
	log.Printf("authorized on telegram as @%s", api.Self.UserName)
	return newBot(api, conversation), nil
}

func newBot(api botAPI, conversation Dialogue) *Bot {
	return &Bot{
		api:         api,
		dialogue:    conversation,
		pollTimeout: defaultPollTimeout,
		workers:     defaultWorkers,
		queueSize:   workerQueueSize,
	}
}

// Run polls for updates until ctx is cancelled or the update channel closes.
// Updates are sharded by user id, so one user's messages are handled in
// arrival order while different users proceed in parallel. Run returns after
// every accepted update has been handled.
func (bot *Bot) Run(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = bot.pollTimeout
	updates := bot.api.GetUpdatesChan(updateConfig)
	// In-flight inputs finish their submission after shutdown begins.
	handleCtx := context.WithoutCancel(ctx)

	queues := make([]chan tgbotapi.Update, bot.workers)
	var wg sync.WaitGroup
	for i := range queues {
		queues[i] = make(chan tgbotapi.Update, bot.queueSize)
		wg.Add(1)
		go func(queue <-chan tgbotapi.Update) {
			defer wg.Done()
			for update := range queue {
				bot.handleUpdate(handleCtx, update)
			}
		}(queues[i])
	}
	drain := func() {
		for _, queue := range queues {
			close(queue)
		}
		wg.Wait()
	}

	stop := func() error {
		bot.api.StopReceivingUpdates()
		drain()
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return stop()
		case update, ok := <-updates:
			if !ok {
				drain()
				return nil
			}
			userID, ok := updateUserID(update)
			if !ok {
				continue
			}
			// A full queue must not hide cancellation.
			select {
			case queues[shardFor(userID, len(queues))] <- update:
			case <-ctx.Done():
				return stop()
			}
		}
	}
}

func (bot *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	message := update.Message
	input, ok := messageInput(message)
	if !ok {
		bot.send(message.Chat.ID, dialogue.Reply{Text: textOnlyNotice})
		return
	}

	for _, reply := range bot.dialogue.Handle(ctx, message.From.ID, input) {
		bot.send(message.Chat.ID, reply)
	}
}

func (bot *Bot) send(chatID int64, reply dialogue.Reply) {
	if _, err := bot.api.Send(buildMessage(chatID, reply)); err != nil {
		log.Printf("telegram send to chat %d failed: %v", chatID, err)
	}
}

func updateUserID(update tgbotapi.Update) (int64, bool) {
	if update.Message == nil || update.Message.From == nil || update.Message.Chat == nil {
		return 0, false
	}
	return update.Message.From.ID, true
}

func shardFor(userID int64, shards int) int {
	shard := userID % int64(shards)
	if shard < 0 {
		shard = -shard
	}
	return int(shard)
}
