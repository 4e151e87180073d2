// Package dialogue implements the per-user conversation that collects an
// event field by field and submits it to the ingestion service.
//
// Each user has at most one session. Inputs for the same user are applied
// one at a time; different users never share state.
package dialogue

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/terraincognita07/tracklog/internal/ingest"
	"github.com/terraincognita07/tracklog/internal/models"
)

type Submitter interface {
	Submit(ctx context.Context, payload ingest.EventPayload) (ingest.Result, error)
}

type Config struct {
	// ValidateEventType re-prompts on a type outside the closed set instead
	// of forwarding it to the service for rejection.
	ValidateEventType bool
	Now               func() time.Time
}

type Manager struct {
	submitter         Submitter
	sessions          *sessionStore
	validateEventType bool
	now               func() time.Time
}

func NewManager(submitter Submitter, config Config) *Manager {
	now := config.Now
	if now == nil {
		now = time.Now
	}
	return &Manager{
		submitter:         submitter,
		sessions:          newSessionStore(),
		validateEventType: config.ValidateEventType,
		now:               now,
	}
}

// Handle applies one input for userID and returns the replies to send, in
// order.
func (manager *Manager) Handle(ctx context.Context, userID int64, input Input) []Reply {
	switch input.Command {
	case CommandHelp:
		return []Reply{textReply(textHelp)}
	case CommandStart:
		return manager.start(userID)
	}

	current := manager.sessions.acquire(userID)
	if current == nil {
		if input.Command == CommandCancel {
			return []Reply{textReply(textNothingToAbort)}
		}
		return []Reply{textReply(textIdle)}
	}
	defer current.mu.Unlock()

	switch input.Command {
	case "":
		return manager.handleText(ctx, current, input.Text)
	case CommandCancel:
		manager.sessions.end(current)
		return []Reply{{Text: textCancelled, HideChoices: true}}
	case CommandSkip:
		if current.state != StateEnteringMeta {
			return []Reply{textReply(textSkipNotHere)}
		}
		current.scratch.MetaData = nil
		return append([]Reply{textReply(textMetaSkipped)}, manager.submit(ctx, current)...)
	default:
		return []Reply{textReply(textUnknownCommand)}
	}
}

// State reports the user's current dialogue state.
func (manager *Manager) State(userID int64) State {
	current := manager.sessions.acquire(userID)
	if current == nil {
		return StateIdle
	}
	defer current.mu.Unlock()
	return current.state
}

// Scratch returns a copy of the user's collected answers, if a session is live.
func (manager *Manager) Scratch(userID int64) (Scratch, bool) {
	current := manager.sessions.acquire(userID)
	if current == nil {
		return Scratch{}, false
	}
	defer current.mu.Unlock()

	snapshot := current.scratch
	if snapshot.MetaData != nil {
		metaData := *snapshot.MetaData
		snapshot.MetaData = &metaData
	}
	return snapshot, true
}

func (manager *Manager) ActiveSessions() int {
	return manager.sessions.len()
}

func (manager *Manager) start(userID int64) []Reply {
	current, created := manager.sessions.begin(userID)
	defer current.mu.Unlock()

	if !created {
		return []Reply{textReply(textAlreadyActive)}
	}
	return []Reply{{Text: textStarted, Choices: eventTypeMenu()}}
}

func (manager *Manager) handleText(ctx context.Context, current *session, text string) []Reply {
	switch current.state {
	case StateSelectingType:
		if manager.validateEventType && !models.EventType(text).IsValid() {
			return []Reply{{Text: replyText(textUnknownType, text), Choices: eventTypeMenu()}}
		}
		current.scratch.EventType = text
		current.state = StateEnteringValue
		return []Reply{{Text: replyText(textEnterValue, text), HideChoices: true}}
	case StateEnteringValue:
		if strings.TrimSpace(text) == "" {
			return []Reply{textReply(textEmptyValue)}
		}
		current.scratch.EventValue = text
		current.state = StateEnteringMeta
		return []Reply{textReply(textEnterMeta)}
	case StateEnteringMeta:
		metaData := text
		current.scratch.MetaData = &metaData
		return append([]Reply{textReply(textMetaAccepted)}, manager.submit(ctx, current)...)
	default:
		return []Reply{textReply(textIdle)}
	}
}

// submit sends the collected record and ends the session whatever the
// outcome. Failures are reported to the user and never retried.
func (manager *Manager) submit(ctx context.Context, current *session) []Reply {
	defer manager.sessions.end(current)

	payload := ingest.EventPayload{
		UserID:     current.userID,
		Timestamp:  manager.now().UTC().Format(time.RFC3339),
		EventType:  current.scratch.EventType,
		EventValue: current.scratch.EventValue,
		MetaData:   current.scratch.MetaData,
	}
	log.Printf("submitting event for user %d: type=%q meta_present=%t", payload.UserID, payload.EventType, payload.MetaData != nil)

	result, err := manager.submitter.Submit(ctx, payload)
	if err != nil {
		log.Printf("event submission for user %d failed (request %s): %v", payload.UserID, result.RequestID, err)
		return []Reply{textReply(textUnreachable)}
	}
	if !result.Created() {
		log.Printf("event service rejected submission for user %d (request %s): status %d: %s", payload.UserID, result.RequestID, result.StatusCode, result.Detail)
		return []Reply{textReply(textSubmitFailed, result.StatusCode, result.Detail)}
	}

	log.Printf("event %d stored for user %d (request %s)", result.EventID, payload.UserID, result.RequestID)
	return []Reply{textReply(textSubmitted, result.EventID)}
}
