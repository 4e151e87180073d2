package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/terraincognita07/tracklog/internal/models"
)

var (
	ErrMissingEventField = errors.New("missing required field")
	ErrInvalidEventType  = errors.New("invalid event type")
)

// EventInput carries untrusted submission fields. A nil pointer means the
// field was absent from the request.
type EventInput struct {
	UserID     *int64
	Timestamp  *string
	EventType  *string
	EventValue *string
	MetaData   *string
}

// IsEventValidationError reports whether err was caused by the caller's input
// rather than by the store.
func IsEventValidationError(err error) bool {
	return errors.Is(err, ErrMissingEventField) || errors.Is(err, ErrInvalidEventType)
}

// ParseEventType accepts only an exact member of the closed set.
func ParseEventType(raw string) (models.EventType, error) {
	eventType := models.EventType(raw)
	if !eventType.IsValid() {
		return "", fmt.Errorf("%w: event_type must be one of %s", ErrInvalidEventType, EventTypeList())
	}
	return eventType, nil
}

func EventTypeList() string {
	names := make([]string, 0, len(models.EventTypes()))
	for _, eventType := range models.EventTypes() {
		names = append(names, string(eventType))
	}
	return strings.Join(names, ", ")
}

// NormalizeEventInput turns input into a record ready to be appended. The
// returned event has no ID.
func NormalizeEventInput(input EventInput) (models.Event, error) {
	if input.UserID == nil {
		return models.Event{}, missingEventField("user_id")
	}
	if input.Timestamp == nil || strings.TrimSpace(*input.Timestamp) == "" {
		return models.Event{}, missingEventField("timestamp")
	}
	if input.EventType == nil {
		return models.Event{}, missingEventField("event_type")
	}
	if input.EventValue == nil || strings.TrimSpace(*input.EventValue) == "" {
		return models.Event{}, missingEventField("event_value")
	}

	eventType, err := ParseEventType(*input.EventType)
	if err != nil {
		return models.Event{}, err
	}

	event := models.Event{
		UserID:     *input.UserID,
		Timestamp:  *input.Timestamp,
		EventType:  eventType,
		EventValue: *input.EventValue,
	}
	if input.MetaData != nil {
		metaData := *input.MetaData
		event.MetaData = &metaData
	}
	return event, nil
}

func missingEventField(name string) error {
	return fmt.Errorf("%w: %s", ErrMissingEventField, name)
}
