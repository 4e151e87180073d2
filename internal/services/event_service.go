package services

import (
	"errors"
	"fmt"

	"github.com/terraincognita07/tracklog/internal/models"
)

var ErrStoreEventFailed = errors.New("store event failed")

type EventRepository interface {
	Append(entry *models.Event) error
}

type EventService struct {
	events EventRepository
}

func NewEventService(events EventRepository) *EventService {
	return &EventService{events: events}
}

// SubmitEvent validates input and appends exactly one row. Submissions are
// not deduplicated: sending the same payload twice stores two events.
func (service *EventService) SubmitEvent(input EventInput) (models.Event, error) {
	event, err := NormalizeEventInput(input)
	if err != nil {
		return models.Event{}, err
	}

	if err := service.events.Append(&event); err != nil {
		return models.Event{}, fmt.Errorf("%w: %v", ErrStoreEventFailed, err)
	}
	return event, nil
}
