package api

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/tracklog/internal/services"
)

func (handler *Handler) CreateEvent(c *fiber.Ctx) error {
	input, err := parseEventPayload(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	event, err := handler.eventService.SubmitEvent(input)
	if err != nil {
		return createEventAPIError(c, err)
	}

	log.Printf("event %d stored (request %s, user %d, type %s)", event.ID, currentRequestID(c), event.UserID, event.EventType)
	return c.Status(fiber.StatusCreated).JSON(createEventResponse{
		Status:  "success",
		EventID: event.ID,
	})
}

func createEventAPIError(c *fiber.Ctx, err error) error {
	switch {
	case services.IsEventValidationError(err):
		return apiError(c, fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, services.ErrStoreEventFailed):
		log.Printf("event store failed (request %s): %v", currentRequestID(c), err)
		return apiError(c, fiber.StatusInternalServerError, err.Error())
	default:
		log.Printf("event submission failed (request %s): %v", currentRequestID(c), err)
		return apiError(c, fiber.StatusInternalServerError, "failed to store event")
	}
}
