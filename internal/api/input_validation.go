package api

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/tracklog/internal/services"
)

var errInvalidPayload = errors.New("invalid payload")

func parseEventPayload(c *fiber.Ctx) (services.EventInput, error) {
	contentType := strings.ToLower(c.Get(fiber.HeaderContentType))

	switch {
	case strings.Contains(contentType, fiber.MIMEApplicationJSON):
		payload := eventPayload{}
		if err := c.BodyParser(&payload); err != nil {
			return services.EventInput{}, errInvalidPayload
		}
		return services.EventInput{
			UserID:     payload.UserID,
			Timestamp:  payload.Timestamp,
			EventType:  payload.EventType,
			EventValue: payload.EventValue,
			MetaData:   payload.MetaData,
		}, nil
	case strings.Contains(contentType, fiber.MIMEApplicationForm):
		return parseEventForm(c)
	default:
		return services.EventInput{}, errInvalidPayload
	}
}

func parseEventForm(c *fiber.Ctx) (services.EventInput, error) {
	args := c.Request().PostArgs()
	input := services.EventInput{
		Timestamp:  optionalFormValue(c, "timestamp"),
		EventType:  optionalFormValue(c, "event_type"),
		EventValue: optionalFormValue(c, "event_value"),
		MetaData:   optionalFormValue(c, "meta_data"),
	}

	if args.Has("user_id") {
		parsed, err := strconv.ParseInt(strings.TrimSpace(c.FormValue("user_id")), 10, 64)
		if err != nil {
			return services.EventInput{}, errInvalidPayload
		}
		input.UserID = &parsed
	}
	return input, nil
}

func optionalFormValue(c *fiber.Ctx, key string) *string {
	if !c.Request().PostArgs().Has(key) {
		return nil
	}
	value := c.FormValue(key)
	return &value
}
