// Package ingest is the HTTP client the conversational front-end uses to
// submit collected events to the ingestion service.
package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ErrServiceUnreachable marks transport failures: the request never got an
// HTTP response.
var ErrServiceUnreachable = errors.New("event service unreachable")

const DefaultTimeout = 10 * time.Second

// EventPayload is the POST /events body. A nil MetaData is sent as JSON null.
type EventPayload struct {
	UserID     int64   `json:"user_id"`
	Timestamp  string  `json:"timestamp"`
	EventType  string  `json:"event_type"`
	EventValue string  `json:"event_value"`
	MetaData   *string `json:"meta_data"`
}

type Result struct {
	StatusCode int
	EventID    int64
	Detail     string
	RequestID  string
}

func (result Result) Created() bool {
	return result.StatusCode >= 200 && result.StatusCode < 300
}

type Client struct {
	endpoint string
	timeout  time.Duration
}

func NewClient(endpoint string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		endpoint: strings.TrimSpace(endpoint),
		timeout:  timeout,
	}
}

type agentResponse struct {
	code int
	body []byte
	errs []error
}

// Submit sends one event. A non-nil error always wraps ErrServiceUnreachable;
// any HTTP response, including 4xx and 5xx, is returned as a Result.
func (client *Client) Submit(ctx context.Context, payload EventPayload) (Result, error) {
	requestID := uuid.NewString()
	result := Result{RequestID: requestID}
	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("%w: %v", ErrServiceUnreachable, err)
	}

	agent := fiber.Post(client.endpoint)
	agent.Set(fiber.HeaderXRequestID, requestID)
	agent.Timeout(client.timeout)
	agent.JSON(payload)

	done := make(chan agentResponse, 1)
	go func() {
		code, body, errs := agent.Bytes()
		done <- agentResponse{code: code, body: body, errs: errs}
	}()

	var response agentResponse
	select {
	case <-ctx.Done():
		return result, fmt.Errorf("%w: %v", ErrServiceUnreachable, ctx.Err())
	case response = <-done:
	}

	if len(response.errs) > 0 {
		return result, fmt.Errorf("%w: %v", ErrServiceUnreachable, errors.Join(response.errs...))
	}

	result.StatusCode = response.code
	if result.Created() {
		result.EventID, result.Detail = decodeCreated(response.body)
		return result, nil
	}
	result.Detail = decodeErrorDetail(response.body)
	return result, nil
}

func decodeCreated(body []byte) (int64, string) {
	created := struct {
		EventID int64 `json:"event_id"`
		ID      int64 `json:"id"`
	}{}
	if err := json.Unmarshal(body, &created); err != nil {
		return 0, strings.TrimSpace(string(body))
	}
	if created.EventID == 0 {
		return created.ID, ""
	}
	return created.EventID, ""
}

func decodeErrorDetail(body []byte) string {
	envelope := struct {
		Error string `json:"error"`
	}{}
	if err := json.Unmarshal(body, &envelope); err == nil && strings.TrimSpace(envelope.Error) != "" {
		return envelope.Error
	}
	return strings.TrimSpace(string(body))
}
