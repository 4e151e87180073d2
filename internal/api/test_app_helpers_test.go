package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/tracklog/internal/db"
	"github.com/terraincognita07/tracklog/internal/models"
	"gorm.io/gorm"
)

func newEventTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "tracklog-api-test.db")
	database, err := db.OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	app := fiber.New()
	app.Use(RequestIDMiddleware())
	RegisterRoutes(app, NewHandler(database))
	return app, database
}

func postEventJSON(t *testing.T, app *fiber.App, payload any) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return postEventRaw(t, app, fiber.MIMEApplicationJSON, body)
}

func postEventRaw(t *testing.T, app *fiber.App, contentType string, body []byte) *http.Response {
	t.Helper()

	request := httptest.NewRequest(http.MethodPost, "/events", bytes.NewReader(body))
	request.Header.Set("Content-Type", contentType)

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("post event request failed: %v", err)
	}
	t.Cleanup(func() {
		_ = response.Body.Close()
	})
	return response
}

func readAPIError(t *testing.T, body io.Reader) string {
	t.Helper()

	payload := map[string]string{}
	bytes, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	if err := json.Unmarshal(bytes, &payload); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return payload["error"]
}

func readCreateEventResponse(t *testing.T, body io.Reader) createEventResponse {
	t.Helper()

	payload := createEventResponse{}
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		t.Fatalf("decode create event response: %v", err)
	}
	return payload
}

func countStoredEvents(t *testing.T, database *gorm.DB) int64 {
	t.Helper()

	var count int64
	if err := database.Model(&models.Event{}).Count(&count).Error; err != nil {
		t.Fatalf("count events: %v", err)
	}
	return count
}

func validEventBody() map[string]any {
	return map[string]any{
		"user_id":     int64(1001),
		"timestamp":   "2026-02-19T08:15:00Z",
		"event_type":  "food",
		"event_value": "apple",
		"meta_data":   "calories: 95",
	}
}
