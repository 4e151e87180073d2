package api

import (
	"github.com/terraincognita07/tracklog/internal/db"
	"github.com/terraincognita07/tracklog/internal/services"
	"gorm.io/gorm"
)

type Handler struct {
	repositories *db.Repositories
	eventService *services.EventService
}

func NewHandler(database *gorm.DB) *Handler {
	handler := &Handler{}
	return handler.withDependencies(database)
}

func (handler *Handler) withDependencies(database *gorm.DB) *Handler {
	handler.repositories = db.NewRepositories(database)
	handler.eventService = services.NewEventService(handler.repositories.Events)
	return handler
}
