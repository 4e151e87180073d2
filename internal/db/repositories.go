package db

import "gorm.io/gorm"

type Repositories struct {
	Events *EventRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Events: NewEventRepository(database),
	}
}
