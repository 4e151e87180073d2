package db

import (
	"github.com/terraincognita07/tracklog/internal/models"
	"gorm.io/gorm"
)

type EventRepository struct {
	database *gorm.DB
}

func NewEventRepository(database *gorm.DB) *EventRepository {
	return &EventRepository{database: database}
}

// Append inserts entry inside its own transaction and fills entry.ID with
// the store-assigned identifier. On error the transaction is rolled back
// and entry.ID is left at zero.
func (repo *EventRepository) Append(entry *models.Event) error {
	entry.ID = 0
	err := repo.database.Transaction(func(tx *gorm.DB) error {
		return tx.Create(entry).Error
	})
	if err != nil {
		entry.ID = 0
	}
	return err
}

func (repo *EventRepository) Count() (int64, error) {
	var count int64
	if err := repo.database.Model(&models.Event{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
