package models

type EventType string

const (
	EventTypeFood     EventType = "food"
	EventTypeSymptom  EventType = "symptom"
	EventTypeMood     EventType = "mood"
	EventTypeEnergy   EventType = "energy"
	EventTypeActivity EventType = "activity"
)

// EventTypes lists the closed set of accepted event types in menu order.
func EventTypes() []EventType {
	return []EventType{
		EventTypeFood,
		EventTypeSymptom,
		EventTypeMood,
		EventTypeEnergy,
		EventTypeActivity,
	}
}

func (eventType EventType) IsValid() bool {
	switch eventType {
	case EventTypeFood, EventTypeSymptom, EventTypeMood, EventTypeEnergy, EventTypeActivity:
		return true
	default:
		return false
	}
}

// Event is one appended observation. Rows are never updated or deleted.
type Event struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     int64     `gorm:"not null" json:"user_id"`
	Timestamp  string    `gorm:"column:timestamp;not null" json:"timestamp"`
	EventType  EventType `gorm:"not null" json:"event_type"`
	EventValue string    `gorm:"not null" json:"event_value"`
	MetaData   *string   `gorm:"column:meta_data" json:"meta_data"`
}

func (Event) TableName() string {
	return "events"
}
