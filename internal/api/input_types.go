package api

// eventPayload mirrors the POST /events body. Pointer fields distinguish an
// absent key from a zero value.
type eventPayload struct {
	UserID     *int64  `json:"user_id"`
	Timestamp  *string `json:"timestamp"`
	EventType  *string `json:"event_type"`
	EventValue *string `json:"event_value"`
	MetaData   *string `json:"meta_data"`
}

type createEventResponse struct {
	Status  string `json:"status"`
	EventID int64  `json:"event_id"`
}
