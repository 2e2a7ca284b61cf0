package model

import "time"

// Status marks where an entry is in its flower-generation lifecycle.
type Status string

const (
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Entry is one mood-journal record with its generated flower image.
// FlowerImageURL is present only once generation has completed for the
// entry's current mood.
type Entry struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	Mood           string    `json:"mood"`
	Timestamp      time.Time `json:"timestamp"`
	Status         Status    `json:"status"`
	FlowerImageURL *string   `json:"flowerImageUrl,omitempty"`
}

// EntryUpdate carries a partial update; nil fields are left untouched.
type EntryUpdate struct {
	Title          *string
	Content        *string
	Mood           *string
	Status         *Status
	FlowerImageURL *string
}
