package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Notification belongs to exactly one user for its entire lifecycle. The
// only mutation is the unread -> read transition; there is no delete and no
// reassignment.
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Type      string    `gorm:"size:50;not null;index" json:"type"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Metadata  string    `gorm:"type:text" json:"-"` // JSON payload, opaque to storage
	Read      bool      `gorm:"not null;default:false" json:"read"`
	DedupeKey *string   `gorm:"uniqueIndex;size:128" json:"-"` // set for event reminders only
	CreatedAt time.Time `json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

// MetadataMap decodes the JSON payload. Returns nil when no metadata was
// attached or it does not parse.
func (n *Notification) MetadataMap() map[string]interface{} {
	if n.Metadata == "" {
		return nil
	}
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(n.Metadata), &m); err != nil {
		return nil
	}
	return m
}

// MarshalJSON exposes metadata as a decoded object rather than the raw text
// column.
func (n Notification) MarshalJSON() ([]byte, error) {
	type alias Notification
	return json.Marshal(struct {
		alias
		Metadata map[string]interface{} `json:"metadata,omitempty"`
	}{alias(n), n.MetadataMap()})
}

// EventReminderKey builds the uniqueness key that makes reminder creation
// atomic: at most one notification per (user, event, lead offset).
func EventReminderKey(userID uint, eventID uint, reminderMinutes int) string {
	return fmt.Sprintf("event_reminder:%d:%d:%d", userID, eventID, reminderMinutes)
}
