package models

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

type CalendarEvent struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	AssetID     uint           `gorm:"not null;index" json:"asset_id"`
	UserID      uint           `gorm:"not null;index" json:"user_id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	StartTime   time.Time      `gorm:"not null;index" json:"start_time"`
	EndTime     *time.Time     `json:"end_time"`
	AllDay      bool           `gorm:"default:false" json:"all_day"`
	Location    string         `gorm:"size:255" json:"location"`
	Reminders   string         `gorm:"type:text" json:"reminders"` // JSON array of lead minutes, e.g. [30,1440]
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (CalendarEvent) TableName() string {
	return "calendar_events"
}

// ReminderLeadMinutes decodes the stored reminder offsets. Returns nil for
// events with no reminders configured.
func (e *CalendarEvent) ReminderLeadMinutes() []int {
	if e.Reminders == "" {
		return nil
	}
	var mins []int
	if err := json.Unmarshal([]byte(e.Reminders), &mins); err != nil {
		return nil
	}
	return mins
}
