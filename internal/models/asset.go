package models

import (
	"time"

	"gorm.io/gorm"
)

// Asset is the top-level entity everything else hangs off: a vehicle,
// property, person, project, trip or custom container.
type Asset struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"not null;index" json:"user_id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Type        string         `gorm:"size:20;not null;index" json:"type"` // VEHICLE | PROPERTY | PERSON | PROJECT | TRIP | CUSTOM
	Description string         `gorm:"type:text" json:"description"`
	ImageURL    string         `gorm:"size:512" json:"image_url"`
	Color       string         `gorm:"size:20" json:"color"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Projects []Project       `gorm:"foreignKey:AssetID" json:"projects,omitempty"`
	Events   []CalendarEvent `gorm:"foreignKey:AssetID" json:"events,omitempty"`
}

func (Asset) TableName() string {
	return "assets"
}
