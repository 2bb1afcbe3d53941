package models

import (
	"time"

	"gorm.io/gorm"
)

type Project struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	AssetID     uint           `gorm:"not null;index" json:"asset_id"`
	UserID      uint           `gorm:"not null;index" json:"user_id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Status      string         `gorm:"size:20;not null;default:ACTIVE" json:"status"` // ACTIVE | ON_HOLD | DONE | ARCHIVED
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Objectives []Objective `gorm:"foreignKey:ProjectID" json:"objectives,omitempty"`
	Sprints    []Sprint    `gorm:"foreignKey:ProjectID" json:"sprints,omitempty"`
	Tasks      []Task      `gorm:"foreignKey:ProjectID" json:"tasks,omitempty"`
}

func (Project) TableName() string {
	return "projects"
}
