package models

import (
	"time"

	"gorm.io/gorm"
)

type Sprint struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	ProjectID uint           `gorm:"not null;index" json:"project_id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	StartDate time.Time      `json:"start_date"`
	EndDate   time.Time      `json:"end_date"`
	Status    string         `gorm:"size:20;not null;default:PLANNED" json:"status"` // PLANNED | ACTIVE | CLOSED
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Tasks []Task `gorm:"foreignKey:SprintID" json:"tasks,omitempty"`
}

func (Sprint) TableName() string {
	return "sprints"
}
