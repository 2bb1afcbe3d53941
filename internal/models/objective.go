package models

import (
	"time"

	"gorm.io/gorm"
)

type Objective struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	ProjectID  uint           `gorm:"not null;index" json:"project_id"`
	UserID     uint           `gorm:"not null;index" json:"user_id"`
	Title      string         `gorm:"size:255;not null" json:"title"`
	Status     string         `gorm:"size:20;not null;default:OPEN" json:"status"` // OPEN | ACHIEVED | DROPPED
	TargetDate *time.Time     `json:"target_date"`
	Progress   int            `gorm:"default:0" json:"progress"` // 0-100
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Objective) TableName() string {
	return "objectives"
}
