package models

import (
	"time"

	"gorm.io/gorm"
)

// Todo is a checklist line under a task.
type Todo struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	TaskID    uint           `gorm:"not null;index" json:"task_id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	Label     string         `gorm:"size:255;not null" json:"label"`
	Done      bool           `gorm:"default:false" json:"done"`
	Position  int            `gorm:"default:0" json:"position"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Todo) TableName() string {
	return "todos"
}
