package models

import (
	"time"

	"gorm.io/gorm"
)

type Task struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	ProjectID   uint           `gorm:"not null;index" json:"project_id"`
	UserID      uint           `gorm:"not null;index" json:"user_id"`
	SprintID    *uint          `gorm:"index" json:"sprint_id"`
	ObjectiveID *uint          `gorm:"index" json:"objective_id"`
	Title       string         `gorm:"size:255;not null" json:"title"`
	Notes       string         `gorm:"type:text" json:"notes"`
	Status      string         `gorm:"size:20;not null;default:TODO;index" json:"status"` // TODO | IN_PROGRESS | DONE
	Priority    string         `gorm:"size:10;not null;default:MEDIUM" json:"priority"`   // LOW | MEDIUM | HIGH | URGENT
	DueDate     *time.Time     `json:"due_date"`
	Position    int            `gorm:"default:0" json:"position"` // manual ordering within a project column
	CompletedAt *time.Time     `json:"completed_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Todos []Todo `gorm:"foreignKey:TaskID" json:"todos,omitempty"`
}

func (Task) TableName() string {
	return "tasks"
}
