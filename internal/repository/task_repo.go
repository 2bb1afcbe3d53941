package repository

import (
	"errors"

	"github.com/eduardo-dangelo/manager-pro-sub002/internal/models"

	"gorm.io/gorm"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(t *models.Task) error {
	return r.db.Create(t).Error
}

// TaskFilter narrows List results. Zero values mean "no filter".
type TaskFilter struct {
	ProjectID uint
	SprintID  uint
	Status    string
	Priority  string
	Sort      string // created_at | due_date | priority | position
}

func (r *TaskRepository) ListByUserID(userID uint, f TaskFilter) ([]models.Task, error) {
	q := r.db.Where("user_id = ?", userID)
	if f.ProjectID != 0 {
		q = q.Where("project_id = ?", f.ProjectID)
	}
	if f.SprintID != 0 {
		q = q.Where("sprint_id = ?", f.SprintID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Priority != "" {
		q = q.Where("priority = ?", f.Priority)
	}
	switch f.Sort {
	case "due_date":
		q = q.Order("due_date IS NULL, due_date ASC")
	case "priority":
		// URGENT > HIGH > MEDIUM > LOW
		q = q.Order("CASE priority WHEN 'URGENT' THEN 0 WHEN 'HIGH' THEN 1 WHEN 'MEDIUM' THEN 2 ELSE 3 END")
	case "position":
		q = q.Order("position ASC, id ASC")
	default:
		q = q.Order("created_at DESC")
	}
	list := []models.Task{}
	err := q.Find(&list).Error
	return list, err
}

func (r *TaskRepository) GetByIDAndUser(id, userID uint) (*models.Task, error) {
	var t models.Task
	err := r.db.Where("id = ? AND user_id = ?", id, userID).Preload("Todos", func(db *gorm.DB) *gorm.DB {
		return db.Order("todos.position ASC, todos.id ASC")
	}).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TaskRepository) Update(t *models.Task) error {
	return r.db.Save(t).Error
}

func (r *TaskRepository) Delete(id, userID uint) error {
	return r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Task{}).Error
}
