package repository

import (
	"errors"

	"github.com/eduardo-dangelo/manager-pro-sub002/internal/models"

	"gorm.io/gorm"
)

type TodoRepository struct {
	db *gorm.DB
}

func NewTodoRepository(db *gorm.DB) *TodoRepository {
	return &TodoRepository{db: db}
}

func (r *TodoRepository) Create(t *models.Todo) error {
	return r.db.Create(t).Error
}

func (r *TodoRepository) ListByTaskAndUser(taskID, userID uint) ([]models.Todo, error) {
	list := []models.Todo{}
	err := r.db.Where("task_id = ? AND user_id = ?", taskID, userID).Order("position ASC, id ASC").Find(&list).Error
	return list, err
}

func (r *TodoRepository) GetByIDAndUser(id, userID uint) (*models.Todo, error) {
	var t models.Todo
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TodoRepository) Update(t *models.Todo) error {
	return r.db.Save(t).Error
}

func (r *TodoRepository) Delete(id, userID uint) error {
	return r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Todo{}).Error
}
