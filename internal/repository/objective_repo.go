package repository

import (
	"errors"

	"github.com/eduardo-dangelo/manager-pro-sub002/internal/models"

	"gorm.io/gorm"
)

type ObjectiveRepository struct {
	db *gorm.DB
}

func NewObjectiveRepository(db *gorm.DB) *ObjectiveRepository {
	return &ObjectiveRepository{db: db}
}

func (r *ObjectiveRepository) Create(o *models.Objective) error {
	return r.db.Create(o).Error
}

func (r *ObjectiveRepository) ListByUserID(userID uint, projectID uint, status string) ([]models.Objective, error) {
	q := r.db.Where("user_id = ?", userID)
	if projectID != 0 {
		q = q.Where("project_id = ?", projectID)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}
	list := []models.Objective{}
	err := q.Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *ObjectiveRepository) GetByIDAndUser(id, userID uint) (*models.Objective, error) {
	var o models.Objective
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *ObjectiveRepository) Update(o *models.Objective) error {
	return r.db.Save(o).Error
}

func (r *ObjectiveRepository) Delete(id, userID uint) error {
	return r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Objective{}).Error
}
