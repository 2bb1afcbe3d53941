package repository

import (
	"errors"

	"github.com/eduardo-dangelo/manager-pro-sub002/internal/models"

	"gorm.io/gorm"
)

type SprintRepository struct {
	db *gorm.DB
}

func NewSprintRepository(db *gorm.DB) *SprintRepository {
	return &SprintRepository{db: db}
}

func (r *SprintRepository) Create(s *models.Sprint) error {
	return r.db.Create(s).Error
}

func (r *SprintRepository) ListByUserID(userID uint, projectID uint, status string) ([]models.Sprint, error) {
	q := r.db.Where("user_id = ?", userID)
	if projectID != 0 {
		q = q.Where("project_id = ?", projectID)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}
	list := []models.Sprint{}
	err := q.Order("start_date DESC").Find(&list).Error
	return list, err
}

func (r *SprintRepository) GetByIDAndUser(id, userID uint) (*models.Sprint, error) {
	var s models.Sprint
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SprintRepository) Update(s *models.Sprint) error {
	return r.db.Save(s).Error
}

func (r *SprintRepository) Delete(id, userID uint) error {
	return r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Sprint{}).Error
}
