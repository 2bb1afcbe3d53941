package repository

import (
	"errors"

	"github.com/eduardo-dangelo/manager-pro-sub002/internal/models"

	"gorm.io/gorm"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(p *models.Project) error {
	return r.db.Create(p).Error
}

func (r *ProjectRepository) ListByUserID(userID uint, assetID uint, status string) ([]models.Project, error) {
	q := r.db.Where("user_id = ?", userID)
	if assetID != 0 {
		q = q.Where("asset_id = ?", assetID)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}
	list := []models.Project{}
	err := q.Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *ProjectRepository) GetByIDAndUser(id, userID uint) (*models.Project, error) {
	var p models.Project
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetWithChildren preloads objectives, sprints and tasks for the detail view.
func (r *ProjectRepository) GetWithChildren(id, userID uint) (*models.Project, error) {
	var p models.Project
	err := r.db.Where("id = ? AND user_id = ?", id, userID).
		Preload("Objectives").
		Preload("Sprints").
		Preload("Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("tasks.position ASC, tasks.id ASC")
		}).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepository) Update(p *models.Project) error {
	return r.db.Save(p).Error
}

func (r *ProjectRepository) Delete(id, userID uint) error {
	return r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Project{}).Error
}
