package repository

import (
	"errors"

	"github.com/eduardo-dangelo/manager-pro-sub002/internal/models"

	"gorm.io/gorm"
)

type AssetRepository struct {
	db *gorm.DB
}

func NewAssetRepository(db *gorm.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

func (r *AssetRepository) Create(a *models.Asset) error {
	return r.db.Create(a).Error
}

// ListByUserID returns the user's assets, optionally filtered by type.
// Sort is one of created_at | name; anything else falls back to created_at.
func (r *AssetRepository) ListByUserID(userID uint, assetType, sort string) ([]models.Asset, error) {
	q := r.db.Where("user_id = ?", userID)
	if assetType != "" {
		q = q.Where("type = ?", assetType)
	}
	switch sort {
	case "name":
		q = q.Order("name ASC")
	default:
		q = q.Order("created_at DESC")
	}
	list := []models.Asset{}
	err := q.Find(&list).Error
	return list, err
}

// GetByIDAndUser returns nil without error when the asset does not exist or
// belongs to another user.
func (r *AssetRepository) GetByIDAndUser(id, userID uint) (*models.Asset, error) {
	var a models.Asset
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AssetRepository) Update(a *models.Asset) error {
	return r.db.Save(a).Error
}

func (r *AssetRepository) Delete(id, userID uint) error {
	return r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Asset{}).Error
}
