package repository

import (
	"errors"

	"github.com/eduardo-dangelo/manager-pro-sub002/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(n *models.Notification) error {
	return r.db.Create(n).Error
}

// CreateIfAbsent inserts unless a row with the same dedupe key already
// exists. Reports whether a row was actually inserted.
func (r *NotificationRepository) CreateIfAbsent(n *models.Notification) (bool, error) {
	res := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(n)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *NotificationRepository) ListByUserID(userID uint, limit int) ([]models.Notification, error) {
	list := []models.Notification{}
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC, id DESC").Limit(limit).Find(&list).Error
	return list, err
}

// GetByIDAndUser returns nil without error when the notification does not
// exist or belongs to another user.
func (r *NotificationRepository) GetByIDAndUser(id, userID uint) (*models.Notification, error) {
	var n models.Notification
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&n).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *NotificationRepository) MarkRead(id, userID uint) error {
	return r.db.Model(&models.Notification{}).Where("id = ? AND user_id = ?", id, userID).Update("read", true).Error
}

func (r *NotificationRepository) CountUnread(userID uint) (int64, error) {
	var c int64
	err := r.db.Model(&models.Notification{}).Where("user_id = ? AND `read` = ?", userID, false).Count(&c).Error
	return c, err
}

func (r *NotificationRepository) ExistsDedupeKey(key string) (bool, error) {
	var c int64
	err := r.db.Model(&models.Notification{}).Where("dedupe_key = ?", key).Count(&c).Error
	return c > 0, err
}
