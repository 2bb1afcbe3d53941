package repository

import (
	"errors"
	"time"

	"github.com/eduardo-dangelo/manager-pro-sub002/internal/models"

	"gorm.io/gorm"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(e *models.CalendarEvent) error {
	return r.db.Create(e).Error
}

// ListByUserID returns events for the calendar view, optionally scoped to an
// asset and a [from, to) window.
func (r *EventRepository) ListByUserID(userID uint, assetID uint, from, to time.Time) ([]models.CalendarEvent, error) {
	q := r.db.Where("user_id = ?", userID)
	if assetID != 0 {
		q = q.Where("asset_id = ?", assetID)
	}
	if !from.IsZero() {
		q = q.Where("start_time >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("start_time < ?", to)
	}
	list := []models.CalendarEvent{}
	err := q.Order("start_time ASC").Find(&list).Error
	return list, err
}

// ListUpcoming returns all events starting within [now, until), across all
// users. Used by the reminder poller.
func (r *EventRepository) ListUpcoming(now, until time.Time) ([]models.CalendarEvent, error) {
	list := []models.CalendarEvent{}
	err := r.db.Where("start_time >= ? AND start_time < ?", now, until).Order("start_time ASC").Find(&list).Error
	return list, err
}

func (r *EventRepository) GetByIDAndUser(id, userID uint) (*models.CalendarEvent, error) {
	var e models.CalendarEvent
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EventRepository) Update(e *models.CalendarEvent) error {
	return r.db.Save(e).Error
}

func (r *EventRepository) Delete(id, userID uint) error {
	return r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.CalendarEvent{}).Error
}
