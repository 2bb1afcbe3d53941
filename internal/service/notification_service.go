package service

import (
	"encoding/json"

	"github.com/eduardo-dangelo/manager-pro-sub002/internal/domain"
	"github.com/eduardo-dangelo/manager-pro-sub002/internal/metrics"
	"github.com/eduardo-dangelo/manager-pro-sub002/internal/models"
	"github.com/eduardo-dangelo/manager-pro-sub002/internal/repository"
	"github.com/eduardo-dangelo/manager-pro-sub002/internal/ws"

	"go.uber.org/zap"
)

// MaxListedNotifications bounds GetByUserID to the most recent entries.
const MaxListedNotifications = 50

type NotificationService struct {
	repo   *repository.NotificationRepository
	hub    *ws.Hub
	logger *zap.Logger
}

func NewNotificationService(repo *repository.NotificationRepository, hub *ws.Hub, logger *zap.Logger) *NotificationService {
	return &NotificationService{repo: repo, hub: hub, logger: logger}
}

// Create persists a notification for the user. Read always starts false;
// callers cannot pre-mark anything as read. Storage errors propagate
// unmodified.
func (s *NotificationService) Create(userID uint, notifType, title string, metadata map[string]interface{}) (*models.Notification, error) {
	n := &models.Notification{
		UserID: userID,
		Type:   notifType,
		Title:  title,
		Read:   false,
	}
	if metadata != nil {
		b, _ := json.Marshal(metadata)
		n.Metadata = string(b)
	}
	if notifType == domain.NotificationEventReminder {
		if key, ok := reminderKeyFromMetadata(userID, metadata); ok {
			n.DedupeKey = &key
		}
	}
	if err := s.repo.Create(n); err != nil {
		return nil, err
	}
	metrics.RecordNotificationCreated(n.Type)
	s.push(n)
	return n, nil
}

// GetByUserID returns the user's notifications, newest first, capped at
// MaxListedNotifications. A user with no history gets an empty slice.
func (s *NotificationService) GetByUserID(userID uint) ([]models.Notification, error) {
	return s.repo.ListByUserID(userID, MaxListedNotifications)
}

// MarkAsRead flips the read flag when the notification exists and belongs
// to the user, and returns the updated record. Returns nil (no error) when
// it does not exist or is owned by someone else; callers map that to a 404
// without learning which case it was.
func (s *NotificationService) MarkAsRead(id, userID uint) (*models.Notification, error) {
	n, err := s.repo.GetByIDAndUser(id, userID)
	if err != nil || n == nil {
		return nil, err
	}
	if !n.Read {
		if err := s.repo.MarkRead(id, userID); err != nil {
			return nil, err
		}
		n.Read = true
	}
	return n, nil
}

// ExistsEventReminder reports whether a reminder for this (user, event, lead
// offset) has already been emitted.
func (s *NotificationService) ExistsEventReminder(userID, eventID uint, reminderMinutes int) (bool, error) {
	return s.repo.ExistsDedupeKey(models.EventReminderKey(userID, eventID, reminderMinutes))
}

// CreateEventReminderIfAbsent atomically inserts a reminder notification
// unless one already exists for the same (user, event, lead offset). The
// unique index on the dedupe key closes the check-then-act window, so two
// concurrent pollers cannot both insert. Reports whether a row was created.
func (s *NotificationService) CreateEventReminderIfAbsent(userID uint, title string, metadata map[string]interface{}, eventID uint, reminderMinutes int) (bool, error) {
	key := models.EventReminderKey(userID, eventID, reminderMinutes)
	n := &models.Notification{
		UserID:    userID,
		Type:      domain.NotificationEventReminder,
		Title:     title,
		Read:      false,
		DedupeKey: &key,
	}
	if metadata != nil {
		b, _ := json.Marshal(metadata)
		n.Metadata = string(b)
	}
	created, err := s.repo.CreateIfAbsent(n)
	if err != nil {
		return false, err
	}
	if created {
		metrics.RecordNotificationCreated(n.Type)
		s.push(n)
	}
	return created, nil
}

// UnreadCount returns the number of unread notifications for the badge.
func (s *NotificationService) UnreadCount(userID uint) (int64, error) {
	return s.repo.CountUnread(userID)
}

func (s *NotificationService) push(n *models.Notification) {
	if s.hub == nil {
		return
	}
	s.hub.BroadcastToUser(n.UserID, map[string]interface{}{
		"type":         "notification",
		"notification": n,
	})
	if s.logger != nil {
		s.logger.Debug("notification pushed",
			zap.Uint("user_id", n.UserID),
			zap.String("type", n.Type),
		)
	}
}

// reminderKeyFromMetadata derives the dedupe key for reminders created via
// the generic Create path, so they participate in the same uniqueness
// guarantee as the poller's inserts.
func reminderKeyFromMetadata(userID uint, metadata map[string]interface{}) (string, bool) {
	eventID, ok := metadataUint(metadata, "eventId")
	if !ok {
		return "", false
	}
	mins, ok := metadataUint(metadata, "reminderMinutes")
	if !ok {
		return "", false
	}
	return models.EventReminderKey(userID, eventID, int(mins)), true
}

func metadataUint(m map[string]interface{}, key string) (uint, bool) {
	if m == nil {
		return 0, false
	}
	switch v := m[key].(type) {
	case int:
		return uint(v), true
	case int64:
		return uint(v), true
	case uint:
		return v, true
	case float64:
		return uint(v), true
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return uint(n), true
	default:
		return 0, false
	}
}
