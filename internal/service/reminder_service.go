package service

import (
	"context"
	"fmt"
	"time"

	"github.com/eduardo-dangelo/manager-pro-sub002/config"
	"github.com/eduardo-dangelo/manager-pro-sub002/internal/metrics"
	"github.com/eduardo-dangelo/manager-pro-sub002/internal/models"
	"github.com/eduardo-dangelo/manager-pro-sub002/internal/repository"

	"go.uber.org/zap"
)

// reminderHorizon caps how far ahead the poller looks for events. Lead
// offsets beyond this are picked up by later runs.
const reminderHorizon = 48 * time.Hour

// ReminderService scans upcoming calendar events and emits one
// event_reminder notification per (user, event, lead offset). Runs are
// idempotent: the dedupe key makes re-emission a no-op.
type ReminderService struct {
	events *repository.EventRepository
	notifs *NotificationService
	cfg    *config.ReminderConfig
	logger *zap.Logger
}

func NewReminderService(events *repository.EventRepository, notifs *NotificationService, cfg *config.ReminderConfig, logger *zap.Logger) *ReminderService {
	return &ReminderService{events: events, notifs: notifs, cfg: cfg, logger: logger}
}

// Run emits reminders due at the given instant and returns how many were
// created. A reminder is due when now has passed (event start - lead) but
// the event has not started yet.
func (s *ReminderService) Run(now time.Time) (int, error) {
	events, err := s.events.ListUpcoming(now, now.Add(reminderHorizon))
	if err != nil {
		return 0, err
	}
	created := 0
	for i := range events {
		e := &events[i]
		leads := e.ReminderLeadMinutes()
		if leads == nil {
			leads = s.cfg.DefaultLeadMinutes
		}
		for _, lead := range leads {
			if lead <= 0 {
				continue
			}
			remindAt := e.StartTime.Add(-time.Duration(lead) * time.Minute)
			if now.Before(remindAt) {
				continue
			}
			ok, err := s.notifs.CreateEventReminderIfAbsent(
				e.UserID,
				reminderTitle(e, lead),
				map[string]interface{}{
					"eventId":         e.ID,
					"eventName":       e.Name,
					"assetId":         e.AssetID,
					"type":            "event",
					"reminderMinutes": lead,
				},
				e.ID,
				lead,
			)
			if err != nil {
				s.logger.Error("reminder emit failed",
					zap.Uint("event_id", e.ID),
					zap.Int("lead_minutes", lead),
					zap.Error(err),
				)
				continue
			}
			if ok {
				created++
			}
		}
	}
	if created > 0 {
		metrics.RecordRemindersEmitted(created)
		s.logger.Info("reminders emitted", zap.Int("count", created))
	}
	return created, nil
}

// StartPoller runs Run on a fixed interval until ctx is cancelled.
func (s *ReminderService) StartPoller(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.cfg.PollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := s.Run(time.Now()); err != nil {
					s.logger.Error("reminder poll failed", zap.Error(err))
				}
			}
		}
	}()
}

func reminderTitle(e *models.CalendarEvent, leadMinutes int) string {
	switch {
	case leadMinutes >= 1440 && leadMinutes%1440 == 0:
		d := leadMinutes / 1440
		if d == 1 {
			return fmt.Sprintf("%s starts tomorrow", e.Name)
		}
		return fmt.Sprintf("%s starts in %d days", e.Name, d)
	case leadMinutes >= 60 && leadMinutes%60 == 0:
		h := leadMinutes / 60
		if h == 1 {
			return fmt.Sprintf("%s starts in 1 hour", e.Name)
		}
		return fmt.Sprintf("%s starts in %d hours", e.Name, h)
	default:
		return fmt.Sprintf("%s starts in %d minutes", e.Name, leadMinutes)
	}
}
