package service

import (
	"testing"
	"time"

	"github.com/eduardo-dangelo/manager-pro-sub002/config"
	"github.com/eduardo-dangelo/manager-pro-sub002/internal/models"
	"github.com/eduardo-dangelo/manager-pro-sub002/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newReminderFixture(t *testing.T) (*ReminderService, *NotificationService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	notifSvc := NewNotificationService(repository.NewNotificationRepository(db), nil, zap.NewNop())
	cfg := &config.ReminderConfig{
		PollInterval:       time.Minute,
		DefaultLeadMinutes: []int{30},
	}
	svc := NewReminderService(repository.NewEventRepository(db), notifSvc, cfg, zap.NewNop())
	return svc, notifSvc, db
}

func TestRunEmitsDueReminder(t *testing.T) {
	svc, notifSvc, db := newReminderFixture(t)
	now := time.Now()

	e := &models.CalendarEvent{
		AssetID:   1,
		UserID:    1,
		Name:      "Oil change",
		StartTime: now.Add(20 * time.Minute),
		Reminders: "[30]",
	}
	if err := db.Create(e).Error; err != nil {
		t.Fatalf("seed event: %v", err)
	}

	created, err := svc.Run(now)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if created != 1 {
		t.Fatalf("expected 1 reminder, got %d", created)
	}

	ok, _ := notifSvc.ExistsEventReminder(1, e.ID, 30)
	if !ok {
		t.Fatal("reminder should exist after run")
	}

	list, _ := notifSvc.GetByUserID(1)
	if len(list) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(list))
	}
	m := list[0].MetadataMap()
	if m["eventName"] != "Oil change" {
		t.Fatalf("metadata eventName = %v", m["eventName"])
	}
}

func TestRunIsIdempotent(t *testing.T) {
	svc, notifSvc, db := newReminderFixture(t)
	now := time.Now()

	db.Create(&models.CalendarEvent{
		AssetID:   1,
		UserID:    1,
		Name:      "Inspection",
		StartTime: now.Add(10 * time.Minute),
		Reminders: "[30]",
	})

	if created, _ := svc.Run(now); created != 1 {
		t.Fatalf("first run should create 1")
	}
	if created, _ := svc.Run(now); created != 0 {
		t.Fatal("second run must not duplicate")
	}
	if created, _ := svc.Run(now.Add(time.Minute)); created != 0 {
		t.Fatal("later run must not duplicate")
	}

	list, _ := notifSvc.GetByUserID(1)
	if len(list) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(list))
	}
}

func TestRunSkipsNotYetDue(t *testing.T) {
	svc, _, db := newReminderFixture(t)
	now := time.Now()

	db.Create(&models.CalendarEvent{
		AssetID:   1,
		UserID:    1,
		Name:      "Far future",
		StartTime: now.Add(2 * time.Hour),
		Reminders: "[30]",
	})

	created, err := svc.Run(now)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if created != 0 {
		t.Fatalf("reminder 30min before a 2h-away event is not due, got %d", created)
	}

	// Once inside the lead window it fires.
	created, _ = svc.Run(now.Add(95 * time.Minute))
	if created != 1 {
		t.Fatalf("expected 1 reminder inside window, got %d", created)
	}
}

func TestRunUsesDefaultLead(t *testing.T) {
	svc, notifSvc, db := newReminderFixture(t)
	now := time.Now()

	e := &models.CalendarEvent{
		AssetID:   1,
		UserID:    1,
		Name:      "No explicit reminders",
		StartTime: now.Add(15 * time.Minute),
	}
	db.Create(e)

	created, err := svc.Run(now)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if created != 1 {
		t.Fatalf("default lead should apply, got %d", created)
	}
	ok, _ := notifSvc.ExistsEventReminder(1, e.ID, 30)
	if !ok {
		t.Fatal("expected default 30min reminder")
	}
}

func TestRunMultipleLeadOffsets(t *testing.T) {
	svc, notifSvc, db := newReminderFixture(t)
	now := time.Now()

	e := &models.CalendarEvent{
		AssetID:   1,
		UserID:    1,
		Name:      "Trip departure",
		StartTime: now.Add(25 * time.Minute),
		Reminders: "[30,1440]",
	}
	db.Create(e)

	created, _ := svc.Run(now)
	if created != 2 {
		t.Fatalf("both offsets are due, got %d", created)
	}
	for _, lead := range []int{30, 1440} {
		ok, _ := notifSvc.ExistsEventReminder(1, e.ID, lead)
		if !ok {
			t.Fatalf("missing reminder for lead %d", lead)
		}
	}
}
