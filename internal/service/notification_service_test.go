package service

import (
	"fmt"
	"testing"

	"github.com/eduardo-dangelo/manager-pro-sub002/internal/domain"
	"github.com/eduardo-dangelo/manager-pro-sub002/internal/repository"

	"go.uber.org/zap"
)

func newNotificationService(t *testing.T) *NotificationService {
	t.Helper()
	db := newTestDB(t)
	return NewNotificationService(repository.NewNotificationRepository(db), nil, zap.NewNop())
}

func TestCreateStartsUnread(t *testing.T) {
	svc := newNotificationService(t)

	n, err := svc.Create(1, "task_assigned", "New task", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if n.ID == 0 {
		t.Fatal("expected store-assigned id")
	}
	if n.Read {
		t.Fatal("new notification must start unread")
	}
	if n.CreatedAt.IsZero() {
		t.Fatal("expected created_at to be set")
	}
}

func TestCreateWithMetadata(t *testing.T) {
	svc := newNotificationService(t)

	n, err := svc.Create(1, domain.NotificationEventReminder, "Reminder", map[string]interface{}{
		"eventId":         10,
		"eventName":       "Oil change",
		"assetId":         3,
		"type":            "event",
		"reminderMinutes": 30,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	m := n.MetadataMap()
	if m == nil {
		t.Fatal("expected metadata")
	}
	if m["eventName"] != "Oil change" {
		t.Fatalf("eventName = %v", m["eventName"])
	}
}

func TestGetByUserIDEmptyHistory(t *testing.T) {
	svc := newNotificationService(t)

	list, err := svc.GetByUserID(99)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if list == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(list) != 0 {
		t.Fatalf("expected 0 notifications, got %d", len(list))
	}
}

func TestGetByUserIDCapAndOrder(t *testing.T) {
	svc := newNotificationService(t)

	for i := 0; i < 51; i++ {
		if _, err := svc.Create(1, "task_assigned", fmt.Sprintf("n%d", i), nil); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}
	// Another user's entries must not leak in.
	if _, err := svc.Create(2, "task_assigned", "other", nil); err != nil {
		t.Fatalf("create other: %v", err)
	}

	list, err := svc.GetByUserID(1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(list) != MaxListedNotifications {
		t.Fatalf("expected %d notifications, got %d", MaxListedNotifications, len(list))
	}
	// Newest first: the very first creation (n0) fell off the end.
	if list[0].Title != "n50" {
		t.Fatalf("expected newest first, got %q", list[0].Title)
	}
	if list[len(list)-1].Title != "n1" {
		t.Fatalf("expected n1 last, got %q", list[len(list)-1].Title)
	}
	for _, n := range list {
		if n.UserID != 1 {
			t.Fatalf("foreign notification in list: user %d", n.UserID)
		}
	}
}

func TestMarkAsReadOwnership(t *testing.T) {
	svc := newNotificationService(t)

	n, err := svc.Create(1, "task_assigned", "New task", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Correct id, wrong user: absent result, record untouched.
	got, err := svc.MarkAsRead(n.ID, 2)
	if err != nil {
		t.Fatalf("mark as wrong user: %v", err)
	}
	if got != nil {
		t.Fatal("wrong user must get a nil result")
	}
	list, _ := svc.GetByUserID(1)
	if list[0].Read {
		t.Fatal("wrong-user attempt must not mutate the record")
	}

	// Unknown id: same absent result.
	got, err = svc.MarkAsRead(9999, 1)
	if err != nil || got != nil {
		t.Fatalf("unknown id: got %v, %v", got, err)
	}

	// Owner: read flips.
	got, err = svc.MarkAsRead(n.ID, 1)
	if err != nil {
		t.Fatalf("mark as read: %v", err)
	}
	if got == nil || !got.Read {
		t.Fatalf("expected read=true, got %+v", got)
	}
}

func TestMarkAsReadIdempotent(t *testing.T) {
	svc := newNotificationService(t)

	n, _ := svc.Create(1, "task_assigned", "New task", nil)
	first, err := svc.MarkAsRead(n.ID, 1)
	if err != nil || first == nil || !first.Read {
		t.Fatalf("first mark: %+v, %v", first, err)
	}
	second, err := svc.MarkAsRead(n.ID, 1)
	if err != nil || second == nil || !second.Read {
		t.Fatalf("second mark: %+v, %v", second, err)
	}
}

func TestExistsEventReminder(t *testing.T) {
	svc := newNotificationService(t)

	ok, err := svc.ExistsEventReminder(1, 10, 30)
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if ok {
		t.Fatal("no reminder created yet")
	}

	_, err = svc.Create(1, domain.NotificationEventReminder, "Reminder", map[string]interface{}{
		"eventId":         10,
		"reminderMinutes": 30,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	cases := []struct {
		userID  uint
		eventID uint
		minutes int
		want    bool
	}{
		{1, 10, 30, true},
		{1, 10, 15, false}, // different lead offset
		{2, 10, 30, false}, // different user
		{1, 11, 30, false}, // different event
	}
	for _, tc := range cases {
		got, err := svc.ExistsEventReminder(tc.userID, tc.eventID, tc.minutes)
		if err != nil {
			t.Fatalf("exists(%d,%d,%d): %v", tc.userID, tc.eventID, tc.minutes, err)
		}
		if got != tc.want {
			t.Fatalf("exists(%d,%d,%d) = %v, want %v", tc.userID, tc.eventID, tc.minutes, got, tc.want)
		}
	}
}

func TestCreateEventReminderIfAbsent(t *testing.T) {
	svc := newNotificationService(t)

	meta := map[string]interface{}{"eventId": 10, "reminderMinutes": 30}
	created, err := svc.CreateEventReminderIfAbsent(1, "Reminder", meta, 10, 30)
	if err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if !created {
		t.Fatal("first insert must create")
	}

	created, err = svc.CreateEventReminderIfAbsent(1, "Reminder", meta, 10, 30)
	if err != nil {
		t.Fatalf("second insert: %v", err)
	}
	if created {
		t.Fatal("duplicate insert must be a no-op")
	}

	list, err := svc.GetByUserID(1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected exactly one reminder, got %d", len(list))
	}

	// A different lead offset is a distinct reminder.
	created, err = svc.CreateEventReminderIfAbsent(1, "Reminder", map[string]interface{}{"eventId": 10, "reminderMinutes": 15}, 10, 15)
	if err != nil || !created {
		t.Fatalf("distinct offset: created=%v err=%v", created, err)
	}
}

func TestUnreadCount(t *testing.T) {
	svc := newNotificationService(t)

	n1, _ := svc.Create(1, "task_assigned", "a", nil)
	svc.Create(1, "task_assigned", "b", nil)
	svc.Create(2, "task_assigned", "c", nil)

	count, err := svc.UnreadCount(1)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 unread, got %d", count)
	}

	svc.MarkAsRead(n1.ID, 1)
	count, _ = svc.UnreadCount(1)
	if count != 1 {
		t.Fatalf("expected 1 unread after mark, got %d", count)
	}
}
