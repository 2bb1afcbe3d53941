package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/eduardo-dangelo/manager-pro-sub002/config"
	"github.com/eduardo-dangelo/manager-pro-sub002/internal/auth"
	"github.com/eduardo-dangelo/manager-pro-sub002/internal/database"
	"github.com/eduardo-dangelo/manager-pro-sub002/internal/domain"
	"github.com/eduardo-dangelo/manager-pro-sub002/internal/middleware"
	"github.com/eduardo-dangelo/manager-pro-sub002/internal/repository"
	"github.com/eduardo-dangelo/manager-pro-sub002/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type notifFixture struct {
	router *gin.Engine
	svc    *service.NotificationService
	cfg    *config.Config
}

func newNotifFixture(t *testing.T) *notifFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := config.Load()
	cfg.JWT.AccessSecret = "test-access-secret"
	cfg.JWT.RefreshSecret = "test-refresh-secret"

	svc := service.NewNotificationService(repository.NewNotificationRepository(db), nil, zap.NewNop())
	h := NewNotificationHandler(svc, zap.NewNop())

	r := gin.New()
	authed := r.Group("/api/v1", middleware.AuthRequired(&cfg.JWT))
	authed.GET("/notifications", h.List)
	authed.GET("/notifications/unread-count", h.UnreadCount)
	authed.PATCH("/notifications/:id", h.MarkRead)

	return &notifFixture{router: r, svc: svc, cfg: cfg}
}

func (f *notifFixture) request(t *testing.T, method, path string, userID uint) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if userID != 0 {
		token, err := auth.GenerateAccessToken(&f.cfg.JWT, userID, "u@example.com")
		if err != nil {
			t.Fatalf("token: %v", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestListRequiresAuth(t *testing.T) {
	f := newNotifFixture(t)

	w := f.request(t, http.MethodGet, "/api/v1/notifications", 0)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("got %d, want 401", w.Code)
	}
}

func TestListReturnsOwnNotifications(t *testing.T) {
	f := newNotifFixture(t)

	if _, err := f.svc.Create(1, domain.NotificationTaskAssigned, "Task assigned", nil); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := f.svc.Create(2, domain.NotificationTaskAssigned, "Other user", nil); err != nil {
		t.Fatalf("seed: %v", err)
	}

	w := f.request(t, http.MethodGet, "/api/v1/notifications", 1)
	if w.Code != http.StatusOK {
		t.Fatalf("got %d, want 200: %s", w.Code, w.Body.String())
	}
	var body struct {
		Notifications []struct {
			ID    uint   `json:"id"`
			Title string `json:"title"`
			Read  bool   `json:"read"`
		} `json:"notifications"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Notifications) != 1 {
		t.Fatalf("got %d notifications, want 1", len(body.Notifications))
	}
	if body.Notifications[0].Title != "Task assigned" {
		t.Fatalf("title = %q", body.Notifications[0].Title)
	}
	if body.Notifications[0].Read {
		t.Fatal("new notification must be unread")
	}
}

func TestMarkReadBadID(t *testing.T) {
	f := newNotifFixture(t)

	w := f.request(t, http.MethodPatch, "/api/v1/notifications/abc", 1)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want 400", w.Code)
	}
}

func TestMarkReadNotFound(t *testing.T) {
	f := newNotifFixture(t)

	w := f.request(t, http.MethodPatch, "/api/v1/notifications/9999", 1)
	if w.Code != http.StatusNotFound {
		t.Fatalf("got %d, want 404", w.Code)
	}
}

func TestMarkReadHidesOtherUsers(t *testing.T) {
	f := newNotifFixture(t)

	n, err := f.svc.Create(2, domain.NotificationTaskAssigned, "Not yours", nil)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	w := f.request(t, http.MethodPatch, "/api/v1/notifications/"+itoa(n.ID), 1)
	if w.Code != http.StatusNotFound {
		t.Fatalf("got %d, want 404 for foreign notification", w.Code)
	}

	list, _ := f.svc.GetByUserID(2)
	if list[0].Read {
		t.Fatal("foreign mark-read attempt must not mutate the record")
	}
}

func TestMarkReadSuccess(t *testing.T) {
	f := newNotifFixture(t)

	n, err := f.svc.Create(1, domain.NotificationTaskAssigned, "Mine", nil)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	w := f.request(t, http.MethodPatch, "/api/v1/notifications/"+itoa(n.ID), 1)
	if w.Code != http.StatusOK {
		t.Fatalf("got %d, want 200: %s", w.Code, w.Body.String())
	}
	var got struct {
		ID   uint `json:"id"`
		Read bool `json:"read"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ID != n.ID || !got.Read {
		t.Fatalf("response = %+v, want id %d read", got, n.ID)
	}
}

func TestUnreadCount(t *testing.T) {
	f := newNotifFixture(t)

	n1, _ := f.svc.Create(1, domain.NotificationTaskAssigned, "a", nil)
	f.svc.Create(1, domain.NotificationTaskAssigned, "b", nil)
	f.svc.MarkAsRead(n1.ID, 1)

	w := f.request(t, http.MethodGet, "/api/v1/notifications/unread-count", 1)
	if w.Code != http.StatusOK {
		t.Fatalf("got %d, want 200", w.Code)
	}
	var body struct {
		Unread int `json:"unread"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Unread != 1 {
		t.Fatalf("unread = %d, want 1", body.Unread)
	}
}
