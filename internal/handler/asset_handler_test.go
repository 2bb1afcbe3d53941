package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/eduardo-dangelo/manager-pro-sub002/config"
	"github.com/eduardo-dangelo/manager-pro-sub002/internal/auth"
	"github.com/eduardo-dangelo/manager-pro-sub002/internal/database"
	"github.com/eduardo-dangelo/manager-pro-sub002/internal/middleware"
	"github.com/eduardo-dangelo/manager-pro-sub002/internal/models"
	"github.com/eduardo-dangelo/manager-pro-sub002/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type assetFixture struct {
	router *gin.Engine
	repo   *repository.AssetRepository
	cfg    *config.Config
}

func newAssetFixture(t *testing.T) *assetFixture {
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

	repo := repository.NewAssetRepository(db)
	h := NewAssetHandler(repo, zap.NewNop())

	r := gin.New()
	authed := r.Group("/api/v1", middleware.AuthRequired(&cfg.JWT))
	authed.GET("/assets", h.List)
	authed.POST("/assets", h.Create)
	authed.GET("/assets/:id", h.Get)
	authed.PATCH("/assets/:id", h.Update)
	authed.DELETE("/assets/:id", h.Delete)

	return &assetFixture{router: r, repo: repo, cfg: cfg}
}

func (f *assetFixture) request(t *testing.T, method, path, body string, userID uint) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	token, err := auth.GenerateAccessToken(&f.cfg.JWT, userID, "u@example.com")
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestCreateAssetValidatesType(t *testing.T) {
	f := newAssetFixture(t)

	w := f.request(t, http.MethodPost, "/api/v1/assets", `{"name":"Boat","type":"YACHT"}`, 1)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want 400 for unknown type", w.Code)
	}

	w = f.request(t, http.MethodPost, "/api/v1/assets", `{"name":"Car","type":"VEHICLE"}`, 1)
	if w.Code != http.StatusCreated {
		t.Fatalf("got %d, want 201: %s", w.Code, w.Body.String())
	}
	var a models.Asset
	if err := json.Unmarshal(w.Body.Bytes(), &a); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if a.UserID != 1 {
		t.Fatalf("asset owner = %d, want 1", a.UserID)
	}
}

func TestGetAssetCrossTenant(t *testing.T) {
	f := newAssetFixture(t)

	a := &models.Asset{UserID: 2, Name: "Apartment", Type: "PROPERTY"}
	if err := f.repo.Create(a); err != nil {
		t.Fatalf("seed: %v", err)
	}

	// Owner sees it.
	w := f.request(t, http.MethodGet, "/api/v1/assets/"+itoa(a.ID), "", 2)
	if w.Code != http.StatusOK {
		t.Fatalf("owner get: %d, want 200", w.Code)
	}

	// Another user gets 404, not 403. The resource's existence is not leaked.
	w = f.request(t, http.MethodGet, "/api/v1/assets/"+itoa(a.ID), "", 1)
	if w.Code != http.StatusNotFound {
		t.Fatalf("foreign get: %d, want 404", w.Code)
	}
}

func TestUpdateAssetCrossTenant(t *testing.T) {
	f := newAssetFixture(t)

	a := &models.Asset{UserID: 2, Name: "Van", Type: "VEHICLE"}
	if err := f.repo.Create(a); err != nil {
		t.Fatalf("seed: %v", err)
	}

	w := f.request(t, http.MethodPatch, "/api/v1/assets/"+itoa(a.ID), `{"name":"Hijacked"}`, 1)
	if w.Code != http.StatusNotFound {
		t.Fatalf("foreign update: %d, want 404", w.Code)
	}

	got, _ := f.repo.GetByIDAndUser(a.ID, 2)
	if got.Name != "Van" {
		t.Fatalf("name = %q, foreign update must not mutate", got.Name)
	}
}

func TestDeleteAsset(t *testing.T) {
	f := newAssetFixture(t)

	a := &models.Asset{UserID: 1, Name: "Old bike", Type: "VEHICLE"}
	if err := f.repo.Create(a); err != nil {
		t.Fatalf("seed: %v", err)
	}

	w := f.request(t, http.MethodDelete, "/api/v1/assets/"+itoa(a.ID), "", 1)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: %d, want 200", w.Code)
	}

	got, err := f.repo.GetByIDAndUser(a.ID, 1)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if got != nil {
		t.Fatal("asset should be gone after delete")
	}
}

func TestListAssetsFiltersByType(t *testing.T) {
	f := newAssetFixture(t)

	f.repo.Create(&models.Asset{UserID: 1, Name: "Car", Type: "VEHICLE"})
	f.repo.Create(&models.Asset{UserID: 1, Name: "Flat", Type: "PROPERTY"})
	f.repo.Create(&models.Asset{UserID: 2, Name: "Truck", Type: "VEHICLE"})

	w := f.request(t, http.MethodGet, "/api/v1/assets?type=VEHICLE", "", 1)
	if w.Code != http.StatusOK {
		t.Fatalf("got %d, want 200", w.Code)
	}
	var body struct {
		Assets []models.Asset `json:"assets"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Assets) != 1 {
		t.Fatalf("got %d assets, want 1", len(body.Assets))
	}
	if body.Assets[0].Name != "Car" {
		t.Fatalf("asset = %q", body.Assets[0].Name)
	}
}
