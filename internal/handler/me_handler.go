package handler

import (
	"net/http"
	"time"

	"github.com/eduardo-dangelo/manager-pro-sub002/internal/domain"
	"github.com/eduardo-dangelo/manager-pro-sub002/internal/middleware"
	"github.com/eduardo-dangelo/manager-pro-sub002/internal/repository"
	"github.com/eduardo-dangelo/manager-pro-sub002/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type MeHandler struct {
	userRepo    *repository.UserRepository
	assetRepo   *repository.AssetRepository
	projectRepo *repository.ProjectRepository
	taskRepo    *repository.TaskRepository
	eventRepo   *repository.EventRepository
	notifSvc    *service.NotificationService
	logger      *zap.Logger
}

func NewMeHandler(
	userRepo *repository.UserRepository,
	assetRepo *repository.AssetRepository,
	projectRepo *repository.ProjectRepository,
	taskRepo *repository.TaskRepository,
	eventRepo *repository.EventRepository,
	notifSvc *service.NotificationService,
	logger *zap.Logger,
) *MeHandler {
	return &MeHandler{
		userRepo:    userRepo,
		assetRepo:   assetRepo,
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		eventRepo:   eventRepo,
		notifSvc:    notifSvc,
		logger:      logger,
	}
}

func (h *MeHandler) GetProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)
	u, err := h.userRepo.GetByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

func (h *MeHandler) UpdateProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)
	u, err := h.userRepo.GetByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	var req struct {
		Username  *string `json:"username"`
		AvatarURL *string `json:"avatar_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Username != nil {
		if len(*req.Username) < 3 || len(*req.Username) > 64 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username must be 3-64 characters"})
			return
		}
		u.Username = *req.Username
	}
	if req.AvatarURL != nil {
		u.AvatarURL = *req.AvatarURL
	}
	if err := h.userRepo.Update(u); err != nil {
		h.logger.Error("update profile failed", zap.Uint("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

// GetDashboard aggregates the landing-page counters.
func (h *MeHandler) GetDashboard(c *gin.Context) {
	userID := middleware.GetUserID(c)

	assets, err := h.assetRepo.ListByUserID(userID, "", "")
	if err != nil {
		h.logger.Error("dashboard failed", zap.Uint("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "dashboard failed"})
		return
	}
	activeProjects, err := h.projectRepo.ListByUserID(userID, 0, domain.ProjectStatusActive)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "dashboard failed"})
		return
	}
	openTasks, err := h.taskRepo.ListByUserID(userID, repository.TaskFilter{Status: domain.TaskStatusTodo})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "dashboard failed"})
		return
	}
	now := time.Now()
	upcoming, err := h.eventRepo.ListByUserID(userID, 0, now, now.AddDate(0, 0, 7))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "dashboard failed"})
		return
	}
	unread, err := h.notifSvc.UnreadCount(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "dashboard failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"assets":          len(assets),
		"active_projects": len(activeProjects),
		"open_tasks":      len(openTasks),
		"upcoming_events": upcoming,
		"unread":          unread,
	})
}
