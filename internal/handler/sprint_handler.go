package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/eduardo-dangelo/manager-pro-sub002/internal/domain"
	"github.com/eduardo-dangelo/manager-pro-sub002/internal/middleware"
	"github.com/eduardo-dangelo/manager-pro-sub002/internal/models"
	"github.com/eduardo-dangelo/manager-pro-sub002/internal/repository"
	"github.com/eduardo-dangelo/manager-pro-sub002/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var sprintStatuses = map[string]bool{
	domain.SprintStatusPlanned: true,
	domain.SprintStatusActive:  true,
	domain.SprintStatusClosed:  true,
}

type SprintHandler struct {
	repo        *repository.SprintRepository
	projectRepo *repository.ProjectRepository
	notifSvc    *service.NotificationService
	logger      *zap.Logger
}

func NewSprintHandler(repo *repository.SprintRepository, projectRepo *repository.ProjectRepository, notifSvc *service.NotificationService, logger *zap.Logger) *SprintHandler {
	return &SprintHandler{repo: repo, projectRepo: projectRepo, notifSvc: notifSvc, logger: logger}
}

func (h *SprintHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	projectID, _ := strconv.ParseUint(c.Query("project_id"), 10, 64)
	status := c.Query("status")
	if status != "" && !sprintStatuses[status] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}
	list, err := h.repo.ListByUserID(userID, uint(projectID), status)
	if err != nil {
		h.logger.Error("list sprints failed", zap.Uint("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sprints": list})
}

func (h *SprintHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req struct {
		ProjectID uint   `json:"project_id" binding:"required"`
		Name      string `json:"name" binding:"required,max=255"`
		StartDate string `json:"start_date" binding:"required"` // ISO date
		EndDate   string `json:"end_date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date format (use YYYY-MM-DD)"})
		return
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date format (use YYYY-MM-DD)"})
		return
	}
	if !end.After(start) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must be after start_date"})
		return
	}
	project, err := h.projectRepo.GetByIDAndUser(req.ProjectID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	if project == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}
	s := &models.Sprint{
		ProjectID: req.ProjectID,
		UserID:    userID,
		Name:      req.Name,
		StartDate: start,
		EndDate:   end,
		Status:    domain.SprintStatusPlanned,
	}
	if err := h.repo.Create(s); err != nil {
		h.logger.Error("create sprint failed", zap.Uint("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, s)
}

func (h *SprintHandler) Update(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sprint id"})
		return
	}
	s, err := h.repo.GetByIDAndUser(uint(id), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	if s == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "sprint not found"})
		return
	}
	var req struct {
		Name   *string `json:"name"`
		Status *string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	wasActive := s.Status == domain.SprintStatusActive
	if req.Name != nil {
		s.Name = *req.Name
	}
	if req.Status != nil {
		if !sprintStatuses[*req.Status] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		s.Status = *req.Status
	}
	if err := h.repo.Update(s); err != nil {
		h.logger.Error("update sprint failed", zap.Uint("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	if !wasActive && s.Status == domain.SprintStatusActive {
		_, _ = h.notifSvc.Create(userID, domain.NotificationSprintStarted, "Sprint started: "+s.Name, map[string]interface{}{
			"sprintId":  s.ID,
			"projectId": s.ProjectID,
		})
	}
	c.JSON(http.StatusOK, s)
}

func (h *SprintHandler) Delete(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sprint id"})
		return
	}
	s, err := h.repo.GetByIDAndUser(uint(id), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	if s == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "sprint not found"})
		return
	}
	if err := h.repo.Delete(uint(id), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
