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

var objectiveStatuses = map[string]bool{
	domain.ObjectiveStatusOpen:     true,
	domain.ObjectiveStatusAchieved: true,
	domain.ObjectiveStatusDropped:  true,
}

type ObjectiveHandler struct {
	repo        *repository.ObjectiveRepository
	projectRepo *repository.ProjectRepository
	notifSvc    *service.NotificationService
	logger      *zap.Logger
}

func NewObjectiveHandler(repo *repository.ObjectiveRepository, projectRepo *repository.ProjectRepository, notifSvc *service.NotificationService, logger *zap.Logger) *ObjectiveHandler {
	return &ObjectiveHandler{repo: repo, projectRepo: projectRepo, notifSvc: notifSvc, logger: logger}
}

func (h *ObjectiveHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	projectID, _ := strconv.ParseUint(c.Query("project_id"), 10, 64)
	status := c.Query("status")
	if status != "" && !objectiveStatuses[status] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}
	list, err := h.repo.ListByUserID(userID, uint(projectID), status)
	if err != nil {
		h.logger.Error("list objectives failed", zap.Uint("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"objectives": list})
}

func (h *ObjectiveHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req struct {
		ProjectID  uint   `json:"project_id" binding:"required"`
		Title      string `json:"title" binding:"required,max=255"`
		TargetDate string `json:"target_date"` // ISO date
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
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
	o := &models.Objective{
		ProjectID: req.ProjectID,
		UserID:    userID,
		Title:     req.Title,
		Status:    domain.ObjectiveStatusOpen,
	}
	if req.TargetDate != "" {
		d, err := time.Parse("2006-01-02", req.TargetDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid target_date format (use YYYY-MM-DD)"})
			return
		}
		o.TargetDate = &d
	}
	if err := h.repo.Create(o); err != nil {
		h.logger.Error("create objective failed", zap.Uint("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, o)
}

func (h *ObjectiveHandler) Update(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid objective id"})
		return
	}
	o, err := h.repo.GetByIDAndUser(uint(id), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	if o == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "objective not found"})
		return
	}
	var req struct {
		Title    *string `json:"title"`
		Status   *string `json:"status"`
		Progress *int    `json:"progress"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	wasAchieved := o.Status == domain.ObjectiveStatusAchieved
	if req.Title != nil {
		o.Title = *req.Title
	}
	if req.Status != nil {
		if !objectiveStatuses[*req.Status] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		o.Status = *req.Status
	}
	if req.Progress != nil {
		if *req.Progress < 0 || *req.Progress > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "progress must be 0-100"})
			return
		}
		o.Progress = *req.Progress
	}
	if o.Status == domain.ObjectiveStatusAchieved {
		o.Progress = 100
	}
	if err := h.repo.Update(o); err != nil {
		h.logger.Error("update objective failed", zap.Uint("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	if !wasAchieved && o.Status == domain.ObjectiveStatusAchieved {
		_, _ = h.notifSvc.Create(userID, domain.NotificationObjectiveDone, "Objective achieved: "+o.Title, map[string]interface{}{
			"objectiveId": o.ID,
			"projectId":   o.ProjectID,
		})
	}
	c.JSON(http.StatusOK, o)
}

func (h *ObjectiveHandler) Delete(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid objective id"})
		return
	}
	o, err := h.repo.GetByIDAndUser(uint(id), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	if o == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "objective not found"})
		return
	}
	if err := h.repo.Delete(uint(id), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
