package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/eduardo-dangelo/manager-pro-sub002/internal/domain"
	"github.com/eduardo-dangelo/manager-pro-sub002/internal/middleware"
	"github.com/eduardo-dangelo/manager-pro-sub002/internal/models"
	"github.com/eduardo-dangelo/manager-pro-sub002/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var taskStatuses = map[string]bool{
	domain.TaskStatusTodo:       true,
	domain.TaskStatusInProgress: true,
	domain.TaskStatusDone:       true,
}

var taskPriorities = map[string]bool{
	domain.PriorityLow:    true,
	domain.PriorityMedium: true,
	domain.PriorityHigh:   true,
	domain.PriorityUrgent: true,
}

type TaskHandler struct {
	repo        *repository.TaskRepository
	projectRepo *repository.ProjectRepository
	sprintRepo  *repository.SprintRepository
	logger      *zap.Logger
}

func NewTaskHandler(repo *repository.TaskRepository, projectRepo *repository.ProjectRepository, sprintRepo *repository.SprintRepository, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{repo: repo, projectRepo: projectRepo, sprintRepo: sprintRepo, logger: logger}
}

func (h *TaskHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	projectID, _ := strconv.ParseUint(c.Query("project_id"), 10, 64)
	sprintID, _ := strconv.ParseUint(c.Query("sprint_id"), 10, 64)
	status := c.Query("status")
	if status != "" && !taskStatuses[status] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}
	priority := c.Query("priority")
	if priority != "" && !taskPriorities[priority] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid priority"})
		return
	}
	list, err := h.repo.ListByUserID(userID, repository.TaskFilter{
		ProjectID: uint(projectID),
		SprintID:  uint(sprintID),
		Status:    status,
		Priority:  priority,
		Sort:      c.Query("sort"),
	})
	if err != nil {
		h.logger.Error("list tasks failed", zap.Uint("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": list})
}

func (h *TaskHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req struct {
		ProjectID uint    `json:"project_id" binding:"required"`
		SprintID  *uint   `json:"sprint_id"`
		Title     string  `json:"title" binding:"required,max=255"`
		Notes     string  `json:"notes"`
		Priority  string  `json:"priority"`
		DueDate   *string `json:"due_date"` // RFC3339
		Position  int     `json:"position"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Priority == "" {
		req.Priority = domain.PriorityMedium
	}
	if !taskPriorities[req.Priority] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid priority"})
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
	if req.SprintID != nil {
		sprint, err := h.sprintRepo.GetByIDAndUser(*req.SprintID, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
			return
		}
		if sprint == nil || sprint.ProjectID != req.ProjectID {
			c.JSON(http.StatusNotFound, gin.H{"error": "sprint not found"})
			return
		}
	}
	t := &models.Task{
		ProjectID: req.ProjectID,
		UserID:    userID,
		SprintID:  req.SprintID,
		Title:     req.Title,
		Notes:     req.Notes,
		Status:    domain.TaskStatusTodo,
		Priority:  req.Priority,
		Position:  req.Position,
	}
	if req.DueDate != nil && *req.DueDate != "" {
		d, err := time.Parse(time.RFC3339, *req.DueDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid due_date format (use RFC3339)"})
			return
		}
		t.DueDate = &d
	}
	if err := h.repo.Create(t); err != nil {
		h.logger.Error("create task failed", zap.Uint("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (h *TaskHandler) Get(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}
	t, err := h.repo.GetByIDAndUser(uint(id), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	if t == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *TaskHandler) Update(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}
	t, err := h.repo.GetByIDAndUser(uint(id), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	if t == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	var req struct {
		Title    *string `json:"title"`
		Notes    *string `json:"notes"`
		Status   *string `json:"status"`
		Priority *string `json:"priority"`
		SprintID *uint   `json:"sprint_id"`
		DueDate  *string `json:"due_date"`
		Position *int    `json:"position"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Title != nil {
		t.Title = *req.Title
	}
	if req.Notes != nil {
		t.Notes = *req.Notes
	}
	if req.Status != nil {
		if !taskStatuses[*req.Status] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		if *req.Status == domain.TaskStatusDone && t.Status != domain.TaskStatusDone {
			now := time.Now()
			t.CompletedAt = &now
		}
		if *req.Status != domain.TaskStatusDone {
			t.CompletedAt = nil
		}
		t.Status = *req.Status
	}
	if req.Priority != nil {
		if !taskPriorities[*req.Priority] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid priority"})
			return
		}
		t.Priority = *req.Priority
	}
	if req.SprintID != nil {
		if *req.SprintID == 0 {
			t.SprintID = nil
		} else {
			sprint, err := h.sprintRepo.GetByIDAndUser(*req.SprintID, userID)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
				return
			}
			if sprint == nil || sprint.ProjectID != t.ProjectID {
				c.JSON(http.StatusNotFound, gin.H{"error": "sprint not found"})
				return
			}
			t.SprintID = req.SprintID
		}
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			t.DueDate = nil
		} else {
			d, err := time.Parse(time.RFC3339, *req.DueDate)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid due_date format (use RFC3339)"})
				return
			}
			t.DueDate = &d
		}
	}
	if req.Position != nil {
		t.Position = *req.Position
	}
	if err := h.repo.Update(t); err != nil {
		h.logger.Error("update task failed", zap.Uint("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *TaskHandler) Delete(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}
	t, err := h.repo.GetByIDAndUser(uint(id), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	if t == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	if err := h.repo.Delete(uint(id), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
