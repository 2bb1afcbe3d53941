package handler

import (
	"net/http"
	"strconv"

	"github.com/eduardo-dangelo/manager-pro-sub002/internal/middleware"
	"github.com/eduardo-dangelo/manager-pro-sub002/internal/models"
	"github.com/eduardo-dangelo/manager-pro-sub002/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type TodoHandler struct {
	repo     *repository.TodoRepository
	taskRepo *repository.TaskRepository
	logger   *zap.Logger
}

func NewTodoHandler(repo *repository.TodoRepository, taskRepo *repository.TaskRepository, logger *zap.Logger) *TodoHandler {
	return &TodoHandler{repo: repo, taskRepo: taskRepo, logger: logger}
}

func (h *TodoHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	taskID, err := strconv.ParseUint(c.Query("task_id"), 10, 64)
	if err != nil || taskID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "task_id required"})
		return
	}
	list, err := h.repo.ListByTaskAndUser(uint(taskID), userID)
	if err != nil {
		h.logger.Error("list todos failed", zap.Uint("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"todos": list})
}

func (h *TodoHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req struct {
		TaskID   uint   `json:"task_id" binding:"required"`
		Label    string `json:"label" binding:"required,max=255"`
		Position int    `json:"position"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	task, err := h.taskRepo.GetByIDAndUser(req.TaskID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	if task == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	t := &models.Todo{
		TaskID:   req.TaskID,
		UserID:   userID,
		Label:    req.Label,
		Position: req.Position,
	}
	if err := h.repo.Create(t); err != nil {
		h.logger.Error("create todo failed", zap.Uint("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (h *TodoHandler) Update(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid todo id"})
		return
	}
	t, err := h.repo.GetByIDAndUser(uint(id), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	if t == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "todo not found"})
		return
	}
	var req struct {
		Label    *string `json:"label"`
		Done     *bool   `json:"done"`
		Position *int    `json:"position"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Label != nil {
		t.Label = *req.Label
	}
	if req.Done != nil {
		t.Done = *req.Done
	}
	if req.Position != nil {
		t.Position = *req.Position
	}
	if err := h.repo.Update(t); err != nil {
		h.logger.Error("update todo failed", zap.Uint("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *TodoHandler) Delete(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid todo id"})
		return
	}
	t, err := h.repo.GetByIDAndUser(uint(id), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	if t == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "todo not found"})
		return
	}
	if err := h.repo.Delete(uint(id), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
