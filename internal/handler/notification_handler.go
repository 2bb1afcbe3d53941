package handler

import (
	"net/http"
	"strconv"

	"github.com/eduardo-dangelo/manager-pro-sub002/internal/middleware"
	"github.com/eduardo-dangelo/manager-pro-sub002/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type NotificationHandler struct {
	svc    *service.NotificationService
	logger *zap.Logger
}

func NewNotificationHandler(svc *service.NotificationService, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{svc: svc, logger: logger}
}

// List returns the user's 50 most recent notifications, newest first.
func (h *NotificationHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	list, err := h.svc.GetByUserID(userID)
	if err != nil {
		h.logger.Error("list notifications failed", zap.Uint("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": list})
}

// MarkRead flips the read flag. 404 covers both "does not exist" and
// "belongs to someone else".
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification id"})
		return
	}
	n, err := h.svc.MarkAsRead(uint(id), userID)
	if err != nil {
		h.logger.Error("mark read failed", zap.Uint("user_id", userID), zap.Uint64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	if n == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
		return
	}
	c.JSON(http.StatusOK, n)
}

// UnreadCount serves the badge counter.
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID := middleware.GetUserID(c)
	count, err := h.svc.UnreadCount(userID)
	if err != nil {
		h.logger.Error("unread count failed", zap.Uint("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "count failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread": count})
}
