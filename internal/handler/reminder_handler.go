package handler

import (
	"net/http"
	"time"

	"github.com/eduardo-dangelo/manager-pro-sub002/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ReminderHandler struct {
	svc    *service.ReminderService
	logger *zap.Logger
}

func NewReminderHandler(svc *service.ReminderService, logger *zap.Logger) *ReminderHandler {
	return &ReminderHandler{svc: svc, logger: logger}
}

// Run triggers a reminder sweep. Safe to call repeatedly: emission is
// deduplicated per (user, event, lead offset).
func (h *ReminderHandler) Run(c *gin.Context) {
	created, err := h.svc.Run(time.Now())
	if err != nil {
		h.logger.Error("reminder run failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "reminder run failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"created": created})
}
