package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/eduardo-dangelo/manager-pro-sub002/internal/middleware"
	"github.com/eduardo-dangelo/manager-pro-sub002/internal/models"
	"github.com/eduardo-dangelo/manager-pro-sub002/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type EventHandler struct {
	repo      *repository.EventRepository
	assetRepo *repository.AssetRepository
	logger    *zap.Logger
}

func NewEventHandler(repo *repository.EventRepository, assetRepo *repository.AssetRepository, logger *zap.Logger) *EventHandler {
	return &EventHandler{repo: repo, assetRepo: assetRepo, logger: logger}
}

// List serves the calendar view: events for the user, optionally scoped to
// an asset and a from/to window (RFC3339).
func (h *EventHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	assetID, _ := strconv.ParseUint(c.Query("asset_id"), 10, 64)
	var from, to time.Time
	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from (use RFC3339)"})
			return
		}
		from = t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to (use RFC3339)"})
			return
		}
		to = t
	}
	list, err := h.repo.ListByUserID(userID, uint(assetID), from, to)
	if err != nil {
		h.logger.Error("list events failed", zap.Uint("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": list})
}

func (h *EventHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req struct {
		AssetID     uint    `json:"asset_id" binding:"required"`
		Name        string  `json:"name" binding:"required,max=255"`
		Description string  `json:"description"`
		StartTime   string  `json:"start_time" binding:"required"` // RFC3339
		EndTime     *string `json:"end_time"`
		AllDay      bool    `json:"all_day"`
		Location    string  `json:"location"`
		Reminders   []int   `json:"reminders"` // lead minutes before start
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_time format (use RFC3339)"})
		return
	}
	asset, err := h.assetRepo.GetByIDAndUser(req.AssetID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	if asset == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "asset not found"})
		return
	}
	e := &models.CalendarEvent{
		AssetID:     req.AssetID,
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		StartTime:   start,
		AllDay:      req.AllDay,
		Location:    req.Location,
	}
	if req.EndTime != nil && *req.EndTime != "" {
		end, err := time.Parse(time.RFC3339, *req.EndTime)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_time format (use RFC3339)"})
			return
		}
		if end.Before(start) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "end_time before start_time"})
			return
		}
		e.EndTime = &end
	}
	if len(req.Reminders) > 0 {
		for _, m := range req.Reminders {
			if m <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "reminder minutes must be positive"})
				return
			}
		}
		b, _ := json.Marshal(req.Reminders)
		e.Reminders = string(b)
	}
	if err := h.repo.Create(e); err != nil {
		h.logger.Error("create event failed", zap.Uint("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, e)
}

func (h *EventHandler) Get(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}
	e, err := h.repo.GetByIDAndUser(uint(id), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	if e == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *EventHandler) Update(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}
	e, err := h.repo.GetByIDAndUser(uint(id), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	if e == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
		return
	}
	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		StartTime   *string `json:"start_time"`
		EndTime     *string `json:"end_time"`
		AllDay      *bool   `json:"all_day"`
		Location    *string `json:"location"`
		Reminders   *[]int  `json:"reminders"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name != nil {
		e.Name = *req.Name
	}
	if req.Description != nil {
		e.Description = *req.Description
	}
	if req.StartTime != nil {
		start, err := time.Parse(time.RFC3339, *req.StartTime)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_time format (use RFC3339)"})
			return
		}
		e.StartTime = start
	}
	if req.EndTime != nil {
		if *req.EndTime == "" {
			e.EndTime = nil
		} else {
			end, err := time.Parse(time.RFC3339, *req.EndTime)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_time format (use RFC3339)"})
				return
			}
			e.EndTime = &end
		}
	}
	if req.AllDay != nil {
		e.AllDay = *req.AllDay
	}
	if req.Location != nil {
		e.Location = *req.Location
	}
	if req.Reminders != nil {
		for _, m := range *req.Reminders {
			if m <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "reminder minutes must be positive"})
				return
			}
		}
		b, _ := json.Marshal(*req.Reminders)
		e.Reminders = string(b)
	}
	if err := h.repo.Update(e); err != nil {
		h.logger.Error("update event failed", zap.Uint("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *EventHandler) Delete(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}
	e, err := h.repo.GetByIDAndUser(uint(id), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	if e == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
		return
	}
	if err := h.repo.Delete(uint(id), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
