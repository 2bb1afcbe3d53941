package handler

import (
	"net/http"
	"strconv"

	"github.com/eduardo-dangelo/manager-pro-sub002/internal/domain"
	"github.com/eduardo-dangelo/manager-pro-sub002/internal/middleware"
	"github.com/eduardo-dangelo/manager-pro-sub002/internal/models"
	"github.com/eduardo-dangelo/manager-pro-sub002/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var projectStatuses = map[string]bool{
	domain.ProjectStatusActive:   true,
	domain.ProjectStatusOnHold:   true,
	domain.ProjectStatusDone:     true,
	domain.ProjectStatusArchived: true,
}

type ProjectHandler struct {
	repo      *repository.ProjectRepository
	assetRepo *repository.AssetRepository
	logger    *zap.Logger
}

func NewProjectHandler(repo *repository.ProjectRepository, assetRepo *repository.AssetRepository, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{repo: repo, assetRepo: assetRepo, logger: logger}
}

func (h *ProjectHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	assetID, _ := strconv.ParseUint(c.Query("asset_id"), 10, 64)
	status := c.Query("status")
	if status != "" && !projectStatuses[status] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}
	list, err := h.repo.ListByUserID(userID, uint(assetID), status)
	if err != nil {
		h.logger.Error("list projects failed", zap.Uint("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": list})
}

func (h *ProjectHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req struct {
		AssetID     uint   `json:"asset_id" binding:"required"`
		Name        string `json:"name" binding:"required,max=255"`
		Description string `json:"description"`
		Status      string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Status == "" {
		req.Status = domain.ProjectStatusActive
	}
	if !projectStatuses[req.Status] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}
	// Parent must belong to the caller; a foreign asset id reads as absent.
	asset, err := h.assetRepo.GetByIDAndUser(req.AssetID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	if asset == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "asset not found"})
		return
	}
	p := &models.Project{
		AssetID:     req.AssetID,
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
	}
	if err := h.repo.Create(p); err != nil {
		h.logger.Error("create project failed", zap.Uint("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *ProjectHandler) Get(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}
	p, err := h.repo.GetWithChildren(uint(id), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProjectHandler) Update(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}
	p, err := h.repo.GetByIDAndUser(uint(id), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}
	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Status      *string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Status != nil {
		if !projectStatuses[*req.Status] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		p.Status = *req.Status
	}
	if err := h.repo.Update(p); err != nil {
		h.logger.Error("update project failed", zap.Uint("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}
	p, err := h.repo.GetByIDAndUser(uint(id), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}
	if err := h.repo.Delete(uint(id), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
