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

type AssetHandler struct {
	repo   *repository.AssetRepository
	logger *zap.Logger
}

func NewAssetHandler(repo *repository.AssetRepository, logger *zap.Logger) *AssetHandler {
	return &AssetHandler{repo: repo, logger: logger}
}

func (h *AssetHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	assetType := c.Query("type")
	if assetType != "" && !domain.AllowedAssetTypes[assetType] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid asset type"})
		return
	}
	list, err := h.repo.ListByUserID(userID, assetType, c.Query("sort"))
	if err != nil {
		h.logger.Error("list assets failed", zap.Uint("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"assets": list})
}

func (h *AssetHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req struct {
		Name        string `json:"name" binding:"required,max=255"`
		Type        string `json:"type" binding:"required"`
		Description string `json:"description"`
		Color       string `json:"color"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !domain.AllowedAssetTypes[req.Type] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid asset type"})
		return
	}
	a := &models.Asset{
		UserID:      userID,
		Name:        req.Name,
		Type:        req.Type,
		Description: req.Description,
		Color:       req.Color,
	}
	if err := h.repo.Create(a); err != nil {
		h.logger.Error("create asset failed", zap.Uint("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (h *AssetHandler) Get(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid asset id"})
		return
	}
	a, err := h.repo.GetByIDAndUser(uint(id), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	if a == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "asset not found"})
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *AssetHandler) Update(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid asset id"})
		return
	}
	a, err := h.repo.GetByIDAndUser(uint(id), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	if a == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "asset not found"})
		return
	}
	var req struct {
		Name        *string `json:"name"`
		Type        *string `json:"type"`
		Description *string `json:"description"`
		ImageURL    *string `json:"image_url"`
		Color       *string `json:"color"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name != nil {
		a.Name = *req.Name
	}
	if req.Type != nil {
		if !domain.AllowedAssetTypes[*req.Type] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid asset type"})
			return
		}
		a.Type = *req.Type
	}
	if req.Description != nil {
		a.Description = *req.Description
	}
	if req.ImageURL != nil {
		a.ImageURL = *req.ImageURL
	}
	if req.Color != nil {
		a.Color = *req.Color
	}
	if err := h.repo.Update(a); err != nil {
		h.logger.Error("update asset failed", zap.Uint("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *AssetHandler) Delete(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid asset id"})
		return
	}
	a, err := h.repo.GetByIDAndUser(uint(id), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	if a == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "asset not found"})
		return
	}
	if err := h.repo.Delete(uint(id), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
