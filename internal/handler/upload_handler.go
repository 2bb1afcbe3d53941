package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/eduardo-dangelo/manager-pro-sub002/internal/middleware"
	"github.com/eduardo-dangelo/manager-pro-sub002/internal/repository"
	"github.com/eduardo-dangelo/manager-pro-sub002/pkg/cloudinary"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UploadHandler struct {
	cloud     cloudinary.Client
	assetRepo *repository.AssetRepository
	logger    *zap.Logger
}

func NewUploadHandler(cloud cloudinary.Client, assetRepo *repository.AssetRepository, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{cloud: cloud, assetRepo: assetRepo, logger: logger}
}

// UploadAssetImage uploads an image for one of the caller's assets and
// stores the resulting URL on the asset.
func (h *UploadHandler) UploadAssetImage(c *gin.Context) {
	if h.cloud == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "uploads not configured"})
		return
	}
	userID := middleware.GetUserID(c)
	assetID, err := strconv.ParseUint(c.PostForm("asset_id"), 10, 64)
	if err != nil || assetID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "asset_id required"})
		return
	}
	asset, err := h.assetRepo.GetByIDAndUser(uint(assetID), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	if asset == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "asset not found"})
		return
	}
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file required"})
		return
	}
	folder := "ManagerPro/assets/" + strconv.FormatUint(uint64(userID), 10)
	publicID := "img_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:16]

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read file"})
		return
	}
	defer f.Close()

	url, _, err := h.cloud.UploadImage(c.Request.Context(), f, folder, publicID)
	if err != nil {
		h.logger.Error("asset image upload failed", zap.Uint("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
		return
	}
	asset.ImageURL = url
	if err := h.assetRepo.Update(asset); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url, "asset": asset})
}
