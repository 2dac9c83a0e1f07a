package api

import (
	"fmt"
	"net/http"
	"strings"

	"fitsocial/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GifHandler serves exercise demonstration GIFs out of object storage via
// presigned URLs.
type GifHandler struct {
	fileStorage storage.FileStorage
}

// NewGifHandler creates a new GifHandler.
func NewGifHandler(fileStorage storage.FileStorage) *GifHandler {
	return &GifHandler{fileStorage: fileStorage}
}

// --- DTOs ---

type GifUploadURLResponse struct {
	GifID     string `json:"gifId"`
	ObjectKey string `json:"objectKey"`
	UploadURL string `json:"uploadUrl"`
}

// --- Handler Methods ---

// GetGif godoc
// @Summary Redirect to a presigned download URL for an exercise GIF
// @Tags Gifs
// @Param id path string true "GIF ID"
// @Success 302 "Redirect to the object storage URL"
// @Failure 400 {object} gin.H "Invalid GIF ID"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /gifs/{id} [get]
func (h *GifHandler) GetGif(c *gin.Context) {
	gifID := strings.TrimSuffix(c.Param("id"), ".gif")
	if gifID == "" || strings.ContainsAny(gifID, "/\\") {
		abortWithError(c, http.StatusBadRequest, "Invalid GIF ID")
		return
	}

	url, err := h.fileStorage.GeneratePresignedDownloadURL(c.Request.Context(), storage.GifObjectKey(gifID), storage.DefaultPresignedURLExpiry)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to resolve GIF URL")
		return
	}

	c.Redirect(http.StatusFound, url)
}

// DeleteGif godoc
// @Summary Delete an exercise GIF from object storage
// @Description Removes an uploaded GIF, e.g. one that was never attached to an exercise.
// @Tags Gifs
// @Security BearerAuth
// @Param id path string true "GIF ID"
// @Success 204 "Deleted"
// @Failure 400 {object} gin.H "Invalid GIF ID"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /gifs/{id} [delete]
func (h *GifHandler) DeleteGif(c *gin.Context) {
	gifID := strings.TrimSuffix(c.Param("id"), ".gif")
	if gifID == "" || strings.ContainsAny(gifID, "/\\") {
		abortWithError(c, http.StatusBadRequest, "Invalid GIF ID")
		return
	}

	if err := h.fileStorage.DeleteObject(c.Request.Context(), storage.GifObjectKey(gifID)); err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to delete GIF")
		return
	}

	c.Status(http.StatusNoContent)
}

// CreateUploadURL godoc
// @Summary Issue a presigned upload URL for a new exercise GIF
// @Tags Gifs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} GifUploadURLResponse
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /gifs/upload-url [post]
func (h *GifHandler) CreateUploadURL(c *gin.Context) {
	gifID := uuid.NewString()
	objectKey := storage.GifObjectKey(gifID)

	url, err := h.fileStorage.GeneratePresignedUploadURL(c.Request.Context(), objectKey, "image/gif", storage.DefaultPresignedURLExpiry)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, fmt.Sprintf("Failed to generate upload URL: %v", err))
		return
	}

	c.JSON(http.StatusOK, GifUploadURLResponse{
		GifID:     gifID,
		ObjectKey: objectKey,
		UploadURL: url,
	})
}
