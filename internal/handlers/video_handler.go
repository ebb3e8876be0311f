package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bookhaven/backend/internal/apperr"
	"github.com/bookhaven/backend/internal/services"
)

type VideoHandler struct {
	videoService *services.VideoService
}

func NewVideoHandler(videoService *services.VideoService) *VideoHandler {
	return &VideoHandler{videoService: videoService}
}

type addVideoRequest struct {
	Link string `json:"link"`
}

// Add stores an external video link
// POST /admin/videos
func (h *VideoHandler) Add(c *gin.Context) {
	var req addVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("invalid request body"))
		return
	}

	video, err := h.videoService.Add(req.Link)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, "link saved successfully", video)
}

// List returns all video links
// GET /admin/videos
func (h *VideoHandler) List(c *gin.Context) {
	videos, err := h.videoService.List()
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, "fetch successful", videos)
}

// Delete removes a video link
// DELETE /admin/videos/:id
func (h *VideoHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apperr.Validation("invalid video id"))
		return
	}

	if err := h.videoService.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, "delete successful", nil)
}
