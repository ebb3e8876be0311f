package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bookhaven/backend/internal/apperr"
	"github.com/bookhaven/backend/internal/services"
)

type StoryHandler struct {
	storyService *services.StoryService
}

func NewStoryHandler(storyService *services.StoryService) *StoryHandler {
	return &StoryHandler{storyService: storyService}
}

type addStoryRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	FullName    string `json:"full_name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
}

// Add stores a public story submission
// POST /stories
func (h *StoryHandler) Add(c *gin.Context) {
	var req addStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("invalid request body"))
		return
	}

	story, err := h.storyService.Add(req.Title, req.Description, req.FullName, req.Phone, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, "story uploaded successfully", story)
}

// List returns all story submissions
// GET /admin/stories
func (h *StoryHandler) List(c *gin.Context) {
	stories, err := h.storyService.List()
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, "fetch successful", stories)
}

// Delete removes a story submission
// DELETE /admin/stories/:id
func (h *StoryHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apperr.Validation("invalid story id"))
		return
	}

	story, err := h.storyService.Delete(id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, "story deleted successfully", story)
}
