package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bookhaven/backend/internal/apperr"
	"github.com/bookhaven/backend/internal/services"
)

type CategoryHandler struct {
	categoryService *services.CategoryService
}

func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

type categoryRequest struct {
	Title string `json:"title"`
}

// Add creates a category
// POST /admin/categories
func (h *CategoryHandler) Add(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("invalid request body"))
		return
	}

	category, err := h.categoryService.Add(req.Title)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, "category saved successfully", category)
}

// Update renames a category
// PUT /admin/categories/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apperr.Validation("invalid category id"))
		return
	}

	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("invalid request body"))
		return
	}

	category, err := h.categoryService.Update(id, req.Title)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, "category updated successfully", category)
}

// List returns all categories
// GET /categories
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categoryService.List()
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, "fetch successful", categories)
}
