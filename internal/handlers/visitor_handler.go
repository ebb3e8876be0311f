package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/bookhaven/backend/internal/services"
)

type VisitorHandler struct {
	visitorService *services.VisitorService
}

func NewVisitorHandler(visitorService *services.VisitorService) *VisitorHandler {
	return &VisitorHandler{visitorService: visitorService}
}

// Increment bumps the visit counter and returns the new count
// GET /visitor
func (h *VisitorHandler) Increment(c *gin.Context) {
	count, err := h.visitorService.Increment()
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, "visitor updated", gin.H{"count": count})
}
