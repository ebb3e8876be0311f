package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bookhaven/backend/internal/apperr"
	"github.com/bookhaven/backend/internal/services"
)

type ContactHandler struct {
	contactService *services.ContactService
}

func NewContactHandler(contactService *services.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

type addContactRequest struct {
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	Message     string `json:"message"`
}

// Add stores a public contact submission
// POST /contact
func (h *ContactHandler) Add(c *gin.Context) {
	var req addContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("invalid request body"))
		return
	}

	contact, err := h.contactService.Add(req.FullName, req.PhoneNumber, req.Email, req.Message)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, "contact details sent successfully", contact)
}

// List returns all contact submissions
// GET /admin/contacts
func (h *ContactHandler) List(c *gin.Context) {
	contacts, err := h.contactService.List()
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, "fetch successful", contacts)
}

// Delete removes a contact submission
// DELETE /admin/contacts/:id
func (h *ContactHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apperr.Validation("invalid contact id"))
		return
	}

	if err := h.contactService.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, "permanent delete successful", nil)
}
