package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bookhaven/backend/internal/apperr"
	"github.com/bookhaven/backend/internal/services"
)

type CommentHandler struct {
	commentService *services.CommentService
}

func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

type addCommentRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Text  string `json:"text"`
}

// Add stores a public comment on a book
// POST /books/:id/comments
func (h *CommentHandler) Add(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apperr.Validation("invalid book id"))
		return
	}

	var req addCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("invalid request body"))
		return
	}

	comment, err := h.commentService.Add(bookID, req.Name, req.Email, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, "comment saved successfully", comment)
}

// ListByBook returns all comments on a book
// GET /books/:id/comments
func (h *CommentHandler) ListByBook(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apperr.Validation("invalid book id"))
		return
	}

	comments, err := h.commentService.ListByBook(bookID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, "fetch successful", comments)
}

// ListAll returns every comment for moderation
// GET /admin/comments
func (h *CommentHandler) ListAll(c *gin.Context) {
	comments, err := h.commentService.ListAll()
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, "fetch successful", comments)
}

type replyRequest struct {
	Reply string `json:"reply"`
}

// Reply sets the admin reply on a comment
// POST /admin/comments/:id/reply
func (h *CommentHandler) Reply(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apperr.Validation("invalid comment id"))
		return
	}

	var req replyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("invalid request body"))
		return
	}

	comment, err := h.commentService.Reply(id, req.Reply)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, "reply saved successfully", comment)
}

// Delete removes a comment
// DELETE /admin/comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apperr.Validation("invalid comment id"))
		return
	}

	comment, err := h.commentService.Delete(id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, "comment deleted successfully", comment)
}
