package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/EnesCagri/kaankutuphane/internal/dto"
	"github.com/EnesCagri/kaankutuphane/internal/service"
	"github.com/EnesCagri/kaankutuphane/pkg/response"
)

// CommentHandler handles the book comment endpoints.
type CommentHandler struct {
	commentSvc service.CommentService
}

// NewCommentHandler builds the CommentHandler.
func NewCommentHandler(commentSvc service.CommentService) *CommentHandler {
	return &CommentHandler{commentSvc: commentSvc}
}

// CreateComment adds a comment to a book.
// POST /api/v1/books/:id/comments
func (h *CommentHandler) CreateComment(c *gin.Context) {
	bookID := c.Param("id")
	if bookID == "" {
		response.BadRequest(c, 10001, "book id is required")
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "request validation failed")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	comment, err := h.commentSvc.Create(c.Request.Context(), bookID, &req, callerID)
	if err != nil {
		h.handleCommentError(c, err)
		return
	}

	response.Created(c, comment)
}

// ListComments lists a book's comments.
// GET /api/v1/books/:id/comments
func (h *CommentHandler) ListComments(c *gin.Context) {
	bookID := c.Param("id")
	if bookID == "" {
		response.BadRequest(c, 10001, "book id is required")
		return
	}

	comments, err := h.commentSvc.ListByBook(c.Request.Context(), bookID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": comments})
}

// DeleteComment removes a comment. Authors delete their own; teachers may
// delete any.
// DELETE /api/v1/comments/:id
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "comment id is required")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.commentSvc.Delete(c.Request.Context(), id, callerID); err != nil {
		h.handleCommentError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *CommentHandler) handleCommentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCommentNotFound):
		response.NotFound(c, 15001, "comment not found")
	case errors.Is(err, service.ErrBookNotFound):
		response.NotFound(c, 14001, "book not found")
	case errors.Is(err, service.ErrTeacherOnly):
		response.Forbidden(c, 15002, "only a teacher may delete comments")
	case errors.Is(err, service.ErrStudentOnly):
		response.Forbidden(c, 10003, "students only")
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 12001, "user not found")
	default:
		response.InternalError(c)
	}
}
