package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/EnesCagri/kaankutuphane/internal/dto"
	"github.com/EnesCagri/kaankutuphane/internal/service"
	"github.com/EnesCagri/kaankutuphane/pkg/metrics"
	"github.com/EnesCagri/kaankutuphane/pkg/response"
)

// BookHandler handles the book catalog endpoints.
type BookHandler struct {
	bookSvc service.BookService
	metrics *metrics.Metrics
}

// NewBookHandler builds the BookHandler.
func NewBookHandler(bookSvc service.BookService, m *metrics.Metrics) *BookHandler {
	return &BookHandler{bookSvc: bookSvc, metrics: m}
}

// CreateBook adds a book owned by the calling student.
// POST /api/v1/books
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req dto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "request validation failed")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	book, err := h.bookSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleBookError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.BooksAdded.Inc()
	}
	response.Created(c, book)
}

// ListBooks lists the catalog, optionally filtered by owner or genre.
// GET /api/v1/books
func (h *BookHandler) ListBooks(c *gin.Context) {
	var req dto.BookListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "request validation failed")
		return
	}

	books, err := h.bookSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": books})
}

// GetBook returns one book with its owner name resolved.
// GET /api/v1/books/:id
func (h *BookHandler) GetBook(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "book id is required")
		return
	}

	book, err := h.bookSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleBookError(c, err)
		return
	}

	response.OK(c, book)
}

// DeleteBook removes a book with its comments, trades and reading statuses.
// Teacher moderation action.
// DELETE /api/v1/books/:id
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "book id is required")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.bookSvc.Delete(c.Request.Context(), id, callerID); err != nil {
		h.handleBookError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *BookHandler) handleBookError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrBookNotFound):
		response.NotFound(c, 14001, "book not found")
	case errors.Is(err, service.ErrDuplicateBook):
		response.Conflict(c, 14002, "this book is already in your classroom")
	case errors.Is(err, service.ErrNoClassroom):
		response.BadRequest(c, 14003, "join a classroom before adding books")
	case errors.Is(err, service.ErrStudentOnly):
		response.Forbidden(c, 10003, "students only")
	case errors.Is(err, service.ErrTeacherOnly):
		response.Forbidden(c, 10003, "teachers only")
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 12001, "user not found")
	default:
		response.InternalError(c)
	}
}
