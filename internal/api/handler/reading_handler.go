package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/EnesCagri/kaankutuphane/internal/dto"
	"github.com/EnesCagri/kaankutuphane/internal/service"
	"github.com/EnesCagri/kaankutuphane/pkg/metrics"
	"github.com/EnesCagri/kaankutuphane/pkg/response"
)

// ReadingHandler handles the reading activity and leaderboard endpoints.
type ReadingHandler struct {
	readingSvc     service.ReadingService
	leaderboardSvc service.LeaderboardService
	metrics        *metrics.Metrics
}

// NewReadingHandler builds the ReadingHandler.
func NewReadingHandler(readingSvc service.ReadingService, leaderboardSvc service.LeaderboardService, m *metrics.Metrics) *ReadingHandler {
	return &ReadingHandler{readingSvc: readingSvc, leaderboardSvc: leaderboardSvc, metrics: m}
}

// MarkAsRead records that the caller finished the book.
// POST /api/v1/books/:id/read
func (h *ReadingHandler) MarkAsRead(c *gin.Context) {
	bookID := c.Param("id")
	if bookID == "" {
		response.BadRequest(c, 10001, "book id is required")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.readingSvc.MarkAsRead(c.Request.Context(), callerID, bookID)
	if err != nil {
		h.handleReadingError(c, err)
		return
	}

	if h.metrics != nil && !result.AlreadyMarked {
		h.metrics.ReadsMarked.Inc()
	}
	response.OK(c, result)
}

// ListMyReads lists the caller's reading history.
// GET /api/v1/reading/me
func (h *ReadingHandler) ListMyReads(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	statuses, err := h.readingSvc.ListByUser(c.Request.Context(), callerID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": statuses})
}

// ListBookReaders lists who has read a book.
// GET /api/v1/books/:id/readers
func (h *ReadingHandler) ListBookReaders(c *gin.Context) {
	bookID := c.Param("id")
	if bookID == "" {
		response.BadRequest(c, 10001, "book id is required")
		return
	}

	statuses, err := h.readingSvc.ListByBook(c.Request.Context(), bookID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": statuses})
}

// Leaderboard ranks readers by books finished, optionally per classroom.
// GET /api/v1/leaderboard
func (h *ReadingHandler) Leaderboard(c *gin.Context) {
	var req dto.LeaderboardRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "request validation failed")
		return
	}

	entries, err := h.leaderboardSvc.Ranking(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": entries})
}

func (h *ReadingHandler) handleReadingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrBookNotFound):
		response.NotFound(c, 14001, "book not found")
	case errors.Is(err, service.ErrDailyLimitReached):
		response.TooManyRequests(c, 17001, "daily reading limit reached, try again tomorrow")
	default:
		response.InternalError(c)
	}
}
