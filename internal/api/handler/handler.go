package handler

import (
	"github.com/EnesCagri/kaankutuphane/internal/service"
	"github.com/EnesCagri/kaankutuphane/pkg/metrics"
)

// Handler aggregates all HTTP handlers.
type Handler struct {
	Auth      *AuthHandler
	User      *UserHandler
	Classroom *ClassroomHandler
	Book      *BookHandler
	Comment   *CommentHandler
	Trade     *TradeHandler
	Reading   *ReadingHandler
	Export    *ExportHandler
}

// NewHandler wires Service → Handler. Metrics may be nil in tests.
func NewHandler(svc *service.Service, m *metrics.Metrics) *Handler {
	return &Handler{
		Auth:      NewAuthHandler(svc.Auth),
		User:      NewUserHandler(svc.User),
		Classroom: NewClassroomHandler(svc.Classroom),
		Book:      NewBookHandler(svc.Book, m),
		Comment:   NewCommentHandler(svc.Comment),
		Trade:     NewTradeHandler(svc.Trade, m),
		Reading:   NewReadingHandler(svc.Reading, svc.Leaderboard, m),
		Export:    NewExportHandler(svc.Export),
	}
}
