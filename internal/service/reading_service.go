package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/EnesCagri/kaankutuphane/config"
	"github.com/EnesCagri/kaankutuphane/internal/dto"
	"github.com/EnesCagri/kaankutuphane/internal/model"
	"github.com/EnesCagri/kaankutuphane/internal/repository"
)

// ── reading activity errors ──

var ErrDailyLimitReached = errors.New("daily reading limit reached, try again tomorrow")

// ReadingService is the reading activity interface.
type ReadingService interface {
	MarkAsRead(ctx context.Context, userID, bookID string) (*dto.MarkAsReadResponse, error)
	ListByUser(ctx context.Context, userID string) ([]dto.ReadingStatusResponse, error)
	ListByBook(ctx context.Context, bookID string) ([]dto.ReadingStatusResponse, error)
}

type readingService struct {
	repo     *repository.Repository
	location *time.Location
	logger   *zap.Logger
}

// NewReadingService builds the ReadingService. The configured timezone
// decides where the daily boundary falls; config validation guarantees it
// loads.
func NewReadingService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) ReadingService {
	loc, err := time.LoadLocation(cfg.Library.Timezone)
	if err != nil {
		loc = time.UTC
	}
	return &readingService{repo: repo, location: loc, logger: logger}
}

// ────────────────────── MarkAsRead ──────────────────────

// MarkAsRead records that the user finished the book. Re-marking a book the
// user already logged is a no-op that returns the existing record. It never
// counts against the allowance, so the idempotency check runs before the
// daily limit: at most one new book per calendar day.
func (s *readingService) MarkAsRead(ctx context.Context, userID, bookID string) (*dto.MarkAsReadResponse, error) {
	if _, err := s.repo.Book.GetByID(ctx, bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		s.logger.Error("querying book failed", zap.Error(err))
		return nil, err
	}

	existing, err := s.repo.ReadingStatus.GetByUserAndBook(ctx, userID, bookID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("querying reading status failed", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		return &dto.MarkAsReadResponse{
			Status:        *toReadingStatusResponse(existing),
			AlreadyMarked: true,
		}, nil
	}

	statuses, err := s.repo.ReadingStatus.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("listing reading statuses failed", zap.Error(err))
		return nil, err
	}
	now := time.Now().In(s.location)
	for i := range statuses {
		if sameDay(statuses[i].ReadAt.In(s.location), now) {
			return nil, ErrDailyLimitReached
		}
	}

	status := &model.ReadingStatus{
		UserID: userID,
		BookID: bookID,
		ReadAt: now,
	}
	if err := s.repo.ReadingStatus.Create(ctx, status); err != nil {
		s.logger.Error("creating reading status failed", zap.Error(err))
		return nil, err
	}
	return &dto.MarkAsReadResponse{Status: *toReadingStatusResponse(status)}, nil
}

// ────────────────────── ListByUser / ListByBook ──────────────────────

// ListByUser returns the user's reading history with book titles resolved
// in one batch, so the client does not have to join against the catalog.
func (s *readingService) ListByUser(ctx context.Context, userID string) ([]dto.ReadingStatusResponse, error) {
	statuses, err := s.repo.ReadingStatus.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("listing reading statuses failed", zap.Error(err))
		return nil, err
	}

	bookIDs := make([]string, 0, len(statuses))
	for i := range statuses {
		bookIDs = append(bookIDs, statuses[i].BookID)
	}
	books, err := s.repo.Book.ListByIDs(ctx, bookIDs)
	if err != nil {
		s.logger.Error("resolving book titles failed", zap.Error(err))
		return nil, err
	}
	titles := make(map[string]string, len(books))
	for i := range books {
		titles[books[i].BookID] = books[i].Title
	}

	result := toReadingStatusResponses(statuses)
	for i := range result {
		result[i].BookTitle = titles[result[i].BookID]
	}
	return result, nil
}

func (s *readingService) ListByBook(ctx context.Context, bookID string) ([]dto.ReadingStatusResponse, error) {
	statuses, err := s.repo.ReadingStatus.ListByBook(ctx, bookID)
	if err != nil {
		s.logger.Error("listing reading statuses failed", zap.Error(err))
		return nil, err
	}
	return toReadingStatusResponses(statuses), nil
}

// ── helpers ──

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func toReadingStatusResponse(rs *model.ReadingStatus) *dto.ReadingStatusResponse {
	return &dto.ReadingStatusResponse{
		UserID: rs.UserID,
		BookID: rs.BookID,
		ReadAt: rs.ReadAt.Format(time.RFC3339),
	}
}

func toReadingStatusResponses(statuses []model.ReadingStatus) []dto.ReadingStatusResponse {
	result := make([]dto.ReadingStatusResponse, 0, len(statuses))
	for i := range statuses {
		result = append(result, *toReadingStatusResponse(&statuses[i]))
	}
	return result
}
