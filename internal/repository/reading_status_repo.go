package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/EnesCagri/kaankutuphane/internal/model"
)

// ReadingStatusRepository is the reading_statuses data-access interface.
type ReadingStatusRepository interface {
	Create(ctx context.Context, status *model.ReadingStatus) error
	// GetByUserAndBook returns the status for the natural key, or
	// gorm.ErrRecordNotFound.
	GetByUserAndBook(ctx context.Context, userID, bookID string) (*model.ReadingStatus, error)
	ListByUser(ctx context.Context, userID string) ([]model.ReadingStatus, error)
	ListByBook(ctx context.Context, bookID string) ([]model.ReadingStatus, error)
	ListAll(ctx context.Context) ([]model.ReadingStatus, error)
}

type readingStatusRepo struct {
	db *gorm.DB
}

// NewReadingStatusRepo builds the GORM-backed ReadingStatusRepository.
func NewReadingStatusRepo(db *gorm.DB) ReadingStatusRepository {
	return &readingStatusRepo{db: db}
}

func (r *readingStatusRepo) Create(ctx context.Context, status *model.ReadingStatus) error {
	return r.db.WithContext(ctx).Create(status).Error
}

func (r *readingStatusRepo) GetByUserAndBook(ctx context.Context, userID, bookID string) (*model.ReadingStatus, error) {
	var status model.ReadingStatus
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		First(&status).Error
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func (r *readingStatusRepo) ListByUser(ctx context.Context, userID string) ([]model.ReadingStatus, error) {
	var statuses []model.ReadingStatus
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("read_at DESC").
		Find(&statuses).Error
	return statuses, err
}

func (r *readingStatusRepo) ListByBook(ctx context.Context, bookID string) ([]model.ReadingStatus, error) {
	var statuses []model.ReadingStatus
	err := r.db.WithContext(ctx).
		Where("book_id = ?", bookID).
		Order("read_at DESC").
		Find(&statuses).Error
	return statuses, err
}

func (r *readingStatusRepo) ListAll(ctx context.Context) ([]model.ReadingStatus, error) {
	var statuses []model.ReadingStatus
	err := r.db.WithContext(ctx).Find(&statuses).Error
	return statuses, err
}
