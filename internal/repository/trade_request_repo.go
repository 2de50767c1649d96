package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/EnesCagri/kaankutuphane/internal/model"
	apperrors "github.com/EnesCagri/kaankutuphane/pkg/errors"
)

// TradeRequestRepository is the trade_requests data-access interface.
type TradeRequestRepository interface {
	Create(ctx context.Context, request *model.TradeRequest) error
	GetByID(ctx context.Context, id string) (*model.TradeRequest, error)
	ListByToUser(ctx context.Context, toUserID, status string) ([]model.TradeRequest, error)
	ListByFromUser(ctx context.Context, fromUserID, status string) ([]model.TradeRequest, error)
	// HasPending reports whether the requester already has a pending request
	// for the wanted book.
	HasPending(ctx context.Context, fromUserID, bookID string) (bool, error)
	UpdateStatus(ctx context.Context, id, status string) error
	// AcceptAndSwap marks the request accepted with its final offered book
	// and exchanges the two books' owners, all in one transaction. Returns
	// pkg/errors.ErrSwapConflict when either book is gone or no longer owned
	// by its party; the status update rolls back with the swap.
	AcceptAndSwap(ctx context.Context, request *model.TradeRequest) error
}

type tradeRequestRepo struct {
	db *gorm.DB
}

// NewTradeRequestRepo builds the GORM-backed TradeRequestRepository.
func NewTradeRequestRepo(db *gorm.DB) TradeRequestRepository {
	return &tradeRequestRepo{db: db}
}

func (r *tradeRequestRepo) Create(ctx context.Context, request *model.TradeRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *tradeRequestRepo) GetByID(ctx context.Context, id string) (*model.TradeRequest, error) {
	var request model.TradeRequest
	err := r.db.WithContext(ctx).
		Preload("Book").
		Preload("OfferedBook").
		Preload("FromUser").
		Where("trade_request_id = ?", id).
		First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *tradeRequestRepo) ListByToUser(ctx context.Context, toUserID, status string) ([]model.TradeRequest, error) {
	db := r.db.WithContext(ctx).
		Preload("Book").
		Preload("OfferedBook").
		Preload("FromUser").
		Where("to_user_id = ?", toUserID)
	if status != "" {
		db = db.Where("status = ?", status)
	}

	var requests []model.TradeRequest
	err := db.Order("created_at DESC").Find(&requests).Error
	return requests, err
}

func (r *tradeRequestRepo) ListByFromUser(ctx context.Context, fromUserID, status string) ([]model.TradeRequest, error) {
	db := r.db.WithContext(ctx).
		Preload("Book").
		Preload("OfferedBook").
		Where("from_user_id = ?", fromUserID)
	if status != "" {
		db = db.Where("status = ?", status)
	}

	var requests []model.TradeRequest
	err := db.Order("created_at DESC").Find(&requests).Error
	return requests, err
}

func (r *tradeRequestRepo) HasPending(ctx context.Context, fromUserID, bookID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.TradeRequest{}).
		Where("from_user_id = ? AND book_id = ? AND status = ?",
			fromUserID, bookID, model.TradeStatusPending).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *tradeRequestRepo) UpdateStatus(ctx context.Context, id, status string) error {
	return r.db.WithContext(ctx).Model(&model.TradeRequest{}).
		Where("trade_request_id = ?", id).
		Update("status", status).Error
}

func (r *tradeRequestRepo) AcceptAndSwap(ctx context.Context, request *model.TradeRequest) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var wanted, offered model.Book
		if err := tx.Where("book_id = ?", request.BookID).First(&wanted).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrSwapConflict
			}
			return err
		}
		if err := tx.Where("book_id = ?", request.OfferedBookID).First(&offered).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrSwapConflict
			}
			return err
		}

		// Ownership may have moved since the service-level checks; a stale
		// swap must not commit.
		if wanted.OwnerID != request.ToUserID || offered.OwnerID != request.FromUserID {
			return apperrors.ErrSwapConflict
		}

		request.Status = model.TradeStatusAccepted
		if err := tx.Model(&model.TradeRequest{}).
			Where("trade_request_id = ?", request.TradeRequestID).
			Updates(map[string]interface{}{
				"status":          request.Status,
				"offered_book_id": request.OfferedBookID,
			}).Error; err != nil {
			return err
		}

		if err := tx.Model(&model.Book{}).
			Where("book_id = ?", wanted.BookID).
			Update("owner_id", offered.OwnerID).Error; err != nil {
			return err
		}
		return tx.Model(&model.Book{}).
			Where("book_id = ?", offered.BookID).
			Update("owner_id", wanted.OwnerID).Error
	})
}
