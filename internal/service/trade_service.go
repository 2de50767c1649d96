package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/EnesCagri/kaankutuphane/internal/dto"
	"github.com/EnesCagri/kaankutuphane/internal/model"
	"github.com/EnesCagri/kaankutuphane/internal/repository"
)

// ── trade module errors ──

var (
	ErrTradeNotFound        = errors.New("trade request not found")
	ErrTradeOwnBook         = errors.New("you already own this book")
	ErrTradeOfferedNotOwned = errors.New("the offered book is not on the requester's shelf")
	ErrTradePendingExists   = errors.New("you already have a pending request for this book")
	ErrTradeNotRecipient    = errors.New("only the recipient may resolve this request")
	ErrTradeNotPending      = errors.New("this request has already been resolved")
)

// TradeService is the trade workflow interface.
//
// A request moves pending → accepted | rejected, and nowhere else. Accepting
// swaps the two books' owners atomically with the status change.
type TradeService interface {
	Propose(ctx context.Context, req *dto.ProposeTradeRequest, fromUserID string) (*dto.TradeRequestResponse, error)
	Resolve(ctx context.Context, id string, req *dto.ResolveTradeRequest, callerID string) (*dto.TradeRequestResponse, error)
	ListIncoming(ctx context.Context, userID, status string) ([]dto.TradeRequestResponse, error)
	ListOutgoing(ctx context.Context, userID, status string) ([]dto.TradeRequestResponse, error)
}

type tradeService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTradeService builds the TradeService.
func NewTradeService(repo *repository.Repository, logger *zap.Logger) TradeService {
	return &tradeService{repo: repo, logger: logger}
}

// ────────────────────── Propose ──────────────────────

func (s *tradeService) Propose(ctx context.Context, req *dto.ProposeTradeRequest, fromUserID string) (*dto.TradeRequestResponse, error) {
	// 1. Requester must be a student.
	from, err := s.repo.User.GetByID(ctx, fromUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("querying requester failed", zap.Error(err))
		return nil, err
	}
	if !from.IsStudent() {
		return nil, ErrStudentOnly
	}

	// 2. Wanted book must exist and belong to someone else. The recipient is
	// derived from current ownership at proposal time.
	wanted, err := s.repo.Book.GetByID(ctx, req.BookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		s.logger.Error("querying wanted book failed", zap.Error(err))
		return nil, err
	}
	if wanted.OwnerID == fromUserID {
		return nil, ErrTradeOwnBook
	}

	// 3. Offered book must be on the requester's own shelf.
	offered, err := s.repo.Book.GetByID(ctx, req.OfferedBookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		s.logger.Error("querying offered book failed", zap.Error(err))
		return nil, err
	}
	if offered.OwnerID != fromUserID {
		return nil, ErrTradeOfferedNotOwned
	}

	// 4. One pending request per (requester, wanted book).
	exists, err := s.repo.TradeRequest.HasPending(ctx, fromUserID, req.BookID)
	if err != nil {
		s.logger.Error("checking pending requests failed", zap.Error(err))
		return nil, err
	}
	if exists {
		return nil, ErrTradePendingExists
	}

	// 5. Persist as pending.
	request := &model.TradeRequest{
		BookID:        req.BookID,
		OfferedBookID: req.OfferedBookID,
		FromUserID:    fromUserID,
		ToUserID:      wanted.OwnerID,
		Status:        model.TradeStatusPending,
	}
	if err := s.repo.TradeRequest.Create(ctx, request); err != nil {
		s.logger.Error("creating trade request failed", zap.Error(err))
		return nil, err
	}

	request.Book = wanted
	request.OfferedBook = offered
	request.FromUser = from
	return toTradeRequestResponse(request), nil
}

// ────────────────────── Resolve ──────────────────────

func (s *tradeService) Resolve(ctx context.Context, id string, req *dto.ResolveTradeRequest, callerID string) (*dto.TradeRequestResponse, error) {
	// 1. Load and gate.
	request, err := s.repo.TradeRequest.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTradeNotFound
		}
		s.logger.Error("querying trade request failed", zap.Error(err))
		return nil, err
	}
	if request.ToUserID != callerID {
		return nil, ErrTradeNotRecipient
	}
	if !request.IsPending() {
		return nil, ErrTradeNotPending
	}

	// 2. Reject: status only, no ownership change.
	if req.Decision == model.TradeStatusRejected {
		if err := s.repo.TradeRequest.UpdateStatus(ctx, id, model.TradeStatusRejected); err != nil {
			s.logger.Error("rejecting trade request failed", zap.Error(err))
			return nil, err
		}
		request.Status = model.TradeStatusRejected
		return toTradeRequestResponse(request), nil
	}

	// 3. Counter-offer: the recipient may exchange for any book the
	// requester currently owns, not just the one originally proposed.
	if req.CounterBookID != "" && req.CounterBookID != request.OfferedBookID {
		counter, err := s.repo.Book.GetByID(ctx, req.CounterBookID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrBookNotFound
			}
			s.logger.Error("querying counter book failed", zap.Error(err))
			return nil, err
		}
		if counter.OwnerID != request.FromUserID {
			return nil, ErrTradeOfferedNotOwned
		}
		request.OfferedBookID = req.CounterBookID
		request.OfferedBook = counter
	}

	// 4. Accept: status change and owner pair-swap commit together.
	if err := s.repo.TradeRequest.AcceptAndSwap(ctx, request); err != nil {
		s.logger.Error("accepting trade request failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toTradeRequestResponse(request), nil
}

// ────────────────────── ListIncoming / ListOutgoing ──────────────────────

func (s *tradeService) ListIncoming(ctx context.Context, userID, status string) ([]dto.TradeRequestResponse, error) {
	requests, err := s.repo.TradeRequest.ListByToUser(ctx, userID, status)
	if err != nil {
		s.logger.Error("listing incoming trade requests failed", zap.Error(err))
		return nil, err
	}
	return toTradeRequestResponses(requests), nil
}

func (s *tradeService) ListOutgoing(ctx context.Context, userID, status string) ([]dto.TradeRequestResponse, error) {
	requests, err := s.repo.TradeRequest.ListByFromUser(ctx, userID, status)
	if err != nil {
		s.logger.Error("listing outgoing trade requests failed", zap.Error(err))
		return nil, err
	}
	return toTradeRequestResponses(requests), nil
}

// ── helpers ──

func toTradeRequestResponse(r *model.TradeRequest) *dto.TradeRequestResponse {
	resp := &dto.TradeRequestResponse{
		ID:            r.TradeRequestID,
		BookID:        r.BookID,
		OfferedBookID: r.OfferedBookID,
		FromUserID:    r.FromUserID,
		ToUserID:      r.ToUserID,
		Status:        r.Status,
		CreatedAt:     r.CreatedAt.Format(time.RFC3339),
	}
	if r.Book != nil {
		resp.BookTitle = r.Book.Title
	}
	if r.OfferedBook != nil {
		resp.OfferedBookTitle = r.OfferedBook.Title
	}
	if r.FromUser != nil {
		resp.FromUserName = r.FromUser.Name
	}
	return resp
}

func toTradeRequestResponses(requests []model.TradeRequest) []dto.TradeRequestResponse {
	result := make([]dto.TradeRequestResponse, 0, len(requests))
	for i := range requests {
		result = append(result, *toTradeRequestResponse(&requests[i]))
	}
	return result
}
