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

// ── comment module errors ──

var ErrCommentNotFound = errors.New("comment not found")

// CommentService is the book comment interface.
type CommentService interface {
	Create(ctx context.Context, bookID string, req *dto.CreateCommentRequest, userID string) (*dto.CommentResponse, error)
	ListByBook(ctx context.Context, bookID string) ([]dto.CommentResponse, error)
	Delete(ctx context.Context, id, callerID string) error
}

type commentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCommentService builds the CommentService.
func NewCommentService(repo *repository.Repository, logger *zap.Logger) CommentService {
	return &commentService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *commentService) Create(ctx context.Context, bookID string, req *dto.CreateCommentRequest, userID string) (*dto.CommentResponse, error) {
	if _, err := s.repo.Book.GetByID(ctx, bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		s.logger.Error("querying book failed", zap.Error(err))
		return nil, err
	}

	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("querying user failed", zap.Error(err))
		return nil, err
	}
	if !user.IsStudent() {
		return nil, ErrStudentOnly
	}

	// The author's name is frozen into the row so the comment keeps
	// reading correctly even if the account is later renamed or removed.
	comment := &model.Comment{
		BookID:   bookID,
		UserID:   userID,
		UserName: user.Name,
		Text:     req.Text,
	}
	if err := s.repo.Comment.Create(ctx, comment); err != nil {
		s.logger.Error("creating comment failed", zap.Error(err))
		return nil, err
	}
	return toCommentResponse(comment), nil
}

// ────────────────────── ListByBook ──────────────────────

func (s *commentService) ListByBook(ctx context.Context, bookID string) ([]dto.CommentResponse, error) {
	comments, err := s.repo.Comment.ListByBook(ctx, bookID)
	if err != nil {
		s.logger.Error("listing comments failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		result = append(result, *toCommentResponse(&comments[i]))
	}
	return result, nil
}

// ────────────────────── Delete ──────────────────────

// Delete removes a comment. Teacher moderation action; authors cannot
// retract their own comments.
func (s *commentService) Delete(ctx context.Context, id, callerID string) error {
	if _, err := s.repo.Comment.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		s.logger.Error("querying comment failed", zap.Error(err))
		return err
	}

	caller, err := s.repo.User.GetByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error("querying caller failed", zap.Error(err))
		return err
	}
	if !caller.IsTeacher() {
		return ErrTeacherOnly
	}

	if err := s.repo.Comment.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		s.logger.Error("deleting comment failed", zap.Error(err))
		return err
	}
	return nil
}

// ── helpers ──

func toCommentResponse(c *model.Comment) *dto.CommentResponse {
	return &dto.CommentResponse{
		ID:        c.CommentID,
		BookID:    c.BookID,
		UserID:    c.UserID,
		UserName:  c.UserName,
		Text:      c.Text,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}
