package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/EnesCagri/kaankutuphane/config"
	"github.com/EnesCagri/kaankutuphane/internal/dto"
	"github.com/EnesCagri/kaankutuphane/internal/model"
	"github.com/EnesCagri/kaankutuphane/internal/repository"
)

// ── catalog module errors ──

var (
	ErrBookNotFound  = errors.New("book not found")
	ErrNoClassroom   = errors.New("you have no classroom assignment, please sign in again")
	ErrDuplicateBook = errors.New("this book already exists in your classroom")
)

// BookService is the catalog and ownership interface.
type BookService interface {
	Create(ctx context.Context, req *dto.CreateBookRequest, creatorID string) (*dto.BookResponse, error)
	GetByID(ctx context.Context, id string) (*dto.BookResponse, error)
	List(ctx context.Context, req *dto.BookListRequest) ([]dto.BookResponse, error)
	// Delete cascades to the book's comments, trade requests on either side,
	// and reading statuses. Teacher moderation action.
	Delete(ctx context.Context, id, callerID string) error
}

type bookService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewBookService builds the BookService.
func NewBookService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) BookService {
	return &bookService{cfg: cfg, repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

// Create adds a book owned by the creating student. The duplicate guard is
// classroom-scoped and keyed off *current* ownership: a (title, author) pair
// is rejected when any book carrying it is currently owned by a member of
// the creator's classroom. After a trade, the slot follows the book's new
// owner.
func (s *bookService) Create(ctx context.Context, req *dto.CreateBookRequest, creatorID string) (*dto.BookResponse, error) {
	// 1. Creator must be a student with a classroom.
	creator, err := s.repo.User.GetByID(ctx, creatorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("querying creator failed", zap.Error(err))
		return nil, err
	}
	if !creator.IsStudent() {
		return nil, ErrStudentOnly
	}
	if creator.ClassroomID == nil {
		return nil, ErrNoClassroom
	}

	// 2. Duplicate guard.
	title := strings.TrimSpace(req.Title)
	author := strings.TrimSpace(req.Author)

	matches, err := s.repo.Book.ListByTitleAuthor(ctx, title, author)
	if err != nil {
		s.logger.Error("querying matching books failed", zap.Error(err))
		return nil, err
	}
	if len(matches) > 0 {
		ownerIDs := make([]string, 0, len(matches))
		seen := make(map[string]bool, len(matches))
		for _, b := range matches {
			if !seen[b.OwnerID] {
				seen[b.OwnerID] = true
				ownerIDs = append(ownerIDs, b.OwnerID)
			}
		}

		owners, err := s.repo.User.GetByIDs(ctx, ownerIDs)
		if err != nil {
			s.logger.Error("querying book owners failed", zap.Error(err))
			return nil, err
		}
		for i := range owners {
			if owners[i].ClassroomID != nil && *owners[i].ClassroomID == *creator.ClassroomID {
				return nil, ErrDuplicateBook
			}
		}
	}

	// 3. Persist.
	imageURL := strings.TrimSpace(req.ImageURL)
	if imageURL == "" {
		imageURL = s.cfg.Library.PlaceholderImageURL
	}

	book := &model.Book{
		Title:       title,
		Author:      author,
		Description: req.Description,
		ImageURL:    imageURL,
		Genre:       req.Genre,
		OwnerID:     creatorID,
	}
	if err := s.repo.Book.Create(ctx, book); err != nil {
		s.logger.Error("creating book failed", zap.Error(err))
		return nil, err
	}

	book.Owner = creator
	return toBookResponse(book), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *bookService) GetByID(ctx context.Context, id string) (*dto.BookResponse, error) {
	book, err := s.repo.Book.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		s.logger.Error("querying book failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toBookResponse(book), nil
}

// ────────────────────── List ──────────────────────

func (s *bookService) List(ctx context.Context, req *dto.BookListRequest) ([]dto.BookResponse, error) {
	books, err := s.repo.Book.List(ctx, req.OwnerID, req.Genre)
	if err != nil {
		s.logger.Error("listing books failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.BookResponse, 0, len(books))
	for i := range books {
		result = append(result, *toBookResponse(&books[i]))
	}
	return result, nil
}

// ────────────────────── Delete ──────────────────────

func (s *bookService) Delete(ctx context.Context, id, callerID string) error {
	caller, err := s.repo.User.GetByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if !caller.IsTeacher() {
		return ErrTeacherOnly
	}

	if err := s.repo.Book.DeleteCascade(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookNotFound
		}
		s.logger.Error("deleting book failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── helpers ──

func toBookResponse(b *model.Book) *dto.BookResponse {
	resp := &dto.BookResponse{
		ID:          b.BookID,
		Title:       b.Title,
		Author:      b.Author,
		Description: b.Description,
		ImageURL:    b.ImageURL,
		Genre:       b.Genre,
		OwnerID:     b.OwnerID,
		CreatedAt:   b.CreatedAt.Format(time.RFC3339),
	}
	if b.Owner != nil {
		resp.OwnerName = b.Owner.Name
	}
	return resp
}
