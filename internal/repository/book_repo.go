package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/EnesCagri/kaankutuphane/internal/model"
)

// BookRepository is the books data-access interface.
type BookRepository interface {
	Create(ctx context.Context, book *model.Book) error
	GetByID(ctx context.Context, id string) (*model.Book, error)
	List(ctx context.Context, ownerID, genre string) ([]model.Book, error)
	ListByIDs(ctx context.Context, ids []string) ([]model.Book, error)
	// ListByTitleAuthor returns books whose trimmed (title, author) pair
	// matches exactly. Feeds the classroom-scoped duplicate guard.
	ListByTitleAuthor(ctx context.Context, title, author string) ([]model.Book, error)
	// DeleteCascade removes the book together with its comments, trade
	// requests on either side, and reading statuses, in one transaction.
	DeleteCascade(ctx context.Context, id string) error
}

type bookRepo struct {
	db *gorm.DB
}

// NewBookRepo builds the GORM-backed BookRepository.
func NewBookRepo(db *gorm.DB) BookRepository {
	return &bookRepo{db: db}
}

func (r *bookRepo) Create(ctx context.Context, book *model.Book) error {
	return r.db.WithContext(ctx).Create(book).Error
}

func (r *bookRepo) GetByID(ctx context.Context, id string) (*model.Book, error) {
	var book model.Book
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Where("book_id = ?", id).
		First(&book).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *bookRepo) List(ctx context.Context, ownerID, genre string) ([]model.Book, error) {
	db := r.db.WithContext(ctx).Model(&model.Book{}).Preload("Owner")
	if ownerID != "" {
		db = db.Where("owner_id = ?", ownerID)
	}
	if genre != "" {
		db = db.Where("genre = ?", genre)
	}

	var books []model.Book
	err := db.Order("created_at DESC").Find(&books).Error
	return books, err
}

func (r *bookRepo) ListByIDs(ctx context.Context, ids []string) ([]model.Book, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var books []model.Book
	err := r.db.WithContext(ctx).
		Where("book_id IN ?", ids).
		Find(&books).Error
	return books, err
}

func (r *bookRepo) ListByTitleAuthor(ctx context.Context, title, author string) ([]model.Book, error) {
	var books []model.Book
	err := r.db.WithContext(ctx).
		Where("title = ? AND author = ?", title, author).
		Find(&books).Error
	return books, err
}

func (r *bookRepo) DeleteCascade(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var book model.Book
		if err := tx.Where("book_id = ?", id).First(&book).Error; err != nil {
			return err
		}

		if err := tx.Where("book_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("book_id = ? OR offered_book_id = ?", id, id).
			Delete(&model.TradeRequest{}).Error; err != nil {
			return err
		}
		if err := tx.Where("book_id = ?", id).Delete(&model.ReadingStatus{}).Error; err != nil {
			return err
		}

		return tx.Where("book_id = ?", id).Delete(&model.Book{}).Error
	})
}
