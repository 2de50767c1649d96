package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/EnesCagri/kaankutuphane/internal/model"
)

// CommentRepository is the comments data-access interface.
type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	GetByID(ctx context.Context, id string) (*model.Comment, error)
	ListByBook(ctx context.Context, bookID string) ([]model.Comment, error)
	Delete(ctx context.Context, id string) error
}

type commentRepo struct {
	db *gorm.DB
}

// NewCommentRepo builds the GORM-backed CommentRepository.
func NewCommentRepo(db *gorm.DB) CommentRepository {
	return &commentRepo{db: db}
}

func (r *commentRepo) Create(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepo) GetByID(ctx context.Context, id string) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.WithContext(ctx).
		Where("comment_id = ?", id).
		First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepo) ListByBook(ctx context.Context, bookID string) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.db.WithContext(ctx).
		Where("book_id = ?", bookID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

func (r *commentRepo) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Where("comment_id = ?", id).
		Delete(&model.Comment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
