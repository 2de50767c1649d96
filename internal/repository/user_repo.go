package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/EnesCagri/kaankutuphane/internal/model"
)

// UserRepository is the users data-access interface.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByIDs(ctx context.Context, ids []string) ([]model.User, error)
	Update(ctx context.Context, user *model.User) error
	List(ctx context.Context, classroomID, role string) ([]model.User, error)
	// DeleteCascade removes the user together with their reading statuses,
	// comments, trade requests they are a party to, and every book they own
	// (with each book's own dependents), in one transaction.
	DeleteCascade(ctx context.Context, id string) error
}

type userRepo struct {
	db *gorm.DB
}

// NewUserRepo builds the GORM-backed UserRepository.
func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Preload("Classroom").
		Where("user_id = ?", id).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByIDs(ctx context.Context, ids []string) ([]model.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var users []model.User
	err := r.db.WithContext(ctx).
		Where("user_id IN ?", ids).
		Find(&users).Error
	return users, err
}

func (r *userRepo) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepo) List(ctx context.Context, classroomID, role string) ([]model.User, error) {
	db := r.db.WithContext(ctx).Model(&model.User{})
	if classroomID != "" {
		db = db.Where("classroom_id = ?", classroomID)
	}
	if role != "" {
		db = db.Where("role = ?", role)
	}

	var users []model.User
	err := db.Order("created_at ASC").Find(&users).Error
	return users, err
}

func (r *userRepo) DeleteCascade(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user model.User
		if err := tx.Where("user_id = ?", id).First(&user).Error; err != nil {
			return err
		}

		// Books owned by the user, with their dependents.
		var ownedBookIDs []string
		if err := tx.Model(&model.Book{}).
			Where("owner_id = ?", id).
			Pluck("book_id", &ownedBookIDs).Error; err != nil {
			return err
		}
		if len(ownedBookIDs) > 0 {
			if err := tx.Where("book_id IN ?", ownedBookIDs).
				Delete(&model.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("book_id IN ? OR offered_book_id IN ?", ownedBookIDs, ownedBookIDs).
				Delete(&model.TradeRequest{}).Error; err != nil {
				return err
			}
			if err := tx.Where("book_id IN ?", ownedBookIDs).
				Delete(&model.ReadingStatus{}).Error; err != nil {
				return err
			}
			if err := tx.Where("book_id IN ?", ownedBookIDs).
				Delete(&model.Book{}).Error; err != nil {
				return err
			}
		}

		// Rows written by the user against other people's books.
		if err := tx.Where("user_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("from_user_id = ? OR to_user_id = ?", id, id).
			Delete(&model.TradeRequest{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.ReadingStatus{}).Error; err != nil {
			return err
		}

		return tx.Where("user_id = ?", id).Delete(&model.User{}).Error
	})
}
