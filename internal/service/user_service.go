package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/EnesCagri/kaankutuphane/internal/dto"
	"github.com/EnesCagri/kaankutuphane/internal/repository"
)

// UserService is the user directory interface.
type UserService interface {
	List(ctx context.Context, req *dto.UserListRequest) ([]dto.UserResponse, error)
	GetByID(ctx context.Context, id string) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	Delete(ctx context.Context, id, callerID string) error
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService builds the UserService.
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *userService) List(ctx context.Context, req *dto.UserListRequest) ([]dto.UserResponse, error) {
	users, err := s.repo.User.List(ctx, req.ClassroomID, req.Role)
	if err != nil {
		s.logger.Error("listing users failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, *toUserResponse(&users[i]))
	}
	return result, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *userService) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("querying user failed", zap.Error(err))
		return nil, err
	}
	return toUserResponse(user), nil
}

// ────────────────────── UpdateProfile ──────────────────────

// UpdateProfile changes the caller's own profile. Only the avatar is
// mutable; name, username, role and classroom stay as registered.
func (s *userService) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("querying user failed", zap.Error(err))
		return nil, err
	}

	if req.AvatarURL != nil {
		user.AvatarURL = *req.AvatarURL
	}
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("updating user failed", zap.Error(err))
		return nil, err
	}
	return toUserResponse(user), nil
}

// ────────────────────── Delete ──────────────────────

// Delete removes a user account and everything hanging off it. Teacher
// only; the repository cascade takes the user's comments, trade requests,
// reading statuses and owned books (with each book's own dependents) in
// one transaction.
func (s *userService) Delete(ctx context.Context, id, callerID string) error {
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

	if _, err := s.repo.User.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error("querying user failed", zap.Error(err))
		return err
	}

	if err := s.repo.User.DeleteCascade(ctx, id); err != nil {
		s.logger.Error("deleting user failed", zap.String("user_id", id), zap.Error(err))
		return err
	}
	s.logger.Info("user deleted", zap.String("user_id", id), zap.String("by", callerID))
	return nil
}
