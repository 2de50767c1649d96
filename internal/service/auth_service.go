package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/EnesCagri/kaankutuphane/config"
	"github.com/EnesCagri/kaankutuphane/internal/dto"
	"github.com/EnesCagri/kaankutuphane/internal/model"
	"github.com/EnesCagri/kaankutuphane/internal/repository"
	"github.com/EnesCagri/kaankutuphane/pkg/jwt"
	"github.com/EnesCagri/kaankutuphane/pkg/redis"
)

// ── auth module errors ──

var (
	ErrInvalidCredentials = errors.New("wrong username or password")
	ErrUsernameTaken      = errors.New("username is already in use")
	ErrInvalidTeacherCode = errors.New("invalid teacher code")
	ErrUserNotFound       = errors.New("user not found")
	ErrWrongPassword      = errors.New("current password is wrong")
)

// AuthService is the identity and credentials interface.
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	RegisterStudent(ctx context.Context, req *dto.RegisterStudentRequest) (*dto.TokenResponse, error)
	RegisterTeacher(ctx context.Context, req *dto.RegisterTeacherRequest) (*dto.TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	// Logout blacklists the access token until its natural expiry. A nil
	// redis client turns this into a no-op.
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
	GetCurrentUser(ctx context.Context, userID string) (*dto.UserDetailResponse, error)
	ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error
}

type authService struct {
	cfg    *config.Config
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	rdb    *redis.Client
	logger *zap.Logger
}

// NewAuthService builds the AuthService.
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:    cfg,
		repo:   repo,
		jwtMgr: jwtMgr,
		rdb:    rdb,
		logger: logger,
	}
}

// ────────────────────── Login ──────────────────────

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.repo.User.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("querying user failed", zap.Error(err))
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.buildTokenResponse(user, req.RememberMe)
}

// ────────────────────── RegisterStudent ──────────────────────

func (s *authService) RegisterStudent(ctx context.Context, req *dto.RegisterStudentRequest) (*dto.TokenResponse, error) {
	// 1. Classroom must exist.
	classroom, err := s.repo.Classroom.GetByID(ctx, req.ClassroomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassroomNotFound
		}
		s.logger.Error("querying classroom failed", zap.Error(err))
		return nil, err
	}

	// 2. Username must be free.
	username := strings.TrimSpace(req.Username)
	if err := s.checkUsernameFree(ctx, username); err != nil {
		return nil, err
	}

	// 3. Persist with hashed password.
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         strings.TrimSpace(req.Name),
		Username:     username,
		PasswordHash: string(hash),
		Role:         model.RoleStudent,
		ClassroomID:  &classroom.ClassroomID,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		s.logger.Error("creating student failed", zap.Error(err))
		return nil, err
	}

	// Registration logs the user in directly.
	return s.buildTokenResponse(user, false)
}

// ────────────────────── RegisterTeacher ──────────────────────

func (s *authService) RegisterTeacher(ctx context.Context, req *dto.RegisterTeacherRequest) (*dto.TokenResponse, error) {
	if subtle.ConstantTimeCompare([]byte(req.TeacherCode), []byte(s.cfg.Auth.TeacherCode)) != 1 {
		return nil, ErrInvalidTeacherCode
	}

	username := strings.TrimSpace(req.Username)
	if err := s.checkUsernameFree(ctx, username); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         strings.TrimSpace(req.Name),
		Username:     username,
		PasswordHash: string(hash),
		Role:         model.RoleTeacher,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		s.logger.Error("creating teacher failed", zap.Error(err))
		return nil, err
	}

	return s.buildTokenResponse(user, false)
}

// ────────────────────── RefreshToken ──────────────────────

func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	claims, err := s.jwtMgr.ParseToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if claims.TokenType != "refresh" {
		return nil, ErrInvalidCredentials
	}

	if s.rdb != nil {
		blocked, err := s.rdb.IsBlacklisted(ctx, claims.ID)
		if err == nil && blocked {
			return nil, ErrInvalidCredentials
		}
	}

	user, err := s.repo.User.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return s.buildTokenResponse(user, claims.RememberMe)
}

// ────────────────────── Logout ──────────────────────

func (s *authService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if s.rdb == nil {
		return nil
	}
	return s.rdb.BlacklistToken(ctx, jti, time.Until(expiresAt))
}

// ────────────────────── GetCurrentUser ──────────────────────

func (s *authService) GetCurrentUser(ctx context.Context, userID string) (*dto.UserDetailResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("querying user failed", zap.String("id", userID), zap.Error(err))
		return nil, err
	}

	resp := &dto.UserDetailResponse{
		ID:        user.UserID,
		Name:      user.Name,
		Username:  user.Username,
		Role:      user.Role,
		AvatarURL: user.AvatarURL,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}

	if user.IsStudent() && user.Classroom != nil {
		resp.Classroom = toClassroomResponse(user.Classroom)
	}
	if user.IsTeacher() {
		classrooms, err := s.repo.Classroom.List(ctx, user.UserID, 0)
		if err != nil {
			s.logger.Error("listing teacher classrooms failed", zap.Error(err))
			return nil, err
		}
		for i := range classrooms {
			resp.Classrooms = append(resp.Classrooms, *toClassroomResponse(&classrooms[i]))
		}
	}

	return resp, nil
}

// ────────────────────── ChangePassword ──────────────────────

func (s *authService) ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		return ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.PasswordHash = string(hash)
	return s.repo.User.Update(ctx, user)
}

// ── helpers ──

func (s *authService) checkUsernameFree(ctx context.Context, username string) error {
	_, err := s.repo.User.GetByUsername(ctx, username)
	if err == nil {
		return ErrUsernameTaken
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	s.logger.Error("checking username failed", zap.Error(err))
	return err
}

func (s *authService) buildTokenResponse(user *model.User, rememberMe bool) (*dto.TokenResponse, error) {
	classroomID := ""
	if user.ClassroomID != nil {
		classroomID = *user.ClassroomID
	}

	accessToken, err := s.jwtMgr.GenerateAccessToken(user.UserID, user.Role, classroomID)
	if err != nil {
		s.logger.Error("generating access token failed", zap.Error(err))
		return nil, err
	}

	refreshToken, err := s.jwtMgr.GenerateRefreshToken(user.UserID, user.Role, classroomID, rememberMe)
	if err != nil {
		s.logger.Error("generating refresh token failed", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.cfg.Auth.AccessTokenTTL.Seconds()),
		User: dto.UserResponse{
			ID:          user.UserID,
			Name:        user.Name,
			Username:    user.Username,
			Role:        user.Role,
			AvatarURL:   user.AvatarURL,
			ClassroomID: classroomID,
		},
	}, nil
}
