package service

import (
	"errors"

	"go.uber.org/zap"

	"github.com/EnesCagri/kaankutuphane/config"
	"github.com/EnesCagri/kaankutuphane/internal/repository"
	"github.com/EnesCagri/kaankutuphane/pkg/jwt"
	"github.com/EnesCagri/kaankutuphane/pkg/redis"
)

// ── shared role errors ──

var (
	ErrStudentOnly = errors.New("only students may perform this action")
	ErrTeacherOnly = errors.New("only teachers may perform this action")
)

// Service aggregates all business interfaces.
type Service struct {
	Auth        AuthService
	User        UserService
	Classroom   ClassroomService
	Book        BookService
	Comment     CommentService
	Trade       TradeService
	Reading     ReadingService
	Leaderboard LeaderboardService
	Export      ExportService
}

// NewService wires Repository → Service.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:        NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		User:        NewUserService(repo, logger),
		Classroom:   NewClassroomService(repo, logger),
		Book:        NewBookService(cfg, repo, logger),
		Comment:     NewCommentService(repo, logger),
		Trade:       NewTradeService(repo, logger),
		Reading:     NewReadingService(cfg, repo, logger),
		Leaderboard: NewLeaderboardService(repo, logger),
		Export:      NewExportService(repo, logger),
	}
}
