package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/EnesCagri/kaankutuphane/internal/dto"
	"github.com/EnesCagri/kaankutuphane/internal/model"
	"github.com/EnesCagri/kaankutuphane/internal/repository"
)

// ── classroom module errors ──

var (
	ErrClassroomNotFound = errors.New("classroom not found")
	ErrClassroomExists   = errors.New("classroom already exists")
	ErrInvalidGrade      = errors.New("grade must be 5, 6 or 7")
	ErrInvalidClassName  = errors.New("class letter is not valid for this grade")
	ErrNotClassroomOwner = errors.New("only the owning teacher may manage this classroom")
)

// classNamesByGrade enumerates the legal class letters per grade.
// Grades 5 and 6 run four parallel classes, grade 7 runs three.
var classNamesByGrade = map[int][]string{
	5: {"A", "B", "C", "D"},
	6: {"A", "B", "C", "D"},
	7: {"A", "B", "C"},
}

// ClassroomService is the classroom directory interface.
type ClassroomService interface {
	Create(ctx context.Context, req *dto.CreateClassroomRequest, teacherID string) (*dto.ClassroomResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ClassroomResponse, error)
	List(ctx context.Context, req *dto.ClassroomListRequest) ([]dto.ClassroomResponse, error)
	ListStudents(ctx context.Context, classroomID string) ([]dto.UserResponse, error)
	Delete(ctx context.Context, id, callerID string) error
}

type classroomService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewClassroomService builds the ClassroomService.
func NewClassroomService(repo *repository.Repository, logger *zap.Logger) ClassroomService {
	return &classroomService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *classroomService) Create(ctx context.Context, req *dto.CreateClassroomRequest, teacherID string) (*dto.ClassroomResponse, error) {
	teacher, err := s.repo.User.GetByID(ctx, teacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("querying teacher failed", zap.Error(err))
		return nil, err
	}
	if !teacher.IsTeacher() {
		return nil, ErrTeacherOnly
	}

	className := strings.ToUpper(strings.TrimSpace(req.ClassName))
	if err := validateGradeClass(req.Grade, className); err != nil {
		return nil, err
	}

	// One (grade, class, teacher) triple per teacher; other teachers may own
	// the same grade/letter pair.
	_, err = s.repo.Classroom.GetByTeacherGradeClass(ctx, teacherID, req.Grade, className)
	if err == nil {
		return nil, ErrClassroomExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("checking classroom uniqueness failed", zap.Error(err))
		return nil, err
	}

	classroom := &model.Classroom{
		Grade:     req.Grade,
		ClassName: className,
		TeacherID: teacherID,
	}
	if err := s.repo.Classroom.Create(ctx, classroom); err != nil {
		s.logger.Error("creating classroom failed", zap.Error(err))
		return nil, err
	}

	return toClassroomResponse(classroom), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *classroomService) GetByID(ctx context.Context, id string) (*dto.ClassroomResponse, error) {
	classroom, err := s.repo.Classroom.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassroomNotFound
		}
		s.logger.Error("querying classroom failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toClassroomResponse(classroom), nil
}

// ────────────────────── List ──────────────────────

func (s *classroomService) List(ctx context.Context, req *dto.ClassroomListRequest) ([]dto.ClassroomResponse, error) {
	classrooms, err := s.repo.Classroom.List(ctx, req.TeacherID, req.Grade)
	if err != nil {
		s.logger.Error("listing classrooms failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ClassroomResponse, 0, len(classrooms))
	for i := range classrooms {
		result = append(result, *toClassroomResponse(&classrooms[i]))
	}
	return result, nil
}

// ────────────────────── ListStudents ──────────────────────

func (s *classroomService) ListStudents(ctx context.Context, classroomID string) ([]dto.UserResponse, error) {
	if _, err := s.repo.Classroom.GetByID(ctx, classroomID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassroomNotFound
		}
		return nil, err
	}

	students, err := s.repo.User.List(ctx, classroomID, model.RoleStudent)
	if err != nil {
		s.logger.Error("listing classroom students failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.UserResponse, 0, len(students))
	for i := range students {
		result = append(result, *toUserResponse(&students[i]))
	}
	return result, nil
}

// ────────────────────── Delete ──────────────────────

func (s *classroomService) Delete(ctx context.Context, id, callerID string) error {
	classroom, err := s.repo.Classroom.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClassroomNotFound
		}
		s.logger.Error("querying classroom failed", zap.String("id", id), zap.Error(err))
		return err
	}
	if classroom.TeacherID != callerID {
		return ErrNotClassroomOwner
	}

	if err := s.repo.Classroom.DeleteDetaching(ctx, id); err != nil {
		s.logger.Error("deleting classroom failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── helpers ──

func validateGradeClass(grade int, className string) error {
	letters, ok := classNamesByGrade[grade]
	if !ok {
		return ErrInvalidGrade
	}
	for _, l := range letters {
		if l == className {
			return nil
		}
	}
	return ErrInvalidClassName
}

func toClassroomResponse(c *model.Classroom) *dto.ClassroomResponse {
	return &dto.ClassroomResponse{
		ID:        c.ClassroomID,
		Grade:     c.Grade,
		ClassName: c.ClassName,
		Label:     fmt.Sprintf("%d%s", c.Grade, c.ClassName),
		TeacherID: c.TeacherID,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}

func toUserResponse(u *model.User) *dto.UserResponse {
	resp := &dto.UserResponse{
		ID:        u.UserID,
		Name:      u.Name,
		Username:  u.Username,
		Role:      u.Role,
		AvatarURL: u.AvatarURL,
	}
	if u.ClassroomID != nil {
		resp.ClassroomID = *u.ClassroomID
	}
	return resp
}
