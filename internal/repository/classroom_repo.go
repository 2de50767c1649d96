package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/EnesCagri/kaankutuphane/internal/model"
)

// ClassroomRepository is the classrooms data-access interface.
type ClassroomRepository interface {
	Create(ctx context.Context, classroom *model.Classroom) error
	GetByID(ctx context.Context, id string) (*model.Classroom, error)
	// GetByTeacherGradeClass returns the teacher's classroom with the given
	// grade and class letter, or gorm.ErrRecordNotFound.
	GetByTeacherGradeClass(ctx context.Context, teacherID string, grade int, className string) (*model.Classroom, error)
	List(ctx context.Context, teacherID string, grade int) ([]model.Classroom, error)
	// DeleteDetaching removes the classroom and clears classroom_id on its
	// member students in one transaction.
	DeleteDetaching(ctx context.Context, id string) error
}

type classroomRepo struct {
	db *gorm.DB
}

// NewClassroomRepo builds the GORM-backed ClassroomRepository.
func NewClassroomRepo(db *gorm.DB) ClassroomRepository {
	return &classroomRepo{db: db}
}

func (r *classroomRepo) Create(ctx context.Context, classroom *model.Classroom) error {
	return r.db.WithContext(ctx).Create(classroom).Error
}

func (r *classroomRepo) GetByID(ctx context.Context, id string) (*model.Classroom, error) {
	var classroom model.Classroom
	err := r.db.WithContext(ctx).
		Where("classroom_id = ?", id).
		First(&classroom).Error
	if err != nil {
		return nil, err
	}
	return &classroom, nil
}

func (r *classroomRepo) GetByTeacherGradeClass(ctx context.Context, teacherID string, grade int, className string) (*model.Classroom, error) {
	var classroom model.Classroom
	err := r.db.WithContext(ctx).
		Where("teacher_id = ? AND grade = ? AND class_name = ?", teacherID, grade, className).
		First(&classroom).Error
	if err != nil {
		return nil, err
	}
	return &classroom, nil
}

func (r *classroomRepo) List(ctx context.Context, teacherID string, grade int) ([]model.Classroom, error) {
	db := r.db.WithContext(ctx).Model(&model.Classroom{})
	if teacherID != "" {
		db = db.Where("teacher_id = ?", teacherID)
	}
	if grade > 0 {
		db = db.Where("grade = ?", grade)
	}

	var classrooms []model.Classroom
	err := db.Order("grade ASC, class_name ASC").Find(&classrooms).Error
	return classrooms, err
}

func (r *classroomRepo) DeleteDetaching(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var classroom model.Classroom
		if err := tx.Where("classroom_id = ?", id).First(&classroom).Error; err != nil {
			return err
		}

		if err := tx.Model(&model.User{}).
			Where("classroom_id = ?", id).
			Update("classroom_id", nil).Error; err != nil {
			return err
		}

		return tx.Where("classroom_id = ?", id).Delete(&model.Classroom{}).Error
	})
}
