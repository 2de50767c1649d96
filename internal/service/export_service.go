package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/EnesCagri/kaankutuphane/internal/model"
	"github.com/EnesCagri/kaankutuphane/internal/repository"
)

// ── export module errors ──

var (
	ErrExportNoStudents   = errors.New("classroom has no students to export")
	ErrExportGenerateFail = errors.New("generating the Excel file failed")
)

// ExportService builds downloadable reports.
//
// Output is returned as a bytes.Buffer plus a suggested filename; the
// handler sets the HTTP headers and streams it out.
type ExportService interface {
	// ExportClassroomActivity exports one classroom's reading activity
	// as an .xlsx workbook. Only the owning teacher may export.
	ExportClassroomActivity(ctx context.Context, classroomID, callerID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService builds the ExportService.
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ────────────────────── ExportClassroomActivity ──────────────────────
//
// Workbook layout, one sheet:
//   Title row:  "<grade><class> - Reading Activity"
//   Header row: Student | Username | Books Read | Last Read
//   One row per student, most reads first, zero-read students included
//   so the teacher sees the full roster.

func (s *exportService) ExportClassroomActivity(ctx context.Context, classroomID, callerID string) (*bytes.Buffer, string, error) {
	// 1. Classroom must exist and belong to the caller.
	classroom, err := s.repo.Classroom.GetByID(ctx, classroomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrClassroomNotFound
		}
		s.logger.Error("querying classroom failed", zap.Error(err))
		return nil, "", err
	}
	if classroom.TeacherID != callerID {
		return nil, "", ErrNotClassroomOwner
	}

	// 2. Roster.
	students, err := s.repo.User.List(ctx, classroomID, model.RoleStudent)
	if err != nil {
		s.logger.Error("listing students failed", zap.Error(err))
		return nil, "", err
	}
	if len(students) == 0 {
		return nil, "", ErrExportNoStudents
	}

	// 3. Per-student read count and most recent read.
	type activity struct {
		count    int
		lastRead time.Time
	}
	byStudent := make(map[string]*activity, len(students))
	for i := range students {
		byStudent[students[i].UserID] = &activity{}
	}
	for i := range students {
		statuses, err := s.repo.ReadingStatus.ListByUser(ctx, students[i].UserID)
		if err != nil {
			s.logger.Error("listing reading statuses failed", zap.Error(err))
			return nil, "", err
		}
		act := byStudent[students[i].UserID]
		for j := range statuses {
			act.count++
			if statuses[j].ReadAt.After(act.lastRead) {
				act.lastRead = statuses[j].ReadAt
			}
		}
	}

	// 4. Row order: reads descending, then name for a stable roster.
	sort.Slice(students, func(i, j int) bool {
		ci, cj := byStudent[students[i].UserID].count, byStudent[students[j].UserID].count
		if ci != cj {
			return ci > cj
		}
		return students[i].Name < students[j].Name
	})

	// 5. Render the workbook.
	label := fmt.Sprintf("%d%s", classroom.Grade, classroom.ClassName)
	sheetName := "Reading Activity"

	f := excelize.NewFile()
	defer f.Close()

	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 24)
	f.SetColWidth(sheetName, "B", "B", 18)
	f.SetColWidth(sheetName, "C", "C", 12)
	f.SetColWidth(sheetName, "D", "D", 14)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s - Reading Activity", label))
	f.MergeCell(sheetName, "A1", "D1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	row := 2
	f.SetCellValue(sheetName, cell("A", row), "Student")
	f.SetCellValue(sheetName, cell("B", row), "Username")
	f.SetCellValue(sheetName, cell("C", row), "Books Read")
	f.SetCellValue(sheetName, cell("D", row), "Last Read")

	row = 3
	for i := range students {
		act := byStudent[students[i].UserID]
		f.SetCellValue(sheetName, cell("A", row), students[i].Name)
		f.SetCellValue(sheetName, cell("B", row), students[i].Username)
		f.SetCellValue(sheetName, cell("C", row), act.count)
		if act.count > 0 {
			f.SetCellValue(sheetName, cell("D", row), act.lastRead.Format("2006-01-02"))
		} else {
			f.SetCellValue(sheetName, cell("D", row), "-")
		}
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("writing Excel failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("reading_activity_%s.xlsx", label)
	return buf, filename, nil
}

// ── helpers ──

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
