package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/EnesCagri/kaankutuphane/internal/dto"
	"github.com/EnesCagri/kaankutuphane/internal/service"
	"github.com/EnesCagri/kaankutuphane/pkg/response"
)

// ClassroomHandler handles the classroom directory endpoints.
type ClassroomHandler struct {
	classroomSvc service.ClassroomService
}

// NewClassroomHandler builds the ClassroomHandler.
func NewClassroomHandler(classroomSvc service.ClassroomService) *ClassroomHandler {
	return &ClassroomHandler{classroomSvc: classroomSvc}
}

// CreateClassroom creates a classroom owned by the calling teacher.
// POST /api/v1/classrooms
func (h *ClassroomHandler) CreateClassroom(c *gin.Context) {
	var req dto.CreateClassroomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "request validation failed")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	classroom, err := h.classroomSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleClassroomError(c, err)
		return
	}

	response.Created(c, classroom)
}

// ListClassrooms lists classrooms, optionally filtered by teacher or grade.
// GET /api/v1/classrooms
func (h *ClassroomHandler) ListClassrooms(c *gin.Context) {
	var req dto.ClassroomListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "request validation failed")
		return
	}

	classrooms, err := h.classroomSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": classrooms})
}

// GetClassroom returns one classroom.
// GET /api/v1/classrooms/:id
func (h *ClassroomHandler) GetClassroom(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "classroom id is required")
		return
	}

	classroom, err := h.classroomSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleClassroomError(c, err)
		return
	}

	response.OK(c, classroom)
}

// ListClassroomStudents lists the students of one classroom.
// GET /api/v1/classrooms/:id/students
func (h *ClassroomHandler) ListClassroomStudents(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "classroom id is required")
		return
	}

	students, err := h.classroomSvc.ListStudents(c.Request.Context(), id)
	if err != nil {
		h.handleClassroomError(c, err)
		return
	}

	response.OK(c, gin.H{"list": students})
}

// DeleteClassroom removes a classroom, detaching its students.
// DELETE /api/v1/classrooms/:id
func (h *ClassroomHandler) DeleteClassroom(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "classroom id is required")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.classroomSvc.Delete(c.Request.Context(), id, callerID); err != nil {
		h.handleClassroomError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *ClassroomHandler) handleClassroomError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrClassroomNotFound):
		response.NotFound(c, 13001, "classroom not found")
	case errors.Is(err, service.ErrClassroomExists):
		response.Conflict(c, 13002, "classroom already exists")
	case errors.Is(err, service.ErrInvalidGrade):
		response.BadRequest(c, 13003, "grade must be 5, 6 or 7")
	case errors.Is(err, service.ErrInvalidClassName):
		response.BadRequest(c, 13004, "invalid class letter for this grade")
	case errors.Is(err, service.ErrNotClassroomOwner):
		response.Forbidden(c, 13005, "not the owning teacher")
	case errors.Is(err, service.ErrTeacherOnly):
		response.Forbidden(c, 10003, "teachers only")
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 12001, "user not found")
	default:
		response.InternalError(c)
	}
}
