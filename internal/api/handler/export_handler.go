package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/EnesCagri/kaankutuphane/internal/service"
	"github.com/EnesCagri/kaankutuphane/pkg/response"
)

// ExportHandler handles report download endpoints.
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler builds the ExportHandler.
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportClassroomActivity downloads a classroom's reading activity report.
// GET /api/v1/classrooms/:id/export
func (h *ExportHandler) ExportClassroomActivity(c *gin.Context) {
	classroomID := c.Param("id")
	if classroomID == "" {
		response.BadRequest(c, 10001, "classroom id is required")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportClassroomActivity(c.Request.Context(), classroomID, callerID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrClassroomNotFound):
		response.NotFound(c, 13001, "classroom not found")
	case errors.Is(err, service.ErrNotClassroomOwner):
		response.Forbidden(c, 13005, "not the owning teacher")
	case errors.Is(err, service.ErrExportNoStudents):
		response.BadRequest(c, 18001, "classroom has no students to export")
	default:
		response.InternalError(c)
	}
}
