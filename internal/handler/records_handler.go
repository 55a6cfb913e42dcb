package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/unirecords/registrar-backend/internal/model"
	"github.com/unirecords/registrar-backend/internal/response"
	"github.com/unirecords/registrar-backend/internal/service"
	"github.com/unirecords/registrar-backend/internal/validator"
)

// RecordsHandler exposes administrative corrections to grades and attendance.
// Deanery staff may overwrite or remove any record; the issuer/recorder
// restrictions apply only to teachers.
type RecordsHandler struct {
	gradeService      *service.GradeService
	attendanceService *service.AttendanceService
}

// NewRecordsHandler creates a new RecordsHandler.
func NewRecordsHandler(
	gradeService *service.GradeService,
	attendanceService *service.AttendanceService,
) *RecordsHandler {
	return &RecordsHandler{
		gradeService:      gradeService,
		attendanceService: attendanceService,
	}
}

// UpdateGrade godoc
// PUT /api/v1/admin/grades/:id
// Overwrites any grade's value and comment.
func (h *RecordsHandler) UpdateGrade(c *gin.Context) {
	gradeID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req model.UpdateGradeRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	grade, err := h.gradeService.UpdateGrade(c.Request.Context(), gradeID, req.Value, req.Comment)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"grade": grade})
}

// DeleteGrade godoc
// DELETE /api/v1/admin/grades/:id
// Removes any grade.
func (h *RecordsHandler) DeleteGrade(c *gin.Context) {
	gradeID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.gradeService.DeleteGrade(c.Request.Context(), gradeID); err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "grade deleted successfully"})
}

// UpdateAttendance godoc
// PATCH /api/v1/admin/attendance/:id
// Corrects any attendance record's status, regardless of who recorded it.
func (h *RecordsHandler) UpdateAttendance(c *gin.Context) {
	attendanceID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req model.UpdateAttendanceRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	record, err := h.attendanceService.UpdateStatus(c.Request.Context(), attendanceID, req.Status)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"attendance": record})
}
