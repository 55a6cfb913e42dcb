package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/unirecords/registrar-backend/internal/model"
	"github.com/unirecords/registrar-backend/internal/response"
	"github.com/unirecords/registrar-backend/internal/service"
	"github.com/unirecords/registrar-backend/internal/validator"
)

// StudentManagementHandler handles staff-facing student administration.
type StudentManagementHandler struct {
	studentService    *service.StudentService
	enrollmentService *service.EnrollmentService
	gradeService      *service.GradeService
	authService       *service.AuthService
}

// NewStudentManagementHandler creates a new StudentManagementHandler.
func NewStudentManagementHandler(
	studentService *service.StudentService,
	enrollmentService *service.EnrollmentService,
	gradeService *service.GradeService,
	authService *service.AuthService,
) *StudentManagementHandler {
	return &StudentManagementHandler{
		studentService:    studentService,
		enrollmentService: enrollmentService,
		gradeService:      gradeService,
		authService:       authService,
	}
}

// ListStudents godoc
// GET /api/v1/admin/students?page=1&per_page=10&index_number=&name=&group_id=
// Lists students with pagination and optional filters.
func (h *StudentManagementHandler) ListStudents(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))
	groupID, _ := strconv.Atoi(c.Query("group_id"))

	filter := model.StudentFilter{
		IndexNumber: c.Query("index_number"),
		Name:        c.Query("name"),
		GroupID:     groupID,
	}

	students, pagination, err := h.studentService.ListStudents(c.Request.Context(), filter, page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"students": students}, pagination)
}

// GetStudent godoc
// GET /api/v1/admin/students/:id
// Returns one student with enrollments and grades.
func (h *StudentManagementHandler) GetStudent(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	student, err := h.studentService.GetByID(c.Request.Context(), id)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	enrollments, err := h.enrollmentService.ListByStudent(c.Request.Context(), id)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	grades, err := h.gradeService.ListByStudent(c.Request.Context(), id)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"student":     student,
		"enrollments": enrollments,
		"grades":      grades,
	})
}

// CreateStudent godoc
// POST /api/v1/admin/students
// Registers a student. The index number is generated server side and
// returned in the response.
func (h *StudentManagementHandler) CreateStudent(c *gin.Context) {
	var req model.CreateStudentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	student, err := h.studentService.Create(c.Request.Context(), req)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"student": student})
}

// UpdateStudent godoc
// PUT /api/v1/admin/students/:id
// Updates a student's details, replacing the password only when provided.
func (h *StudentManagementHandler) UpdateStudent(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req model.UpdateStudentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	student, err := h.studentService.Update(c.Request.Context(), id, req)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"student": student})
}

// DeleteStudent godoc
// DELETE /api/v1/admin/students/:id
// Deletes a student with all dependent attendance, grades, and enrollments.
func (h *StudentManagementHandler) DeleteStudent(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.studentService.Delete(c.Request.Context(), id); err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "student deleted successfully"})
}

// ResetStudentSession godoc
// POST /api/v1/admin/students/:id/reset-session
// Clears the student's single-device session so they can log in again.
func (h *StudentManagementHandler) ResetStudentSession(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if _, err := h.studentService.GetByID(c.Request.Context(), id); err != nil {
		writeDomainError(c, err)
		return
	}

	if err := h.authService.ResetStudentSession(c.Request.Context(), id); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "session reset successfully"})
}
