package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/unirecords/registrar-backend/internal/model"
	"github.com/unirecords/registrar-backend/internal/response"
	"github.com/unirecords/registrar-backend/internal/service"
	"github.com/unirecords/registrar-backend/internal/validator"
)

// TeacherManagementHandler handles staff-facing teacher administration.
type TeacherManagementHandler struct {
	teacherService *service.TeacherService
	groupService   *service.GroupService
}

// NewTeacherManagementHandler creates a new TeacherManagementHandler.
func NewTeacherManagementHandler(teacherService *service.TeacherService, groupService *service.GroupService) *TeacherManagementHandler {
	return &TeacherManagementHandler{teacherService: teacherService, groupService: groupService}
}

// ListTeachers godoc
// GET /api/v1/admin/teachers
// Lists all teachers.
func (h *TeacherManagementHandler) ListTeachers(c *gin.Context) {
	teachers, err := h.teacherService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"teachers": teachers})
}

// GetTeacher godoc
// GET /api/v1/admin/teachers/:id
// Returns one teacher with their assigned groups.
func (h *TeacherManagementHandler) GetTeacher(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	teacher, err := h.teacherService.GetByID(c.Request.Context(), id)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	groups, err := h.groupService.ListByTeacher(c.Request.Context(), id)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"teacher": teacher, "groups": groups})
}

// CreateTeacher godoc
// POST /api/v1/admin/teachers
// Creates a teacher account.
func (h *TeacherManagementHandler) CreateTeacher(c *gin.Context) {
	var req model.CreateTeacherRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	teacher, err := h.teacherService.Create(c.Request.Context(), req)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"teacher": teacher})
}

// UpdateTeacher godoc
// PUT /api/v1/admin/teachers/:id
// Updates a teacher's details, replacing the password only when provided.
func (h *TeacherManagementHandler) UpdateTeacher(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req model.UpdateTeacherRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	teacher, err := h.teacherService.Update(c.Request.Context(), id, req)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"teacher": teacher})
}

// DeleteTeacher godoc
// DELETE /api/v1/admin/teachers/:id
// Deletes a teacher. Group assignments are released; issued grades and
// recorded attendance keep the teacher referenced and block the delete.
func (h *TeacherManagementHandler) DeleteTeacher(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.teacherService.Delete(c.Request.Context(), id); err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "teacher deleted successfully"})
}
