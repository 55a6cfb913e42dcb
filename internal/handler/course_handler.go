package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/unirecords/registrar-backend/internal/model"
	"github.com/unirecords/registrar-backend/internal/response"
	"github.com/unirecords/registrar-backend/internal/service"
	"github.com/unirecords/registrar-backend/internal/validator"
)

// CourseHandler handles staff-facing course management.
type CourseHandler struct {
	courseService *service.CourseService
	groupService  *service.GroupService
}

// NewCourseHandler creates a new CourseHandler.
func NewCourseHandler(courseService *service.CourseService, groupService *service.GroupService) *CourseHandler {
	return &CourseHandler{courseService: courseService, groupService: groupService}
}

// ListCourses godoc
// GET /api/v1/admin/courses
// Lists courses, optionally filtered by code or name.
func (h *CourseHandler) ListCourses(c *gin.Context) {
	filter := model.CourseFilter{
		Code: c.Query("code"),
		Name: c.Query("name"),
	}

	courses, err := h.courseService.List(c.Request.Context(), filter)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"courses": courses})
}

// GetCourse godoc
// GET /api/v1/admin/courses/:id
// Returns one course with its groups and their occupancy.
func (h *CourseHandler) GetCourse(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	course, err := h.courseService.GetByID(c.Request.Context(), id)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	groups, err := h.groupService.ListByCourse(c.Request.Context(), id)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"course": course, "groups": groups})
}

// CreateCourse godoc
// POST /api/v1/admin/courses
// Creates a course with a unique code.
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req model.CreateCourseRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	course, err := h.courseService.Create(c.Request.Context(), req)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"course": course})
}

// UpdateCourse godoc
// PUT /api/v1/admin/courses/:id
// Updates an existing course.
func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req model.CreateCourseRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	course, err := h.courseService.Update(c.Request.Context(), id, req)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"course": course})
}

// DeleteCourse godoc
// DELETE /api/v1/admin/courses/:id
// Deletes a course. Blocked while its groups carry enrollments or meetings,
// or while grades for it exist.
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.courseService.Delete(c.Request.Context(), id); err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "course deleted successfully"})
}
