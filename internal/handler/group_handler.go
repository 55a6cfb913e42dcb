package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/unirecords/registrar-backend/internal/model"
	"github.com/unirecords/registrar-backend/internal/response"
	"github.com/unirecords/registrar-backend/internal/service"
	"github.com/unirecords/registrar-backend/internal/validator"
)

// GroupHandler handles staff-facing group and enrollment management.
type GroupHandler struct {
	groupService      *service.GroupService
	enrollmentService *service.EnrollmentService
	meetingService    *service.MeetingService
}

// NewGroupHandler creates a new GroupHandler.
func NewGroupHandler(
	groupService *service.GroupService,
	enrollmentService *service.EnrollmentService,
	meetingService *service.MeetingService,
) *GroupHandler {
	return &GroupHandler{
		groupService:      groupService,
		enrollmentService: enrollmentService,
		meetingService:    meetingService,
	}
}

// CreateGroup godoc
// POST /api/v1/admin/courses/:id/groups
// Creates a group under a course. The group number must be unique within
// the course.
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	courseID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req model.CreateGroupRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	group, err := h.groupService.Create(c.Request.Context(), courseID, req)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"group": group})
}

// UpdateGroup godoc
// PUT /api/v1/admin/groups/:id
// Updates a group. Shrinking max capacity below current occupancy is
// rejected with a conflict.
func (h *GroupHandler) UpdateGroup(c *gin.Context) {
	groupID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req model.UpdateGroupRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	group, err := h.groupService.Update(c.Request.Context(), groupID, req)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"group": group})
}

// DeleteGroup godoc
// DELETE /api/v1/admin/groups/:id
// Deletes a group with its enrollments, meetings, and attendance.
func (h *GroupHandler) DeleteGroup(c *gin.Context) {
	groupID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.groupService.Delete(c.Request.Context(), groupID); err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "group deleted successfully"})
}

// GetRoster godoc
// GET /api/v1/admin/groups/:id/enrollments
// Lists the group's enrollments with student context.
func (h *GroupHandler) GetRoster(c *gin.Context) {
	groupID, ok := pathID(c, "id")
	if !ok {
		return
	}

	roster, err := h.enrollmentService.Roster(c.Request.Context(), groupID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"enrollments": roster})
}

// AdminEnrollRequest carries the student reference for an administrative
// enrollment.
type AdminEnrollRequest struct {
	StudentID int `json:"student_id" binding:"required,min=1"`
}

// EnrollStudent godoc
// POST /api/v1/admin/groups/:id/enrollments
// Enrolls a student into the group on the student's behalf. Administrative
// enrollments always override the full-group check; the course exclusivity
// rule is never bypassed.
func (h *GroupHandler) EnrollStudent(c *gin.Context) {
	groupID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req AdminEnrollRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	enrollment, err := h.enrollmentService.Enroll(c.Request.Context(), req.StudentID, groupID, true)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"enrollment": enrollment})
}

// UnenrollStudent godoc
// DELETE /api/v1/admin/groups/:id/enrollments/:student_id
// Removes a student's enrollment from the group.
func (h *GroupHandler) UnenrollStudent(c *gin.Context) {
	groupID, ok := pathID(c, "id")
	if !ok {
		return
	}
	studentID, ok := pathID(c, "student_id")
	if !ok {
		return
	}

	if err := h.enrollmentService.Unenroll(c.Request.Context(), studentID, groupID); err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "student unenrolled successfully"})
}

// ListMeetings godoc
// GET /api/v1/admin/groups/:id/meetings
// Lists the group's meetings in ascending number order.
func (h *GroupHandler) ListMeetings(c *gin.Context) {
	groupID, ok := pathID(c, "id")
	if !ok {
		return
	}

	meetings, err := h.meetingService.ListMeetings(c.Request.Context(), groupID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"meetings": meetings})
}

// DefineMeetings godoc
// POST /api/v1/admin/groups/:id/meetings
// Generates a batch of weekly meetings, numbering on from the group's
// current maximum.
func (h *GroupHandler) DefineMeetings(c *gin.Context) {
	groupID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req model.DefineMeetingsRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	meetings, err := h.meetingService.DefineMeetings(c.Request.Context(), groupID, req.Count, req.FirstAt, req.Topics)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"meetings": meetings})
}
