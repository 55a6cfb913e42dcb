package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/unirecords/registrar-backend/internal/middleware"
	"github.com/unirecords/registrar-backend/internal/model"
	"github.com/unirecords/registrar-backend/internal/response"
	"github.com/unirecords/registrar-backend/internal/service"
)

// StudentPortalHandler handles the student self-service surface: browsing
// the catalog, managing own enrollments, and reading own grades and
// attendance. Every operation acts on the authenticated student only.
type StudentPortalHandler struct {
	directory         *service.DirectoryService
	authz             *service.AuthzService
	courseService     *service.CourseService
	groupService      *service.GroupService
	enrollmentService *service.EnrollmentService
	meetingService    *service.MeetingService
	gradeService      *service.GradeService
	attendanceService *service.AttendanceService
}

// NewStudentPortalHandler creates a new StudentPortalHandler.
func NewStudentPortalHandler(
	directory *service.DirectoryService,
	authz *service.AuthzService,
	courseService *service.CourseService,
	groupService *service.GroupService,
	enrollmentService *service.EnrollmentService,
	meetingService *service.MeetingService,
	gradeService *service.GradeService,
	attendanceService *service.AttendanceService,
) *StudentPortalHandler {
	return &StudentPortalHandler{
		directory:         directory,
		authz:             authz,
		courseService:     courseService,
		groupService:      groupService,
		enrollmentService: enrollmentService,
		meetingService:    meetingService,
		gradeService:      gradeService,
		attendanceService: attendanceService,
	}
}

// self resolves the caller to their student profile, writing the error
// response on failure.
func (h *StudentPortalHandler) self(c *gin.Context) (*model.Student, bool) {
	student, err := h.directory.ResolveStudent(c.Request.Context(), middleware.GetPrincipal(c))
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
		return nil, false
	}
	return student, true
}

// ListCatalog godoc
// GET /api/v1/student/courses
// Lists courses available for enrollment, with optional code/name filters.
func (h *StudentPortalHandler) ListCatalog(c *gin.Context) {
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

// ListCourseGroups godoc
// GET /api/v1/student/courses/:id/groups
// Lists a course's groups with live occupancy, so students can pick a
// group with free seats.
func (h *StudentPortalHandler) ListCourseGroups(c *gin.Context) {
	courseID, ok := pathID(c, "id")
	if !ok {
		return
	}

	groups, err := h.groupService.ListByCourse(c.Request.Context(), courseID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"groups": groups})
}

// ListMyEnrollments godoc
// GET /api/v1/student/enrollments
// Lists the caller's enrollments with course context.
func (h *StudentPortalHandler) ListMyEnrollments(c *gin.Context) {
	student, ok := h.self(c)
	if !ok {
		return
	}

	enrollments, err := h.enrollmentService.ListByStudent(c.Request.Context(), student.ID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"enrollments": enrollments})
}

// Enroll godoc
// POST /api/v1/student/groups/:id/enroll
// Enrolls the caller into a group. Self-service enrollment never overrides
// capacity.
func (h *StudentPortalHandler) Enroll(c *gin.Context) {
	groupID, ok := pathID(c, "id")
	if !ok {
		return
	}
	student, ok := h.self(c)
	if !ok {
		return
	}

	enrollment, err := h.enrollmentService.Enroll(c.Request.Context(), student.ID, groupID, false)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"enrollment": enrollment})
}

// Unenroll godoc
// DELETE /api/v1/student/groups/:id/enroll
// Removes the caller's enrollment from a group.
func (h *StudentPortalHandler) Unenroll(c *gin.Context) {
	groupID, ok := pathID(c, "id")
	if !ok {
		return
	}
	student, ok := h.self(c)
	if !ok {
		return
	}

	if err := h.enrollmentService.Unenroll(c.Request.Context(), student.ID, groupID); err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "unenrolled successfully"})
}

// ListGroupMeetings godoc
// GET /api/v1/student/groups/:id/meetings
// Lists a group's meeting schedule. Only students enrolled in the group
// may see it.
func (h *StudentPortalHandler) ListGroupMeetings(c *gin.Context) {
	groupID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if !h.authz.IsStudentEnrolledInGroup(c.Request.Context(), middleware.GetPrincipal(c), groupID) {
		response.Fail(c, http.StatusForbidden, response.ErrForbidden)
		return
	}

	meetings, err := h.meetingService.ListMeetings(c.Request.Context(), groupID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"meetings": meetings})
}

// ListMyGrades godoc
// GET /api/v1/student/grades
// Lists the caller's grades.
func (h *StudentPortalHandler) ListMyGrades(c *gin.Context) {
	student, ok := h.self(c)
	if !ok {
		return
	}

	grades, err := h.gradeService.ListByStudent(c.Request.Context(), student.ID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"grades": grades})
}

// ListMyAttendance godoc
// GET /api/v1/student/attendance
// Lists the caller's attendance records.
func (h *StudentPortalHandler) ListMyAttendance(c *gin.Context) {
	student, ok := h.self(c)
	if !ok {
		return
	}

	records, err := h.attendanceService.ListByStudent(c.Request.Context(), student.ID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"attendance": records})
}
