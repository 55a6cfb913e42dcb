package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/unirecords/registrar-backend/internal/middleware"
	"github.com/unirecords/registrar-backend/internal/model"
	"github.com/unirecords/registrar-backend/internal/response"
	"github.com/unirecords/registrar-backend/internal/service"
	"github.com/unirecords/registrar-backend/internal/validator"
)

// TeacherPortalHandler handles the teacher-facing surface: assigned groups,
// rosters, meetings, attendance, and grades. Relationship checks run as
// explicit predicate guards before each operation.
type TeacherPortalHandler struct {
	directory         *service.DirectoryService
	authz             *service.AuthzService
	groupService      *service.GroupService
	enrollmentService *service.EnrollmentService
	meetingService    *service.MeetingService
	attendanceService *service.AttendanceService
	gradeService      *service.GradeService
	studentService    *service.StudentService
}

// NewTeacherPortalHandler creates a new TeacherPortalHandler.
func NewTeacherPortalHandler(
	directory *service.DirectoryService,
	authz *service.AuthzService,
	groupService *service.GroupService,
	enrollmentService *service.EnrollmentService,
	meetingService *service.MeetingService,
	attendanceService *service.AttendanceService,
	gradeService *service.GradeService,
	studentService *service.StudentService,
) *TeacherPortalHandler {
	return &TeacherPortalHandler{
		directory:         directory,
		authz:             authz,
		groupService:      groupService,
		enrollmentService: enrollmentService,
		meetingService:    meetingService,
		attendanceService: attendanceService,
		gradeService:      gradeService,
		studentService:    studentService,
	}
}

// self resolves the caller to their teacher profile, writing the error
// response on failure.
func (h *TeacherPortalHandler) self(c *gin.Context) (*model.Teacher, bool) {
	teacher, err := h.directory.ResolveTeacher(c.Request.Context(), middleware.GetPrincipal(c))
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
		return nil, false
	}
	return teacher, true
}

// ListMyGroups godoc
// GET /api/v1/teacher/groups
// Lists the caller's assigned groups with live occupancy.
func (h *TeacherPortalHandler) ListMyGroups(c *gin.Context) {
	teacher, ok := h.self(c)
	if !ok {
		return
	}

	groups, err := h.groupService.ListByTeacher(c.Request.Context(), teacher.ID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"groups": groups})
}

// GetRoster godoc
// GET /api/v1/teacher/groups/:id/enrollments
// Lists the group's roster. Only the group's assigned teacher may view it.
func (h *TeacherPortalHandler) GetRoster(c *gin.Context) {
	groupID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if !h.authz.IsTeacherOfGroup(c.Request.Context(), middleware.GetPrincipal(c), groupID) {
		response.Fail(c, http.StatusForbidden, response.ErrForbidden)
		return
	}

	roster, err := h.enrollmentService.Roster(c.Request.Context(), groupID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"enrollments": roster})
}

// ListMeetings godoc
// GET /api/v1/teacher/groups/:id/meetings
// Lists the group's meetings for its assigned teacher.
func (h *TeacherPortalHandler) ListMeetings(c *gin.Context) {
	groupID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if !h.authz.IsTeacherOfGroup(c.Request.Context(), middleware.GetPrincipal(c), groupID) {
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

// DefineMeetings godoc
// POST /api/v1/teacher/groups/:id/meetings
// Generates weekly meetings for the caller's own group.
func (h *TeacherPortalHandler) DefineMeetings(c *gin.Context) {
	groupID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if !h.authz.IsTeacherOfGroup(c.Request.Context(), middleware.GetPrincipal(c), groupID) {
		response.Fail(c, http.StatusForbidden, response.ErrForbidden)
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

// ListMeetingAttendance godoc
// GET /api/v1/teacher/meetings/:id/attendance
// Lists the attendance records of a meeting the caller teaches.
func (h *TeacherPortalHandler) ListMeetingAttendance(c *gin.Context) {
	meetingID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if !h.authz.IsTeacherForMeeting(c.Request.Context(), middleware.GetPrincipal(c), meetingID) {
		response.Fail(c, http.StatusForbidden, response.ErrForbidden)
		return
	}

	records, err := h.attendanceService.ListByMeeting(c.Request.Context(), meetingID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"attendance": records})
}

// RecordAttendance godoc
// POST /api/v1/teacher/meetings/:id/attendance
// Records attendance for a meeting the caller teaches. One record per
// student per meeting; repeats are conflicts.
func (h *TeacherPortalHandler) RecordAttendance(c *gin.Context) {
	meetingID, ok := pathID(c, "id")
	if !ok {
		return
	}
	teacher, ok := h.self(c)
	if !ok {
		return
	}

	if !h.authz.IsTeacherForMeeting(c.Request.Context(), middleware.GetPrincipal(c), meetingID) {
		response.Fail(c, http.StatusForbidden, response.ErrForbidden)
		return
	}

	var req model.RecordAttendanceRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	records, err := h.attendanceService.Record(c.Request.Context(), meetingID, req.Entries, teacher.ID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"attendance": records})
}

// UpdateAttendance godoc
// PATCH /api/v1/teacher/attendance/:id
// Corrects a recorded status. Only the teacher who originally recorded the
// entry may change it.
func (h *TeacherPortalHandler) UpdateAttendance(c *gin.Context) {
	attendanceID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if !h.authz.CanTeacherUpdateAttendance(c.Request.Context(), middleware.GetPrincipal(c), attendanceID) {
		response.Fail(c, http.StatusForbidden, response.ErrForbidden)
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

// GetStudent godoc
// GET /api/v1/teacher/students/:id
// Returns a student the caller teaches, with enrollments and attendance.
func (h *TeacherPortalHandler) GetStudent(c *gin.Context) {
	studentID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if !h.authz.IsTeacherAllowedToViewStudent(c.Request.Context(), middleware.GetPrincipal(c), studentID) {
		response.Fail(c, http.StatusForbidden, response.ErrForbidden)
		return
	}

	student, err := h.studentService.GetByID(c.Request.Context(), studentID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	enrollments, err := h.enrollmentService.ListByStudent(c.Request.Context(), studentID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	records, err := h.attendanceService.ListByStudent(c.Request.Context(), studentID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"student":     student,
		"enrollments": enrollments,
		"attendance":  records,
	})
}

// ListMyGrades godoc
// GET /api/v1/teacher/grades
// Lists the grades the caller has issued.
func (h *TeacherPortalHandler) ListMyGrades(c *gin.Context) {
	teacher, ok := h.self(c)
	if !ok {
		return
	}

	grades, err := h.gradeService.ListByTeacher(c.Request.Context(), teacher.ID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"grades": grades})
}

// AddGrade godoc
// POST /api/v1/teacher/grades
// Issues a grade. The caller must teach the course, or teach the student
// within it.
func (h *TeacherPortalHandler) AddGrade(c *gin.Context) {
	teacher, ok := h.self(c)
	if !ok {
		return
	}

	var req model.AddGradeRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	grade, err := h.gradeService.AddGrade(c.Request.Context(), teacher.ID, req.StudentID, req.CourseID, req.Value, req.Comment)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"grade": grade})
}

// UpdateGrade godoc
// PUT /api/v1/teacher/grades/:id
// Overwrites a grade's value and comment. Only the issuing teacher may
// change it.
func (h *TeacherPortalHandler) UpdateGrade(c *gin.Context) {
	gradeID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if !h.authz.IsTeacherIssuerOfGrade(c.Request.Context(), middleware.GetPrincipal(c), gradeID) {
		response.Fail(c, http.StatusForbidden, response.ErrForbidden)
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
// DELETE /api/v1/teacher/grades/:id
// Deletes a grade the caller issued.
func (h *TeacherPortalHandler) DeleteGrade(c *gin.Context) {
	gradeID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if !h.authz.IsTeacherIssuerOfGrade(c.Request.Context(), middleware.GetPrincipal(c), gradeID) {
		response.Fail(c, http.StatusForbidden, response.ErrForbidden)
		return
	}

	if err := h.gradeService.DeleteGrade(c.Request.Context(), gradeID); err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "grade deleted successfully"})
}
