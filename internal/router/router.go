package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/unirecords/registrar-backend/internal/config"
	"github.com/unirecords/registrar-backend/internal/handler"
	"github.com/unirecords/registrar-backend/internal/middleware"
	"github.com/unirecords/registrar-backend/internal/response"
	"github.com/unirecords/registrar-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth          *handler.AuthHandler
	Course        *handler.CourseHandler
	Group         *handler.GroupHandler
	StudentMgmt   *handler.StudentManagementHandler
	TeacherMgmt   *handler.TeacherManagementHandler
	StudentPortal *handler.StudentPortalHandler
	TeacherPortal *handler.TeacherPortalHandler
	Records       *handler.RecordsHandler
	WS            *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/student/login", handlers.Auth.StudentLogin)
		auth.POST("/teacher/login", handlers.Auth.TeacherLogin)
		auth.POST("/staff/login", handlers.Auth.StaffLogin)

		// Authenticated profile routes
		auth.POST("/student/logout", middleware.RequireStudentJWT(authService), handlers.Auth.StudentLogout)
		auth.GET("/student/me", middleware.RequireStudentJWT(authService), handlers.Auth.GetStudentProfile)
		auth.GET("/teacher/me", middleware.RequireTeacherJWT(authService), handlers.Auth.GetTeacherProfile)
		auth.GET("/staff/me", middleware.RequireStaffJWT(authService), handlers.Auth.GetStaffProfile)
	}

	// ─── 2. Student Group (JWT + Single Device) ────────────────────────
	studentAPI := router.Group("/api/v1/student")
	studentAPI.Use(
		middleware.RequireStudentJWT(authService),
		middleware.CheckSingleDeviceSession(authService),
	)
	{
		studentAPI.GET("/courses", handlers.StudentPortal.ListCatalog)
		studentAPI.GET("/courses/:id/groups", handlers.StudentPortal.ListCourseGroups)
		studentAPI.GET("/enrollments", handlers.StudentPortal.ListMyEnrollments)
		studentAPI.POST("/groups/:id/enroll", handlers.StudentPortal.Enroll)
		studentAPI.DELETE("/groups/:id/enroll", handlers.StudentPortal.Unenroll)
		studentAPI.GET("/groups/:id/meetings", handlers.StudentPortal.ListGroupMeetings)
		studentAPI.GET("/grades", handlers.StudentPortal.ListMyGrades)
		studentAPI.GET("/attendance", handlers.StudentPortal.ListMyAttendance)
	}

	// ─── 3. Teacher Group (JWT + Relationship Guards) ──────────────────
	teacherAPI := router.Group("/api/v1/teacher")
	teacherAPI.Use(middleware.RequireTeacherJWT(authService))
	{
		teacherAPI.GET("/groups", handlers.TeacherPortal.ListMyGroups)
		teacherAPI.GET("/groups/:id/enrollments", handlers.TeacherPortal.GetRoster)
		teacherAPI.GET("/groups/:id/meetings", handlers.TeacherPortal.ListMeetings)
		teacherAPI.POST("/groups/:id/meetings", handlers.TeacherPortal.DefineMeetings)
		teacherAPI.GET("/meetings/:id/attendance", handlers.TeacherPortal.ListMeetingAttendance)
		teacherAPI.POST("/meetings/:id/attendance", handlers.TeacherPortal.RecordAttendance)
		teacherAPI.PATCH("/attendance/:id", handlers.TeacherPortal.UpdateAttendance)
		teacherAPI.GET("/students/:id", handlers.TeacherPortal.GetStudent)
		teacherAPI.GET("/grades", handlers.TeacherPortal.ListMyGrades)
		teacherAPI.POST("/grades", handlers.TeacherPortal.AddGrade)
		teacherAPI.PUT("/grades/:id", handlers.TeacherPortal.UpdateGrade)
		teacherAPI.DELETE("/grades/:id", handlers.TeacherPortal.DeleteGrade)
	}

	// ─── 4. WebSocket Group (Teacher WS Auth) ──────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireTeacherWSAuth(authService))
	{
		ws.GET("/teacher/meetings/:id/attendance", handlers.WS.MeetingAttendanceStream)
	}

	// ─── 5. Admin Group (Staff JWT) ────────────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(middleware.RequireStaffJWT(authService))
	{
		// Course management
		adminAPI.GET("/courses", handlers.Course.ListCourses)
		adminAPI.POST("/courses", handlers.Course.CreateCourse)
		adminAPI.GET("/courses/:id", handlers.Course.GetCourse)
		adminAPI.PUT("/courses/:id", handlers.Course.UpdateCourse)
		adminAPI.DELETE("/courses/:id", handlers.Course.DeleteCourse)
		adminAPI.POST("/courses/:id/groups", handlers.Group.CreateGroup)

		// Group management
		adminAPI.PUT("/groups/:id", handlers.Group.UpdateGroup)
		adminAPI.DELETE("/groups/:id", handlers.Group.DeleteGroup)
		adminAPI.GET("/groups/:id/enrollments", handlers.Group.GetRoster)
		adminAPI.POST("/groups/:id/enrollments", handlers.Group.EnrollStudent)
		adminAPI.DELETE("/groups/:id/enrollments/:student_id", handlers.Group.UnenrollStudent)
		adminAPI.GET("/groups/:id/meetings", handlers.Group.ListMeetings)
		adminAPI.POST("/groups/:id/meetings", handlers.Group.DefineMeetings)

		// Student management
		adminAPI.GET("/students", handlers.StudentMgmt.ListStudents)
		adminAPI.POST("/students", handlers.StudentMgmt.CreateStudent)
		adminAPI.GET("/students/:id", handlers.StudentMgmt.GetStudent)
		adminAPI.PUT("/students/:id", handlers.StudentMgmt.UpdateStudent)
		adminAPI.DELETE("/students/:id", handlers.StudentMgmt.DeleteStudent)
		adminAPI.POST("/students/:id/reset-session", handlers.StudentMgmt.ResetStudentSession)

		// Record corrections
		adminAPI.PUT("/grades/:id", handlers.Records.UpdateGrade)
		adminAPI.DELETE("/grades/:id", handlers.Records.DeleteGrade)
		adminAPI.PATCH("/attendance/:id", handlers.Records.UpdateAttendance)

		// Teacher management
		adminAPI.GET("/teachers", handlers.TeacherMgmt.ListTeachers)
		adminAPI.POST("/teachers", handlers.TeacherMgmt.CreateTeacher)
		adminAPI.GET("/teachers/:id", handlers.TeacherMgmt.GetTeacher)
		adminAPI.PUT("/teachers/:id", handlers.TeacherMgmt.UpdateTeacher)
		adminAPI.DELETE("/teachers/:id", handlers.TeacherMgmt.DeleteTeacher)
	}

	return router
}
