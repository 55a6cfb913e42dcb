package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/unirecords/registrar-backend/internal/config"
	"github.com/unirecords/registrar-backend/internal/database"
	"github.com/unirecords/registrar-backend/internal/handler"
	"github.com/unirecords/registrar-backend/internal/logger"
	"github.com/unirecords/registrar-backend/internal/repository"
	"github.com/unirecords/registrar-backend/internal/router"
	"github.com/unirecords/registrar-backend/internal/service"
	"github.com/unirecords/registrar-backend/internal/validator"
	"github.com/unirecords/registrar-backend/internal/websocket"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Registrar Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	txRunner := repository.NewTxRunner(pool)
	studentRepo := repository.NewStudentRepository(pool)
	teacherRepo := repository.NewTeacherRepository(pool)
	staffRepo := repository.NewStaffRepository(pool)
	courseRepo := repository.NewCourseRepository(pool)
	groupRepo := repository.NewGroupRepository(pool)
	enrollmentRepo := repository.NewEnrollmentRepository(pool)
	meetingRepo := repository.NewMeetingRepository(pool)
	attendanceRepo := repository.NewAttendanceRepository(pool)
	gradeRepo := repository.NewGradeRepository(pool)
	relationshipRepo := repository.NewRelationshipRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, rdb)
	directory := service.NewDirectoryService(studentRepo, teacherRepo)
	authzService := service.NewAuthzService(directory, relationshipRepo, meetingRepo, gradeRepo, attendanceRepo)
	courseService := service.NewCourseService(courseRepo, groupRepo, enrollmentRepo, meetingRepo, gradeRepo, txRunner, log)
	groupService := service.NewGroupService(courseRepo, groupRepo, teacherRepo, enrollmentRepo, meetingRepo, attendanceRepo, txRunner, log)
	studentService := service.NewStudentService(studentRepo, enrollmentRepo, gradeRepo, attendanceRepo, txRunner, log)
	teacherService := service.NewTeacherService(teacherRepo)
	staffService := service.NewStaffService(staffRepo)
	enrollmentService := service.NewEnrollmentService(groupRepo, enrollmentRepo, txRunner, log)
	meetingService := service.NewMeetingService(groupRepo, meetingRepo, txRunner)
	attendancePublisher := websocket.NewPublisher(rdb, log)
	attendanceService := service.NewAttendanceService(meetingRepo, studentRepo, attendanceRepo, txRunner, attendancePublisher, log)
	gradeService := service.NewGradeService(studentRepo, courseRepo, relationshipRepo, gradeRepo, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:          handler.NewAuthHandler(authService, studentService, teacherService, staffService),
		Course:        handler.NewCourseHandler(courseService, groupService),
		Group:         handler.NewGroupHandler(groupService, enrollmentService, meetingService),
		StudentMgmt:   handler.NewStudentManagementHandler(studentService, enrollmentService, gradeService, authService),
		TeacherMgmt:   handler.NewTeacherManagementHandler(teacherService, groupService),
		StudentPortal: handler.NewStudentPortalHandler(directory, authzService, courseService, groupService, enrollmentService, meetingService, gradeService, attendanceService),
		TeacherPortal: handler.NewTeacherPortalHandler(directory, authzService, groupService, enrollmentService, meetingService, attendanceService, gradeService, studentService),
		Records:       handler.NewRecordsHandler(gradeService, attendanceService),
		WS:            handler.NewWSHandler(rdb, authzService, log, cfg.AllowedOrigins),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
