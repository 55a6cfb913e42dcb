package main

import (
	"context"
	"fmt"
	"time"

	"github.com/unirecords/registrar-backend/internal/config"
	"github.com/unirecords/registrar-backend/internal/database"
	"github.com/unirecords/registrar-backend/internal/logger"
	"github.com/unirecords/registrar-backend/internal/model"
	"github.com/unirecords/registrar-backend/internal/repository"
	"github.com/unirecords/registrar-backend/internal/service"
)

// Seeds a small demo dataset: two teachers, two courses with one group
// each, and ten students enrolled across the groups. Intended for local
// development only.
func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	txRunner := repository.NewTxRunner(pool)
	studentRepo := repository.NewStudentRepository(pool)
	teacherRepo := repository.NewTeacherRepository(pool)
	courseRepo := repository.NewCourseRepository(pool)
	groupRepo := repository.NewGroupRepository(pool)
	enrollmentRepo := repository.NewEnrollmentRepository(pool)
	meetingRepo := repository.NewMeetingRepository(pool)
	attendanceRepo := repository.NewAttendanceRepository(pool)
	gradeRepo := repository.NewGradeRepository(pool)

	studentService := service.NewStudentService(studentRepo, enrollmentRepo, gradeRepo, attendanceRepo, txRunner, log)
	teacherService := service.NewTeacherService(teacherRepo)
	courseService := service.NewCourseService(courseRepo, groupRepo, enrollmentRepo, meetingRepo, gradeRepo, txRunner, log)
	groupService := service.NewGroupService(courseRepo, groupRepo, teacherRepo, enrollmentRepo, meetingRepo, attendanceRepo, txRunner, log)
	enrollmentService := service.NewEnrollmentService(groupRepo, enrollmentRepo, txRunner, log)
	meetingService := service.NewMeetingService(groupRepo, meetingRepo, txRunner)

	fmt.Println("=== Seeding Demo Data ===")

	// Teachers
	turing, err := teacherService.Create(ctx, model.CreateTeacherRequest{
		Name:     "Alan Turing",
		Title:    "Prof.",
		Email:    "turing@example.edu",
		Password: "password123",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create teacher")
	}
	lovelace, err := teacherService.Create(ctx, model.CreateTeacherRequest{
		Name:     "Ada Lovelace",
		Title:    "Dr.",
		Email:    "lovelace@example.edu",
		Password: "password123",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create teacher")
	}
	fmt.Printf("Created teachers: %s (ID %d), %s (ID %d)\n", turing.Name, turing.ID, lovelace.Name, lovelace.ID)

	// Courses with one group each
	type courseSeed struct {
		req       model.CreateCourseRequest
		teacherID int
	}
	seeds := []courseSeed{
		{model.CreateCourseRequest{Code: "CS101", Name: "Introduction to Computer Science", Credits: 6}, turing.ID},
		{model.CreateCourseRequest{Code: "MA201", Name: "Linear Algebra", Credits: 5}, lovelace.ID},
	}

	var groupIDs []int
	for _, seed := range seeds {
		course, err := courseService.Create(ctx, seed.req)
		if err != nil {
			log.Fatal().Err(err).Str("code", seed.req.Code).Msg("Failed to create course")
		}
		teacherID := seed.teacherID
		group, err := groupService.Create(ctx, course.ID, model.CreateGroupRequest{
			GroupNumber: 1,
			MaxCapacity: 30,
			TeacherID:   &teacherID,
		})
		if err != nil {
			log.Fatal().Err(err).Str("code", seed.req.Code).Msg("Failed to create group")
		}
		groupIDs = append(groupIDs, group.ID)
		fmt.Printf("Created course %s with group ID %d\n", course.Code, group.ID)
	}

	// Students, enrolled alternately into the two groups
	for i := 1; i <= 10; i++ {
		student, err := studentService.Create(ctx, model.CreateStudentRequest{
			Name:     fmt.Sprintf("Demo Student %02d", i),
			Email:    fmt.Sprintf("student%02d@example.edu", i),
			Password: "password123",
		})
		if err != nil {
			log.Fatal().Err(err).Int("n", i).Msg("Failed to create student")
		}

		groupID := groupIDs[i%len(groupIDs)]
		if _, err := enrollmentService.Enroll(ctx, student.ID, groupID, false); err != nil {
			log.Fatal().Err(err).Int("student_id", student.ID).Msg("Failed to enroll student")
		}
		fmt.Printf("Created student %s (index %s), enrolled in group %d\n", student.Name, student.IndexNumber, groupID)
	}

	// Weekly meetings for each group
	firstAt := time.Now().Truncate(time.Hour).Add(24 * time.Hour)
	for _, groupID := range groupIDs {
		if _, err := meetingService.DefineMeetings(ctx, groupID, 4, firstAt, []string{"Course overview"}); err != nil {
			log.Fatal().Err(err).Int("group_id", groupID).Msg("Failed to define meetings")
		}
	}
	fmt.Println("Defined 4 weekly meetings per group")

	fmt.Println("\nDone. Log in with any seeded email and password 'password123'.")
}
