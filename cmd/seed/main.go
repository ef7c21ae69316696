package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/studrec/studentrecords-backend/internal/config"
	"github.com/studrec/studentrecords-backend/internal/database"
	"github.com/studrec/studentrecords-backend/internal/logger"
	"github.com/studrec/studentrecords-backend/internal/model"
	"github.com/studrec/studentrecords-backend/internal/repository"
	"github.com/studrec/studentrecords-backend/internal/service"
)

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

	studentRepo := repository.NewStudentRepository(pool)
	attendanceRepo := repository.NewAttendanceRepository(pool)
	marksRepo := repository.NewMarksRepository(pool)

	// Seed runs without Redis; a nil cache disables invalidation.
	studentService := service.NewStudentService(studentRepo, attendanceRepo, marksRepo, nil, log)
	attendanceService := service.NewAttendanceService(attendanceRepo, studentRepo, nil, log)
	marksService := service.NewMarksService(marksRepo, studentRepo, nil, log)

	names := []string{
		"Aarav Sharma", "Diya Patel", "Rohan Mehta", "Ananya Iyer", "Kabir Singh",
		"Ishita Nair", "Arjun Reddy", "Sneha Kulkarni", "Vikram Joshi", "Priya Desai",
	}

	fmt.Printf("=== Seeding %d Students ===\n", len(names))

	rng := rand.New(rand.NewSource(42))
	seeded := 0

	for i, name := range names {
		roll := fmt.Sprintf("R%03d", i+1)
		email := strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.edu"

		student, err := studentService.Register(ctx, model.CreateStudentRequest{
			Name:  name,
			Roll:  roll,
			Email: email,
		})
		if err != nil {
			if errors.Is(err, repository.ErrDuplicateStudent) {
				fmt.Printf("Student %s (%s) already exists, skipping\n", name, roll)
				continue
			}
			log.Fatal().Err(err).Str("roll", roll).Msg("Failed to create student")
		}
		seeded++

		// Last 20 school days of attendance, roughly 85% present.
		for d := 0; d < 20; d++ {
			date := time.Now().AddDate(0, 0, -d).Format("2006-01-02")
			status := model.StatusPresent
			if rng.Float64() < 0.15 {
				status = model.StatusAbsent
			}
			if _, err := attendanceService.Mark(ctx, model.CreateAttendanceRequest{
				StudentID: student.ID.String(),
				Date:      date,
				Status:    status,
			}); err != nil {
				log.Fatal().Err(err).Str("roll", roll).Msg("Failed to mark attendance")
			}
		}

		// One internal exam result per subject.
		for _, subject := range model.Subjects {
			score := 40 + rng.Float64()*60
			total := 100.0
			if _, err := marksService.Record(ctx, model.CreateMarkRequest{
				StudentID: student.ID.String(),
				Subject:   subject,
				Score:     &score,
				Total:     &total,
				ExamType:  model.ExamInternal,
				ExamDate:  time.Now().AddDate(0, 0, -7).Format("2006-01-02"),
			}); err != nil {
				log.Fatal().Err(err).Str("roll", roll).Msg("Failed to record marks")
			}
		}

		fmt.Printf("Seeded %s (%s) with attendance and marks\n", name, roll)
	}

	fmt.Printf("\nSeed completed! Added %d/%d students.\n", seeded, len(names))
}
