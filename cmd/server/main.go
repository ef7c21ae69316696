package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/studrec/studentrecords-backend/internal/config"
	"github.com/studrec/studentrecords-backend/internal/database"
	"github.com/studrec/studentrecords-backend/internal/handler"
	"github.com/studrec/studentrecords-backend/internal/logger"
	"github.com/studrec/studentrecords-backend/internal/repository"
	"github.com/studrec/studentrecords-backend/internal/router"
	"github.com/studrec/studentrecords-backend/internal/service"
	"github.com/studrec/studentrecords-backend/internal/validator"
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
		Msg("Starting Student Records Backend")

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
	studentRepo := repository.NewStudentRepository(pool)
	attendanceRepo := repository.NewAttendanceRepository(pool)
	marksRepo := repository.NewMarksRepository(pool)
	exportRepo := repository.NewExportRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	rosterCache := service.NewRosterCache(rdb, cfg.StudentCacheTTL, log)
	studentService := service.NewStudentService(studentRepo, attendanceRepo, marksRepo, rosterCache, log)
	attendanceService := service.NewAttendanceService(attendanceRepo, studentRepo, rosterCache, log)
	marksService := service.NewMarksService(marksRepo, studentRepo, rosterCache, log)
	exportService := service.NewExportService(exportRepo, attendanceRepo, marksRepo, studentRepo, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Student:    handler.NewStudentHandler(studentService, log),
		Attendance: handler.NewAttendanceHandler(attendanceService, log),
		Marks:      handler.NewMarksHandler(marksService, log),
		Export:     handler.NewExportHandler(exportService, log),
		System:     handler.NewSystemHandler(),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(handlers, cfg)

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
