package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/studrec/studentrecords-backend/internal/config"
	"github.com/studrec/studentrecords-backend/internal/handler"
	"github.com/studrec/studentrecords-backend/internal/middleware"
	"github.com/studrec/studentrecords-backend/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Student    *handler.StudentHandler
	Attendance *handler.AttendanceHandler
	Marks      *handler.MarksHandler
	Export     *handler.ExportHandler
	System     *handler.SystemHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(handlers *Handlers, cfg *config.Config) *gin.Engine {
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
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "Content-Disposition"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally for log correlation.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", handlers.System.Health)

	api := router.Group("/api")
	{
		api.GET("/ping", handlers.System.Ping)

		// ─── Students ──────────────────────────────────────────────────
		students := api.Group("/students")
		{
			students.POST("", handlers.Student.Create)
			students.GET("", handlers.Student.List)
			students.DELETE("/:id", handlers.Student.Delete)
			// Legacy embedded-view upserts; they write the normalized
			// collections and return the projected student.
			students.PUT("/attendance", handlers.Student.MarkAttendance)
			students.PUT("/marks", handlers.Student.UpsertMark)
		}

		// ─── Attendance ────────────────────────────────────────────────
		attendance := api.Group("/attendance")
		{
			attendance.POST("", handlers.Attendance.Mark)
			attendance.GET("", handlers.Attendance.List)
			attendance.GET("/student/:studentId", handlers.Attendance.ListByStudent)
			attendance.GET("/date/:date", handlers.Attendance.ListByDate)
			attendance.PUT("/:id", handlers.Attendance.Update)
			attendance.DELETE("/:id", handlers.Attendance.Delete)
		}

		// ─── Marks ─────────────────────────────────────────────────────
		marks := api.Group("/marks")
		{
			marks.POST("", handlers.Marks.Record)
			marks.GET("", handlers.Marks.List)
			marks.GET("/student/:studentId", handlers.Marks.ListByStudent)
			marks.GET("/subject/:subject", handlers.Marks.ListBySubject)
			marks.PUT("/:id", handlers.Marks.Update)
			marks.DELETE("/:id", handlers.Marks.Delete)
		}

		// ─── Export (rate limited, reports run synchronously) ──────────
		exportLimiter := middleware.NewRateLimiter(cfg.ExportRatePerMin, time.Minute)
		export := api.Group("/export")
		export.Use(exportLimiter.Middleware())
		{
			export.POST("/attendance", handlers.Export.Attendance)
			export.POST("/marks", handlers.Export.Marks)
			export.POST("/performance/:studentId", handlers.Export.Performance)
			export.GET("/history", handlers.Export.History)
			export.GET("/:id", handlers.Export.Get)
		}
	}

	return router
}
