// Package router registers the HTTP routes and their middleware.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/timelazy/timelazy-server/internal/config"
	"github.com/timelazy/timelazy-server/internal/handler"
	"github.com/timelazy/timelazy-server/internal/middleware"
	"github.com/timelazy/timelazy-server/internal/utils"
)

// RegisterRoutes registers routes that need no authentication.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// Admin bundles what the /v1 routes need. Redis may be nil, which turns
// caching and rate limiting off.
type Admin struct {
	JWTSecret  string
	Redis      *redis.Client
	Cache      config.CacheConfig
	RateLimit  config.RateLimitConfig
	Classrooms *handler.ClassroomHandler
	Seating    *handler.SeatingHandler
	Timetables *handler.TimetableHandler
}

// RegisterAdmin registers the admin API under /v1. Every route requires an
// ADMIN access token. Generation endpoints share one token bucket per
// admin and route; regenerated exam plans are served from Redis.
func RegisterAdmin(e *echo.Echo, a Admin) {
	v1 := e.Group("/v1", middleware.JWTAuth(a.JWTSecret), middleware.RequireRole(utils.RoleAdmin))
	limit := middleware.NewTokenBucket(a.RateLimit, a.Redis)
	cache := middleware.NewRedisCache(a.Cache, a.Redis)

	v1.GET("/classrooms", a.Classrooms.List)
	v1.POST("/classrooms", a.Classrooms.Create)
	v1.PUT("/classrooms/:id", a.Classrooms.Update)
	v1.DELETE("/classrooms/:id", a.Classrooms.Delete)

	v1.POST("/seating/check", a.Seating.Check)
	v1.POST("/seating/generate", a.Seating.Generate, limit)
	v1.POST("/seating/export", a.Seating.Export, limit)

	v1.POST("/exams", a.Seating.CreateExam)
	v1.GET("/exams", a.Seating.ListExams)
	v1.GET("/exams/:id", a.Seating.GetExam)
	v1.DELETE("/exams/:id", a.Seating.DeleteExam)
	v1.GET("/exams/:id/seating", a.Seating.ExamSeating, cache)
	v1.GET("/exams/:id/report.xlsx", a.Seating.ExamReport, limit)

	v1.POST("/timetables/generate", a.Timetables.Generate, limit)
	v1.POST("/timetables/export", a.Timetables.Export)
}
