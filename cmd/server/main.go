package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	glog "github.com/labstack/gommon/log"

	"github.com/timelazy/timelazy-server/internal/config"
	"github.com/timelazy/timelazy-server/internal/database"
	"github.com/timelazy/timelazy-server/internal/handler"
	"github.com/timelazy/timelazy-server/internal/middleware"
	"github.com/timelazy/timelazy-server/internal/queue"
	"github.com/timelazy/timelazy-server/internal/repository"
	"github.com/timelazy/timelazy-server/internal/router"
	"github.com/timelazy/timelazy-server/internal/service"
	"github.com/timelazy/timelazy-server/internal/timetable"
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()
	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	rdb := config.NewRedisClient(config.LoadRedisConfig())
	if rdb != nil {
		defer rdb.Close()
	}
	cacheCfg := config.LoadCacheConfig()

	classrooms := repository.NewClassroomRepo(db)
	exams := repository.NewExamRepo(db)

	var events handler.EventPublisher
	if cfg.Queue.Publish {
		events = service.NewPublisher(cfg.Queue.URL)
	}
	var purger handler.CachePurger
	if rdb != nil && cacheCfg.Enabled {
		purger = middleware.NewCachePurger(cacheCfg, rdb)
	}
	if cfg.Queue.Consume {
		go func() {
			if err := queue.StartSeatingConsumer(ctx, cfg.Queue.URL, cfg.Queue.LogDir); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("consumer stopped: %v", err)
			}
		}()
	}

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(logLevel(cfg.LogLevel))
	e.Validator = handler.NewValidator()
	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogStatus:    true,
		LogMethod:    true,
		LogURI:       true,
		LogRequestID: true,
		LogLatency:   true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			if v.Error != nil {
				log.Printf("%s %s %s %d %s err=%v", v.RequestID, v.Method, v.URI, v.Status, v.Latency, v.Error)
				return nil
			}
			log.Printf("%s %s %s %d %s", v.RequestID, v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))

	router.RegisterRoutes(e)
	router.RegisterAdmin(e, router.Admin{
		JWTSecret:  cfg.JWTSecret,
		Redis:      rdb,
		Cache:      cacheCfg,
		RateLimit:  config.LoadRateLimitConfig(),
		Classrooms: handler.NewClassroomHandler(classrooms),
		Seating:    handler.NewSeatingHandler(classrooms, exams, events, purger, cfg.Seating),
		Timetables: handler.NewTimetableHandler(timetable.NewClient(cfg.Solver.URL, cfg.Solver.Timeout)),
	})

	addr := ":" + cfg.Port
	go func() {
		log.Printf("listening on %s (env=%s)", addr, cfg.Env)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

func logLevel(s string) glog.Lvl {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return glog.DEBUG
	case "WARN":
		return glog.WARN
	case "ERROR":
		return glog.ERROR
	case "OFF":
		return glog.OFF
	default:
		return glog.INFO
	}
}
