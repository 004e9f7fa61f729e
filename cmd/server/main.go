package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/accordo-app/accordo/internal/api"
	"github.com/accordo-app/accordo/internal/app"
	"github.com/accordo-app/accordo/internal/config"
	"github.com/accordo-app/accordo/internal/repository"
	"github.com/accordo-app/accordo/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting accordo server",
		zap.String("environment", cfg.Environment),
		zap.String("port", cfg.Port),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create connection pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	migrator, err := app.NewMigrator(pool, cfg.MigrationsDir)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	migrator.Close()

	// Репозитории
	userRepo := repository.NewUserRepository(pool)
	teacherRepo := repository.NewTeacherRepository(pool)
	instrumentRepo := repository.NewInstrumentRepository(pool)
	slotRepo := repository.NewSlotRepository(pool)
	lessonRepo := repository.NewLessonRepository(pool)
	reviewRepo := repository.NewReviewRepository(pool)

	// Сервисы
	tokenTTL := time.Duration(cfg.TokenTTLMinutes) * time.Minute
	authService := service.NewAuthService(userRepo, teacherRepo, cfg.JWTSecret, tokenTTL, logger)
	availabilityService := service.NewAvailabilityService(slotRepo, teacherRepo, logger)
	bookingService := service.NewBookingService(lessonRepo, teacherRepo, logger)
	reviewService := service.NewReviewService(reviewRepo, lessonRepo, teacherRepo, logger)
	teacherService := service.NewTeacherService(teacherRepo, userRepo, lessonRepo, reviewRepo, logger)
	profileService := service.NewProfileService(userRepo, teacherRepo, logger)
	adminService := service.NewAdminService(userRepo, lessonRepo, logger)

	// Фоновая очистка прошедших слотов
	janitor := app.NewJanitor(availabilityService, logger)
	janitor.Start(ctx)
	defer janitor.Stop()

	router := api.NewRouter(api.RouterDeps{
		Auth:         api.NewAuthHandler(authService),
		Teachers:     api.NewTeacherHandler(teacherService, availabilityService, bookingService),
		Instruments:  api.NewInstrumentHandler(instrumentRepo),
		Profile:      api.NewProfileHandler(profileService, cfg.ImagesDir, logger),
		Availability: api.NewAvailabilityHandler(availabilityService),
		Lessons:      api.NewLessonHandler(bookingService),
		Ratings:      api.NewRatingHandler(reviewService),
		Admin:        api.NewAdminHandler(adminService, cfg.ImagesDir, logger),
		AuthService:  authService,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", zap.Error(err))
	}

	logger.Info("Server stopped")
}
