package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fittrack/config"
	"fittrack/controllers"
	"fittrack/routes"
	"fittrack/services"
	"fittrack/storage"
	"fittrack/utils"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", slog.Any("error", err))
		os.Exit(1)
	}
	log := config.NewLogger(os.Stdout, cfg.LogFormat, cfg.LogLevel)
	slog.SetDefault(log)
	gin.SetMode(cfg.GinMode)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	integrations, err := loadIntegrations(ctx, cfg, log)
	if err != nil {
		return err
	}

	opts := services.Options{
		StoreTimeout: cfg.StoreTimeout,
		Defaults: services.GoalDefaults{
			TargetCalories: cfg.DefaultTargetCalories,
			TargetProtein:  cfg.DefaultTargetProtein,
			TargetWorkouts: cfg.DefaultTargetWorkouts,
		},
		Location: cfg.Location(),
		Logger:   log,
	}

	hub := services.NewRealtimeHub()
	var pusher services.Pusher
	if integrations.push != nil {
		pusher = integrations.push
	}
	bus := services.NewAlertBus(hub, pusher, log)

	secret := []byte(cfg.JWTSecret)
	h := routes.Controllers{
		Users:     controllers.NewUserController(services.NewUserService(store, opts, integrations.mailer, integrations.images), secret, cfg.TokenTTL),
		Metrics:   controllers.NewMetricsController(services.NewMetricsService(store, opts)),
		Meals:     controllers.NewMealController(services.NewMealService(store, opts, bus), services.NewRecognitionService(store, opts, integrations.labels), cfg.Location()),
		Workouts:  controllers.NewWorkoutController(services.NewWorkoutService(store, opts)),
		Goals:     controllers.NewDailyGoalController(services.NewGoalService(store, opts)),
		Dashboard: controllers.NewDashboardController(services.NewDashboardService(store, opts)),
		Realtime:  controllers.NewRealtimeController(hub),
	}
	if len(secret) == 0 {
		log.Warn("JWT_SECRET not set, API is unauthenticated")
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      routes.SetupRouter(h, log, secret),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", slog.String("addr", srv.Addr), slog.String("store", cfg.StoreDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	log.Info("server exited")
	return nil
}

func openStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (storage.Store, func(), error) {
	sopts := storage.Options{Location: cfg.Location()}

	var (
		store   storage.Store
		closeFn = func() {}
	)
	if cfg.StoreDriver == config.DriverMemory {
		store = storage.NewMemoryStore(sopts)
	} else {
		db, err := config.OpenDB(cfg, log)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("database handle: %w", err)
		}
		closeFn = func() { _ = sqlDB.Close() }
		store = storage.NewGormStore(db, sopts)
	}

	if cfg.SeedData {
		if err := storage.Seed(ctx, store); err != nil {
			closeFn()
			return nil, nil, err
		}
		log.Info("seed data loaded", slog.String("user_id", storage.DemoUserID))
	}
	return store, closeFn, nil
}

// integrations holds the optional AWS-backed features; nil means disabled.
type integrations struct {
	images services.ImageStore
	mailer services.Mailer
	labels services.LabelSource
	push   *services.PushService
}

func loadIntegrations(ctx context.Context, cfg *config.Config, log *slog.Logger) (integrations, error) {
	var out integrations
	if cfg.S3Bucket == "" && cfg.SESEmail == "" && cfg.SNSTopicARN == "" && !cfg.RekognitionEnabled {
		return out, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return out, fmt.Errorf("load AWS config: %w", err)
	}

	if cfg.S3Bucket != "" {
		client := s3.NewFromConfig(awsCfg, func(o *s3.Options) { o.Region = cfg.S3Region })
		up, err := utils.NewImageUploader(client, cfg.S3Bucket, cfg.CloudFrontURL, cfg.S3Region)
		if err != nil {
			return out, err
		}
		out.images = up
	}
	if cfg.SESEmail != "" {
		m, err := utils.NewSESMailer(ses.NewFromConfig(awsCfg), cfg.SESEmail)
		if err != nil {
			return out, err
		}
		out.mailer = m
	}
	if cfg.SNSTopicARN != "" {
		p, err := services.NewPushService(sns.NewFromConfig(awsCfg), cfg.SNSTopicARN)
		if err != nil {
			return out, err
		}
		out.push = p
	}
	if cfg.RekognitionEnabled {
		out.labels = utils.NewRekognitionDetector(rekognition.NewFromConfig(awsCfg))
	}

	log.Info("AWS integrations",
		slog.String("region", awsCfg.Region),
		slog.Bool("s3", out.images != nil),
		slog.Bool("ses", out.mailer != nil),
		slog.Bool("sns", out.push != nil),
		slog.Bool("rekognition", out.labels != nil),
	)
	return out, nil
}
