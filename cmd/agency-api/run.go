package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/rankforge/agency-api/internal/api"
	"github.com/rankforge/agency-api/internal/core/service"
	"github.com/rankforge/agency-api/internal/infrastructure/config"
	mongodb "github.com/rankforge/agency-api/internal/infrastructure/db/mongo"
	redisdb "github.com/rankforge/agency-api/internal/infrastructure/db/redis"
	"github.com/rankforge/agency-api/internal/infrastructure/mail"
	"github.com/rankforge/agency-api/internal/infrastructure/notify"
	"github.com/rankforge/agency-api/internal/job"
)

const (
	tokenTTL        = 24 * time.Hour
	shutdownTimeout = 10 * time.Second
)

// run wires the whole application together and blocks until ctx is cancelled
// or the server fails.
func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- Infrastructure ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}()

	redisClient, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}()

	// --- Repositories ---
	orderRepo := mongodb.NewOrderRepository(db)
	authRepo := mongodb.NewAuthRepository(db)
	postRepo := mongodb.NewPostRepository(db)
	messageRepo := mongodb.NewMessageRepository(db)
	notificationRepo := mongodb.NewNotificationRepository(db)
	settingsRepo := mongodb.NewSettingsRepository(db)

	indexCtx, cancelIndex := context.WithTimeout(ctx, 30*time.Second)
	defer cancelIndex()
	for _, ensure := range []func(context.Context) error{
		orderRepo.EnsureIndexes,
		authRepo.EnsureIndexes,
		postRepo.EnsureIndexes,
		messageRepo.EnsureIndexes,
		notificationRepo.EnsureIndexes,
	} {
		if err := ensure(indexCtx); err != nil {
			return err
		}
	}

	publisher := redisdb.NewPublisher(redisClient)
	mailer := mail.NewConsoleMailer(log)

	// --- Services ---
	notificationSvc := service.NewNotificationService(orderRepo, authRepo, notificationRepo, mailer, publisher, log)

	dispatcher := notify.NewDispatcher(cfg.Notify.Workers, notificationSvc, log)
	dispatcher.Start(ctx)

	orderSvc := service.NewOrderService(orderRepo, dispatcher, publisher, log)
	authSvc := service.NewAuthService(authRepo, cfg.JWTSecret, tokenTTL)
	postSvc := service.NewPostService(postRepo, log)
	chatSvc := service.NewChatService(messageRepo, publisher, log)
	settingsSvc := service.NewSettingsService(settingsRepo, log)

	// --- Background jobs ---
	scheduler := job.NewScheduler(log)
	if cfg.Jobs.PendingReminderSpec != "" {
		reminder := job.NewPendingReminderJob(orderRepo, publisher, log)
		if _, err := scheduler.Register(cfg.Jobs.PendingReminderSpec, reminder); err != nil {
			return err
		}
	}
	scheduler.Start()

	// --- HTTP server ---
	e := api.NewRouter(api.Deps{
		Auth:          authSvc,
		Orders:        orderSvc,
		Posts:         postSvc,
		Chat:          chatSvc,
		Settings:      settingsSvc,
		Notifications: notificationRepo,
		Mongo:         db,
		Redis:         redisClient,
		JWTSecret:     cfg.JWTSecret,
		Logger:        log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	<-scheduler.Stop().Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info().Msg("server exited cleanly")
	return nil
}
