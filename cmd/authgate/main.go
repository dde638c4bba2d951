package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/authgate/authgate/internal/application/auth"
	"github.com/authgate/authgate/internal/application/ports"
	"github.com/authgate/authgate/internal/config"
	infraauth "github.com/authgate/authgate/internal/infrastructure/auth"
	httprouter "github.com/authgate/authgate/internal/infrastructure/http"
	"github.com/authgate/authgate/internal/infrastructure/http/handlers"
	"github.com/authgate/authgate/internal/infrastructure/http/middleware"
	"github.com/authgate/authgate/internal/infrastructure/mail"
	"github.com/authgate/authgate/internal/infrastructure/persistence/mongodb"
	"github.com/authgate/authgate/internal/infrastructure/queue"
	"github.com/authgate/authgate/internal/infrastructure/security"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx := context.Background()
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()
	if err := mongoClient.Ping(ctx, readpref.Primary()); err != nil {
		log.Fatal().Err(err).Msg("ping database")
	}

	userRepo := mongodb.NewUserRepository(mongoClient.Database(cfg.Mongo.Database))
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("ensure indexes")
	}

	var redisClient *redis.Client
	var redisOpt *redis.Options
	if cfg.Redis.URL != "" {
		opt, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("parse REDIS_URL")
		}
		redisOpt = opt
		redisClient = redis.NewClient(opt)
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("redis ping failed; continuing without redis")
			redisClient = nil
		}
	}

	mailer := mail.NewMailtrapClient(cfg.Mail.Token, cfg.Mail.SenderEmail, cfg.Mail.SenderName)

	var enqueuer ports.TaskEnqueuer
	var worker *queue.Worker
	if redisClient != nil {
		asynqOpt := asynq.RedisClientOpt{Addr: redisOpt.Addr, Password: redisOpt.Password, DB: redisOpt.DB}
		asynqEnq := queue.NewAsynqEnqueuer(asynqOpt, log)
		defer asynqEnq.Close()
		enqueuer = asynqEnq
		worker = queue.NewWorker(asynqOpt, mailer, log)
		go func() {
			if err := worker.Run(); err != nil {
				log.Warn().Err(err).Msg("asynq worker stopped")
			}
		}()
	} else {
		enqueuer = queue.NewInlineEnqueuer(mailer, log)
	}

	hasher := security.NewBcryptHasher()
	issuer := infraauth.NewSessionIssuer(
		[]byte(cfg.Session.Secret),
		cfg.Session.Issuer,
		time.Duration(cfg.Session.Expiry)*time.Second,
	)

	registerUC := auth.NewRegister(userRepo, hasher, issuer, enqueuer)
	loginUC := auth.NewLogin(userRepo, hasher, issuer)
	verifyEmailUC := auth.NewVerifyEmail(userRepo, enqueuer)
	forgotPasswordUC := auth.NewForgotPassword(userRepo, enqueuer, cfg.Client.URL)
	resetPasswordUC := auth.NewResetPassword(userRepo, hasher, enqueuer)
	checkAuthUC := auth.NewCheckAuth(userRepo)

	authHandler := handlers.NewAuthHandler(registerUC, loginUC, verifyEmailUC, forgotPasswordUC, resetPasswordUC, checkAuthUC, !cfg.Server.IsDevelopment, log)
	healthHandler := handlers.NewHealthHandler(mongoClient, redisClient)
	requireSession := middleware.NewSessionValidator(issuer).Handler
	secureMiddleware := middleware.NewSecure(middleware.SecureOptions(cfg.Server.IsDevelopment))
	corsMiddleware := middleware.CORS([]string{cfg.Client.URL})

	router := httprouter.NewRouter(httprouter.RouterConfig{
		AuthHandler:    authHandler,
		HealthHandler:  healthHandler,
		RequireSession: requireSession,
		Log:            log,
		Secure:         secureMiddleware,
		CORS:           corsMiddleware,
		Metrics:        true,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	if worker != nil {
		worker.Shutdown()
	}
	log.Info().Msg("server stopped")
}
