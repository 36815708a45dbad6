package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hangout/backend/internal/auth"
	"hangout/backend/internal/config"
	"hangout/backend/internal/database"
	"hangout/backend/internal/handler"
	"hangout/backend/internal/hub"
	"hangout/backend/internal/service"
	"hangout/backend/internal/storage"
	"hangout/backend/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	// Swagger imports
	_ "hangout/backend/docs" // This is important for swag to find the generated docs
)

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	config.LoadConfig()

	if level, err := zerolog.ParseLevel(config.AppConfig.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}
}

// @title           Hangout API
// @version         1.0
// @description     Activity coordination between friends and previous connections.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.AppConfig
	if cfg.AuthMode == config.AuthModeDev {
		log.Warn().Str("user_id", cfg.DevUserID).Msg("AUTH_MODE=dev: every request is authenticated as the dev user")
	} else if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	db := database.Connect(cfg.DatabaseURL)
	defer func() {
		if err := database.Close(); err != nil {
			log.Error().Err(err).Msg("close database")
		}
	}()

	rdb := database.ConnectRedis(cfg.RedisURL, cfg.RedisPassword, cfg.RedisDB)
	defer func() {
		if err := database.CloseRedis(); err != nil {
			log.Error().Err(err).Msg("close redis")
		}
	}()

	loc := cfg.Location()
	now := func() time.Time { return time.Now().In(loc) }

	events := hub.NewHub()
	st := store.New(db)

	feed := service.NewFeedService(st, now)
	activities := service.NewActivityService(db, st, now)
	responses := service.NewResponseService(db, st)
	responses.SetPublisher(events)
	authService := service.NewAuthService(db, service.NewRedisCodeStore(rdb), service.LogSender{},
		[]byte(cfg.JWTSecret), cfg.OTPTTL())

	var avatars *handler.AvatarHandler
	if cfg.AvatarsEnabled() {
		bucket := storage.NewBucket(storage.Options{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			PublicURL:       cfg.S3PublicURL,
		})
		avatars = handler.NewAvatarHandler(service.NewAvatarService(st, bucket, now))
		log.Info().Str("bucket", cfg.S3Bucket).Msg("avatar uploads enabled")
	}

	router := handler.Router(handler.RouterOptions{
		Provider:       auth.NewProvider(cfg),
		AllowedOrigins: cfg.Origins(),
		DB:             db,
		Auth:           handler.NewAuthHandler(authService, gin.Mode() == gin.ReleaseMode),
		Users:          handler.NewUserHandler(service.NewUserService(db), service.NewDiscoverService(db, st)),
		Friends:        handler.NewFriendHandler(service.NewFriendshipService(db)),
		Activities:     handler.NewActivityHandler(feed, activities, responses, events, now),
		Statuses:       handler.NewStatusHandler(service.NewStatusService(db, st, now)),
		Avatars:        avatars,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server is running")
		log.Info().Msgf("Swagger UI is available at http://localhost:%s/swagger/index.html", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown server")
	}
}
