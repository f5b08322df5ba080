// Command classroom-api serves the course and discussion API.
//
// @title       Campus Classroom API
// @version     1.0
// @description Accounts, courses, enrollments, discussions and posts for course sites.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/campusworks/campus-api/docs"
	"github.com/campusworks/campus-api/internal/api"
	"github.com/campusworks/campus-api/internal/core/service"
	"github.com/campusworks/campus-api/internal/infrastructure/config"
	mongodb "github.com/campusworks/campus-api/internal/infrastructure/db/mongo"
	"github.com/campusworks/campus-api/internal/pkg/token"
	"github.com/campusworks/campus-api/pkg/logger"
)

const defaultTokenTTL = 24 * time.Hour

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ttl := cfg.JWT.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	codec, err := token.NewCodec(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience, ttl)
	if err != nil {
		log.Fatal().Err(err).Msg("token codec")
	}

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	userRepo := mongodb.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user indexes")
	}
	courseRepo := mongodb.NewCourseRepository(db)
	enrollmentRepo := mongodb.NewEnrollmentRepository(db)
	if err := enrollmentRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("enrollment indexes")
	}
	discussionRepo := mongodb.NewDiscussionRepository(db)
	postRepo := mongodb.NewPostRepository(db)

	e := api.NewClassroomRouter(api.Deps{
		Logger:      log,
		Codec:       codec,
		Mongo:       db,
		Auth:        service.NewAuthService(userRepo, codec, nil, log),
		Users:       service.NewUserService(userRepo, nil, log),
		Courses:     service.NewCourseService(courseRepo, log),
		Enrollments: service.NewEnrollmentService(enrollmentRepo, courseRepo, userRepo, log),
		Discussions: service.NewDiscussionService(discussionRepo, enrollmentRepo, log),
		Posts:       service.NewPostService(postRepo, discussionRepo, log),
	})

	go func() {
		log.Info().Str("port", cfg.Port).Dur("token_ttl", ttl).Msg("classroom-api listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
	log.Info().Msg("classroom-api stopped")
}
