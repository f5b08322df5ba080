// Command chat-api serves the direct messaging API.
//
// @title       Campus Chat API
// @version     1.0
// @description Accounts, presence and direct messages.
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
	redisdb "github.com/campusworks/campus-api/internal/infrastructure/db/redis"
	"github.com/campusworks/campus-api/internal/pkg/token"
	"github.com/campusworks/campus-api/pkg/logger"
)

// Chat sessions are long-lived; tokens default to a week.
const defaultTokenTTL = 7 * 24 * time.Hour

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

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis")
	}
	defer func() { _ = rdb.Close() }()

	userRepo := mongodb.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user indexes")
	}
	messageRepo := mongodb.NewMessageRepository(db)
	messageReadRepo := mongodb.NewMessageReadRepository(db)
	if err := messageReadRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("message read indexes")
	}
	presence := redisdb.NewPresenceTracker(rdb)

	e := api.NewChatRouter(api.Deps{
		Logger:   log,
		Codec:    codec,
		Mongo:    db,
		Redis:    rdb,
		Auth:     service.NewAuthService(userRepo, codec, presence, log),
		Users:    service.NewUserService(userRepo, presence, log),
		Messages: service.NewMessageService(messageRepo, messageReadRepo, log),
	})

	go func() {
		log.Info().Str("port", cfg.Port).Dur("token_ttl", ttl).Msg("chat-api listening")
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
	log.Info().Msg("chat-api stopped")
}
