package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cinechat/backend/internal/api/handler"
	"cinechat/backend/internal/auth"
	"cinechat/backend/internal/chathub"
	"cinechat/backend/internal/config"
	"cinechat/backend/internal/models"
	"cinechat/backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies(cfg config.Config, logger *zap.SugaredLogger) (*gorm.DB, *redis.Client) {
	db, err := gorm.Open(postgres.Open(cfg.PostgresDSN), &gorm.Config{})
	if err != nil {
		logger.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		logger.Fatalf("Failed to connect Redis: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Chat{}); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}

	logger.Info("Database and Redis connections established, migrations complete")
	return db, rdb
}

func main() {
	zlog, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("zap.NewProduction: %v", err)
	}
	defer zlog.Sync()
	sugar := zlog.Sugar()

	cfg, err := config.Load()
	if err != nil {
		sugar.Fatalf("Cannot parse env config: %v", err)
	}

	db, rdb := setupDependencies(cfg, sugar)
	s := storage.NewStorageService(db, rdb, sugar)

	hub := chathub.NewManagerService(s, sugar)
	go hub.Run()

	tokens := auth.NewJWT(cfg.JWTSecret, cfg.TokenTTL)

	h := handler.NewHandler(hub, s, tokens, sugar)
	h.VerifyTimeout = cfg.VerifyTimeout

	r := gin.Default()
	r.GET("/health", h.Health)
	r.POST("/auth/token", h.IssueToken)
	r.GET("/ws", h.ServeWebSocket)

	members := r.Group("/members", h.AuthRequired())
	members.GET("/chats", h.GetChats)
	members.GET("/receiver/:chatId", h.GetReceiverProfile)
	members.GET("/users/:userId", h.GetUser)
	members.PUT("/profile", h.UpdateProfile)

	server := &http.Server{
		Addr:           cfg.ListenAddr(),
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		sugar.Infof("Starting HTTP server on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalf("ListenAndServe: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	sugar.Info("Shutting down HTTP server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		sugar.Errorf("server.Shutdown: %v", err)
	}

	hub.Stop()
	sugar.Info("Server exiting")
}
