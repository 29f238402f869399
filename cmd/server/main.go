package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jylee2/exercise-tracker/internal"
	"github.com/jylee2/exercise-tracker/internal/api"
	"github.com/jylee2/exercise-tracker/internal/config"
	"github.com/jylee2/exercise-tracker/internal/storage"
)

type serverApp struct {
	logger internal.Logger
	users  storage.UserRepository
}

func (a *serverApp) Logger() internal.Logger       { return a.logger }
func (a *serverApp) Users() storage.UserRepository { return a.users }

var _ api.App = (*serverApp)(nil)

func main() {
	cfg := config.Load()

	logger, err := internal.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	if cfg.DBType == "file" {
		if err := os.MkdirAll(filepath.Dir(cfg.UsersFile), 0755); err != nil {
			logger.Fatalf("failed to create data dir: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	users, err := storage.NewRepository(ctx, cfg, logger)
	cancel()
	if err != nil {
		logger.Fatalf("failed to init storage: %v", err)
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(api.RequestIDMiddleware())
	r.Use(api.RequestLogger(logger))

	app := &serverApp{logger: logger, users: users}
	r.POST("/api/exercise/new-user", api.PostUser(app))
	r.GET("/api/exercise/users", api.GetUsers(app))
	r.POST("/api/exercise/add", api.PostExercise(app))
	r.GET("/api/exercise/log", api.GetLog(app))

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Infof("server listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("server shutdown: %v", err)
	}
	if err := users.Close(shutdownCtx); err != nil {
		logger.Errorf("storage close: %v", err)
	}
}
