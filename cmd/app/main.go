package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codebreak/internal/cache"
	"codebreak/internal/config"
	"codebreak/internal/db"
	httpServer "codebreak/internal/http"
	"codebreak/internal/http/middleware"
	"codebreak/internal/logger"
	"codebreak/internal/repository"
	"codebreak/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var version = "dev"

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)

	dbPool := db.Connect(cfg.DatabaseURL)
	defer dbPool.Close()

	lb := cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.LeaderboardTTL)
	middleware.SetRedisClient(lb.Client())

	sessions := service.NewSessionService(
		repository.NewUserRepository(dbPool),
		repository.NewGameRepository(dbPool),
		lb,
	)

	r := gin.Default()
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	httpServer.RegisterRoutes(r, dbPool, sessions, version, cfg)

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
