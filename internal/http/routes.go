package http

import (
	"codebreak/internal/config"
	"codebreak/internal/http/handlers"
	"codebreak/internal/http/middleware"
	"codebreak/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RegisterRoutes mounts the API on r. db is only used by the health
// endpoints; everything else goes through the session service.
func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, sessions *service.SessionService, version string, cfg *config.Config) {
	h := handlers.NewHandler(sessions)
	healthHandler := handlers.NewHealthHandler(db, version)

	// Health checks bypass rate limiting.
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	v1 := r.Group("/api/v1")
	if cfg != nil {
		v1.Use(middleware.RedisRateLimit(cfg.APIRateLimit, cfg.APIRateWindow))
	}
	registerAPIRoutes(v1, h)
}

func registerAPIRoutes(api *gin.RouterGroup, h *handlers.Handler) {
	api.POST("/users", h.CreateUser)
	api.POST("/games", h.CreateGame)
	api.POST("/games/:key/join", h.JoinGame)
	api.POST("/games/:key/guess", h.SubmitGuess)
	api.GET("/leaderboard", h.Leaderboard)
}
