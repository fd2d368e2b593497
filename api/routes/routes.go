package routes

import (
	"highscores/api/handlers"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Router struct {
	engine *gin.Engine
	api    *gin.RouterGroup
}

func NewRouter(engine *gin.Engine) *Router {
	return &Router{
		api:    engine.Group("/api/v1"),
		engine: engine,
	}
}

func (r *Router) SetupRoutes(handlerList ...any) {
	for _, h := range handlerList {
		switch handler := h.(type) {
		case *handlers.LeaderboardHandler:
			r.registerLeaderboardHandler(handler)
		case http.Handler:
			r.registerMetricsHandler(handler)
		}
	}
}

// Register the leaderboard handler.
func (r *Router) registerLeaderboardHandler(handler *handlers.LeaderboardHandler) {
	leaderboard := r.api.Group("/leaderboard")
	{
		leaderboard.GET("", handler.GetLocalHighScores)
	}
}

// Expose the Prometheus collectors.
func (r *Router) registerMetricsHandler(handler http.Handler) {
	r.engine.GET("/metrics", gin.WrapH(handler))
}

// Start the router.
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}
