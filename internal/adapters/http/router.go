package http

import (
	"context"
	"net/http"
	"slices"

	"github.com/dkeye/Dicecells/internal/adapters/signal"
	"github.com/dkeye/Dicecells/internal/app/orch"
	"github.com/dkeye/Dicecells/internal/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}
	if slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

func SetupRouter(ctx context.Context, cfg *config.Config, o *orch.Orchestrator) *gin.Engine {
	if cfg.Mode == config.ModeRelease {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == config.ModeDebug {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())
	if origins := cfg.AllowedOrigins(); len(origins) > 0 {
		r.Use(corsMiddleware(origins))
	}

	log.Info().Str("module", "adapters.http").Strs("origins", cfg.AllowedOrigins()).Msg("router setup")

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	api := r.Group("/api")

	api.GET("/rooms", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"rooms": o.Rooms.List()})
	})

	ctrl := signal.NewSignalWSController(o, cfg)
	api.GET("/ws", func(c *gin.Context) {
		log.Debug().Str("module", "adapters.http").Str("remote", c.ClientIP()).Msg("ws endpoint hit")
		ctrl.HandleSignal(ctx, c)
	})

	return r
}
