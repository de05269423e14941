package routes

import (
	"net/http"
	"slices"
	"time"

	"corretor/config"
	"corretor/middlewares"
	"corretor/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Deps are the collaborators the router needs. RateLimiter is optional.
type Deps struct {
	Config      *config.Config
	Analyzer    Analyzer
	Logger      *zap.Logger
	RateLimiter *middlewares.RateLimiter
	Version     string
}

// SetupRouter builds the gin engine with every route and middleware.
func SetupRouter(d Deps) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true

	router.Use(
		middlewares.RequestID(),
		middlewares.Logger(d.Logger),
		middlewares.Recovery(d.Logger),
		cors.New(corsConfig(d.Config.CORS)),
	)
	router.NoMethod(MethodNotAllowed)

	router.GET("/health", NewHealthHandler(d.Version).Live)

	analyze := NewAnalyzeHandler(d.Analyzer, d.Config.Server.MaxBodyBytes, d.Logger)
	submit := []gin.HandlerFunc{analyze.Analyze}
	if d.RateLimiter != nil {
		submit = append([]gin.HandlerFunc{d.RateLimiter.Middleware()}, submit...)
	}

	api := router.Group("/api")
	{
		api.POST("/analyze", submit...)
		api.OPTIONS("/analyze", analyze.Preflight)
	}

	web.Register(router)

	return router
}

func corsConfig(cfg config.CORSConfig) cors.Config {
	c := cors.Config{
		AllowMethods:              config.Split(cfg.AllowedMethods),
		AllowHeaders:              config.Split(cfg.AllowedHeaders),
		MaxAge:                    12 * time.Hour,
		OptionsResponseStatusCode: http.StatusOK,
	}
	origins := config.Split(cfg.AllowedOrigins)
	if len(origins) == 0 || slices.Contains(origins, "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return c
}
