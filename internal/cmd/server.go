package main

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"github.com/RomanSlack/Orchestrator-Arena/internal/auth"
)

func setupServer(services *Services, config *Config, jwtSecret, cronSecret string) *http.Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	setupHealthCheck(engine)
	registerServices(engine, services, jwtSecret, cronSecret)

	// Setup CORS middleware
	c := cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
		},
		AllowedOrigins: config.Server.AllowedOrigins,
		AllowedHeaders: []string{"*"},
	})

	return &http.Server{
		Addr:    fmt.Sprintf(":%s", config.Server.Port),
		Handler: c.Handler(engine),
	}
}

func registerServices(engine *gin.Engine, services *Services, jwtSecret, cronSecret string) {
	services.Profile.RegisterRoutes(engine)

	public := engine.Group("/api")
	authed := engine.Group("/api")
	authed.Use(auth.Middleware(jwtSecret))

	services.Competition.RegisterRoutes(public, authed)
	services.Participant.RegisterRoutes(authed)
	services.Submission.RegisterRoutes(public, authed)
	services.Vote.RegisterRoutes(public, authed)
	services.Github.RegisterRoutes(authed)

	cron := engine.Group("/api/cron")
	cron.Use(auth.CronMiddleware(cronSecret))
	services.Reconciler.RegisterRoutes(cron)
}

func setupHealthCheck(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
}
