package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/IDS-Mandujano/electronica-back/api/handlers"
	"github.com/IDS-Mandujano/electronica-back/api/middleware"
	"github.com/IDS-Mandujano/electronica-back/api/routes"
	"github.com/IDS-Mandujano/electronica-back/config"

	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/sirupsen/logrus"
)

// Server represents the HTTP server
type Server struct {
	router     *gin.Engine
	config     *config.Config
	httpServer *http.Server
	log        *logrus.Logger
}

// NewServer creates a new HTTP server
func NewServer(cfg *config.Config, log *logrus.Logger, nrApp *newrelic.Application, svc routes.Services) *Server {
	gin.SetMode(cfg.Server.Mode)

	router := gin.New()
	router.Use(handlers.Recovery(log))
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.CORS(cfg.Server.CORSOrigins))

	if nrApp != nil {
		router.Use(middleware.NewRelicMiddleware(nrApp))
	}

	var auth gin.HandlerFunc
	if cfg.Auth.Required {
		auth = middleware.JWTAuth(cfg.Auth.JWTSecret, log)
	}
	routes.SetupRoutes(router, svc, log, auth)

	return &Server{
		router: router,
		config: cfg,
		log:    log,
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Handler exposes the router
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Infof("Starting server on port %d", s.config.Server.Port)
	return s.httpServer.ListenAndServe()
}

// Shutdown stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
