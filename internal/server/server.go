package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/alkime/storyform/internal/config"
	"github.com/alkime/storyform/internal/pipeline"
	"github.com/alkime/storyform/internal/session"
	"github.com/alkime/storyform/internal/story"
	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
)

// StoryPublisher runs a submission through the publishing pipeline.
type StoryPublisher interface {
	Submit(ctx context.Context, sub story.Submission) (*pipeline.Result, error)
}

// Deps are the collaborators the HTTP handlers call into.
type Deps struct {
	Publisher StoryPublisher
	Metadata  session.Generator
	Sessions  *session.Registry
}

// Server represents the HTTP server
type Server struct {
	config   *config.Config
	logger   *slog.Logger
	router   *gin.Engine
	deps     Deps
	sessions *sessions.CookieStore
}

// New creates a new Server instance
func New(cfg *config.Config, logger *slog.Logger, deps Deps) *Server {
	// Set Gin mode based on environment
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))

	// Configure proxy trust for production (Fly.io)
	if cfg.Env == config.EnvProduction {
		router.TrustedPlatform = gin.PlatformFlyIO
		logger.Debug("Configured trusted platform", "platform", "fly.io")
	}

	if deps.Sessions == nil {
		deps.Sessions = session.NewRegistry(SessionMaxAge)
	}

	server := &Server{
		config:   cfg,
		logger:   logger,
		router:   router,
		deps:     deps,
		sessions: newSessionStore(cfg),
	}

	// Setup middleware and routes
	setupSecurityMiddleware(router, cfg, logger)
	server.setupRoutes()

	return server
}

// Router exposes the HTTP handler, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Run starts the HTTP server
func Run(s *Server) error {
	s.logger.Info("Server listening", "port", s.config.Port)
	return s.router.Run(":" + s.config.Port)
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	// Health check endpoint
	s.router.GET("/health", s.handleHealth)

	api := s.router.Group("/api/v1")
	api.Use(s.sessionMiddleware())
	{
		api.GET("/categories", s.handleCategories)
		api.POST("/metadata", s.handleMetadata)
		api.POST("/stories", s.handleSubmitStory)
	}

	// Submission form; only files that exist are served, everything else falls through
	s.router.Use(static.Serve("/", static.LocalFile(s.config.StaticDir, false)))
}

// handleHealth handles the health check endpoint
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "storyform",
	})
}
