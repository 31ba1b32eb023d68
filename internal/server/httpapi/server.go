// Package httpapi provides the HTTP API and the browser-facing auth flow.
package httpapi

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/buildlog-app/buildlog/internal/logging"
	sc "github.com/buildlog-app/buildlog/internal/server/config"
	"github.com/buildlog-app/buildlog/internal/server/services"
)

// Server wires the echo router to the service layer.
type Server struct {
	echo   *echo.Echo
	logger logging.Logger
	config *sc.Config

	users    *services.UserService
	projects *services.ProjectService
	checkIns *services.CheckInService
	uploads  *services.UploadService
	settings *services.SettingsService
}

// NewServer builds the router with middleware and routes registered.
func NewServer(cfg *sc.Config, logger logging.Logger,
	users *services.UserService, projects *services.ProjectService,
	checkIns *services.CheckInService, uploads *services.UploadService,
	settings *services.SettingsService) *Server {

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			logger.Info(c.Request().Context(), "http request",
				"method", c.Request().Method,
				"uri", c.Request().RequestURI,
				"status", c.Response().Status,
				"duration", time.Since(start),
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			)
			return err
		}
	})

	s := &Server{
		echo:     e,
		logger:   logger,
		config:   cfg,
		users:    users,
		projects: projects,
		checkIns: checkIns,
		uploads:  uploads,
		settings: settings,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)

	authGroup := s.echo.Group("/api/auth")
	authGroup.POST("/register", s.handleRegister)
	authGroup.POST("/login", s.handleLogin)
	authGroup.POST("/refresh", s.handleRefresh)

	api := s.echo.Group("/api", s.requireAuth)

	api.GET("/projects", s.handleListProjects)
	api.POST("/projects", s.handleCreateProject)
	api.GET("/projects/:id", s.handleGetProject)
	api.PUT("/projects/:id", s.handleUpdateProject)
	api.DELETE("/projects/:id", s.handleDeleteProject)

	api.POST("/checkins", s.handleCreateCheckIn)
	api.GET("/checkins", s.handleHistory)
	api.GET("/checkins/:id", s.handleGetCheckIn)
	api.PUT("/checkins/:id", s.handleUpdateCheckIn)
	api.DELETE("/checkins/:id", s.handleDeleteCheckIn)

	api.POST("/uploads", s.handleIngestUploads)
	api.PATCH("/uploads/:id/context", s.handleUploadContext)
	api.DELETE("/uploads/:id", s.handleDeleteUpload)

	api.GET("/settings", s.handleGetSettings)
	api.PUT("/settings", s.handleSaveSettings)

	api.GET("/debug/uploads", s.handleDebugUploads)
}

// Start serves HTTP on the configured address until the listener fails.
func (s *Server) Start() error {
	return s.echo.Start(s.config.EndpointAddr)
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(200, map[string]string{"status": "ok"})
}
