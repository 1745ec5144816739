package http

import (
	"context"
	stdhttp "net/http"

	"filevault/internal/auth"
	"filevault/internal/config"
	"filevault/internal/http/handler"
	"filevault/internal/http/middleware"
	"filevault/pkg/metrics"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

const (
	jsonKeyStatus = "status"
	statusOK      = "ok"

	// Uploads carry up to ten 10MB files plus multipart framing.
	requestBodyLimit = "110M"
)

type ServerDependencies struct {
	Config         *config.Config
	FileStore      handler.FileStore
	ObjectStorage  handler.ObjectStorage
	Identity       handler.IdentityExchanger
	AuthMiddleware *auth.Middleware
}

type Server struct {
	echo *echo.Echo
	deps *ServerDependencies
}

func NewServer(deps *ServerDependencies) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = CustomHTTPErrorHandler

	e.Server.ReadTimeout = deps.Config.Server.ReadTimeout
	e.Server.WriteTimeout = deps.Config.Server.WriteTimeout

	// Request ID middleware first, so all logs have a request ID.
	e.Use(middleware.RequestID())
	e.Use(middleware.SecurityHeaders())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.BodyLimit(requestBodyLimit))
	e.Use(metrics.Middleware())

	globalRateLimiter := middleware.NewGlobalRateLimiter()
	e.Use(globalRateLimiter.Middleware())

	strictRateLimiter := middleware.NewStrictRateLimiter()

	authHandler := handler.NewAuthHandler(deps.Identity)
	fileHandler := handler.NewFileHandler(deps.FileStore, deps.ObjectStorage)

	e.GET("/auth/login", authHandler.Login, strictRateLimiter.Middleware())
	e.GET("/auth/callback", authHandler.Callback, strictRateLimiter.Middleware())
	e.GET("/health", healthCheck)
	e.GET("/metrics", metrics.Handler())

	api := e.Group("/api")
	api.Use(deps.AuthMiddleware.RequireAuth())

	api.POST("/upload", fileHandler.Upload)
	api.GET("/files", fileHandler.List)
	api.GET("/files/download/:fileId", fileHandler.Download)
	api.DELETE("/files/delete/:fileId", fileHandler.Delete)
	api.PUT("/files/rename", fileHandler.Rename)

	return &Server{
		echo: e,
		deps: deps,
	}
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func healthCheck(c echo.Context) error {
	return c.JSON(stdhttp.StatusOK, map[string]string{
		jsonKeyStatus: statusOK,
	})
}
