package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/padraicbc/eventresults/metrics"
	mw "github.com/padraicbc/eventresults/middleware"
	"github.com/padraicbc/eventresults/validation"
)

// NewRouter builds the echo instance with middleware and all routes.
func NewRouter(h *Handler, logger *zap.Logger, m *metrics.Metrics) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = ErrorHandler
	e.Validator = validation.New()

	e.Use(echomw.RequestID())
	e.Use(mw.RequestLogger(logger))
	e.Use(mw.Metrics(m))
	e.Use(echomw.Recover())
	e.Use(mw.ContextLogger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))
	e.Use(mw.Session())

	e.GET("/metrics", echo.WrapHandler(m.Handler()))

	// Public
	api := e.Group("/api")
	api.GET("/events", h.Events)
	api.GET("/events/:id", h.Event)
	api.GET("/events/:id/results", h.EventResults)
	api.POST("/admin/login", h.Login)
	api.POST("/admin/logout", h.Logout)
	api.GET("/admin/me", h.Me)

	// Protected – require an admin session
	admin := api.Group("/admin", mw.RequireAdmin(h.gate))
	admin.GET("/events", h.AdminEvents)
	admin.POST("/publish", h.Publish)

	return e
}
