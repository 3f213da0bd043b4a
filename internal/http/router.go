package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "distill/docs"
	"distill/internal/handler"
)

func NewRouter(
	documentHandler *handler.DocumentHandler,
	sourceHandler *handler.SourceHandler,
	processHandler *handler.ProcessHandler,
	duplicateHandler *handler.DuplicateHandler,
	settingsHandler *handler.SettingsHandler,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(RequestLoggerMiddleware())

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")
	documentHandler.RegisterRoutes(api)
	sourceHandler.RegisterRoutes(api)
	processHandler.RegisterRoutes(api)
	duplicateHandler.RegisterRoutes(api)
	settingsHandler.RegisterRoutes(api)

	return e
}
