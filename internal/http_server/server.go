// Package http_server
package http_server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/codebrew-airways/skybridge/internal/http_server/controller"
	mid "github.com/codebrew-airways/skybridge/internal/http_server/middleware"
	impl "github.com/codebrew-airways/skybridge/internal/http_server/service"
	. "github.com/codebrew-airways/skybridge/internal/interfaces"
	"github.com/codebrew-airways/skybridge/internal/interfaces/service"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	slogecho "github.com/samber/slog-echo"
)

type HttpServerShutdownCallback struct {
	serverHandler *echo.Echo
}

func NewHttpServerShutdownCallback(serverHandler *echo.Echo) *HttpServerShutdownCallback {
	return &HttpServerShutdownCallback{
		serverHandler: serverHandler,
	}
}

func (hc *HttpServerShutdownCallback) Invoke(ctx context.Context) error {
	timeoutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return hc.serverHandler.Shutdown(timeoutCtx)
}

func StartHttpServer(applicationContent *ApplicationContent) {
	config := applicationContent.ConfigManager().Config()
	logger := applicationContent.Logger()
	serverConfig := config.Server

	e := echo.New()
	e.Logger.SetOutput(io.Discard)
	e.Logger.SetLevel(log.OFF)

	switch serverConfig.ProxyType {
	case 0:
		e.IPExtractor = echo.ExtractIPDirect()
	case 1:
		e.IPExtractor = echo.ExtractIPFromXFFHeader()
	case 2:
		e.IPExtractor = echo.ExtractIPFromRealIPHeader()
	default:
		logger.WarnF("Invalid proxy type %d, using default (direct)", serverConfig.ProxyType)
		e.IPExtractor = echo.ExtractIPDirect()
	}

	if serverConfig.SSL.ForceSSL {
		e.Use(middleware.HTTPSRedirect())
	}

	e.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{Timeout: 30 * time.Second}))
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(ctx echo.Context, err error, stack []byte) error {
			logger.ErrorF("Recovered from a fatal error: %v, stack: %s", err, string(stack))
			return err
		},
	}))

	loggerConfig := slogecho.Config{
		DefaultLevel:     slog.LevelInfo,
		ClientErrorLevel: slog.LevelWarn,
		ServerErrorLevel: slog.LevelError,
	}
	e.Use(slogecho.NewWithConfig(slog.Default(), loggerConfig))
	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "SAMEORIGIN",
		HSTSMaxAge:            serverConfig.SSL.HstsExpiredTime,
		HSTSExcludeSubdomains: !serverConfig.SSL.IncludeDomain,
	}))
	e.Use(middleware.CORS())
	if serverConfig.BodyLimit != "" {
		e.Use(middleware.BodyLimit(serverConfig.BodyLimit))
	}
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
	}))

	if serverConfig.Limits.RateLimit <= 0 {
		logger.WarnF("Invalid rate limit value %d, using default 15", serverConfig.Limits.RateLimit)
		serverConfig.Limits.RateLimit = 15
	}

	if serverConfig.Limits.RateLimitDuration <= 0 {
		logger.WarnF("Invalid rate limit duration %v, using default 1m", serverConfig.Limits.RateLimitDuration)
		serverConfig.Limits.RateLimitDuration = time.Minute
	}

	ipPathLimiter := mid.NewSlidingWindowLimiter(
		serverConfig.Limits.RateLimitDuration,
		serverConfig.Limits.RateLimit,
	)
	cleanupInterval := serverConfig.Limits.RateLimitDuration * 2
	if cleanupInterval > time.Hour {
		cleanupInterval = time.Hour
		logger.InfoF("Limiting cleanup interval to 1 hour for efficiency")
	}
	ipPathLimiter.StartCleanup(cleanupInterval)

	e.Use(mid.RateLimitMiddleware(ipPathLimiter, mid.CombinedKeyFunc))

	renderer, err := NewTemplateRenderer()
	if err != nil {
		logger.FatalF("Template initialization failed: %v", err)
		return
	}
	e.Renderer = renderer
	e.StaticFS("/static", echo.MustSubFS(staticFS, "static"))

	jwtConfig := echojwt.Config{
		SigningKey:    []byte(serverConfig.JWT.Secret),
		TokenLookup:   "cookie:" + config.Admin.CookieName,
		SigningMethod: "HS512",
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(service.Claims)
		},
		// Console routes serve HTML, a broken or missing session goes
		// back to the login page instead of a JSON error body.
		ErrorHandler: func(c echo.Context, err error) error {
			return c.Redirect(http.StatusSeeOther, "/admin")
		},
	}

	jwtMiddleware := echojwt.WithConfig(jwtConfig)

	impl.InitValidator(serverConfig.Limits)
	sessionService := impl.NewSessionService(logger, serverConfig, config.Admin)
	contactService := impl.NewContactService(logger, serverConfig.Email)
	dashboardService := impl.NewDashboardService(logger, serverConfig.JWT, applicationContent.ApiClient())
	dashboardService.StartCleanup(10 * time.Minute)

	publicController := controller.NewPublicController(logger, applicationContent.ApiClient(), sessionService, contactService, config.Backend)
	adminController := controller.NewAdminController(logger, sessionService, dashboardService)

	e.GET("/", publicController.HomePage)
	e.GET("/flight/:id", publicController.FlightPage)
	e.GET("/airports", publicController.AirportLookupPage)
	e.GET("/dashboard", publicController.UserDashboardPage)
	e.GET("/about", publicController.AboutPage)
	e.GET("/contact", publicController.ContactPage)
	e.POST("/contact", publicController.ContactSubmit)
	e.GET("/api/airports", publicController.GetAirports)

	adminGroup := e.Group("/admin")
	adminGroup.GET("", adminController.LoginPage)
	adminGroup.POST("/login", adminController.Login)
	adminGroup.POST("/logout", adminController.Logout, jwtMiddleware)

	dashboardGroup := adminGroup.Group("/dashboard", jwtMiddleware)
	dashboardGroup.GET("", func(c echo.Context) error {
		return c.Redirect(http.StatusSeeOther, "/admin/dashboard/airports")
	})
	dashboardGroup.GET("/:tab", adminController.Dashboard)
	dashboardGroup.POST("/:tab", adminController.Submit)
	dashboardGroup.GET("/:tab/cancel", adminController.CancelEdit)
	dashboardGroup.GET("/:tab/:id/edit", adminController.Edit)
	dashboardGroup.POST("/:tab/:id/delete", adminController.Delete)

	applicationContent.Cleaner().Add(NewHttpServerShutdownCallback(e))

	protocol := "http"
	if serverConfig.SSL.Enable {
		protocol = "https"
	}
	logger.InfoF("Starting %s server on %s", protocol, serverConfig.Address)
	logger.InfoF("Rate limit: %d requests per %v",
		serverConfig.Limits.RateLimit,
		serverConfig.Limits.RateLimitDuration)

	if serverConfig.SSL.Enable {
		err = e.StartTLS(
			serverConfig.Address,
			serverConfig.SSL.CertFile,
			serverConfig.SSL.KeyFile,
		)
	} else {
		err = e.Start(serverConfig.Address)
	}

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.FatalF("Http server error: %v", err)
	}
}
