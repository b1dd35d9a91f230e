// Package app contains the web front-end.
package app

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/justrob12/seclab/internal/config"
	"github.com/justrob12/seclab/internal/sec"
	"github.com/justrob12/seclab/internal/storage"
)

// New creates a web front-end server.
func New(
	cfg *config.Config,
	logger *slog.Logger,
	users storage.Users,
) *echo.Echo {
	srv := echo.New()

	srv.HideBanner = true
	srv.HidePort = true
	srv.Logger.SetLevel(log.OFF)
	srv.HTTPErrorHandler = handleError(logger)

	// stamped before routing so 404s and errors carry the policy too
	srv.Pre(securityHeaders())

	if cfg.DevMode {
		srv.Debug = true
		srv.Use(logRequests(logger))
	}

	srv.Use(
		middleware.Recover(),
		middleware.RequestID(),
		middleware.Gzip(),
	)

	handler{users: users}.register(srv)
	return srv
}

func securityHeaders() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sec.ApplySecurityHeaders(c.Response().Header())
			return next(c)
		}
	}
}

// basicAuth authenticates against users and stores the result on the request
// context.
func basicAuth(users storage.Users) echo.MiddlewareFunc {
	return middleware.BasicAuth(func(username, password string, c echo.Context) (bool, error) {
		ctx := c.Request().Context()
		// password is an immutable string; only the copy can be scrubbed.
		usr, err := sec.Login(ctx, users, username, sec.NewSecret(password))
		if err != nil {
			return false, nil //nolint:nilerr // a bad login is a 401, not a server error
		}
		ctx = sec.SetAuthenticatedUser(ctx, usr)
		c.SetRequest(c.Request().WithContext(ctx))
		return true, nil
	})
}

// handleError writes only the status text. Error details stay in the logs.
func handleError(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			code = httpErr.Code
		}
		if code >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "request failed",
				slog.String("uri", c.Request().RequestURI),
				slog.Any("error", err),
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.String(code, http.StatusText(code))
		}
		if err != nil {
			logger.ErrorContext(c.Request().Context(), "failed to write error response", slog.Any("error", err))
		}
	}
}

func logRequests(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			latency := time.Since(start)

			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			attrs := []slog.Attr{
				slog.String("method", req.Method),
				slog.String("route", c.Path()),
				slog.Duration("latency", latency),
				slog.Int("status", res.Status),
			}
			if err != nil {
				attrs = append(attrs, slog.Any("error", err))
			}
			logger.LogAttrs(
				req.Context(),
				slog.LevelDebug,
				"request handled",
				attrs...,
			)
			return err
		}
	}
}
