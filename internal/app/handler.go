package app

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/justrob12/seclab/internal/content"
	"github.com/justrob12/seclab/internal/sec"
	"github.com/justrob12/seclab/internal/storage"
)

type handler struct {
	users storage.Users
}

func (h handler) register(e *echo.Echo) {
	e.GET("/greeting", h.greeting)
	e.GET("/me", h.me, basicAuth(h.users))
}

// greeting renders the untrusted name query parameter.
func (h handler) greeting(c echo.Context) error {
	return writePage(c, content.Render(c.Request().Context(), c.QueryParam("name")))
}

// me greets the authenticated user. Stored names are untrusted too.
func (h handler) me(c echo.Context) error {
	ctx := c.Request().Context()
	user := sec.GetAuthenticatedUser(ctx)
	return writePage(c, content.Render(ctx, user.Name))
}

func writePage(c echo.Context, page content.Page) error {
	hdr := c.Response().Header()
	for name, values := range page.Header {
		hdr[name] = values
	}
	return c.Blob(http.StatusOK, content.ContentType, page.Body)
}
