package web

import (
	"bytes"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/thesrcielos/ArcadeArchive/internal/apperrors"
	"github.com/thesrcielos/ArcadeArchive/internal/page"
)

const INVALID_REQUEST = "invalid request"

type PageHandler struct {
	Pages    *page.Registry
	Renderer *page.Renderer
	Options  page.Options
	Secret   []byte
	TokenTTL time.Duration
}

func RegisterPageRoutes(e *echo.Echo, h *PageHandler) {
	e.GET("/", h.ShowPage(page.KindHome))
	e.GET("/game", h.ShowPage(page.KindGame))
	e.GET("/leaderboard", h.ShowPage(page.KindLeaderboard))
	e.GET("/about", h.ShowPage(page.KindAbout))
	e.GET("/auth", h.ShowPage(page.KindAuth))
	e.StaticFS("/static", page.StaticFS())
}

// ShowPage creates a page session of the given kind, loads its views and
// renders the document. The browser's cookies seed the page's API client.
func (h *PageHandler) ShowPage(kind page.Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
		gameID := ""
		if kind == page.KindGame {
			gameID = c.QueryParam("game")
		}

		p, err := page.New(kind, gameID, c.Cookies(), h.Options, h.Renderer)
		if err != nil {
			return apperrors.NewAppError(http.StatusInternalServerError, "Could not create page", err)
		}
		if err := p.Init(c.Request().Context()); err != nil {
			p.Close()
			return apperrors.NewAppError(http.StatusInternalServerError, "Could not load page", err)
		}

		token, err := page.IssueToken(h.Secret, p.ID, h.TokenTTL)
		if err != nil {
			p.Close()
			return apperrors.NewAppError(http.StatusInternalServerError, "Could not issue page token", err)
		}
		var buf bytes.Buffer
		if err := h.Renderer.Page(&buf, p, token); err != nil {
			p.Close()
			return apperrors.NewAppError(http.StatusInternalServerError, "Could not render page", err)
		}

		h.Pages.Register(p)
		return c.HTMLBlob(http.StatusOK, buf.Bytes())
	}
}

// HTTPErrorHandler answers AppErrors with their own status code and
// leaves everything else to echo.
func HTTPErrorHandler(err error, c echo.Context) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Code >= http.StatusInternalServerError {
			log.Println("Request failed:", appErr)
		}
		err = echo.NewHTTPError(appErr.Code, appErr.Message)
	}
	c.Echo().DefaultHTTPErrorHandler(err, c)
}
