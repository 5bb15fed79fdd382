package web

import (
	"net/http"

	"github.com/labstack/echo/v4"
	api_middleware "github.com/thesrcielos/ArcadeArchive/api/middleware"
	"github.com/thesrcielos/ArcadeArchive/internal/auth"
	"github.com/thesrcielos/ArcadeArchive/internal/page"
)

// RegisterActionRoutes expects g to be guarded by the page token middleware.
func RegisterActionRoutes(g *echo.Group, h *PageHandler) {
	g.POST("/login", h.LoginHandler)
	g.POST("/register", h.RegisterHandler)
	g.POST("/logout", h.LogoutHandler)
}

func (h *PageHandler) LoginHandler(c echo.Context) error {
	p, err := h.pageOf(c)
	if err != nil {
		return err
	}
	if p.Forms == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "no login form on this page")
	}
	var form auth.LoginForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, INVALID_REQUEST)
	}

	outcome := p.Forms.SubmitLogin(c.Request().Context(), form)
	relayCookies(c, p.Cookies(), c.Cookies())
	return c.JSON(http.StatusOK, outcome)
}

func (h *PageHandler) RegisterHandler(c echo.Context) error {
	p, err := h.pageOf(c)
	if err != nil {
		return err
	}
	if p.Forms == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "no register form on this page")
	}
	var form auth.RegisterForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, INVALID_REQUEST)
	}

	outcome := p.Forms.SubmitRegister(c.Request().Context(), form)
	relayCookies(c, p.Cookies(), c.Cookies())
	return c.JSON(http.StatusOK, outcome)
}

func (h *PageHandler) LogoutHandler(c echo.Context) error {
	p, err := h.pageOf(c)
	if err != nil {
		return err
	}

	outcome := p.Nav.ConfirmLogout(c.Request().Context())
	relayCookies(c, p.Cookies(), c.Cookies())
	return c.JSON(http.StatusOK, outcome)
}

func (h *PageHandler) pageOf(c echo.Context) (*page.Page, error) {
	id := api_middleware.PageID(c)
	if id == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid or missing page token")
	}
	p := h.Pages.Get(id)
	if p == nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, "page expired, reload it")
	}
	return p, nil
}

// relayCookies hands the API session back to the browser: cookies the page's
// client holds are set, and cookies the browser sent that the API cleared
// are expired.
func relayCookies(c echo.Context, held []*http.Cookie, sent []*http.Cookie) {
	kept := make(map[string]bool, len(held))
	for _, ck := range held {
		kept[ck.Name] = true
		c.SetCookie(&http.Cookie{
			Name:     ck.Name,
			Value:    ck.Value,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	for _, ck := range sent {
		if kept[ck.Name] {
			continue
		}
		c.SetCookie(&http.Cookie{
			Name:   ck.Name,
			Value:  "",
			Path:   "/",
			MaxAge: -1,
		})
	}
}
