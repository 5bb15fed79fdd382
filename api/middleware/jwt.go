package middleware

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/thesrcielos/ArcadeArchive/internal/page"
)

// SetupJWTMiddleware guards page-scoped requests. The validated token is
// stored in the context under "user" as echo-jwt does by default.
func SetupJWTMiddleware(secret []byte) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(page.Claims)
		},
		SigningKey:  secret,
		TokenLookup: "header:" + page.TokenHeader,
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or missing page token")
		},
	})
}

// PageID returns the page named by the token SetupJWTMiddleware validated.
func PageID(c echo.Context) string {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return ""
	}
	claims, ok := token.Claims.(*page.Claims)
	if !ok {
		return ""
	}
	return claims.PageID
}
