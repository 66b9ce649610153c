package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Auth validates the JWT and injects the caller's identity into context.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Header.Get("Authorization") == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}
			return authenticate(c, next, jwtSecret)
		}
	}
}

// OptionalAuth injects identity when a token is present but lets anonymous
// requests through. Used on public read routes where admins get extra
// visibility (e.g. blog drafts). A present-but-invalid token still fails.
func OptionalAuth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Header.Get("Authorization") == "" {
				return next(c)
			}
			return authenticate(c, next, jwtSecret)
		}
	}
}

func authenticate(c echo.Context, next echo.HandlerFunc, jwtSecret string) error {
	authHeader := c.Request().Header.Get("Authorization")

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	c.Set("user_id", claims["sub"])
	c.Set("role", claims["role"])
	c.Set("name", claims["name"])

	return next(c)
}
