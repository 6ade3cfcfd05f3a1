package controller

import (
	"context"
	"net/http"
	"strings"

	"github.com/answerhub/backend/internal/dto"
	"github.com/answerhub/backend/internal/service"
	"github.com/labstack/echo/v4"
)

func AuthMiddleware(authService service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			token := strings.TrimPrefix(authHeader, "Bearer ")
			if token == authHeader {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization format")
			}

			user, err := authService.ValidateToken(c.Request().Context(), token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			ctx := context.WithValue(c.Request().Context(), dto.UserContextKey, user)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}
