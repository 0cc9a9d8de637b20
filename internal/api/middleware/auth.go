package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/user-service/internal/api/metrics"
	"github.com/99minutos/user-service/internal/core/domain"
	"github.com/99minutos/user-service/internal/core/ports"
)

const (
	msgNotAuthenticated = "Not authenticated"
	msgInvalidToken     = "Could not validate credentials"
)

// ContextKeyUser is the echo.Context key under which the resolved user is stored.
const ContextKeyUser = "user"

// Auth validates the bearer token, resolves its subject and stores the user
// both in the echo context and in the request's context.Context.
func Auth(authService ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				metrics.AuthorizationFailuresTotal.WithLabelValues("missing").Inc()
				return unauthorized(c, msgNotAuthenticated)
			}

			user, err := authService.Authorize(c.Request().Context(), token)
			if err != nil {
				if errors.Is(err, domain.ErrInvalidCredentials) {
					metrics.AuthorizationFailuresTotal.WithLabelValues("invalid").Inc()
					return unauthorized(c, msgInvalidToken)
				}
				return err
			}

			c.Set(ContextKeyUser, user)
			c.SetRequest(c.Request().WithContext(domain.WithActor(c.Request().Context(), user)))
			return next(c)
		}
	}
}

// CurrentUser returns the user resolved by Auth.
func CurrentUser(c echo.Context) (*domain.User, bool) {
	user, ok := c.Get(ContextKeyUser).(*domain.User)
	return user, ok
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(c echo.Context, msg string) error {
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	return echo.NewHTTPError(http.StatusUnauthorized, msg)
}
