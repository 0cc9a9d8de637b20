package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/user-service/internal/api/metrics"
	"github.com/99minutos/user-service/internal/core/domain"
	"github.com/99minutos/user-service/internal/core/ports"
)

type LoginHandler struct {
	authService ports.AuthService
}

func NewLoginHandler(authService ports.AuthService) *LoginHandler {
	return &LoginHandler{authService: authService}
}

// Token exchanges credentials for a bearer token. The email is sent in the
// username field, as in the OAuth2 password flow.
//
// @Summary      Login for access token
// @Tags         login
// @Accept       x-www-form-urlencoded,json
// @Produce      json
// @Param        username  formData  string  true  "User email"
// @Param        password  formData  string  true  "User password"
// @Success      200       {object}  tokenResponse
// @Failure      401       {object}  map[string]string
// @Failure      422       {object}  map[string]string
// @Router       /login/token [post]
func (h *LoginHandler) Token(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, err := h.authService.Authenticate(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginAttemptsTotal.WithLabelValues("rejected").Inc()
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
			return echo.NewHTTPError(http.StatusUnauthorized, "Incorrect username or password")
		}
		return err
	}

	metrics.LoginAttemptsTotal.WithLabelValues("accepted").Inc()
	return c.JSON(http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}
