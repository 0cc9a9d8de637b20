package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/99minutos/user-service/internal/core/domain"
)

func renderError(t *testing.T, method string, err error) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(method, "/user/", nil), rec)
	NewHTTPErrorHandler(zerolog.Nop())(err, c)
	return rec
}

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		code   int
		detail string
	}{
		{"http error", echo.NewHTTPError(http.StatusUnprocessableEntity, "user_id is required"), http.StatusUnprocessableEntity, "user_id is required"},
		{"conflict", &domain.ConflictError{Detail: "users_email_key"}, http.StatusServiceUnavailable, "users_email_key"},
		{"not found", &domain.NotFoundError{ID: "42"}, http.StatusNotFound, "User with id 42 not found."},
		{"bare not found", domain.ErrUserNotFound, http.StatusNotFound, "user not found"},
		{"empty update", domain.ErrEmptyUpdate, http.StatusUnprocessableEntity, msgEmptyUpdate},
		{"credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "Could not validate credentials"},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "internal server error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := renderError(t, http.MethodGet, tc.err)
			assert.Equal(t, tc.code, rec.Code)
			assert.JSONEq(t, `{"detail":"`+tc.detail+`"}`, rec.Body.String())
		})
	}
}

func TestHTTPErrorHandler_CredentialsSetsChallenge(t *testing.T) {
	rec := renderError(t, http.MethodGet, domain.ErrInvalidCredentials)
	assert.Equal(t, "Bearer", rec.Header().Get(echo.HeaderWWWAuthenticate))
}

func TestHTTPErrorHandler_HeadHasNoBody(t *testing.T) {
	rec := renderError(t, http.MethodHead, domain.ErrUserNotFound)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.String())
}
