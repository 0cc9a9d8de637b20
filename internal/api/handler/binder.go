package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// strictBinder decodes JSON bodies rejecting unknown fields, and falls back
// to echo's DefaultBinder for everything else (forms, query, path).
type strictBinder struct {
	echo.DefaultBinder
}

// NewBinder returns the binder assigned to echo.Echo.Binder.
func NewBinder() echo.Binder {
	return &strictBinder{}
}

func (b *strictBinder) Bind(i any, c echo.Context) error {
	req := c.Request()
	ctype := req.Header.Get(echo.HeaderContentType)
	// Bodies sent without a content type are treated as JSON.
	if ctype != "" && !strings.HasPrefix(ctype, echo.MIMEApplicationJSON) {
		return b.DefaultBinder.Bind(i, c)
	}
	if req.Body == nil || req.Body == http.NoBody {
		return nil
	}

	dec := json.NewDecoder(req.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(i); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return echo.NewHTTPError(http.StatusUnprocessableEntity, decodeError(err)).SetInternal(err)
	}
	// The body must hold exactly one JSON value.
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "invalid JSON body")
	}
	return nil
}

func decodeError(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return fmt.Sprintf("%s must be of type %s", typeErr.Field, typeErr.Type)
	}
	if field, ok := strings.CutPrefix(err.Error(), "json: unknown field "); ok {
		return "extra fields not permitted: " + strings.Trim(field, `"`)
	}
	return "invalid JSON body"
}
