package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/learningjournal/core/internal/domain/entities"
	"github.com/learningjournal/core/internal/infrastructure/logger"
)

// ErrorResponse is the body of every error reply
type ErrorResponse struct {
	Error string `json:"error"`
}

// bindJSON decodes the request body into dst. An empty body, `null` or an
// object with no keys is rejected as "No data provided".
func bindJSON(c echo.Context, dst interface{}) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format").SetInternal(err)
	}

	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return echo.NewHTTPError(http.StatusBadRequest, entities.ErrNoData.Message)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format").SetInternal(err)
	}
	if len(fields) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, entities.ErrNoData.Message)
	}

	if err := json.Unmarshal(body, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid value for field: "+typeErr.Field).SetInternal(err)
		}
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format").SetInternal(err)
	}
	return nil
}

// resourceError translates a service error into an HTTP error
func resourceError(log *logger.Logger, err error, notFound, failure string, fields ...interface{}) error {
	switch {
	case errors.Is(err, entities.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, notFound)
	case entities.IsValidation(err):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Request timed out").SetInternal(err)
	default:
		log.WithError(err).Errorw(failure, fields...)
		return echo.NewHTTPError(http.StatusInternalServerError, failure).SetInternal(err)
	}
}
