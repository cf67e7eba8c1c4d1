package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counterValue sums every sample of name whose labels include want
func counterValue(t *testing.T, m *Metrics, name string, want map[string]string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)

	var total float64
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, metric := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range metric.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			matched := true
			for k, v := range want {
				if labels[k] != v {
					matched = false
					break
				}
			}
			if matched {
				total += metric.GetCounter().GetValue()
			}
		}
	}
	return total
}

func TestObserveOperation(t *testing.T) {
	m := New()

	m.ObserveOperation("reflections", "create", time.Millisecond, nil)
	m.ObserveOperation("reflections", "create", time.Millisecond, nil)
	m.ObserveOperation("reflections", "create", time.Millisecond, errors.New("disk full"))
	m.ObserveUnreadable("projects")

	assert.Equal(t, 2.0, counterValue(t, m, "journal_store_operations_total",
		map[string]string{"collection": "reflections", "operation": "create", "result": "ok"}))
	assert.Equal(t, 1.0, counterValue(t, m, "journal_store_operations_total",
		map[string]string{"result": "error"}))
	assert.Equal(t, 1.0, counterValue(t, m, "journal_store_unreadable_total",
		map[string]string{"collection": "projects"}))
}

func TestMiddleware(t *testing.T) {
	m := New()
	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/api/reflections/:id", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	for _, path := range []string{"/api/reflections/a", "/api/reflections/b", "/nowhere"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, counterValue(t, m, "http_requests_total",
		map[string]string{"path": "/api/reflections/:id", "status": "200"}))
	assert.Equal(t, 1.0, counterValue(t, m, "http_requests_total",
		map[string]string{"status": "404"}))
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveOperation("projects", "list", time.Millisecond, nil)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "journal_store_operations_total"))
}
