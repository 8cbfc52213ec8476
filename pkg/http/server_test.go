package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

type routes struct{}

type echoRequest struct {
	Name  string `json:"name" validate:"required"`
	Limit int    `json:"limit" default:"10" validate:"lte=50"`
}

func (routes) RegisterRoutes(e *echo.Echo) {
	e.POST("/echo", func(c echo.Context) error {
		var req echoRequest
		if errs := ReadAndValidateRequest(c, &req); errs != nil {
			return BadRequestResponse(c, errs)
		}
		return SuccessResponse(c, req)
	})
	e.GET("/missing", func(c echo.Context) error {
		return NotFoundError("nothing here")
	})
	e.GET("/boom", func(c echo.Context) error {
		return errors.New("boom")
	})
	e.GET("/panic", func(c echo.Context) error {
		panic("bad")
	})
}

func newTestServer(opts ...ServerOption) *Server {
	reg := prometheus.NewRegistry()
	opts = append([]ServerOption{WithMetrics("/metrics", reg, reg)}, opts...)
	return NewServer(routes{}, opts...)
}

func do(t *testing.T, s *Server, method, path, body string) (*httptest.ResponseRecorder, APIResponse) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)

	var resp APIResponse
	if strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode %s: %v", rec.Body.String(), err)
		}
	}
	return rec, resp
}

func TestServerValidation(t *testing.T) {
	s := newTestServer()

	rec, resp := do(t, s, http.MethodPost, "/echo", `{"name":"gold"}`)
	if rec.Code != http.StatusOK || resp.Status != http.StatusOK {
		t.Fatalf("code=%d body=%s", rec.Code, rec.Body.String())
	}
	data := resp.Data.(map[string]interface{})
	if data["limit"].(float64) != 10 {
		t.Fatalf("default not applied: %v", data)
	}

	rec, resp = do(t, s, http.MethodPost, "/echo", `{"limit":99}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("code=%d", rec.Code)
	}
	errs := resp.Data.([]interface{})
	if len(errs) != 2 {
		t.Fatalf("want 2 validation errors, got %v", errs)
	}
}

func TestServerErrorEnvelope(t *testing.T) {
	s := newTestServer()

	cases := []struct {
		path string
		code int
	}{
		{"/missing", http.StatusNotFound},
		{"/boom", http.StatusInternalServerError},
		{"/panic", http.StatusInternalServerError},
		{"/no-route", http.StatusNotFound},
	}
	for _, c := range cases {
		rec, _ := do(t, s, http.MethodGet, c.path, "")
		if rec.Code != c.code {
			t.Fatalf("%s: code=%d want %d body=%s", c.path, rec.Code, c.code, rec.Body.String())
		}
	}

	_, resp := do(t, s, http.MethodGet, "/missing", "")
	errs := resp.Data.([]interface{})
	first := errs[0].(map[string]interface{})
	if first["code"] != "ERR_NOT_FOUND" {
		t.Fatalf("unexpected error body %v", first)
	}
}

func TestServerHealthz(t *testing.T) {
	healthy := newTestServer(WithHealthCheck("redis", func(context.Context) error { return nil }))
	rec, resp := do(t, healthy, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("code=%d", rec.Code)
	}
	if resp.Data.(map[string]interface{})["redis"] != "ok" {
		t.Fatalf("unexpected report %v", resp.Data)
	}

	sick := newTestServer(WithHealthCheck("kafka", func(context.Context) error { return errors.New("breaker open") }))
	rec, _ = do(t, sick, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("code=%d", rec.Code)
	}
}

func TestServerMetricsEndpoint(t *testing.T) {
	s := newTestServer()
	do(t, s, http.MethodGet, "/missing", "")

	rec, _ := do(t, s, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("code=%d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `http_requests_total{method="GET",route="/missing",status="404"} 1`) {
		t.Fatalf("request counter missing:\n%s", rec.Body.String())
	}
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer()
	req := httptest.NewRequest(http.MethodOptions, "/echo", nil)
	req.Header.Set(echo.HeaderOrigin, "http://localhost:3000")
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("code=%d", rec.Code)
	}
	if rec.Header().Get(echo.HeaderAccessControlAllowOrigin) != "http://localhost:3000" {
		t.Fatalf("missing allow-origin header")
	}
}

func TestCORSDisabled(t *testing.T) {
	s := newTestServer(WithCORS(false))
	req := httptest.NewRequest(http.MethodOptions, "/echo", nil)
	req.Header.Set(echo.HeaderOrigin, "http://localhost:3000")
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)

	if got := rec.Header().Get(echo.HeaderAccessControlAllowOrigin); got != "" {
		t.Fatalf("allow-origin=%q with CORS disabled", got)
	}
}
