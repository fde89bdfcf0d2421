package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name     string
		checks   map[string]HealthChecker
		wantCode int
		wantBody map[string]interface{}
	}{
		{
			name:     "no backends",
			wantCode: http.StatusOK,
			wantBody: map[string]interface{}{"status": "healthy", "backends": map[string]interface{}{}},
		},
		{
			name: "all reachable",
			checks: map[string]HealthChecker{
				"redis": pingFunc(func(context.Context) error { return nil }),
			},
			wantCode: http.StatusOK,
			wantBody: map[string]interface{}{"status": "healthy", "backends": map[string]interface{}{"redis": "connected"}},
		},
		{
			name: "one unreachable",
			checks: map[string]HealthChecker{
				"redis":    pingFunc(func(context.Context) error { return nil }),
				"postgres": pingFunc(func(context.Context) error { return errors.New("connection refused") }),
			},
			wantCode: http.StatusServiceUnavailable,
			wantBody: map[string]interface{}{
				"status":   "unhealthy",
				"backends": map[string]interface{}{"redis": "connected", "postgres": "unreachable"},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := New(":0", "test", tc.checks)

			resp := httptest.NewRecorder()
			s.Engine.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health", nil))

			require.Equal(t, tc.wantCode, resp.Code)
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
			require.Equal(t, tc.wantBody, body)
		})
	}
}
