package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Trang-1707/shoppi-backend/pkg/config"
	"github.com/Trang-1707/shoppi-backend/pkg/logger"
	"github.com/stretchr/testify/require"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func healthyPinger() Pinger {
	return pingerFunc(func(context.Context) error { return nil })
}

func brokenPinger(msg string) Pinger {
	return pingerFunc(func(context.Context) error { return errors.New(msg) })
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test-health", Output: io.Discard})
}

func TestHealthLive(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "test"}}
	resp := httptest.NewRecorder()

	HealthLive(cfg)(resp, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, "test", resp.Header().Get("X-Shoppi-Env"))
}

func TestHealthReadyAllDependenciesUp(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "test"}}
	deps := map[string]Pinger{
		"database": healthyPinger(),
		"redis":    healthyPinger(),
	}
	resp := httptest.NewRecorder()

	HealthReady(cfg, testLogger(), deps)(resp, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	require.Equal(t, http.StatusOK, resp.Code)
}

func TestHealthReadyReportsAllFailedDependencies(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "test"}}
	deps := map[string]Pinger{
		"database": brokenPinger("connection refused"),
		"redis":    brokenPinger("timeout"),
	}
	resp := httptest.NewRecorder()

	HealthReady(cfg, testLogger(), deps)(resp, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	require.Equal(t, http.StatusServiceUnavailable, resp.Code)

	var payload struct {
		Error struct {
			Code    string `json:"code"`
			Details struct {
				Dependencies []string `json:"dependencies"`
			} `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &payload))
	require.Equal(t, "DEPENDENCY_ERROR", payload.Error.Code)
	require.Equal(t, []string{"database", "redis"}, payload.Error.Details.Dependencies)
}
