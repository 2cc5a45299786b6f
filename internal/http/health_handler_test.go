package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reachsuite/emailbuilder/pkg/logger"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) PingContext(ctx context.Context) error { return f(ctx) }

func TestHealthHandler(t *testing.T) {
	serveHealth := func(db Pinger, method string) *httptest.ResponseRecorder {
		mux := http.NewServeMux()
		NewHealthHandler(db, logger.NewTestLogger(t)).RegisterRoutes(mux)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(method, "/health", nil))
		return w
	}

	w := serveHealth(pingFunc(func(context.Context) error { return nil }), http.MethodGet)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = serveHealth(pingFunc(func(context.Context) error { return errors.New("down") }), http.MethodGet)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = serveHealth(nil, http.MethodGet)
	assert.Equal(t, http.StatusOK, w.Code)

	w = serveHealth(nil, http.MethodPost)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
