package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingFunc func(context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthHandler(t *testing.T) {
	up := pingFunc(func(context.Context) error { return nil })
	down := pingFunc(func(context.Context) error { return errors.New("down") })

	cases := []struct {
		name     string
		db       Pinger
		cache    Pinger
		want     int
		database string
		cacheSt  string
	}{
		{name: "all up", db: up, cache: up, want: http.StatusOK, database: "ok", cacheSt: "ok"},
		{name: "cache down", db: up, cache: down, want: http.StatusOK, database: "ok", cacheSt: "unavailable"},
		{name: "db down", db: down, cache: up, want: http.StatusServiceUnavailable, database: "unavailable", cacheSt: "ok"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newTestApp()
			app.Get("/health", NewHealthHandler(tc.db, tc.cache).Health)

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
			require.NoError(t, err)
			assert.Equal(t, tc.want, resp.StatusCode)

			data, ok := decodeEnvelope(t, resp.Body).Data.(map[string]any)
			require.True(t, ok)
			assert.Equal(t, tc.database, data["database"])
			assert.Equal(t, tc.cacheSt, data["cache"])
		})
	}
}
