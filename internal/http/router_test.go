package httpserver

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mark(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(name))
	}
}

func stubRoutes() Routes {
	return Routes{
		Telemetry:     mark("telemetry"),
		Performance:   mark("performance"),
		MappingCreate: mark("mapping-create"),
		MappingUpdate: mark("mapping-update"),
		MappingGet:    mark("mapping-get"),
		VehicleStatus: mark("vehicle-status"),
		MeterStatus:   mark("meter-status"),
		Stream:        mark("stream"),
		Health:        mark("health"),
		Metrics:       mark("metrics"),
	}
}

func TestRouterDispatch(t *testing.T) {
	router := NewRouter(stubRoutes())

	tests := []struct {
		method string
		path   string
		want   string
	}{
		{http.MethodPost, "/telemetry", "telemetry"},
		{http.MethodGet, "/analytics/performance/EV-1", "performance"},
		{http.MethodPost, "/analytics/mappings", "mapping-create"},
		{http.MethodPut, "/analytics/mappings/EV-1", "mapping-update"},
		{http.MethodGet, "/analytics/mappings/EV-1", "mapping-get"},
		{http.MethodGet, "/telemetry/vehicles/EV-1/status", "vehicle-status"},
		{http.MethodGet, "/telemetry/meters/M-1/status", "meter-status"},
		{http.MethodGet, "/telemetry/stream", "stream"},
		{http.MethodGet, "/health", "health"},
		{http.MethodGet, "/metrics", "metrics"},
	}

	for _, tc := range tests {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))

			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tc.want, w.Body.String())
		})
	}
}

func TestRouterPathParameters(t *testing.T) {
	routes := stubRoutes()
	routes.Performance = func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(mux.Vars(r)["vehicleId"]))
	}
	router := NewRouter(routes)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/analytics/performance/EV-42", nil))

	assert.Equal(t, "EV-42", w.Body.String())
}

func TestRouterMethodNotAllowed(t *testing.T) {
	router := NewRouter(stubRoutes())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/telemetry", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/health", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRouterUnknownPath(t *testing.T) {
	router := NewRouter(stubRoutes())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouterSkipsUnsetRoutes(t *testing.T) {
	router := NewRouter(Routes{Health: mark("health")})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/telemetry", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouterAuthProtectsAPIRoutesOnly(t *testing.T) {
	routes := stubRoutes()
	routes.Auth = func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") == "" {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
	router := NewRouter(routes)

	t.Run("api route rejected without credentials", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/telemetry", nil))

		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.NotContains(t, w.Body.String(), "telemetry")
	})

	t.Run("api route passes with credentials", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/telemetry", nil)
		req.Header.Set("Authorization", "Bearer token")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "telemetry", w.Body.String())
	})

	t.Run("health stays open", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "health", w.Body.String())
	})

	t.Run("metrics stays open", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "metrics", w.Body.String())
	})
}
