package httpserver

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Routes groups handlers.
type Routes struct {
	Telemetry     http.HandlerFunc
	Performance   http.HandlerFunc
	MappingCreate http.HandlerFunc
	MappingUpdate http.HandlerFunc
	MappingGet    http.HandlerFunc
	VehicleStatus http.HandlerFunc
	MeterStatus   http.HandlerFunc
	Stream        http.HandlerFunc
	Health        http.HandlerFunc
	Metrics       http.Handler

	// Auth wraps API routes when set. Health and metrics stay open.
	Auth func(http.Handler) http.Handler
}

// NewRouter registers endpoints.
func NewRouter(routes Routes) http.Handler {
	r := mux.NewRouter()

	protect := func(h http.Handler) http.Handler {
		if routes.Auth != nil {
			return routes.Auth(h)
		}
		return h
	}

	if routes.Telemetry != nil {
		r.Handle("/telemetry", protect(routes.Telemetry)).Methods(http.MethodPost)
	}
	if routes.Performance != nil {
		r.Handle("/analytics/performance/{vehicleId}", protect(routes.Performance)).Methods(http.MethodGet)
	}
	if routes.MappingCreate != nil {
		r.Handle("/analytics/mappings", protect(routes.MappingCreate)).Methods(http.MethodPost)
	}
	if routes.MappingUpdate != nil {
		r.Handle("/analytics/mappings/{vehicleId}", protect(routes.MappingUpdate)).Methods(http.MethodPut)
	}
	if routes.MappingGet != nil {
		r.Handle("/analytics/mappings/{vehicleId}", protect(routes.MappingGet)).Methods(http.MethodGet)
	}
	if routes.VehicleStatus != nil {
		r.Handle("/telemetry/vehicles/{vehicleId}/status", protect(routes.VehicleStatus)).Methods(http.MethodGet)
	}
	if routes.MeterStatus != nil {
		r.Handle("/telemetry/meters/{meterId}/status", protect(routes.MeterStatus)).Methods(http.MethodGet)
	}
	if routes.Stream != nil {
		r.Handle("/telemetry/stream", protect(routes.Stream)).Methods(http.MethodGet)
	}
	if routes.Health != nil {
		r.Handle("/health", routes.Health).Methods(http.MethodGet)
	}
	if routes.Metrics != nil {
		r.Handle("/metrics", routes.Metrics).Methods(http.MethodGet)
	}

	return r
}
