package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"voltgrid/internal/service"
)

// PerformanceHandler serves the 24-hour vehicle performance summary.
type PerformanceHandler struct {
	svc    *service.AnalyticsService
	logger *zap.Logger
}

// NewPerformanceHandler builds handler.
func NewPerformanceHandler(svc *service.AnalyticsService, logger *zap.Logger) *PerformanceHandler {
	return &PerformanceHandler{
		svc:    svc,
		logger: logger,
	}
}

// Handle handles GET /analytics/performance/{vehicleId}.
func (h *PerformanceHandler) Handle(w http.ResponseWriter, r *http.Request) {
	vehicleID := mux.Vars(r)["vehicleId"]
	if vehicleID == "" {
		writeError(w, http.StatusBadRequest, "vehicleId is required")
		return
	}

	summary, err := h.svc.VehiclePerformance(r.Context(), vehicleID)
	if err != nil {
		if errors.Is(err, service.ErrVehicleNotMapped) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("no meter mapping for vehicle %s", vehicleID))
			return
		}
		h.logger.Error("performance query failed", zap.String("vehicle_id", vehicleID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to compute performance")
		return
	}

	writeJSON(w, http.StatusOK, summary)
}
