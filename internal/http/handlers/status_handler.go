package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"voltgrid/internal/repository"
	"voltgrid/internal/service"
)

// StatusHandler serves the latest known reading per device.
type StatusHandler struct {
	svc    *service.StatusService
	logger *zap.Logger
}

// NewStatusHandler builds handler set.
func NewStatusHandler(svc *service.StatusService, logger *zap.Logger) *StatusHandler {
	return &StatusHandler{
		svc:    svc,
		logger: logger,
	}
}

// HandleVehicle handles GET /telemetry/vehicles/{vehicleId}/status.
func (h *StatusHandler) HandleVehicle(w http.ResponseWriter, r *http.Request) {
	vehicleID := mux.Vars(r)["vehicleId"]
	if vehicleID == "" {
		writeError(w, http.StatusBadRequest, "vehicleId is required")
		return
	}

	status, err := h.svc.VehicleStatus(r.Context(), vehicleID)
	if err != nil {
		if errors.Is(err, repository.ErrVehicleStatusNotFound) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("no status for vehicle %s", vehicleID))
			return
		}
		h.logger.Error("vehicle status lookup failed", zap.String("vehicle_id", vehicleID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load vehicle status")
		return
	}

	writeJSON(w, http.StatusOK, status)
}

// HandleMeter handles GET /telemetry/meters/{meterId}/status.
func (h *StatusHandler) HandleMeter(w http.ResponseWriter, r *http.Request) {
	meterID := mux.Vars(r)["meterId"]
	if meterID == "" {
		writeError(w, http.StatusBadRequest, "meterId is required")
		return
	}

	status, err := h.svc.MeterStatus(r.Context(), meterID)
	if err != nil {
		if errors.Is(err, repository.ErrMeterStatusNotFound) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("no status for meter %s", meterID))
			return
		}
		h.logger.Error("meter status lookup failed", zap.String("meter_id", meterID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load meter status")
		return
	}

	writeJSON(w, http.StatusOK, status)
}
