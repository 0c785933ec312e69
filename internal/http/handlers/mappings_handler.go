package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"voltgrid/internal/repository"
	"voltgrid/internal/service"
)

// MappingsHandler manages vehicle to meter assignments.
type MappingsHandler struct {
	svc    *service.MappingService
	logger *zap.Logger
}

// NewMappingsHandler builds handler set.
func NewMappingsHandler(svc *service.MappingService, logger *zap.Logger) *MappingsHandler {
	return &MappingsHandler{
		svc:    svc,
		logger: logger,
	}
}

type mappingRequest struct {
	VehicleID string `json:"vehicleId"`
	MeterID   string `json:"meterId"`
}

type mappingResponse struct {
	VehicleID string `json:"vehicleId"`
	MeterID   string `json:"meterId"`
	Message   string `json:"message,omitempty"`
}

// HandleCreate handles POST /analytics/mappings.
func (h *MappingsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req mappingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	h.save(w, r, req.VehicleID, req.MeterID)
}

// HandleUpdate handles PUT /analytics/mappings/{vehicleId}.
func (h *MappingsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req mappingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	h.save(w, r, mux.Vars(r)["vehicleId"], req.MeterID)
}

// Create and update share the same upsert; only the vehicleId source differs.
func (h *MappingsHandler) save(w http.ResponseWriter, r *http.Request, vehicleID, meterID string) {
	if vehicleID == "" {
		writeError(w, http.StatusBadRequest, "vehicleId is required")
		return
	}
	if meterID == "" {
		writeError(w, http.StatusBadRequest, "meterId is required")
		return
	}

	mapping, err := h.svc.Save(r.Context(), vehicleID, meterID)
	if err != nil {
		h.logger.Error("mapping save failed", zap.String("vehicle_id", vehicleID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to save mapping")
		return
	}

	writeJSON(w, http.StatusOK, mappingResponse{
		VehicleID: mapping.VehicleID,
		MeterID:   mapping.MeterID,
		Message:   "mapping saved",
	})
}

// HandleGet handles GET /analytics/mappings/{vehicleId}.
func (h *MappingsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	vehicleID := mux.Vars(r)["vehicleId"]
	if vehicleID == "" {
		writeError(w, http.StatusBadRequest, "vehicleId is required")
		return
	}

	mapping, err := h.svc.Get(r.Context(), vehicleID)
	if err != nil {
		if errors.Is(err, repository.ErrMappingNotFound) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("no mapping found for vehicle %s", vehicleID))
			return
		}
		h.logger.Error("mapping lookup failed", zap.String("vehicle_id", vehicleID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load mapping")
		return
	}

	writeJSON(w, http.StatusOK, mappingResponse{
		VehicleID: mapping.VehicleID,
		MeterID:   mapping.MeterID,
	})
}
