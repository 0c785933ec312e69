package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"voltgrid/internal/metrics"
	"voltgrid/internal/service"
)

// TelemetryHandler accepts charger and meter readings on one endpoint.
type TelemetryHandler struct {
	svc    *service.IngestService
	logger *zap.Logger
}

// NewTelemetryHandler builds handler.
func NewTelemetryHandler(svc *service.IngestService, logger *zap.Logger) *TelemetryHandler {
	return &TelemetryHandler{
		svc:    svc,
		logger: logger,
	}
}

// Numeric fields are pointers so that absent fields can be told apart from
// legitimate zero readings.
type telemetryRequest struct {
	Kind      string `json:"kind"`
	VehicleID string `json:"vehicleId"`
	MeterID   string `json:"meterId"`

	SOC            *float64 `json:"soc"`
	KWhDeliveredDC *float64 `json:"kwhDeliveredDc"`
	BatteryTemp    *float64 `json:"batteryTemp"`

	KWhConsumedAC *float64 `json:"kwhConsumedAc"`
	Voltage       *float64 `json:"voltage"`

	Timestamp string `json:"timestamp"`
}

// Handle handles POST /telemetry.
func (h *TelemetryHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var req telemetryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.reject(w, metrics.ReasonInvalidField, "invalid json")
		return
	}

	kind, reason, errMsg := classifyTelemetry(req)
	if errMsg != "" {
		h.reject(w, reason, errMsg)
		return
	}

	if req.Timestamp == "" {
		h.reject(w, metrics.ReasonInvalidField, "timestamp is required")
		return
	}
	ts, err := time.Parse(time.RFC3339, req.Timestamp)
	if err != nil {
		h.reject(w, metrics.ReasonInvalidField, "timestamp must be a valid RFC3339 instant")
		return
	}

	switch kind {
	case service.KindVehicle:
		if req.SOC == nil {
			h.reject(w, metrics.ReasonInvalidField, "soc is required")
			return
		}
		if req.KWhDeliveredDC == nil {
			h.reject(w, metrics.ReasonInvalidField, "kwhDeliveredDc is required")
			return
		}
		if req.BatteryTemp == nil {
			h.reject(w, metrics.ReasonInvalidField, "batteryTemp is required")
			return
		}
		if _, err := h.svc.IngestVehicle(r.Context(), service.VehicleTelemetryInput{
			VehicleID:      req.VehicleID,
			SOC:            *req.SOC,
			KWhDeliveredDC: *req.KWhDeliveredDC,
			BatteryTemp:    *req.BatteryTemp,
			Timestamp:      ts,
		}); err != nil {
			h.logger.Error("vehicle telemetry ingestion failed", zap.String("vehicle_id", req.VehicleID), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to ingest telemetry")
			return
		}
	case service.KindMeter:
		if req.KWhConsumedAC == nil {
			h.reject(w, metrics.ReasonInvalidField, "kwhConsumedAc is required")
			return
		}
		if req.Voltage == nil {
			h.reject(w, metrics.ReasonInvalidField, "voltage is required")
			return
		}
		if _, err := h.svc.IngestMeter(r.Context(), service.MeterTelemetryInput{
			MeterID:       req.MeterID,
			KWhConsumedAC: *req.KWhConsumedAC,
			Voltage:       *req.Voltage,
			Timestamp:     ts,
		}); err != nil {
			h.logger.Error("meter telemetry ingestion failed", zap.String("meter_id", req.MeterID), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to ingest telemetry")
			return
		}
	}

	writeJSON(w, http.StatusCreated, map[string]string{"status": kind + " telemetry ingested"})
}

func (h *TelemetryHandler) reject(w http.ResponseWriter, reason, message string) {
	metrics.TelemetryRejected.WithLabelValues(reason).Inc()
	writeError(w, http.StatusBadRequest, message)
}

// classifyTelemetry picks the telemetry kind. An explicit kind tag wins;
// otherwise the single present identifier decides. Payloads naming both
// devices are rejected as ambiguous.
func classifyTelemetry(req telemetryRequest) (kind, reason, errMsg string) {
	if req.VehicleID != "" && req.MeterID != "" {
		return "", metrics.ReasonAmbiguous, "payload must not contain both vehicleId and meterId"
	}
	switch req.Kind {
	case service.KindVehicle:
		if req.VehicleID == "" {
			return "", metrics.ReasonInvalidField, "vehicleId is required"
		}
		return service.KindVehicle, "", ""
	case service.KindMeter:
		if req.MeterID == "" {
			return "", metrics.ReasonInvalidField, "meterId is required"
		}
		return service.KindMeter, "", ""
	case "":
		if req.VehicleID != "" {
			return service.KindVehicle, "", ""
		}
		if req.MeterID != "" {
			return service.KindMeter, "", ""
		}
		return "", metrics.ReasonUnknownKind, "unknown telemetry type"
	default:
		return "", metrics.ReasonUnknownKind, "unknown telemetry type"
	}
}
