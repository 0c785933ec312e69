package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	httpserver "voltgrid/internal/http"
	"voltgrid/internal/models"
	"voltgrid/internal/repository"
	"voltgrid/internal/service"
)

// In-memory stores standing in for the Postgres repositories.

type memVehicleHistory struct {
	rows []models.VehicleReading
}

func (m *memVehicleHistory) Insert(_ context.Context, reading *models.VehicleReading) error {
	reading.ID = int64(len(m.rows) + 1)
	reading.CreatedAt = time.Now().UTC()
	m.rows = append(m.rows, *reading)
	return nil
}

func (m *memVehicleHistory) StatsSince(_ context.Context, vehicleID string, since time.Time) (float64, float64, error) {
	var sum, tempSum float64
	var n int
	for _, r := range m.rows {
		if r.VehicleID == vehicleID && !r.RecordedAt.Before(since) {
			sum += r.KWhDeliveredDC
			tempSum += r.BatteryTemp
			n++
		}
	}
	if n == 0 {
		return 0, 0, nil
	}
	return sum, tempSum / float64(n), nil
}

type memMeterHistory struct {
	rows []models.MeterReading
}

func (m *memMeterHistory) Insert(_ context.Context, reading *models.MeterReading) error {
	reading.ID = int64(len(m.rows) + 1)
	reading.CreatedAt = time.Now().UTC()
	m.rows = append(m.rows, *reading)
	return nil
}

func (m *memMeterHistory) SumConsumedSince(_ context.Context, meterID string, since time.Time) (float64, error) {
	var sum float64
	for _, r := range m.rows {
		if r.MeterID == meterID && !r.RecordedAt.Before(since) {
			sum += r.KWhConsumedAC
		}
	}
	return sum, nil
}

type memVehicleStatus struct {
	rows map[string]models.VehicleStatus
}

func (m *memVehicleStatus) Upsert(_ context.Context, st *models.VehicleStatus) error {
	if m.rows == nil {
		m.rows = make(map[string]models.VehicleStatus)
	}
	m.rows[st.VehicleID] = *st
	return nil
}

func (m *memVehicleStatus) Get(_ context.Context, vehicleID string) (*models.VehicleStatus, error) {
	if row, ok := m.rows[vehicleID]; ok {
		return &row, nil
	}
	return nil, repository.ErrVehicleStatusNotFound
}

type memMeterStatus struct {
	rows map[string]models.MeterStatus
}

func (m *memMeterStatus) Upsert(_ context.Context, st *models.MeterStatus) error {
	if m.rows == nil {
		m.rows = make(map[string]models.MeterStatus)
	}
	m.rows[st.MeterID] = *st
	return nil
}

func (m *memMeterStatus) Get(_ context.Context, meterID string) (*models.MeterStatus, error) {
	if row, ok := m.rows[meterID]; ok {
		return &row, nil
	}
	return nil, repository.ErrMeterStatusNotFound
}

type memMappings struct {
	rows map[string]models.VehicleMeterMapping
}

func (m *memMappings) Upsert(_ context.Context, mapping *models.VehicleMeterMapping) error {
	if m.rows == nil {
		m.rows = make(map[string]models.VehicleMeterMapping)
	}
	now := time.Now().UTC()
	if existing, ok := m.rows[mapping.VehicleID]; ok {
		mapping.CreatedAt = existing.CreatedAt
	} else {
		mapping.CreatedAt = now
	}
	mapping.UpdatedAt = now
	m.rows[mapping.VehicleID] = *mapping
	return nil
}

func (m *memMappings) Get(_ context.Context, vehicleID string) (*models.VehicleMeterMapping, error) {
	if row, ok := m.rows[vehicleID]; ok {
		return &row, nil
	}
	return nil, repository.ErrMappingNotFound
}

// testEnv wires the full HTTP surface against in-memory storage.
type testEnv struct {
	vehicles      *memVehicleHistory
	meters        *memMeterHistory
	vehicleStatus *memVehicleStatus
	meterStatus   *memMeterStatus
	mappings      *memMappings
	router        http.Handler
}

func newTestEnv() *testEnv {
	logger := zap.NewNop()
	env := &testEnv{
		vehicles:      &memVehicleHistory{},
		meters:        &memMeterHistory{},
		vehicleStatus: &memVehicleStatus{},
		meterStatus:   &memMeterStatus{},
		mappings:      &memMappings{},
	}

	ingestSvc := service.NewIngestService(env.vehicles, env.meters, env.vehicleStatus, env.meterStatus, nil, nil, logger)
	analyticsSvc := service.NewAnalyticsService(env.vehicles, env.meters, env.mappings, logger)
	mappingSvc := service.NewMappingService(env.mappings, logger)
	statusSvc := service.NewStatusService(env.vehicleStatus, env.meterStatus, nil, logger)

	mappingsHandler := NewMappingsHandler(mappingSvc, logger)
	statusHandler := NewStatusHandler(statusSvc, logger)

	env.router = httpserver.NewRouter(httpserver.Routes{
		Telemetry:     NewTelemetryHandler(ingestSvc, logger).Handle,
		Performance:   NewPerformanceHandler(analyticsSvc, logger).Handle,
		MappingCreate: mappingsHandler.HandleCreate,
		MappingUpdate: mappingsHandler.HandleUpdate,
		MappingGet:    mappingsHandler.HandleGet,
		VehicleStatus: statusHandler.HandleVehicle,
		MeterStatus:   statusHandler.HandleMeter,
		Health:        NewHealthHandler(),
	})
	return env
}

func (env *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func (env *testEnv) doRaw(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return body
}
