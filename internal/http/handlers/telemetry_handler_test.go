package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTelemetryEndpointIngestsVehicle(t *testing.T) {
	env := newTestEnv()

	w := env.do(t, http.MethodPost, "/telemetry", map[string]any{
		"vehicleId":      "EV-1",
		"soc":            50,
		"kwhDeliveredDc": 10,
		"batteryTemp":    25,
		"timestamp":      "2026-01-01T00:00:00Z",
	})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "vehicle telemetry ingested", decodeBody(t, w)["status"])

	require.Len(t, env.vehicles.rows, 1)
	assert.Equal(t, "EV-1", env.vehicles.rows[0].VehicleID)
	assert.Equal(t, 10.0, env.vehicles.rows[0].KWhDeliveredDC)

	row, ok := env.vehicleStatus.rows["EV-1"]
	require.True(t, ok)
	assert.Equal(t, 50.0, row.SOC)
}

func TestTelemetryEndpointIngestsMeter(t *testing.T) {
	env := newTestEnv()

	w := env.do(t, http.MethodPost, "/telemetry", map[string]any{
		"meterId":       "M-1",
		"kwhConsumedAc": 12,
		"voltage":       230,
		"timestamp":     "2026-01-01T00:00:00Z",
	})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "meter telemetry ingested", decodeBody(t, w)["status"])

	require.Len(t, env.meters.rows, 1)
	row, ok := env.meterStatus.rows["M-1"]
	require.True(t, ok)
	assert.Equal(t, 12.0, row.LastKWhConsumedAC)
}

func TestTelemetryEndpointHonorsExplicitKind(t *testing.T) {
	env := newTestEnv()

	w := env.do(t, http.MethodPost, "/telemetry", map[string]any{
		"kind":           "vehicle",
		"vehicleId":      "EV-2",
		"soc":            75,
		"kwhDeliveredDc": 4,
		"batteryTemp":    22,
		"timestamp":      "2026-01-01T00:00:00Z",
	})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Len(t, env.vehicles.rows, 1)
}

func TestTelemetryEndpointAcceptsZeroReadings(t *testing.T) {
	env := newTestEnv()

	w := env.do(t, http.MethodPost, "/telemetry", map[string]any{
		"vehicleId":      "EV-1",
		"soc":            0,
		"kwhDeliveredDc": 0,
		"batteryTemp":    0,
		"timestamp":      "2026-01-01T00:00:00Z",
	})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	row := env.vehicleStatus.rows["EV-1"]
	assert.Zero(t, row.SOC)
}

func TestTelemetryEndpointLastArrivalWins(t *testing.T) {
	env := newTestEnv()

	first := map[string]any{
		"vehicleId": "EV-1", "soc": 80, "kwhDeliveredDc": 5, "batteryTemp": 30,
		"timestamp": "2026-01-01T10:00:00Z",
	}
	second := map[string]any{
		"vehicleId": "EV-1", "soc": 60, "kwhDeliveredDc": 7, "batteryTemp": 28,
		"timestamp": "2026-01-01T09:00:00Z", // older event time, later arrival
	}

	require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/telemetry", first).Code)
	require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/telemetry", second).Code)

	assert.Len(t, env.vehicles.rows, 2)
	row := env.vehicleStatus.rows["EV-1"]
	assert.Equal(t, 60.0, row.SOC)
	expected, err := time.Parse(time.RFC3339, "2026-01-01T09:00:00Z")
	require.NoError(t, err)
	assert.True(t, row.LastUpdatedAt.Equal(expected))
}

func TestTelemetryEndpointRejections(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]any
		errMsg  string
	}{
		{
			name:    "neither identifier",
			payload: map[string]any{"soc": 50, "timestamp": "2026-01-01T00:00:00Z"},
			errMsg:  "unknown telemetry type",
		},
		{
			name: "both identifiers",
			payload: map[string]any{
				"vehicleId": "EV-1", "meterId": "M-1",
				"soc": 50, "kwhDeliveredDc": 1, "batteryTemp": 20,
				"timestamp": "2026-01-01T00:00:00Z",
			},
			errMsg: "payload must not contain both vehicleId and meterId",
		},
		{
			name:    "kind without matching identifier",
			payload: map[string]any{"kind": "vehicle", "soc": 50, "timestamp": "2026-01-01T00:00:00Z"},
			errMsg:  "vehicleId is required",
		},
		{
			name:    "unsupported kind",
			payload: map[string]any{"kind": "charger", "vehicleId": "EV-1", "timestamp": "2026-01-01T00:00:00Z"},
			errMsg:  "unknown telemetry type",
		},
		{
			name: "missing timestamp",
			payload: map[string]any{
				"vehicleId": "EV-1", "soc": 50, "kwhDeliveredDc": 1, "batteryTemp": 20,
			},
			errMsg: "timestamp is required",
		},
		{
			name: "malformed timestamp",
			payload: map[string]any{
				"vehicleId": "EV-1", "soc": 50, "kwhDeliveredDc": 1, "batteryTemp": 20,
				"timestamp": "yesterday",
			},
			errMsg: "timestamp must be a valid RFC3339 instant",
		},
		{
			name: "missing soc",
			payload: map[string]any{
				"vehicleId": "EV-1", "kwhDeliveredDc": 1, "batteryTemp": 20,
				"timestamp": "2026-01-01T00:00:00Z",
			},
			errMsg: "soc is required",
		},
		{
			name: "missing voltage",
			payload: map[string]any{
				"meterId": "M-1", "kwhConsumedAc": 3,
				"timestamp": "2026-01-01T00:00:00Z",
			},
			errMsg: "voltage is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			w := env.do(t, http.MethodPost, "/telemetry", tt.payload)

			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			assert.Equal(t, tt.errMsg, decodeBody(t, w)["error"])
			assert.Empty(t, env.vehicles.rows)
			assert.Empty(t, env.meters.rows)
		})
	}
}

func TestTelemetryEndpointRejectsMalformedJSON(t *testing.T) {
	env := newTestEnv()

	w := env.doRaw(t, http.MethodPost, "/telemetry", `{"vehicleId": `)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid json", decodeBody(t, w)["error"])
}
