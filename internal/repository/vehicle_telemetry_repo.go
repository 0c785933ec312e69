package repository

import (
	"context"
	"database/sql"
	"time"

	"voltgrid/internal/models"
)

// VehicleTelemetryRepository persists charger-side readings.
type VehicleTelemetryRepository struct {
	db *sql.DB
}

// NewVehicleTelemetryRepository returns repository.
func NewVehicleTelemetryRepository(db *sql.DB) *VehicleTelemetryRepository {
	return &VehicleTelemetryRepository{db: db}
}

// Insert appends a history row. History rows carry no uniqueness constraint,
// so this never conflicts.
func (r *VehicleTelemetryRepository) Insert(ctx context.Context, rec *models.VehicleReading) error {
	const query = `
		INSERT INTO vehicle_telemetry (vehicle_id, soc, kwh_delivered_dc, battery_temp, recorded_at, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(ctx, query,
		rec.VehicleID,
		rec.SOC,
		rec.KWhDeliveredDC,
		rec.BatteryTemp,
		rec.RecordedAt,
	).Scan(&rec.ID, &rec.CreatedAt)
}

// StatsSince returns total DC energy delivered and average battery temperature
// for one vehicle from `since` onward. Zero rows yield zeros, not NULLs.
// Equality on vehicle_id plus the recorded_at lower bound keeps the query on
// the (vehicle_id, recorded_at) index.
func (r *VehicleTelemetryRepository) StatsSince(ctx context.Context, vehicleID string, since time.Time) (totalDC, avgTemp float64, err error) {
	const query = `
		SELECT COALESCE(SUM(kwh_delivered_dc), 0), COALESCE(AVG(battery_temp), 0)
		FROM vehicle_telemetry
		WHERE vehicle_id = $1 AND recorded_at >= $2
	`
	if err := r.db.QueryRowContext(ctx, query, vehicleID, since).Scan(&totalDC, &avgTemp); err != nil {
		return 0, 0, err
	}
	return totalDC, avgTemp, nil
}
