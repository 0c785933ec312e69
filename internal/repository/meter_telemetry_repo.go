package repository

import (
	"context"
	"database/sql"
	"time"

	"voltgrid/internal/models"
)

// MeterTelemetryRepository persists grid-side readings.
type MeterTelemetryRepository struct {
	db *sql.DB
}

// NewMeterTelemetryRepository returns repository.
func NewMeterTelemetryRepository(db *sql.DB) *MeterTelemetryRepository {
	return &MeterTelemetryRepository{db: db}
}

// Insert appends a history row.
func (r *MeterTelemetryRepository) Insert(ctx context.Context, rec *models.MeterReading) error {
	const query = `
		INSERT INTO meter_telemetry (meter_id, kwh_consumed_ac, voltage, recorded_at, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(ctx, query,
		rec.MeterID,
		rec.KWhConsumedAC,
		rec.Voltage,
		rec.RecordedAt,
	).Scan(&rec.ID, &rec.CreatedAt)
}

// SumConsumedSince returns total AC energy consumed by one meter from `since`
// onward, zero when no rows match. Shaped for the (meter_id, recorded_at) index.
func (r *MeterTelemetryRepository) SumConsumedSince(ctx context.Context, meterID string, since time.Time) (float64, error) {
	const query = `
		SELECT COALESCE(SUM(kwh_consumed_ac), 0)
		FROM meter_telemetry
		WHERE meter_id = $1 AND recorded_at >= $2
	`
	var total float64
	if err := r.db.QueryRowContext(ctx, query, meterID, since).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}
