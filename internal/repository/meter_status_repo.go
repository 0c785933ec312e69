package repository

import (
	"context"
	"database/sql"
	"errors"

	"voltgrid/internal/models"
)

// ErrMeterStatusNotFound indicates no reading was ever ingested for the meter.
var ErrMeterStatusNotFound = errors.New("meter status not found")

// MeterStatusRepository maintains the single current-status row per meter.
type MeterStatusRepository struct {
	db *sql.DB
}

// NewMeterStatusRepository returns repository.
func NewMeterStatusRepository(db *sql.DB) *MeterStatusRepository {
	return &MeterStatusRepository{db: db}
}

// Upsert inserts the row or overwrites every non-key column unconditionally.
func (r *MeterStatusRepository) Upsert(ctx context.Context, st *models.MeterStatus) error {
	const query = `
		INSERT INTO meter_status (meter_id, last_kwh_consumed_ac, voltage, last_updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (meter_id) DO UPDATE SET
			last_kwh_consumed_ac = EXCLUDED.last_kwh_consumed_ac,
			voltage = EXCLUDED.voltage,
			last_updated_at = EXCLUDED.last_updated_at
	`
	_, err := r.db.ExecContext(ctx, query,
		st.MeterID,
		st.LastKWhConsumedAC,
		st.Voltage,
		st.LastUpdatedAt,
	)
	return err
}

// Get returns the current status for a meter.
func (r *MeterStatusRepository) Get(ctx context.Context, meterID string) (*models.MeterStatus, error) {
	const query = `
		SELECT meter_id, last_kwh_consumed_ac, voltage, last_updated_at
		FROM meter_status
		WHERE meter_id = $1
	`
	var st models.MeterStatus
	if err := r.db.QueryRowContext(ctx, query, meterID).Scan(
		&st.MeterID,
		&st.LastKWhConsumedAC,
		&st.Voltage,
		&st.LastUpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMeterStatusNotFound
		}
		return nil, err
	}
	return &st, nil
}
