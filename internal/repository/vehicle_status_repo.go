package repository

import (
	"context"
	"database/sql"
	"errors"

	"voltgrid/internal/models"
)

// ErrVehicleStatusNotFound indicates no reading was ever ingested for the vehicle.
var ErrVehicleStatusNotFound = errors.New("vehicle status not found")

// VehicleStatusRepository maintains the single current-status row per vehicle.
type VehicleStatusRepository struct {
	db *sql.DB
}

// NewVehicleStatusRepository returns repository.
func NewVehicleStatusRepository(db *sql.DB) *VehicleStatusRepository {
	return &VehicleStatusRepository{db: db}
}

// Upsert inserts the row or overwrites every non-key column unconditionally.
// There is no event-time guard: the last write to commit wins.
func (r *VehicleStatusRepository) Upsert(ctx context.Context, st *models.VehicleStatus) error {
	const query = `
		INSERT INTO vehicle_status (vehicle_id, soc, last_kwh_delivered_dc, battery_temp, last_updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (vehicle_id) DO UPDATE SET
			soc = EXCLUDED.soc,
			last_kwh_delivered_dc = EXCLUDED.last_kwh_delivered_dc,
			battery_temp = EXCLUDED.battery_temp,
			last_updated_at = EXCLUDED.last_updated_at
	`
	_, err := r.db.ExecContext(ctx, query,
		st.VehicleID,
		st.SOC,
		st.LastKWhDeliveredDC,
		st.BatteryTemp,
		st.LastUpdatedAt,
	)
	return err
}

// Get returns the current status for a vehicle.
func (r *VehicleStatusRepository) Get(ctx context.Context, vehicleID string) (*models.VehicleStatus, error) {
	const query = `
		SELECT vehicle_id, soc, last_kwh_delivered_dc, battery_temp, last_updated_at
		FROM vehicle_status
		WHERE vehicle_id = $1
	`
	var st models.VehicleStatus
	if err := r.db.QueryRowContext(ctx, query, vehicleID).Scan(
		&st.VehicleID,
		&st.SOC,
		&st.LastKWhDeliveredDC,
		&st.BatteryTemp,
		&st.LastUpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVehicleStatusNotFound
		}
		return nil, err
	}
	return &st, nil
}
