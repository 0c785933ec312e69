package repository

import (
	"context"
	"database/sql"
	"errors"

	"voltgrid/internal/models"
)

// ErrMappingNotFound indicates the vehicle has no meter mapping.
var ErrMappingNotFound = errors.New("vehicle meter mapping not found")

// MappingRepository persists the vehicle to meter mapping, one row per vehicle.
type MappingRepository struct {
	db *sql.DB
}

// NewMappingRepository returns repository.
func NewMappingRepository(db *sql.DB) *MappingRepository {
	return &MappingRepository{db: db}
}

// Upsert creates the mapping or overwrites the meter for an already-mapped
// vehicle. The meter side is deliberately not unique: one meter may feed
// several vehicles.
func (r *MappingRepository) Upsert(ctx context.Context, m *models.VehicleMeterMapping) error {
	const query = `
		INSERT INTO vehicle_meter_mappings (vehicle_id, meter_id, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (vehicle_id) DO UPDATE SET
			meter_id = EXCLUDED.meter_id,
			updated_at = NOW()
		RETURNING created_at, updated_at
	`
	return r.db.QueryRowContext(ctx, query, m.VehicleID, m.MeterID).
		Scan(&m.CreatedAt, &m.UpdatedAt)
}

// Get returns the mapping for a vehicle.
func (r *MappingRepository) Get(ctx context.Context, vehicleID string) (*models.VehicleMeterMapping, error) {
	const query = `
		SELECT vehicle_id, meter_id, created_at, updated_at
		FROM vehicle_meter_mappings
		WHERE vehicle_id = $1
	`
	var m models.VehicleMeterMapping
	if err := r.db.QueryRowContext(ctx, query, vehicleID).Scan(
		&m.VehicleID,
		&m.MeterID,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMappingNotFound
		}
		return nil, err
	}
	return &m, nil
}
