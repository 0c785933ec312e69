package models

import "time"

// VehicleMeterMapping binds a vehicle to the utility meter feeding its charger.
// Keyed by vehicle: one mapping per vehicle, while a meter may serve many vehicles.
type VehicleMeterMapping struct {
	VehicleID string    `db:"vehicle_id" json:"vehicleId"`
	MeterID   string    `db:"meter_id" json:"meterId"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
