package models

import "time"

// VehicleReading is one charger-side telemetry sample for a vehicle.
// History rows are append-only: written once, never updated or deleted.
type VehicleReading struct {
	ID             int64     `db:"id" json:"id"`
	VehicleID      string    `db:"vehicle_id" json:"vehicleId"`
	SOC            float64   `db:"soc" json:"soc"`
	KWhDeliveredDC float64   `db:"kwh_delivered_dc" json:"kwhDeliveredDc"`
	BatteryTemp    float64   `db:"battery_temp" json:"batteryTemp"`
	RecordedAt     time.Time `db:"recorded_at" json:"timestamp"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
}

// MeterReading is one grid-side telemetry sample for a utility meter.
type MeterReading struct {
	ID            int64     `db:"id" json:"id"`
	MeterID       string    `db:"meter_id" json:"meterId"`
	KWhConsumedAC float64   `db:"kwh_consumed_ac" json:"kwhConsumedAc"`
	Voltage       float64   `db:"voltage" json:"voltage"`
	RecordedAt    time.Time `db:"recorded_at" json:"timestamp"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
}
