package models

import "time"

// VehicleStatus holds the most recently ingested reading for a vehicle,
// one row per vehicle, overwritten on every ingestion (last write wins).
type VehicleStatus struct {
	VehicleID          string    `db:"vehicle_id" json:"vehicleId"`
	SOC                float64   `db:"soc" json:"soc"`
	LastKWhDeliveredDC float64   `db:"last_kwh_delivered_dc" json:"lastKwhDeliveredDc"`
	BatteryTemp        float64   `db:"battery_temp" json:"batteryTemp"`
	LastUpdatedAt      time.Time `db:"last_updated_at" json:"lastUpdatedAt"`
}

// MeterStatus holds the most recently ingested reading for a meter.
type MeterStatus struct {
	MeterID           string    `db:"meter_id" json:"meterId"`
	LastKWhConsumedAC float64   `db:"last_kwh_consumed_ac" json:"lastKwhConsumedAc"`
	Voltage           float64   `db:"voltage" json:"voltage"`
	LastUpdatedAt     time.Time `db:"last_updated_at" json:"lastUpdatedAt"`
}
