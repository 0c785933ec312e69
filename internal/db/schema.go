package db

import (
	"context"
	"database/sql"
	"fmt"
)

// EnsureSchema creates the telemetry, status and mapping relations if absent.
// Both history tables carry a composite (device id, recorded_at) index so the
// 24-hour aggregate queries resolve as index range scans instead of full scans.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS vehicle_telemetry (
		id BIGSERIAL PRIMARY KEY,
		vehicle_id TEXT NOT NULL,
		soc DOUBLE PRECISION NOT NULL,
		kwh_delivered_dc DOUBLE PRECISION NOT NULL,
		battery_temp DOUBLE PRECISION NOT NULL,
		recorded_at TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS meter_telemetry (
		id BIGSERIAL PRIMARY KEY,
		meter_id TEXT NOT NULL,
		kwh_consumed_ac DOUBLE PRECISION NOT NULL,
		voltage DOUBLE PRECISION NOT NULL,
		recorded_at TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS vehicle_status (
		vehicle_id TEXT PRIMARY KEY,
		soc DOUBLE PRECISION NOT NULL,
		last_kwh_delivered_dc DOUBLE PRECISION NOT NULL,
		battery_temp DOUBLE PRECISION NOT NULL,
		last_updated_at TIMESTAMPTZ NOT NULL
	);

	CREATE TABLE IF NOT EXISTS meter_status (
		meter_id TEXT PRIMARY KEY,
		last_kwh_consumed_ac DOUBLE PRECISION NOT NULL,
		voltage DOUBLE PRECISION NOT NULL,
		last_updated_at TIMESTAMPTZ NOT NULL
	);

	CREATE TABLE IF NOT EXISTS vehicle_meter_mappings (
		vehicle_id TEXT PRIMARY KEY,
		meter_id TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_vehicle_telemetry_device_time
		ON vehicle_telemetry (vehicle_id, recorded_at);
	CREATE INDEX IF NOT EXISTS idx_meter_telemetry_device_time
		ON meter_telemetry (meter_id, recorded_at);
	`

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("db: ensure schema: %w", err)
	}
	return nil
}
