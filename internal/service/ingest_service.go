package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"voltgrid/internal/metrics"
	"voltgrid/internal/models"
	"voltgrid/internal/ws"
)

// Kind labels for classified telemetry.
const (
	KindVehicle = "vehicle"
	KindMeter   = "meter"
)

// VehicleTelemetryStore defines vehicle history storage used by ingestion.
type VehicleTelemetryStore interface {
	Insert(ctx context.Context, reading *models.VehicleReading) error
}

// MeterTelemetryStore defines meter history storage used by ingestion.
type MeterTelemetryStore interface {
	Insert(ctx context.Context, reading *models.MeterReading) error
}

// VehicleStatusStore defines the current vehicle status relation.
type VehicleStatusStore interface {
	Upsert(ctx context.Context, status *models.VehicleStatus) error
}

// MeterStatusStore defines the current meter status relation.
type MeterStatusStore interface {
	Upsert(ctx context.Context, status *models.MeterStatus) error
}

// StatusCache keeps the freshest device status for quick reads.
type StatusCache interface {
	SaveVehicle(ctx context.Context, status models.VehicleStatus) error
	GetVehicle(ctx context.Context, vehicleID string) (*models.VehicleStatus, error)
	SaveMeter(ctx context.Context, status models.MeterStatus) error
	GetMeter(ctx context.Context, meterID string) (*models.MeterStatus, error)
}

// StreamPublisher pushes ingested readings to live subscribers.
type StreamPublisher interface {
	Broadcast(event ws.Event)
}

// VehicleTelemetryInput is a classified charger-side reading.
type VehicleTelemetryInput struct {
	VehicleID      string
	SOC            float64
	KWhDeliveredDC float64
	BatteryTemp    float64
	Timestamp      time.Time
}

// MeterTelemetryInput is a classified grid-side reading.
type MeterTelemetryInput struct {
	MeterID       string
	KWhConsumedAC float64
	Voltage       float64
	Timestamp     time.Time
}

// IngestService routes classified telemetry into history and status relations.
type IngestService struct {
	vehicles      VehicleTelemetryStore
	meters        MeterTelemetryStore
	vehicleStatus VehicleStatusStore
	meterStatus   MeterStatusStore
	cache         StatusCache
	stream        StreamPublisher
	logger        *zap.Logger
}

// NewIngestService builds service. Cache and stream are optional.
func NewIngestService(
	vehicles VehicleTelemetryStore,
	meters MeterTelemetryStore,
	vehicleStatus VehicleStatusStore,
	meterStatus MeterStatusStore,
	cache StatusCache,
	stream StreamPublisher,
	logger *zap.Logger,
) *IngestService {
	return &IngestService{
		vehicles:      vehicles,
		meters:        meters,
		vehicleStatus: vehicleStatus,
		meterStatus:   meterStatus,
		cache:         cache,
		stream:        stream,
		logger:        logger,
	}
}

// IngestVehicle appends a history row and overwrites the current status row.
// The two writes are independent statements; a failure between them leaves
// the relations out of step until the next reading for the vehicle arrives.
func (s *IngestService) IngestVehicle(ctx context.Context, input VehicleTelemetryInput) (*models.VehicleReading, error) {
	if input.Timestamp.IsZero() {
		input.Timestamp = time.Now().UTC()
	}
	reading := &models.VehicleReading{
		VehicleID:      input.VehicleID,
		SOC:            input.SOC,
		KWhDeliveredDC: input.KWhDeliveredDC,
		BatteryTemp:    input.BatteryTemp,
		RecordedAt:     input.Timestamp.UTC(),
	}
	if err := s.vehicles.Insert(ctx, reading); err != nil {
		return nil, err
	}

	status := models.VehicleStatus{
		VehicleID:          input.VehicleID,
		SOC:                input.SOC,
		LastKWhDeliveredDC: input.KWhDeliveredDC,
		BatteryTemp:        input.BatteryTemp,
		LastUpdatedAt:      reading.RecordedAt,
	}
	if err := s.vehicleStatus.Upsert(ctx, &status); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if cacheErr := s.cache.SaveVehicle(ctx, status); cacheErr != nil && cacheErr != redis.Nil {
			s.logger.Warn("failed to cache vehicle status", zap.String("vehicle_id", input.VehicleID), zap.Error(cacheErr))
		}
	}
	if s.stream != nil {
		s.stream.Broadcast(ws.Event{Kind: KindVehicle, Data: reading})
	}
	metrics.TelemetryIngested.WithLabelValues(KindVehicle).Inc()

	return reading, nil
}

// IngestMeter appends a history row and overwrites the current status row.
func (s *IngestService) IngestMeter(ctx context.Context, input MeterTelemetryInput) (*models.MeterReading, error) {
	if input.Timestamp.IsZero() {
		input.Timestamp = time.Now().UTC()
	}
	reading := &models.MeterReading{
		MeterID:       input.MeterID,
		KWhConsumedAC: input.KWhConsumedAC,
		Voltage:       input.Voltage,
		RecordedAt:    input.Timestamp.UTC(),
	}
	if err := s.meters.Insert(ctx, reading); err != nil {
		return nil, err
	}

	status := models.MeterStatus{
		MeterID:           input.MeterID,
		LastKWhConsumedAC: input.KWhConsumedAC,
		Voltage:           input.Voltage,
		LastUpdatedAt:     reading.RecordedAt,
	}
	if err := s.meterStatus.Upsert(ctx, &status); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if cacheErr := s.cache.SaveMeter(ctx, status); cacheErr != nil && cacheErr != redis.Nil {
			s.logger.Warn("failed to cache meter status", zap.String("meter_id", input.MeterID), zap.Error(cacheErr))
		}
	}
	if s.stream != nil {
		s.stream.Broadcast(ws.Event{Kind: KindMeter, Data: reading})
	}
	metrics.TelemetryIngested.WithLabelValues(KindMeter).Inc()

	return reading, nil
}
