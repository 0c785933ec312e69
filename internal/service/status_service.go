package service

import (
	"context"

	"go.uber.org/zap"

	"voltgrid/internal/models"
)

// VehicleStatusSource reads current vehicle status rows.
type VehicleStatusSource interface {
	Get(ctx context.Context, vehicleID string) (*models.VehicleStatus, error)
}

// MeterStatusSource reads current meter status rows.
type MeterStatusSource interface {
	Get(ctx context.Context, meterID string) (*models.MeterStatus, error)
}

// StatusService serves the freshest device status, preferring the cache.
type StatusService struct {
	vehicles VehicleStatusSource
	meters   MeterStatusSource
	cache    StatusCache
	logger   *zap.Logger
}

// NewStatusService builds service. Cache is optional.
func NewStatusService(vehicles VehicleStatusSource, meters MeterStatusSource, cache StatusCache, logger *zap.Logger) *StatusService {
	return &StatusService{
		vehicles: vehicles,
		meters:   meters,
		cache:    cache,
		logger:   logger,
	}
}

// VehicleStatus returns the current status for a vehicle.
func (s *StatusService) VehicleStatus(ctx context.Context, vehicleID string) (*models.VehicleStatus, error) {
	if s.cache != nil {
		if status, err := s.cache.GetVehicle(ctx, vehicleID); err == nil {
			return status, nil
		}
	}

	status, err := s.vehicles.Get(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if cacheErr := s.cache.SaveVehicle(ctx, *status); cacheErr != nil {
			s.logger.Warn("failed to backfill vehicle status cache", zap.String("vehicle_id", vehicleID), zap.Error(cacheErr))
		}
	}
	return status, nil
}

// MeterStatus returns the current status for a meter.
func (s *StatusService) MeterStatus(ctx context.Context, meterID string) (*models.MeterStatus, error) {
	if s.cache != nil {
		if status, err := s.cache.GetMeter(ctx, meterID); err == nil {
			return status, nil
		}
	}

	status, err := s.meters.Get(ctx, meterID)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if cacheErr := s.cache.SaveMeter(ctx, *status); cacheErr != nil {
			s.logger.Warn("failed to backfill meter status cache", zap.String("meter_id", meterID), zap.Error(cacheErr))
		}
	}
	return status, nil
}
