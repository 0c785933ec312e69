package service

import (
	"context"

	"go.uber.org/zap"

	"voltgrid/internal/models"
)

// MappingStore defines mapping persistence used by the service.
type MappingStore interface {
	Upsert(ctx context.Context, mapping *models.VehicleMeterMapping) error
	Get(ctx context.Context, vehicleID string) (*models.VehicleMeterMapping, error)
}

// MappingService manages the vehicle to meter assignment table.
type MappingService struct {
	store  MappingStore
	logger *zap.Logger
}

// NewMappingService builds service.
func NewMappingService(store MappingStore, logger *zap.Logger) *MappingService {
	return &MappingService{store: store, logger: logger}
}

// Save upserts the mapping row for a vehicle, overwriting any previous meter.
func (s *MappingService) Save(ctx context.Context, vehicleID, meterID string) (*models.VehicleMeterMapping, error) {
	mapping := &models.VehicleMeterMapping{
		VehicleID: vehicleID,
		MeterID:   meterID,
	}
	if err := s.store.Upsert(ctx, mapping); err != nil {
		return nil, err
	}
	s.logger.Info("vehicle meter mapping saved",
		zap.String("vehicle_id", vehicleID),
		zap.String("meter_id", meterID))
	return mapping, nil
}

// Get returns the mapping for a vehicle.
func (s *MappingService) Get(ctx context.Context, vehicleID string) (*models.VehicleMeterMapping, error) {
	return s.store.Get(ctx, vehicleID)
}
