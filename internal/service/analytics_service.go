package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"voltgrid/internal/metrics"
	"voltgrid/internal/models"
	"voltgrid/internal/repository"
)

// PerformancePeriod labels the fixed reporting window in summaries.
const PerformancePeriod = "last_24_hours"

// performanceWindow is the look-back applied to both history relations.
const performanceWindow = 24 * time.Hour

var timeNow = time.Now

// ErrVehicleNotMapped is returned when analytics is requested for a vehicle
// without a meter mapping.
var ErrVehicleNotMapped = errors.New("analytics: vehicle has no meter mapping")

// VehicleStatsSource aggregates vehicle history rows.
type VehicleStatsSource interface {
	StatsSince(ctx context.Context, vehicleID string, since time.Time) (totalDC, avgTemp float64, err error)
}

// MeterStatsSource aggregates meter history rows.
type MeterStatsSource interface {
	SumConsumedSince(ctx context.Context, meterID string, since time.Time) (float64, error)
}

// MappingSource resolves the meter serving a vehicle.
type MappingSource interface {
	Get(ctx context.Context, vehicleID string) (*models.VehicleMeterMapping, error)
}

// AnalyticsService answers 24-hour performance queries.
type AnalyticsService struct {
	vehicles VehicleStatsSource
	meters   MeterStatsSource
	mappings MappingSource
	logger   *zap.Logger
}

// NewAnalyticsService builds service.
func NewAnalyticsService(vehicles VehicleStatsSource, meters MeterStatsSource, mappings MappingSource, logger *zap.Logger) *AnalyticsService {
	return &AnalyticsService{
		vehicles: vehicles,
		meters:   meters,
		mappings: mappings,
		logger:   logger,
	}
}

// VehiclePerformance resolves the vehicle's meter, aggregates both history
// relations over the last 24 hours and derives the efficiency ratio.
func (s *AnalyticsService) VehiclePerformance(ctx context.Context, vehicleID string) (*models.PerformanceSummary, error) {
	start := time.Now()
	defer func() {
		metrics.PerformanceQueryDuration.Observe(time.Since(start).Seconds())
	}()

	mapping, err := s.mappings.Get(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, repository.ErrMappingNotFound) {
			return nil, ErrVehicleNotMapped
		}
		return nil, err
	}

	since := timeNow().UTC().Add(-performanceWindow)

	totalDC, avgTemp, err := s.vehicles.StatsSince(ctx, vehicleID, since)
	if err != nil {
		return nil, err
	}
	totalAC, err := s.meters.SumConsumedSince(ctx, mapping.MeterID, since)
	if err != nil {
		return nil, err
	}

	return &models.PerformanceSummary{
		VehicleID: vehicleID,
		Period:    PerformancePeriod,
		Energy: models.EnergySummary{
			ACConsumed:      round2(totalAC),
			DCDelivered:     round2(totalDC),
			EfficiencyRatio: EfficiencyRatio(totalDC, totalAC),
		},
		Battery: models.BatterySummary{
			AvgTemperature: round2(avgTemp),
		},
	}, nil
}
