package app

import (
	"context"
	"database/sql"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	libredis "voltgrid/libs/redis"

	"voltgrid/internal/config"
	"voltgrid/internal/db"
	httpserver "voltgrid/internal/http"
	"voltgrid/internal/http/handlers"
	"voltgrid/internal/http/middleware"
	"voltgrid/internal/metrics"
	redisstore "voltgrid/internal/redis"
	"voltgrid/internal/repository"
	"voltgrid/internal/service"
	"voltgrid/internal/ws"
)

// App wires service dependencies.
type App struct {
	server      *httpserver.Server
	db          *sql.DB
	redisClient *redis.Client
	logger      *zap.Logger
}

// New constructs the application graph.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	sqlDB, err := db.NewPostgres(cfg.Database.DSN)
	if err != nil {
		return nil, err
	}

	schemaCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.EnsureSchema(schemaCtx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}

	var redisClient *redis.Client
	var cache service.StatusCache
	if cfg.CacheEnabled() {
		redisClient, err = libredis.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			sqlDB.Close()
			return nil, err
		}
		cache = redisstore.NewCache(redisClient, cfg.StatusTTL())
	}

	vehicleRepo := repository.NewVehicleTelemetryRepository(sqlDB)
	meterRepo := repository.NewMeterTelemetryRepository(sqlDB)
	vehicleStatusRepo := repository.NewVehicleStatusRepository(sqlDB)
	meterStatusRepo := repository.NewMeterStatusRepository(sqlDB)
	mappingRepo := repository.NewMappingRepository(sqlDB)

	hub := ws.NewHub(logger)
	wsServer := ws.NewServer(hub, cfg.StreamWriteTimeout(), logger)

	ingestService := service.NewIngestService(vehicleRepo, meterRepo, vehicleStatusRepo, meterStatusRepo, cache, hub, logger)
	analyticsService := service.NewAnalyticsService(vehicleRepo, meterRepo, mappingRepo, logger)
	mappingService := service.NewMappingService(mappingRepo, logger)
	statusService := service.NewStatusService(vehicleStatusRepo, meterStatusRepo, cache, logger)

	telemetryHandler := handlers.NewTelemetryHandler(ingestService, logger)
	performanceHandler := handlers.NewPerformanceHandler(analyticsService, logger)
	mappingsHandler := handlers.NewMappingsHandler(mappingService, logger)
	statusHandler := handlers.NewStatusHandler(statusService, logger)

	routes := httpserver.Routes{
		Telemetry:     telemetryHandler.Handle,
		Performance:   performanceHandler.Handle,
		MappingCreate: mappingsHandler.HandleCreate,
		MappingUpdate: mappingsHandler.HandleUpdate,
		MappingGet:    mappingsHandler.HandleGet,
		VehicleStatus: statusHandler.HandleVehicle,
		MeterStatus:   statusHandler.HandleMeter,
		Stream:        wsServer.HandleWS,
		Health:        handlers.NewHealthHandler(),
		Metrics:       metrics.Handler(),
	}
	if cfg.Auth.Enabled {
		routes.Auth = middleware.AuthMiddleware(cfg.Auth.Secret)
	}

	router := httpserver.NewRouter(routes)
	server := httpserver.NewServer(cfg.HTTPAddress(), router, logger)

	return &App{
		server:      server,
		db:          sqlDB,
		redisClient: redisClient,
		logger:      logger,
	}, nil
}

// Run starts HTTP server.
func (a *App) Run(ctx context.Context) error {
	return a.server.Run(ctx)
}

// Close releases resources.
func (a *App) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close db", zap.Error(err))
		}
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warn("failed to close redis", zap.Error(err))
		}
	}
}
