package cmd

import (
	"log/slog"
	"strconv"
	"time"

	httpin "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/maps"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/courierrepo"
	"dispatch/internal/adapters/out/postgres/ledgerrepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/adapters/out/postgres/zonerepo"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/jobs"

	"gorm.io/gorm"
)

const (
	defaultMapsTimeout = 5 * time.Second

	defaultImmediateSchedule    = "*/30 * * * * *"
	defaultSubscriptionSchedule = "0 * * * * *"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateMapsClient() *maps.Client {
	timeout := defaultMapsTimeout
	if seconds, err := strconv.Atoi(c.config.MapsTimeoutSeconds); err == nil && seconds > 0 {
		timeout = time.Duration(seconds) * time.Second
	}
	return maps.NewClient(c.config.MapsBaseURL, c.config.MapsAPIKey, timeout)
}

func (c *CompositionRoot) CreateProcessOrderBatchCommandHandler() (*commands.ProcessOrderBatchCommandHandler, error) {
	mapsClient := c.CreateMapsClient()

	scoringMode := services.ScoringModeWeighted
	if c.config.ScoringMode != "" {
		scoringMode = services.ScoringMode(c.config.ScoringMode)
	}
	etaGate, _ := strconv.ParseBool(c.config.ETAGateEnabled)

	scoring, err := services.NewScoringEngine(mapsClient, scoringMode, etaGate, c.logger)
	if err != nil {
		return nil, err
	}

	assignments := ledgerrepo.NewGormAssignmentRepository(c.gormDB)
	rejections := ledgerrepo.NewGormRejectionRepository(c.gormDB)
	notifications := ledgerrepo.NewGormNotificationRepository(c.gormDB)

	cascade, err := services.NewOfferCascade(
		services.NewAutoAcceptResponder(), assignments, rejections, notifications, c.logger)
	if err != nil {
		return nil, err
	}

	geocodePolicy := commands.GeocodeSkip
	if c.config.GeocodeFailurePolicy != "" {
		geocodePolicy = commands.GeocodeFailurePolicy(c.config.GeocodeFailurePolicy)
	}

	var defaultLocation kernel.GeoPoint
	if geocodePolicy == commands.GeocodeFallback {
		lat, err := strconv.ParseFloat(c.config.DefaultLocationLat, 64)
		if err != nil {
			return nil, err
		}
		lng, err := strconv.ParseFloat(c.config.DefaultLocationLng, 64)
		if err != nil {
			return nil, err
		}
		defaultLocation, err = kernel.NewGeoPoint(lat, lng)
		if err != nil {
			return nil, err
		}
	}

	var f commands.AssignmentUoWFactory = FuncAssignmentUoWFactory(func() commands.AssignmentUoW {
		return c.uowFactory.Create()
	})

	return commands.NewProcessOrderBatchCommandHandler(
		f,
		orderrepo.NewGormOrderRepository(c.gormDB, nil),
		zonerepo.NewGormZoneRepository(c.gormDB, c.logger),
		courierrepo.NewGormCourierRepository(c.gormDB, nil),
		notifications,
		mapsClient,
		mapsClient,
		scoring,
		cascade,
		geocodePolicy,
		defaultLocation,
		c.logger,
	)
}

func (c *CompositionRoot) CreateGetPendingOrdersQueryHandler() queries.GetPendingOrdersQueryHandler {
	return queries.NewGetPendingOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAssignmentHistoryQueryHandler() queries.GetAssignmentHistoryQueryHandler {
	return queries.NewGetAssignmentHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer(batchHandler *commands.ProcessOrderBatchCommandHandler) *httpin.Server {
	return httpin.NewServer(
		batchHandler,
		c.CreateGetPendingOrdersQueryHandler(),
		c.CreateGetAssignmentHistoryQueryHandler(),
	)
}

func (c *CompositionRoot) CreateJobManager(batchHandler *commands.ProcessOrderBatchCommandHandler) *jobs.JobManager {
	immediate := c.config.ImmediatePassSchedule
	if immediate == "" {
		immediate = defaultImmediateSchedule
	}
	subscription := c.config.SubscriptionPassSchedule
	if subscription == "" {
		subscription = defaultSubscriptionSchedule
	}

	return jobs.NewJobManager(batchHandler, immediate, subscription, c.logger)
}

type FuncAssignmentUoWFactory func() commands.AssignmentUoW

func (f FuncAssignmentUoWFactory) Create() commands.AssignmentUoW {
	return f()
}
