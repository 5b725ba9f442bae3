package cmd

import (
	"log/slog"
	"os"

	httpin "laundryops/internal/adapters/in/http"
	"laundryops/internal/adapters/out/kafkaqueue"
	"laundryops/internal/adapters/out/postgres"
	"laundryops/internal/adapters/out/postgres/notificationrepo"
	"laundryops/internal/adapters/out/postgres/staffrepo"
	"laundryops/internal/adapters/out/rewardsapi"
	"laundryops/internal/core/application/dispatch"
	"laundryops/internal/core/application/usecases/commands"
	"laundryops/internal/core/application/usecases/queries"
	"laundryops/internal/core/ports"
	"laundryops/internal/jobs"
	"laundryops/internal/realtime"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory

	logger    *slog.Logger
	registry  *realtime.Registry
	store     ports.NotificationStore
	settings  ports.TenantSettingsRepository
	engine    *dispatch.Engine
	publisher *kafkaqueue.Publisher
	rewards   *rewardsapi.Client
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) *CompositionRoot {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	registry := realtime.NewRegistry(logger)
	store := notificationrepo.NewGormNotificationStore(gormDB)
	engine := dispatch.NewEngine(
		store,
		registry,
		logger,
		dispatch.WithMetrics(dispatch.NewMetrics(prometheus.DefaultRegisterer)),
	)

	return &CompositionRoot{
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
		registry:   registry,
		store:      store,
		settings:   staffrepo.NewGormTenantSettingsRepository(gormDB),
		engine:     engine,
		publisher:  kafkaqueue.NewPublisher(config.KafkaHost, config.KafkaOrderEventTopic),
		rewards:    rewardsapi.NewClient(config.RewardsAPIBaseURL),
	}
}

func (c *CompositionRoot) Logger() *slog.Logger {
	return c.logger
}

func (c *CompositionRoot) Registry() *realtime.Registry {
	return c.registry
}

// ClosePublisher releases the Kafka writer on shutdown.
func (c *CompositionRoot) ClosePublisher() error {
	return c.publisher.Close()
}

func (c *CompositionRoot) CreateRewardPipeline() commands.DeliveryRewardPipeline {
	var f commands.CustomerUoWFactory = FuncCustomerUoWFactory(func() commands.CustomerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeliveryRewardPipeline(f, c.rewards, c.rewards, c.engine, c.logger)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewTransitionOrderCommandHandler(
		f,
		staffrepo.NewGormStaffRepository(c.gormDB),
		c.CreateRewardPipeline(),
		c.engine,
		c.registry,
		c.publisher,
		c.logger,
	)
}

func (c *CompositionRoot) CreateRequestRefundCommandHandler() commands.RequestRefundCommandHandler {
	return commands.NewRequestRefundCommandHandler(c.refundUoWFactory(), c.engine, c.logger)
}

func (c *CompositionRoot) CreateApproveRefundCommandHandler() commands.ApproveRefundCommandHandler {
	return commands.NewApproveRefundCommandHandler(c.refundUoWFactory(), c.engine, c.logger)
}

func (c *CompositionRoot) CreateRejectRefundCommandHandler() commands.RejectRefundCommandHandler {
	return commands.NewRejectRefundCommandHandler(c.refundUoWFactory(), c.engine, c.logger)
}

func (c *CompositionRoot) CreateEscalateRefundCommandHandler() commands.EscalateRefundCommandHandler {
	return commands.NewEscalateRefundCommandHandler(c.refundUoWFactory(), c.engine, c.logger)
}

func (c *CompositionRoot) CreateProcessRefundCommandHandler() commands.ProcessRefundCommandHandler {
	return commands.NewProcessRefundCommandHandler(c.refundUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateSyncUserPermissionsCommandHandler() commands.SyncUserPermissionsCommandHandler {
	return commands.NewSyncUserPermissionsCommandHandler(c.staffUoWFactory(), c.settings, c.engine, c.logger)
}

func (c *CompositionRoot) CreateSyncTenancyPermissionsCommandHandler() commands.SyncTenancyPermissionsCommandHandler {
	return commands.NewSyncTenancyPermissionsCommandHandler(c.staffUoWFactory(), c.settings, c.engine, c.logger)
}

func (c *CompositionRoot) CreateGetUnreadNotificationsQueryHandler() queries.GetUnreadNotificationsQueryHandler {
	return queries.NewGetUnreadNotificationsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderTimelineQueryHandler() queries.GetOrderTimelineQueryHandler {
	return queries.NewGetOrderTimelineQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Deps{
		TransitionOrder:        c.CreateTransitionOrderCommandHandler(),
		RequestRefund:          c.CreateRequestRefundCommandHandler(),
		ApproveRefund:          c.CreateApproveRefundCommandHandler(),
		RejectRefund:           c.CreateRejectRefundCommandHandler(),
		EscalateRefund:         c.CreateEscalateRefundCommandHandler(),
		ProcessRefund:          c.CreateProcessRefundCommandHandler(),
		SyncUserPermissions:    c.CreateSyncUserPermissionsCommandHandler(),
		SyncTenancyPermissions: c.CreateSyncTenancyPermissionsCommandHandler(),
		UnreadNotifications:    c.CreateGetUnreadNotificationsQueryHandler(),
		OrderTimeline:          c.CreateGetOrderTimelineQueryHandler(),
		Store:                  c.store,
		Registry:               c.registry,
	})
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.registry, c.store, c.logger)
}

func (c *CompositionRoot) refundUoWFactory() commands.RefundUoWFactory {
	return FuncRefundUoWFactory(func() commands.RefundUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) staffUoWFactory() commands.StaffUoWFactory {
	return FuncStaffUoWFactory(func() commands.StaffUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCustomerUoWFactory func() commands.CustomerUoW

func (f FuncCustomerUoWFactory) Create() commands.CustomerUoW {
	return f()
}

type FuncRefundUoWFactory func() commands.RefundUoW

func (f FuncRefundUoWFactory) Create() commands.RefundUoW {
	return f()
}

type FuncStaffUoWFactory func() commands.StaffUoW

func (f FuncStaffUoWFactory) Create() commands.StaffUoW {
	return f()
}
