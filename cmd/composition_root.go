package cmd

import (
	"log/slog"
	"strconv"
	"time"

	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/assigner"
	"fulfillment/internal/adapters/out/postgres/userrepo"
	"fulfillment/internal/adapters/out/rabbitmq"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters, trackers, and use-case handlers. Built
// once at startup; every Create* method returns a ready handler sharing the
// root's singletons.
type CompositionRoot struct {
	config Config
	gormDB *gorm.DB
	logger *slog.Logger

	uowFactory postgres.GormUnitOfWorkFactory
	broker     *rabbitmq.Client
	notifier   *rabbitmq.Notifier
	assigner   *assigner.Service
	users      *userrepo.GormUserRepository

	retryTracker    *services.RetryTracker
	reminderTracker *services.ReminderTracker
}

// NewCompositionRoot builds the object graph from the opened database and
// broker connections.
func NewCompositionRoot(config Config, gormDB *gorm.DB, broker *rabbitmq.Client, logger *slog.Logger) *CompositionRoot {
	return &CompositionRoot{
		config:          config,
		gormDB:          gormDB,
		logger:          logger,
		uowFactory:      *postgres.NewGormUnitOfWorkFactory(gormDB),
		broker:          broker,
		notifier:        rabbitmq.NewNotifier(broker),
		assigner:        assigner.NewService(gormDB, logger),
		users:           userrepo.NewGormUserRepository(gormDB),
		retryTracker:    services.NewRetryTracker(),
		reminderTracker: services.NewReminderTracker(),
	}
}

// RetryTracker returns the shared retry tracking state.
func (c *CompositionRoot) RetryTracker() *services.RetryTracker {
	return c.retryTracker
}

// ReminderTracker returns the shared reminder tracking state.
func (c *CompositionRoot) ReminderTracker() *services.ReminderTracker {
	return c.reminderTracker
}

// Broker returns the message broker client for health checks.
func (c *CompositionRoot) Broker() *rabbitmq.Client {
	return c.broker
}

func (c *CompositionRoot) CreateProcessDriverSearchCommandHandler() commands.ProcessDriverSearchCommandHandler {
	var f commands.SearchUoWFactory = FuncSearchUoWFactory(func() commands.SearchUoW {
		return c.uowFactory.Create()
	})
	return commands.NewProcessDriverSearchCommandHandler(
		f, c.assigner, c.notifier, c.users, c.searchPolicy(), c.logger,
	)
}

func (c *CompositionRoot) CreateRetryUnassignedOrdersCommandHandler() commands.RetryUnassignedOrdersCommandHandler {
	var f commands.RetryUoWFactory = FuncRetryUoWFactory(func() commands.RetryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRetryUnassignedOrdersCommandHandler(
		f, c.retryTracker, c.assigner, c.notifier, c.users,
		c.config.AdminEmail, c.retryPolicy(), c.logger,
	)
}

func (c *CompositionRoot) CreateRemindPendingOrdersCommandHandler() commands.RemindPendingOrdersCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRemindPendingOrdersCommandHandler(
		f, c.reminderTracker, c.users, c.notifier, c.logger,
	)
}

func (c *CompositionRoot) CreateStartDriverSearchCommandHandler() commands.StartDriverSearchCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewStartDriverSearchCommandHandler(f)
}

func (c *CompositionRoot) CreateResetDriverSearchCommandHandler() commands.ResetDriverSearchCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewResetDriverSearchCommandHandler(f)
}

func (c *CompositionRoot) CreateGetSearchingOrdersQueryHandler() queries.GetSearchingOrdersQueryHandler {
	return queries.NewGetSearchingOrdersQueryHandler(c.gormDB)
}

// CreateJobManager wires the three scheduler loops.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateProcessDriverSearchCommandHandler(),
		c.CreateRetryUnassignedOrdersCommandHandler(),
		c.CreateRemindPendingOrdersCommandHandler(),
		c.logger,
	)
}

// CreateHTTPServer wires the operator API server.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateStartDriverSearchCommandHandler(),
		c.CreateResetDriverSearchCommandHandler(),
		c.CreateGetSearchingOrdersQueryHandler(),
		c.retryTracker,
		c.reminderTracker,
		c.broker,
	)
}

func (c *CompositionRoot) searchPolicy() commands.SearchPolicy {
	policy := commands.DefaultSearchPolicy()
	if d, err := time.ParseDuration(c.config.SearchTimeout); err == nil && d > 0 {
		policy.Timeout = d
	}
	if n, err := strconv.Atoi(c.config.SearchMaxAttempts); err == nil && n > 0 {
		policy.MaxAttempts = n
	}
	return policy
}

func (c *CompositionRoot) retryPolicy() commands.RetryPolicy {
	policy := commands.DefaultRetryPolicy()
	if n, err := strconv.Atoi(c.config.RetryMaxAttempts); err == nil && n > 0 {
		policy.MaxAttempts = n
	}
	if d, err := time.ParseDuration(c.config.RetryMaxAge); err == nil && d > 0 {
		policy.MaxAge = d
	}
	if d, err := time.ParseDuration(c.config.RetryPurgeGrace); err == nil && d > 0 {
		policy.PurgeGrace = d
	}
	return policy
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncSearchUoWFactory func() commands.SearchUoW

func (f FuncSearchUoWFactory) Create() commands.SearchUoW {
	return f()
}

type FuncRetryUoWFactory func() commands.RetryUoW

func (f FuncRetryUoWFactory) Create() commands.RetryUoW {
	return f()
}
