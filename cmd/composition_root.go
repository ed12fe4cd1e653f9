package cmd

import (
	"context"
	"fmt"
	"log/slog"

	httpin "ordering/internal/adapters/in/http"
	"ordering/internal/adapters/out/llm"
	"ordering/internal/adapters/out/postgres"
	"ordering/internal/adapters/out/postgres/customerrepo"
	"ordering/internal/adapters/out/postgres/productrepo"
	"ordering/internal/adapters/out/postgres/sessionrepo"
	"ordering/internal/adapters/out/redis/sessionstore"
	"ordering/internal/core/application/statemachine"
	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/jobs"
	"ordering/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs Config
	gormDB  *gorm.DB
	logger  *slog.Logger

	registry   *prometheus.Registry
	collectors *metrics.Collectors
	uowFactory ports.UnitOfWorkFactory
	customers  *customerrepo.GormCustomerRepository
	sessions   ports.SessionStore
	userLocks  *commands.UserLocks

	turnHandler *commands.HandleTurnCommandHandler
}

// NewCompositionRoot wires the adapters. redisClient is only used when the
// session backend is redis.
func NewCompositionRoot(
	configs Config,
	gormDB *gorm.DB,
	redisClient *redis.Client,
	logger *slog.Logger,
) (*CompositionRoot, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metricCollectors, err := metrics.NewCollectors(registry)
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	c := &CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		logger:     logger,
		registry:   registry,
		collectors: metricCollectors,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		customers:  customerrepo.NewGormCustomerRepository(gormDB),
		userLocks:  commands.NewUserLocks(),
	}

	switch configs.SessionBackend {
	case SessionBackendRedis:
		if redisClient == nil {
			return nil, fmt.Errorf("session backend %q needs a redis client", configs.SessionBackend)
		}
		c.sessions = sessionstore.NewRedisSessionStore(
			redisClient, sessionstore.DefaultKeyPrefix, configs.SessionTTL, configs.HistoryLimit)
	default:
		c.sessions = sessionrepo.NewGormSessionRepository(gormDB, configs.HistoryLimit)
	}

	return c, nil
}

func (c *CompositionRoot) Registry() prometheus.Gatherer {
	return c.registry
}

func (c *CompositionRoot) SessionStore() ports.SessionStore {
	return c.sessions
}

func (c *CompositionRoot) CreateFinalizeOrderCommandHandler() commands.FinalizeOrderCommandHandler {
	var f commands.FulfillmentUoWFactory = FuncFulfillmentUoWFactory(func() commands.FulfillmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewFinalizeOrderCommandHandler(f, c.logger, c.collectors)
}

// CreateOrderFinalizer exposes FinalizeOrder to the state machine.
func (c *CompositionRoot) CreateOrderFinalizer() ports.OrderFinalizer {
	handler := c.CreateFinalizeOrderCommandHandler()
	return FuncOrderFinalizer(func(ctx context.Context, state order.State) (order.State, kernel.UUID, error) {
		cmd, err := commands.NewFinalizeOrderCommand(state)
		if err != nil {
			return state, kernel.UUID{}, err
		}
		result, err := handler.Handle(ctx, cmd)
		if err != nil {
			return state, kernel.UUID{}, err
		}
		return result.State, result.OrderID, nil
	})
}

func (c *CompositionRoot) CreateOrderStateMachine() *statemachine.OrderStateMachine {
	return statemachine.NewOrderStateMachine(
		productrepo.NewGormProductCatalog(c.gormDB),
		c.customers,
		c.CreateOrderFinalizer(),
		c.logger,
		c.collectors,
	)
}

func (c *CompositionRoot) CreateIntentClassifier() ports.IntentClassifier {
	return llm.NewClassifier(llm.Config{
		APIKey:  c.configs.LLMAPIKey,
		BaseURL: c.configs.LLMBaseURL,
		Model:   c.configs.LLMModel,
		Timeout: c.configs.LLMTimeout,
	}, c.logger)
}

// HandleTurnCommandHandler is built once. Its UserLocks are shared with the
// login reset.
func (c *CompositionRoot) HandleTurnCommandHandler() *commands.HandleTurnCommandHandler {
	if c.turnHandler == nil {
		c.turnHandler = commands.NewHandleTurnCommandHandler(
			c.sessions,
			c.customers,
			c.CreateIntentClassifier(),
			c.CreateOrderStateMachine(),
			c.configs.ClassifierHistory,
			c.userLocks,
			c.logger,
			c.collectors,
		)
	}
	return c.turnHandler
}

func (c *CompositionRoot) CreateStartSessionCommandHandler() *commands.StartSessionCommandHandler {
	h := commands.NewStartSessionCommandHandler(
		c.customers, c.sessions, c.configs.HistoryLimit, c.userLocks, c.logger)
	return &h
}

func (c *CompositionRoot) CreateGetSessionQueryHandler() queries.GetSessionQueryHandler {
	return queries.NewGetSessionQueryHandler(c.sessions)
}

func (c *CompositionRoot) CreateListCustomerOrdersQueryHandler() queries.ListCustomerOrdersQueryHandler {
	return queries.NewListCustomerOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.HandleTurnCommandHandler(),
		c.CreateStartSessionCommandHandler(),
		c.CreateGetSessionQueryHandler(),
		c.CreateListCustomerOrdersQueryHandler(),
		c.logger,
	)
}

// CreateJobManager schedules session expiry only for stores that cannot expire
// entries themselves.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	var scheduled []jobs.Job
	if sweeper, ok := c.sessions.(ports.SessionSweeper); ok {
		handler := commands.NewExpireSessionsCommandHandler(sweeper, c.logger)
		scheduled = append(scheduled, jobs.NewSessionExpiryJob(
			handler, c.configs.SessionCleanupSchedule, c.configs.SessionTTL, c.logger))
	}
	return jobs.NewJobManager(c.logger, scheduled...)
}

type FuncFulfillmentUoWFactory func() commands.FulfillmentUoW

func (f FuncFulfillmentUoWFactory) Create() commands.FulfillmentUoW {
	return f()
}

type FuncOrderFinalizer func(ctx context.Context, state order.State) (order.State, kernel.UUID, error)

func (f FuncOrderFinalizer) Finalize(ctx context.Context, state order.State) (order.State, kernel.UUID, error) {
	return f(ctx, state)
}
