package cmd

import (
	"context"
	"log/slog"

	httpadapter "bookstore/internal/adapters/in/http"
	"bookstore/internal/adapters/out/kafka"
	"bookstore/internal/adapters/out/postgres"
	"bookstore/internal/core/application/usecases/commands"
	"bookstore/internal/core/application/usecases/queries"
	"bookstore/internal/core/ports"
	"bookstore/internal/jobs"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const defaultOrderChangedTopic = "order.changed"

type eventPublisher interface {
	ports.OrderEventPublisher
	Close() error
}

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	publisher  eventPublisher
	logger     *slog.Logger
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) *CompositionRoot {
	return &CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  newEventPublisher(configs, logger),
		logger:     logger,
	}
}

func newEventPublisher(configs Config, logger *slog.Logger) eventPublisher {
	if configs.KafkaHost == "" {
		logger.Info("KAFKA_HOST is not set, order events are not published")
		return kafka.NoopPublisher{}
	}

	topic := configs.KafkaOrderChangedTopic
	if topic == "" {
		topic = defaultOrderChangedTopic
	}
	return kafka.NewOrderEventPublisher(kafka.NewWriter(configs.KafkaHost, topic))
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() *commands.TransitionOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewTransitionOrderCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateImportBooksCommandHandler() *commands.ImportBooksCommandHandler {
	var f commands.BookUoWFactory = FuncBookUoWFactory(func() commands.BookUoW {
		return c.uowFactory.Create()
	})
	handler := commands.NewImportBooksCommandHandler(f)
	return &handler
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderDetailsQueryHandler() queries.GetOrderDetailsQueryHandler {
	return queries.NewGetOrderDetailsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetLowStockBooksQueryHandler() queries.GetLowStockBooksQueryHandler {
	return queries.NewGetLowStockBooksQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateGetLowStockBooksQueryHandler(), jobs.Config{
		LowStockSchedule:  c.configs.LowStockSchedule,
		LowStockThreshold: c.configs.LowStockThreshold,
	}, c.logger)
}

func (c *CompositionRoot) CreateEcho(ctx context.Context) (*echo.Echo, error) {
	server := httpadapter.NewServer(
		c.CreateTransitionOrderCommandHandler(),
		c.CreateImportBooksCommandHandler(),
		c.CreateListOrdersQueryHandler(),
		c.CreateGetOrderDetailsQueryHandler(),
		c.logger,
	)
	return httpadapter.NewEcho(ctx, server)
}

// Close releases the event publisher and the database pool.
func (c *CompositionRoot) Close() error {
	if err := c.publisher.Close(); err != nil {
		return err
	}
	sqlDB, err := c.gormDB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

type FuncBookUoWFactory func() commands.BookUoW

func (f FuncBookUoWFactory) Create() commands.BookUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
