package jobs

import (
	"context"
	"log/slog"
	"time"

	"bookstore/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

type LowStockBooksHandler interface {
	Handle(ctx context.Context, query queries.GetLowStockBooksQuery) ([]queries.GetLowStockBooksQueryResponse, error)
}

const lowStockRunTimeout = 30 * time.Second

// LowStockReportJob periodically logs books that are about to run out.
// A run that is still going when the next one is due is skipped.
type LowStockReportJob struct {
	handler   LowStockBooksHandler
	schedule  string
	threshold int
	cron      *cron.Cron
	logger    *slog.Logger
}

func NewLowStockReportJob(
	handler LowStockBooksHandler,
	schedule string,
	threshold int,
	logger *slog.Logger,
) *LowStockReportJob {
	return &LowStockReportJob{
		handler:   handler,
		schedule:  schedule,
		threshold: threshold,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		logger: logger.With("component", "low_stock_report_job"),
	}
}

// Start registers the job with its schedule and starts the scheduler.
func (j *LowStockReportJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), lowStockRunTimeout)
		defer cancel()

		if _, err := j.Run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Low stock report failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Low stock report job started",
		"schedule", j.schedule,
		"threshold", j.threshold,
	)
	return nil
}

// Run reports once and returns the number of low-stock books.
func (j *LowStockReportJob) Run(ctx context.Context) (int, error) {
	query, err := queries.NewGetLowStockBooksQuery(j.threshold)
	if err != nil {
		return 0, err
	}

	books, err := j.handler.Handle(ctx, query)
	if err != nil {
		return 0, err
	}

	for _, b := range books {
		j.logger.WarnContext(ctx, "Book stock is low",
			"book_id", b.ID.Int64(),
			"title", b.Title,
			"stock", b.Stock,
		)
	}
	return len(books), nil
}

// Stop stops the scheduler and waits for a running report to finish.
func (j *LowStockReportJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Low stock report job stopped")
}
