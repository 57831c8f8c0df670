package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"printshop/internal/service"
)

const defaultBatchSize = 5

// ProgressWorker periodically advances orders that are still in production.
type ProgressWorker struct {
	orderSvc   *service.OrderService
	progressor service.Progressor
	interval   time.Duration
	batchSize  int
}

func NewProgressWorker(orderSvc *service.OrderService, progressor service.Progressor, interval time.Duration) *ProgressWorker {
	return &ProgressWorker{
		orderSvc:   orderSvc,
		progressor: progressor,
		interval:   interval,
		batchSize:  defaultBatchSize,
	}
}

func (w *ProgressWorker) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Msg("worker: starting progress worker")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("worker: progress worker stopped")
			return
		case <-ticker.C:
			if err := w.processBatch(ctx); err != nil {
				log.Error().Err(err).Msg("worker: batch processing failed")
			}
		}
	}
}

func (w *ProgressWorker) processBatch(ctx context.Context) error {
	orders, err := w.orderSvc.ListInProgress(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("get in-progress orders: %w", err)
	}

	for i := range orders {
		o := &orders[i]
		updated, err := w.progressor.Advance(ctx, o)
		if err != nil {
			log.Error().Err(err).Str("order_id", o.OrderID).Msg("worker: failed to advance order")
			continue
		}
		if updated.Status != o.Status {
			log.Info().Str("order_id", o.OrderID).Stringer("status", updated.Status).Msg("worker: order advanced")
		}
	}

	return nil
}
