package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"printshop/internal/model"
	"printshop/internal/repository"
)

const estimatedLeadTime = 30 * time.Minute

var statusMessages = map[model.Status]string{
	model.StatusPending:    "Your order has been received and is waiting in the queue",
	model.StatusProcessing: "Your order is being processed",
	model.StatusPrinting:   "Your order is being printed",
	model.StatusReady:      "Your order is ready for pickup",
	model.StatusCompleted:  "Your order has been completed",
}

type StatusReport struct {
	OrderID             string
	Status              model.Status
	EstimatedCompletion *time.Time
	Message             string
}

// StatusService answers status polls. With a progressor it advances the order before
// responding; with estimates enabled it adds a completion estimate and a message.
type StatusService struct {
	store      OrderStore
	progressor Progressor
	estimate   bool
	now        func() time.Time
}

func NewStatusService(store OrderStore, progressor Progressor, estimate bool) *StatusService {
	return &StatusService{store: store, progressor: progressor, estimate: estimate, now: time.Now}
}

func (s *StatusService) Check(ctx context.Context, orderID string) (*StatusReport, error) {
	o, err := s.store.GetByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("check status: %w", err)
	}

	if s.progressor != nil {
		if o, err = s.progressor.Advance(ctx, o); err != nil {
			return nil, fmt.Errorf("check status: %w", err)
		}
	}

	report := &StatusReport{OrderID: o.OrderID, Status: o.Status}
	if s.estimate {
		eta := s.now().Add(estimatedLeadTime)
		report.EstimatedCompletion = &eta
		report.Message = statusMessages[o.Status]
	}
	return report, nil
}
