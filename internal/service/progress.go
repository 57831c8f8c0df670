package service

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/rs/zerolog/log"

	"printshop/internal/model"
)

// Progressor moves an order along the production chain. It stands in for real shop-floor
// tracking and may leave the order unchanged.
type Progressor interface {
	Advance(ctx context.Context, o *model.Order) (*model.Order, error)
}

type statusUpdater interface {
	UpdateStatus(ctx context.Context, orderID string, status model.Status) (*model.Order, error)
}

// RandomProgressor advances a non-terminal order by one step with the given probability.
type RandomProgressor struct {
	store       statusUpdater
	probability float64
	draw        func() float64
}

func NewRandomProgressor(store statusUpdater, probability float64) *RandomProgressor {
	return &RandomProgressor{store: store, probability: probability, draw: rand.Float64}
}

// WithDraw replaces the uniform [0, 1) source.
func (p *RandomProgressor) WithDraw(draw func() float64) *RandomProgressor {
	p.draw = draw
	return p
}

func (p *RandomProgressor) Advance(ctx context.Context, o *model.Order) (*model.Order, error) {
	next, ok := o.Status.Next()
	if !ok {
		return o, nil
	}
	if p.draw() <= 1-p.probability {
		return o, nil
	}

	updated, err := p.store.UpdateStatus(ctx, o.OrderID, next)
	if err != nil {
		return nil, fmt.Errorf("advance order %s: %w", o.OrderID, err)
	}

	log.Debug().Str("order_id", o.OrderID).Stringer("old_status", o.Status).Stringer("new_status", next).Msg("service: order advanced")
	return updated, nil
}
