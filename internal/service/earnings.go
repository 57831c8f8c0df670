package service

import (
	"context"
	"fmt"
	"time"

	"printshop/internal/model"
)

type EarningsService struct {
	store OrderStore
	now   func() time.Time
}

func NewEarningsService(store OrderStore) *EarningsService {
	return &EarningsService{store: store, now: time.Now}
}

// Get sums completed orders for the current calendar day and for the seven calendar days
// ending today, both in the server's local time zone.
func (s *EarningsService) Get(ctx context.Context) (*model.Earnings, error) {
	now := s.now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekStart := todayStart.AddDate(0, 0, -6)

	e, err := s.store.Earnings(ctx, todayStart, weekStart)
	if err != nil {
		return nil, fmt.Errorf("get earnings: %w", err)
	}
	return e, nil
}
