// Package mocks provides testify mocks of the service dependencies.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"printshop/internal/model"
)

type OrderStore struct {
	mock.Mock
}

func (m *OrderStore) Create(ctx context.Context, o *model.Order) (*model.Order, error) {
	args := m.Called(ctx, o)
	created, _ := args.Get(0).(*model.Order)
	return created, args.Error(1)
}

func (m *OrderStore) GetByOrderID(ctx context.Context, orderID string) (*model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(*model.Order)
	return o, args.Error(1)
}

func (m *OrderStore) List(ctx context.Context) ([]model.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *OrderStore) ListInProgress(ctx context.Context, limit int) ([]model.Order, error) {
	args := m.Called(ctx, limit)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *OrderStore) UpdateStatus(ctx context.Context, orderID string, status model.Status) (*model.Order, error) {
	args := m.Called(ctx, orderID, status)
	o, _ := args.Get(0).(*model.Order)
	return o, args.Error(1)
}

func (m *OrderStore) UpdatePayment(ctx context.Context, orderID, method, status string) error {
	args := m.Called(ctx, orderID, method, status)
	return args.Error(0)
}

func (m *OrderStore) Earnings(ctx context.Context, todayStart, weekStart time.Time) (*model.Earnings, error) {
	args := m.Called(ctx, todayStart, weekStart)
	e, _ := args.Get(0).(*model.Earnings)
	return e, args.Error(1)
}
