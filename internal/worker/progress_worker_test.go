package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"printshop/internal/model"
	"printshop/internal/service"
	"printshop/internal/service/mocks"
)

func TestProgressWorker_ProcessBatch(t *testing.T) {
	store := new(mocks.OrderStore)
	store.On("ListInProgress", mock.Anything, 5).Return([]model.Order{
		{OrderID: "ORDER_1", Status: model.StatusPending},
		{OrderID: "ORDER_2", Status: model.StatusReady},
	}, nil).Once()
	store.On("UpdateStatus", mock.Anything, "ORDER_1", model.StatusProcessing).
		Return(&model.Order{OrderID: "ORDER_1", Status: model.StatusProcessing}, nil).Once()
	store.On("UpdateStatus", mock.Anything, "ORDER_2", model.StatusCompleted).
		Return(nil, errors.New("lock timeout")).Once()

	progressor := service.NewRandomProgressor(store, 1).WithDraw(func() float64 { return 0.5 })
	w := NewProgressWorker(service.NewOrderService(store), progressor, time.Second)

	require.NoError(t, w.processBatch(context.Background()))
	store.AssertExpectations(t)
}

func TestProgressWorker_ProcessBatchListError(t *testing.T) {
	store := new(mocks.OrderStore)
	store.On("ListInProgress", mock.Anything, 5).Return(nil, errors.New("db down")).Once()

	w := NewProgressWorker(service.NewOrderService(store), service.NewRandomProgressor(store, 0.2), time.Second)

	err := w.processBatch(context.Background())
	assert.ErrorContains(t, err, "db down")
	store.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestProgressWorker_StartStopsOnCancel(t *testing.T) {
	store := new(mocks.OrderStore)
	ticked := make(chan struct{}, 1)
	store.On("ListInProgress", mock.Anything, 5).Return([]model.Order{}, nil).Run(func(mock.Arguments) {
		select {
		case ticked <- struct{}{}:
		default:
		}
	})

	w := NewProgressWorker(service.NewOrderService(store), service.NewRandomProgressor(store, 0.2), 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	select {
	case <-ticked:
	case <-time.After(time.Second):
		t.Fatal("worker never polled for orders")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after cancel")
	}
}
