package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"printshop/internal/model"
	"printshop/internal/repository"
)

var (
	ErrValidation    = errors.New("invalid input")
	ErrOrderNotFound = errors.New("order not found")
	ErrInvalidStatus = errors.New("invalid status")
)

// OrderStore is the persistence gateway the services depend on.
type OrderStore interface {
	Create(ctx context.Context, o *model.Order) (*model.Order, error)
	GetByOrderID(ctx context.Context, orderID string) (*model.Order, error)
	List(ctx context.Context) ([]model.Order, error)
	ListInProgress(ctx context.Context, limit int) ([]model.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status model.Status) (*model.Order, error)
	UpdatePayment(ctx context.Context, orderID, method, status string) error
	Earnings(ctx context.Context, todayStart, weekStart time.Time) (*model.Earnings, error)
}

type CreateOrderInput struct {
	File      model.FileInfo `json:"file"`
	Name      string         `json:"name" validate:"required"`
	Copies    int            `json:"copies" validate:"required"`
	PaperSize string         `json:"paperSize" validate:"required"`
	PrintSide string         `json:"printSide" validate:"required"`
	Color     string         `json:"color" validate:"required"`
}

type OrderService struct {
	store    OrderStore
	validate *validator.Validate
}

func NewOrderService(store OrderStore) *OrderService {
	return &OrderService{store: store, validate: newValidator()}
}

func (s *OrderService) Create(ctx context.Context, in CreateOrderInput) (*model.Order, error) {
	var missing []string
	if in.File.Empty() {
		missing = append(missing, "file")
	}
	missing = append(missing, missingFields(s.validate, in)...)
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing required fields: %s", ErrValidation, strings.Join(missing, ", "))
	}

	quote := PriceOrder(in.Copies, in.PaperSize, in.PrintSide, in.Color)

	created, err := s.store.Create(ctx, &model.Order{
		Name:      in.Name,
		Copies:    in.Copies,
		PaperSize: in.PaperSize,
		PrintSide: in.PrintSide,
		Color:     in.Color,
		Total:     decimal.NewFromInt(quote.Total),
		Status:    model.StatusPending,
		FileInfo:  in.File,
	})
	if err != nil {
		log.Error().Err(err).Str("name", in.Name).Msg("service: failed to create order")
		return nil, fmt.Errorf("create order: %w", err)
	}

	log.Info().
		Str("order_id", created.OrderID).
		Int64("subtotal", quote.Subtotal).
		Int64("tax", quote.Tax).
		Str("total", created.Total.String()).
		Msg("service: order created")

	return created, nil
}

func (s *OrderService) Get(ctx context.Context, orderID string) (*model.Order, error) {
	o, err := s.store.GetByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Warn().Str("order_id", orderID).Msg("service: order not found")
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

func (s *OrderService) List(ctx context.Context) ([]model.Order, error) {
	orders, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// ListInProgress returns up to limit non-terminal orders, oldest first.
func (s *OrderService) ListInProgress(ctx context.Context, limit int) ([]model.Order, error) {
	orders, err := s.store.ListInProgress(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list in-progress orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus sets any of the enumerated statuses directly; the admin path skips transition checks.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID string, status model.Status) (*model.Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w %q", ErrInvalidStatus, status)
	}

	o, err := s.store.UpdateStatus(ctx, orderID, status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Warn().Str("order_id", orderID).Stringer("new_status", status).Msg("service: order not found, cannot update status")
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("update order status: %w", err)
	}

	log.Info().Str("order_id", orderID).Stringer("new_status", status).Msg("service: order status updated")
	return o, nil
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// missingFields returns the json names of fields failing validation, in declaration order.
func missingFields(v *validator.Validate, s any) []string {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return fields
}
