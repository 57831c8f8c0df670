package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"printshop/internal/model"
	"printshop/internal/repository"
)

const (
	PaymentMethodOnline  = "online"
	PaymentStatusSuccess = "success"
	PaymentStatusPending = "pending"
)

type PaymentInput struct {
	OrderID       string          `json:"orderId" validate:"required"`
	PaymentMethod string          `json:"paymentMethod" validate:"required"`
	Amount        decimal.Decimal `json:"amount"`
}

// PaymentService records how an order is paid. There is no gateway behind it: online payments
// are accepted immediately, everything else waits for the counter.
type PaymentService struct {
	store    OrderStore
	validate *validator.Validate
}

func NewPaymentService(store OrderStore) *PaymentService {
	return &PaymentService{store: store, validate: newValidator()}
}

func (s *PaymentService) Record(ctx context.Context, in PaymentInput) (*model.Payment, error) {
	if missing := missingFields(s.validate, in); len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing required fields: %s", ErrValidation, strings.Join(missing, ", "))
	}

	if _, err := s.store.GetByOrderID(ctx, in.OrderID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("record payment: %w", err)
	}

	status := PaymentStatusPending
	if in.PaymentMethod == PaymentMethodOnline {
		status = PaymentStatusSuccess
	}

	if err := s.store.UpdatePayment(ctx, in.OrderID, in.PaymentMethod, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("record payment: %w", err)
	}

	p := &model.Payment{PaymentID: "PAY_" + uuid.NewString(), Status: status}
	if status == PaymentStatusSuccess {
		p.TransactionID = "TXN_" + uuid.NewString()
	}

	log.Info().
		Str("order_id", in.OrderID).
		Str("payment_id", p.PaymentID).
		Str("method", in.PaymentMethod).
		Str("amount", in.Amount.String()).
		Str("status", status).
		Msg("service: payment recorded")

	return p, nil
}
