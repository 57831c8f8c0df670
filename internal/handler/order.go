package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/skip2/go-qrcode"

	"printshop/internal/model"
	"printshop/internal/service"
)

const ticketSize = 256

type createOrderResponse struct {
	Success      bool         `json:"success"`
	OrderID      string       `json:"orderId"`
	Message      string       `json:"message"`
	OrderDetails *model.Order `json:"orderDetails"`
}

func CreateOrderHandler(orderSvc *service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in service.CreateOrderInput
		if err := decodeJSON(r, &in); err != nil {
			respondMessage(w, http.StatusBadRequest, err.Error())
			return
		}

		o, err := orderSvc.Create(r.Context(), in)
		if err != nil {
			respondError(w, r, err)
			return
		}

		respondJSON(w, http.StatusCreated, createOrderResponse{
			Success:      true,
			OrderID:      o.OrderID,
			Message:      "Order created successfully",
			OrderDetails: o,
		})
	}
}

// TicketHandler renders a QR code pointing at the order's public status URL.
func TicketHandler(orderSvc *service.OrderService, publicURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID := chi.URLParam(r, "orderId")

		o, err := orderSvc.Get(r.Context(), orderID)
		if err != nil {
			respondError(w, r, err)
			return
		}

		target := strings.TrimRight(publicURL, "/") + "/api/status/" + o.OrderID
		png, err := qrcode.Encode(target, qrcode.Medium, ticketSize)
		if err != nil {
			log.Error().Err(err).Str("order_id", o.OrderID).Msg("handler: failed to render ticket")
			respondMessage(w, http.StatusInternalServerError, "internal server error")
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(png); err != nil {
			log.Error().Err(err).Msg("handler: failed to write ticket")
		}
	}
}
