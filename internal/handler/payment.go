package handler

import (
	"net/http"

	"printshop/internal/model"
	"printshop/internal/service"
)

type paymentResponse struct {
	Success bool `json:"success"`
	*model.Payment
}

func PaymentHandler(paymentSvc *service.PaymentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in service.PaymentInput
		if err := decodeJSON(r, &in); err != nil {
			respondMessage(w, http.StatusBadRequest, err.Error())
			return
		}

		p, err := paymentSvc.Record(r.Context(), in)
		if err != nil {
			respondError(w, r, err)
			return
		}

		respondJSON(w, http.StatusOK, paymentResponse{Success: true, Payment: p})
	}
}
