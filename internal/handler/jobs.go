package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"printshop/internal/model"
	"printshop/internal/service"
)

type updateStatusRequest struct {
	Status string `json:"status"`
}

type updateStatusResponse struct {
	Success bool         `json:"success"`
	Order   *model.Order `json:"order"`
}

func ListJobsHandler(orderSvc *service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orders, err := orderSvc.List(r.Context())
		if err != nil {
			respondError(w, r, err)
			return
		}
		if orders == nil {
			orders = []model.Order{}
		}
		respondJSON(w, http.StatusOK, orders)
	}
}

func UpdateJobStatusHandler(orderSvc *service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateStatusRequest
		if err := decodeJSON(r, &req); err != nil {
			respondMessage(w, http.StatusBadRequest, err.Error())
			return
		}

		o, err := orderSvc.UpdateStatus(r.Context(), chi.URLParam(r, "orderId"), model.Status(req.Status))
		if err != nil {
			respondError(w, r, err)
			return
		}

		respondJSON(w, http.StatusOK, updateStatusResponse{Success: true, Order: o})
	}
}
