package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"printshop/internal/model"
	"printshop/internal/service"
)

type statusResponse struct {
	OrderID             string       `json:"orderId"`
	Status              model.Status `json:"status"`
	EstimatedCompletion *time.Time   `json:"estimatedCompletion,omitempty"`
	Message             string       `json:"message,omitempty"`
}

func StatusHandler(statusSvc *service.StatusService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := statusSvc.Check(r.Context(), chi.URLParam(r, "orderId"))
		if err != nil {
			respondError(w, r, err)
			return
		}

		respondJSON(w, http.StatusOK, statusResponse{
			OrderID:             report.OrderID,
			Status:              report.Status,
			EstimatedCompletion: report.EstimatedCompletion,
			Message:             report.Message,
		})
	}
}
