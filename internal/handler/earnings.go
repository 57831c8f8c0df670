package handler

import (
	"net/http"

	"printshop/internal/service"
)

type earningsResponse struct {
	Today  string `json:"today"`
	Weekly string `json:"weekly"`
}

func EarningsHandler(earningsSvc *service.EarningsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, err := earningsSvc.Get(r.Context())
		if err != nil {
			respondError(w, r, err)
			return
		}

		respondJSON(w, http.StatusOK, earningsResponse{
			Today:  e.Today.StringFixed(2),
			Weekly: e.Weekly.StringFixed(2),
		})
	}
}
