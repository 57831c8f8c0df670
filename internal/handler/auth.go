package handler

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"printshop/internal/service"
)

const (
	adminRole     = "admin"
	adminTokenTTL = 24 * time.Hour
)

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

func AdminLoginHandler(authSvc *service.AuthService, secret string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := decodeJSON(r, &req); err != nil {
			respondMessage(w, http.StatusBadRequest, err.Error())
			return
		}

		if err := authSvc.Authenticate(req.Password); err != nil {
			log.Warn().Err(err).Str("remote_addr", r.RemoteAddr).Msg("handler: admin login rejected")
			respondError(w, r, err)
			return
		}

		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"role": adminRole,
			"exp":  jwt.NewNumericDate(time.Now().Add(adminTokenTTL)),
		})

		tokenString, err := token.SignedString([]byte(secret))
		if err != nil {
			log.Error().Err(err).Msg("handler: token generation failed")
			respondMessage(w, http.StatusInternalServerError, "internal server error")
			return
		}

		w.Header().Set("Authorization", "Bearer "+tokenString)
		respondJSON(w, http.StatusOK, loginResponse{Success: true, Token: tokenString})
	}
}
