package handler

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"printshop/internal/service"
)

type uploadResponse struct {
	Success  bool   `json:"success"`
	FileID   string `json:"fileId"`
	FileName string `json:"fileName"`
	FileURL  string `json:"fileUrl"`
	MIMEType string `json:"mimeType"`
}

func UploadHandler(files *service.FileStore, maxBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

		src, header, err := r.FormFile("file")
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				respondMessage(w, http.StatusBadRequest, "file too large")
				return
			}
			respondMessage(w, http.StatusBadRequest, "No file uploaded")
			return
		}
		defer src.Close()

		stored, err := files.Save(src, header.Filename)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				respondMessage(w, http.StatusBadRequest, "file too large")
				return
			}
			log.Error().Err(err).Str("file_name", header.Filename).Msg("handler: upload failed")
			respondMessage(w, http.StatusInternalServerError, "internal server error")
			return
		}

		respondJSON(w, http.StatusOK, uploadResponse{
			Success:  true,
			FileID:   stored.ID,
			FileName: stored.OriginalName,
			FileURL:  "/uploads/" + stored.ID,
			MIMEType: stored.MIMEType,
		})
	}
}
