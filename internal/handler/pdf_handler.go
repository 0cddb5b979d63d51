package handler

import (
	"encoding/json"
	"net/http"

	"github.com/EstebanCastel/landing-habi-sub000/internal/service"

	"go.uber.org/zap"
)

type pdfGenerateRequest struct {
	DealUUID string `json:"deal_uuid"`
}

type pdfURLResponse struct {
	URL string `json:"url"`
}

// pdfGenerateHandler renders the offer letter and returns its public URL.
func pdfGenerateHandler(svc *service.PDFService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req pdfGenerateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		url, err := svc.Generate(r.Context(), req.DealUUID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, pdfURLResponse{URL: url})
	}
}

// pdfURLHandler returns the URL of an already generated letter.
func pdfURLHandler(svc *service.PDFService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		url, err := svc.GetURL(r.Context(), r.URL.Query().Get("deal_uuid"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, pdfURLResponse{URL: url})
	}
}
