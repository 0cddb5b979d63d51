package handler

import (
	"net/http"
	"time"

	"github.com/EstebanCastel/landing-habi-sub000/internal/service"

	"go.uber.org/zap"
)

type countdownResponse struct {
	DealUUID  string `json:"deal_uuid"`
	StartedAt string `json:"started_at"`
	ExpiresAt string `json:"expires_at"`
}

// countdownHandler returns the offer countdown for a deal, issuing it on
// first visit.
func countdownHandler(svc *service.CountdownService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dealUUID := r.URL.Query().Get("deal_uuid")

		c, err := svc.GetOrIssue(r.Context(), dealUUID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, countdownResponse{
			DealUUID:  c.DealUUID,
			StartedAt: c.StartedAt.UTC().Format(time.RFC3339),
			ExpiresAt: c.ExpiresAt().UTC().Format(time.RFC3339),
		})
	}
}
