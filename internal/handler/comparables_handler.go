package handler

import (
	"net/http"

	"github.com/EstebanCastel/landing-habi-sub000/internal/domain"
	"github.com/EstebanCastel/landing-habi-sub000/internal/service"

	"go.uber.org/zap"
)

type comparablesResponse struct {
	Comparables []domain.Comparable `json:"comparables"`
}

// comparablesHandler lists reference properties for the map. Upstream
// failures surface as an empty list, already handled in the service.
func comparablesHandler(svc *service.ComparablesService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		nid, err := parseNid(r)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, comparablesResponse{
			Comparables: svc.List(r.Context(), nid),
		})
	}
}
