package handler

import (
	"net/http"

	"github.com/EstebanCastel/landing-habi-sub000/internal/domain"
	"github.com/EstebanCastel/landing-habi-sub000/internal/pricing"
	"github.com/EstebanCastel/landing-habi-sub000/internal/service"

	"go.uber.org/zap"
)

type heshResponse struct {
	CostBreakdown *domain.CostBreakdown `json:"costBreakdown"`
	Country       string                `json:"country"`
}

// heshHandler returns the categorized cost breakdown for a property. A
// missing warehouse row or an undecodable cost detail is a 200 with a null
// breakdown; the landing page hides the section.
func heshHandler(svc *service.HeshService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		nid, err := parseNid(r)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		country := pricing.ParseCountry(r.URL.Query().Get("country"))

		bd, err := svc.GetCostBreakdown(r.Context(), nid, country)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, heshResponse{
			CostBreakdown: bd,
			Country:       string(country),
		})
	}
}
