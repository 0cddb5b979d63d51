package handler

import (
	"errors"
	"net/http"

	"github.com/EstebanCastel/landing-habi-sub000/internal/domain"
	"github.com/EstebanCastel/landing-habi-sub000/internal/service"

	"go.uber.org/zap"
)

// hubspotHandler proxies the reconciled deal projection. Its error envelope
// is `{"error": true, "message": ...}` because the landing page's fetch
// wrapper branches on the `error` flag rather than the status code alone.
func hubspotHandler(svc *service.DealService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		dealID := q.Get("deal_id")
		dealUUID := q.Get("deal_uuid")

		proj, err := svc.GetReconciledDeal(r.Context(), dealID, dealUUID)
		if err != nil {
			handleCRMError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, proj)
	}
}

// handleCRMError is handleServiceError with the CRM proxy's envelope.
func handleCRMError(w http.ResponseWriter, err error, logger *zap.Logger) {
	var notFound *domain.ErrNotFound
	var validation *domain.ErrValidation
	var circuitOpen *domain.ErrCircuitOpen
	var misconfigured *domain.ErrUpstreamMisconfigured

	switch {
	case errors.As(err, &notFound):
		logger.Debug("deal not found", zap.String("error", err.Error()))
		writeCRMError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &validation):
		logger.Debug("validation error", zap.String("error", err.Error()))
		writeCRMError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &circuitOpen):
		logger.Error("circuit breaker open", zap.Error(err))
		writeCRMError(w, http.StatusServiceUnavailable, err.Error())
	case errors.As(err, &misconfigured):
		logger.Error("crm not configured", zap.Error(err))
		writeCRMError(w, http.StatusServiceUnavailable, err.Error())
	default:
		logger.Error("crm proxy failure", zap.Error(err))
		writeCRMError(w, http.StatusBadGateway, "upstream crm unavailable")
	}
}
