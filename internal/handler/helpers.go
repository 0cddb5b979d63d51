package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/EstebanCastel/landing-habi-sub000/internal/domain"

	"go.uber.org/zap"
)

type errorResponse struct {
	Error string `json:"error"`
}

// crmErrorResponse is the error envelope the landing page expects from the
// CRM proxy route, different from the rest of the API.
type crmErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeCRMError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, crmErrorResponse{Error: true, Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// parseNid parses the nid query parameter, which must be a positive integer.
func parseNid(r *http.Request) (int64, error) {
	raw := r.URL.Query().Get("nid")
	if raw == "" {
		return 0, &domain.ErrValidation{Field: "nid", Message: "required"}
	}
	nid, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || nid <= 0 {
		return 0, &domain.ErrValidation{Field: "nid", Message: "must be a positive integer"}
	}
	return nid, nil
}

// handleServiceError maps domain errors to HTTP responses.
func handleServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
	var notFound *domain.ErrNotFound
	var circuitOpen *domain.ErrCircuitOpen
	var timeout *domain.ErrTimeout
	var validation *domain.ErrValidation
	var misconfigured *domain.ErrUpstreamMisconfigured
	var external *domain.ErrExternalService

	switch {
	case errors.As(err, &notFound):
		logger.Debug("not found", zap.String("error", err.Error()))
		writeError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &validation):
		logger.Debug("validation error", zap.String("error", err.Error()))
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &circuitOpen):
		logger.Error("circuit breaker open", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, err.Error())
	case errors.As(err, &misconfigured):
		logger.Error("upstream not configured", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, err.Error())
	case errors.As(err, &timeout):
		logger.Error("request timeout", zap.Error(err))
		writeError(w, http.StatusGatewayTimeout, err.Error())
	case errors.As(err, &external):
		logger.Error("upstream failure", zap.Error(err))
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		logger.Error("unhandled error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
