package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/viacerta/boleto-cnab-go/internal/domain"
)

// ============================================================
// Shared helper functions
// ============================================================

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// handleServiceError maps domain errors to HTTP responses.
func handleServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
	var unknownBank *domain.ErrUnknownBank
	var missingOption *domain.ErrMissingOption
	var invalidOption *domain.ErrInvalidOption
	var fieldTooLong *domain.ErrFieldTooLong
	var missingValue *domain.ErrMissingValue
	var badDueDate *domain.ErrBadDueDate
	var badDigit *domain.ErrBadDigit
	var negative *domain.ErrNegativeNotAllowed
	var validation *domain.ErrValidation
	var invalidBarcode *domain.ErrInvalidBarcode

	switch {
	case errors.As(err, &unknownBank):
		logger.Debug("unknown bank", zap.String("error", err.Error()))
		writeError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &missingOption):
		logger.Debug("missing bank option", zap.String("error", err.Error()))
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &invalidOption):
		logger.Debug("invalid bank option", zap.String("error", err.Error()))
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &fieldTooLong):
		logger.Debug("field overflow", zap.String("error", err.Error()))
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &missingValue):
		logger.Debug("missing field value", zap.String("error", err.Error()))
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &badDueDate):
		logger.Debug("bad due date", zap.String("error", err.Error()))
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &badDigit):
		logger.Debug("non-numeric input", zap.String("error", err.Error()))
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &negative):
		logger.Debug("negative value", zap.String("error", err.Error()))
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &validation):
		logger.Debug("validation error", zap.String("error", err.Error()))
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &invalidBarcode):
		logger.Debug("invalid barcode", zap.String("error", err.Error()))
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		logger.Error("unhandled error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
