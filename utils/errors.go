package utils

import (
	"errors"
	"net/http"

	"github.com/upb/healthedu-backend/services"
	"go.uber.org/zap"
)

// genericErrorMessage is sent for every 5xx; internal detail is only logged
const genericErrorMessage = "Something went wrong. Please try again later."

// HandleServiceError maps any failure to a status code and the shared error body.
// It is the only place error bodies are written.
func HandleServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if err == nil {
		return
	}

	status, message, fields := classify(err)

	if status >= http.StatusInternalServerError {
		logger.Error("internal server error",
			zap.Error(err),
			zap.String("error_type", string(services.GetErrorType(err))))
	} else {
		logger.Debug("handled service error",
			zap.Int("status", status),
			zap.String("message", message),
			zap.Error(err))
	}

	if writeErr := WriteError(w, status, message, fields); writeErr != nil {
		logger.Error("failed to write error response", zap.Error(writeErr))
	}
}

func classify(err error) (int, string, map[string]string) {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest, validationErr.Message, validationErr.Fields
	}

	message := services.GetErrorMessage(err)

	switch services.GetErrorType(err) {
	case services.ErrorTypeValidation:
		fields, _ := services.GetErrorDetails(err)["fields"].(map[string]string)
		return http.StatusBadRequest, message, fields
	case services.ErrorTypeUnauthorized:
		return http.StatusUnauthorized, message, nil
	case services.ErrorTypeForbidden:
		return http.StatusForbidden, message, nil
	case services.ErrorTypeNotFound:
		return http.StatusNotFound, message, nil
	case services.ErrorTypeConflict:
		return http.StatusConflict, message, nil
	case services.ErrorTypeRateLimit:
		return http.StatusTooManyRequests, message, nil
	case services.ErrorTypeMethod:
		return http.StatusMethodNotAllowed, message, nil
	default:
		return http.StatusInternalServerError, genericErrorMessage, nil
	}
}
