package handler

import (
	"errors"
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/vinodrajapaksha/ttms-api/infrastructure/integrator/backend"
	"github.com/vinodrajapaksha/ttms-api/internal/daterange"
	"github.com/vinodrajapaksha/ttms-api/internal/usecases/calendaring"
	"github.com/vinodrajapaksha/ttms-api/internal/usecases/promoting"
	"github.com/vinodrajapaksha/ttms-api/internal/usecases/reporting"
	"github.com/vinodrajapaksha/ttms-api/pkg/apiErrors"
	"github.com/vinodrajapaksha/ttms-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("api: could not encode response")
	}
}

// backendContext forwards the caller's bearer token to the tour backend.
func backendContext(r *http.Request) *http.Request {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if token == "" || token == r.Header.Get("Authorization") {
		return r
	}
	return r.WithContext(backend.WithToken(r.Context(), token))
}

// writeServiceError maps use case errors onto the API error codes.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, action string) {
	logger := log.ForContext(r.Context()).WithError(err).WithField("action", action)

	var (
		validationErr *promoting.ValidationError
		exportErr     *reporting.ExportError
	)

	switch {
	case errors.As(err, &validationErr):
		logger.Info("api: rejected promotion")
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "the promotion has invalid fields", validationErr.Fields)

	case errors.Is(err, promoting.ErrPromotionIDNeeded):
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)

	case errors.Is(err, promoting.ErrPromotionNotFound):
		apiErrors.WriteError(w, apiErrors.ErrPromotionNotFound, err.Error(), nil)

	case errors.Is(err, daterange.ErrInvalidDateFormat):
		apiErrors.WriteError(w, apiErrors.ErrInvalidDate, err.Error(), map[string]string{"date": "use YYYY-MM-DD"})

	case errors.Is(err, calendaring.ErrInvalidMonth),
		errors.Is(err, calendaring.ErrInvalidNav),
		errors.Is(err, reporting.ErrInvalidTab),
		errors.Is(err, reporting.ErrInvalidNav),
		errors.Is(err, reporting.ErrInvalidTrendSize):
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)

	case errors.As(err, &exportErr):
		logger.Error("api: export failed")
		apiErrors.WriteError(w, apiErrors.ErrExportFailure, "could not export the report, the report data is unchanged", nil)

	case errors.Is(err, backend.ErrFetchFailure):
		logger.Warn("api: tour backend request failed")
		apiErrors.WriteError(w, apiErrors.ErrFetchFailure, "could not reach the tour backend, please retry", nil)

	default:
		logger.Error("api: unexpected error")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "internal server error", nil)
	}
}
