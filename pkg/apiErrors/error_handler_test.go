package apiErrors

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		code   string
		status int
	}{
		{ErrInvalidDate, http.StatusBadRequest},
		{ErrPromotionNotFound, http.StatusNotFound},
		{ErrFetchFailure, http.StatusBadGateway},
		{ErrExportFailure, http.StatusInternalServerError},
		{ErrInsufficientPrivilege, http.StatusForbidden},
		{"UNKNOWN_1", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			rec := httptest.NewRecorder()

			WriteError(rec, tt.code, "something failed", map[string]string{"field": "date"})

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body APIError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
			assert.Equal(t, "something failed", body.Message)
			assert.Equal(t, map[string]any{"field": "date"}, body.Details)
		})
	}
}

func TestFromError(t *testing.T) {
	assert.Equal(t, ErrInternalServer, FromError(nil, ErrFetchFailure).Code)

	apiErr := FromError(errors.New("backend down"), ErrFetchFailure)
	assert.Equal(t, ErrFetchFailure, apiErr.Code)
	assert.Equal(t, "backend down", apiErr.Message)
}
