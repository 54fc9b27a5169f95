package errors

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(includeStack bool) *ErrorHandler {
	return NewErrorHandler(slog.New(slog.NewJSONHandler(io.Discard, nil)), includeStack)
}

func TestErrorHandler_HandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
		wantCode   string
	}{
		{
			name:       "missing sheet api error",
			err:        New(http.StatusUnprocessableEntity, CodeMissingSheet, "sheet not found in boleta.xlsx"),
			wantStatus: http.StatusUnprocessableEntity,
			wantType:   TypeMissingSheet,
			wantCode:   CodeMissingSheet,
		},
		{
			name:       "unrecognized layout api error",
			err:        New(http.StatusUnprocessableEntity, CodeUnrecognizedLayout, "bad subtitle"),
			wantStatus: http.StatusUnprocessableEntity,
			wantType:   TypeUnrecognizedLayout,
			wantCode:   CodeUnrecognizedLayout,
		},
		{
			name:       "too many files",
			err:        TooManyFilesError(30, 20),
			wantStatus: http.StatusBadRequest,
			wantType:   TypeValidation,
			wantCode:   CodeTooManyFiles,
		},
		{
			name:       "wrapped api error",
			err:        fmt.Errorf("upload: %w", ErrMissingFile),
			wantStatus: http.StatusBadRequest,
			wantType:   TypeValidation,
			wantCode:   CodeMissingFile,
		},
		{
			name:       "parsing app error",
			err:        NewParsingError("failed to open workbook", io.ErrUnexpectedEOF),
			wantStatus: http.StatusUnprocessableEntity,
			wantType:   TypeInvalidWorkbook,
		},
		{
			name:       "export app error",
			err:        NewExportError("statistics export failed", io.ErrShortWrite),
			wantStatus: http.StatusInternalServerError,
			wantType:   TypeExportFailed,
		},
		{
			name:       "not found app error",
			err:        NewNotFoundError("1A.xlsx"),
			wantStatus: http.StatusNotFound,
			wantType:   TypeNotFound,
		},
		{
			name:       "storage app error",
			err:        fmt.Errorf("read: %w", NewStorageError("failed to read file", io.ErrUnexpectedEOF)),
			wantStatus: http.StatusInternalServerError,
			wantType:   TypeInternal,
		},
		{
			name:       "context deadline",
			err:        context.DeadlineExceeded,
			wantStatus: http.StatusGatewayTimeout,
			wantType:   TypeTimeout,
		},
		{
			name:       "unknown error",
			err:        fmt.Errorf("boom"),
			wantStatus: http.StatusInternalServerError,
			wantType:   TypeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(false)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/statistics", nil)
			rec := httptest.NewRecorder()

			h.HandleError(rec, req, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantType, body["type"])
			assert.Equal(t, float64(tt.wantStatus), body["status"])
			assert.Equal(t, "/api/v1/statistics", body["instance"])
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, body["error_code"])
			}
			assert.NotContains(t, body, "stack")
		})
	}
}

func TestErrorHandler_HandleErrorNil(t *testing.T) {
	h := newTestHandler(false)
	rec := httptest.NewRecorder()
	h.HandleError(rec, httptest.NewRequest(http.MethodGet, "/", nil), nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestErrorHandler_IncludeStack(t *testing.T) {
	h := newTestHandler(true)
	rec := httptest.NewRecorder()
	h.HandleError(rec, httptest.NewRequest(http.MethodGet, "/", nil), fmt.Errorf("boom"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body, "stack")
}

func TestErrorHandler_HandlePanic(t *testing.T) {
	h := newTestHandler(false)
	rec := httptest.NewRecorder()
	h.HandlePanic(rec, httptest.NewRequest(http.MethodGet, "/x", nil), "kaboom")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotContains(t, body, "panic")
}

func TestAppErrorContextBecomesExtension(t *testing.T) {
	h := newTestHandler(false)
	err := NewParsingError("failed to open workbook", nil).WithContext("file", "3A.xlsx")

	problem := h.ErrorToProblem(err, httptest.NewRequest(http.MethodPost, "/p", nil))

	assert.Equal(t, http.StatusUnprocessableEntity, problem.Status)
	assert.Equal(t, "3A.xlsx", problem.Extensions["file"])
	assert.Equal(t, "PARSING", problem.Extensions["error_type"])
}
