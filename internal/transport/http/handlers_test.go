package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gallegosdmz/umvh-frontend-sub001/internal/dataprocessing"
	apierrors "github.com/gallegosdmz/umvh-frontend-sub001/internal/errors"
	"github.com/gallegosdmz/umvh-frontend-sub001/internal/services"
	"github.com/gallegosdmz/umvh-frontend-sub001/internal/shared/testutil"
	"github.com/gallegosdmz/umvh-frontend-sub001/pkg/contracts/domain"
)

type stubService struct {
	report  *domain.ConcentradoData
	err     error
	batch   *services.BatchResult
	workers int
}

func (s *stubService) ParseFile(_ context.Context, _ string, _ []byte) (*domain.ConcentradoData, bool, error) {
	return s.report, false, s.err
}

func (s *stubService) ProcessBatchWithWorkers(_ context.Context, _ []services.Upload, workers int) (*services.BatchResult, error) {
	s.workers = workers
	return s.batch, s.err
}

func newErrorHandler() *apierrors.ErrorHandler {
	logger, _ := testutil.NewTestLogger()
	return apierrors.NewErrorHandler(logger, false)
}

func TestParseErrorToAPI(t *testing.T) {
	plain := errors.New("disk on fire")

	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{name: "missing sheet", err: &dataprocessing.MissingSheetError{FileName: "a.xlsx", SheetName: "Calificaciones"}, wantCode: apierrors.CodeMissingSheet},
		{name: "wrapped layout", err: fmt.Errorf("parse: %w", &dataprocessing.UnrecognizedLayoutError{FileName: "b.xlsx", Cell: "A2"}), wantCode: apierrors.CodeUnrecognizedLayout},
		{name: "corrupt workbook", err: apierrors.NewParsingError("failed to open workbook", plain), wantCode: apierrors.CodeInvalidWorkbook},
		{name: "other", err: plain, wantCode: apierrors.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, errorCode(tt.err))

			mapped := parseErrorToAPI(tt.err)
			var apiErr *apierrors.APIError
			if tt.wantCode == apierrors.CodeInternal {
				assert.Same(t, tt.err, mapped)
				return
			}
			require.ErrorAs(t, mapped, &apiErr)
			assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
		})
	}
}

func TestConcentradoHandler_Parse(t *testing.T) {
	file := testutil.NamedFile{Name: "1A.xlsx", Data: []byte("payload")}

	tests := []struct {
		name       string
		svc        *stubService
		req        *http.Request
		wantStatus int
		wantBody   string
	}{
		{
			name:       "parsed",
			svc:        &stubService{report: &domain.ConcentradoData{Group: "1A", Semester: 1}},
			req:        testutil.MultipartRequest(t, "/parse", "file", file),
			wantStatus: http.StatusOK,
			wantBody:   `"group":"1A"`,
		},
		{
			name:       "missing sheet",
			svc:        &stubService{err: &dataprocessing.MissingSheetError{FileName: "1A.xlsx", SheetName: "Calificaciones"}},
			req:        testutil.MultipartRequest(t, "/parse", "file", file),
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   apierrors.TypeMissingSheet,
		},
		{
			name:       "more than one file",
			svc:        &stubService{},
			req:        testutil.MultipartRequest(t, "/parse", "file", file, file),
			wantStatus: http.StatusBadRequest,
			wantBody:   apierrors.CodeTooManyFiles,
		},
		{
			name:       "not a workbook name",
			svc:        &stubService{},
			req:        testutil.MultipartRequest(t, "/parse", "file", testutil.NamedFile{Name: "notas.csv", Data: []byte("a,b")}),
			wantStatus: http.StatusBadRequest,
			wantBody:   apierrors.TypeValidation,
		},
		{
			name:       "not multipart",
			svc:        &stubService{},
			req:        httptest.NewRequest(http.MethodPost, "/parse", nil),
			wantStatus: http.StatusBadRequest,
			wantBody:   apierrors.CodeInvalidRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := testutil.NewTestLogger()
			h := NewConcentradoHandler(tt.svc, UploadLimits{MaxBytes: 1 << 20, MaxFiles: 10}, logger, newErrorHandler())

			rec := httptest.NewRecorder()
			h.Routes().ServeHTTP(rec, tt.req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestStatisticsHandler(t *testing.T) {
	file := testutil.NamedFile{Name: "1A.xlsx", Data: []byte("payload")}
	batch := &services.BatchResult{
		ID: "batch-1",
		Files: []services.FileResult{
			{FileName: "1A.xlsx", Report: &domain.ConcentradoData{Group: "1A", Semester: 1, Students: []domain.StudentGrades{{FullName: "Ana"}}}},
			{FileName: "bad.xlsx", Err: &dataprocessing.UnrecognizedLayoutError{FileName: "bad.xlsx", Cell: "A2"}},
		},
		Result: dataprocessing.Aggregate(nil),
	}

	t.Run("summaries", func(t *testing.T) {
		svc := &stubService{batch: batch}
		logger, _ := testutil.NewTestLogger()
		h := NewStatisticsHandler(svc, UploadLimits{MaxFiles: 5}, logger, newErrorHandler())

		rec := httptest.NewRecorder()
		h.Routes().ServeHTTP(rec, testutil.MultipartRequest(t, "/?workers=3", "files", file, file))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, 3, svc.workers)

		var body struct {
			BatchID string `json:"batchId"`
			Parsed  int    `json:"parsed"`
			Failed  int    `json:"failed"`
			Files   []struct {
				FileName  string `json:"fileName"`
				Students  int    `json:"students"`
				ErrorCode string `json:"errorCode"`
			} `json:"files"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "batch-1", body.BatchID)
		assert.Equal(t, 1, body.Parsed)
		assert.Equal(t, 1, body.Failed)
		require.Len(t, body.Files, 2)
		assert.Equal(t, 1, body.Files[0].Students)
		assert.Equal(t, apierrors.CodeUnrecognizedLayout, body.Files[1].ErrorCode)
	})

	t.Run("non numeric workers", func(t *testing.T) {
		logger, _ := testutil.NewTestLogger()
		h := NewStatisticsHandler(&stubService{batch: batch}, UploadLimits{}, logger, newErrorHandler())

		rec := httptest.NewRecorder()
		h.Routes().ServeHTTP(rec, testutil.MultipartRequest(t, "/?workers=many", "files", file))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "workers")
	})

	t.Run("cancelled batch", func(t *testing.T) {
		logger, _ := testutil.NewTestLogger()
		h := NewStatisticsHandler(&stubService{err: context.Canceled}, UploadLimits{}, logger, newErrorHandler())

		rec := httptest.NewRecorder()
		h.Routes().ServeHTTP(rec, testutil.MultipartRequest(t, "/export", "files", file))
		assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
	})
}
