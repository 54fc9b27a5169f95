package http

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "github.com/gallegosdmz/umvh-frontend-sub001/internal/errors"
	"github.com/gallegosdmz/umvh-frontend-sub001/internal/exporter"
	"github.com/gallegosdmz/umvh-frontend-sub001/internal/middleware"
	"github.com/gallegosdmz/umvh-frontend-sub001/internal/services"
	"github.com/gallegosdmz/umvh-frontend-sub001/internal/validation"
	api "github.com/gallegosdmz/umvh-frontend-sub001/pkg/contracts/api/v1"
)

const (
	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// StatisticsHandler aggregates uploaded concentrados.
type StatisticsHandler struct {
	service      StatisticsService
	exporter     *exporter.StatisticsExporter
	validator    *middleware.Validator
	limits       UploadLimits
	names        *validation.WorkbookValidator
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewStatisticsHandler creates a statistics handler
func NewStatisticsHandler(service StatisticsService, limits UploadLimits, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *StatisticsHandler {
	return &StatisticsHandler{
		service:      service,
		exporter:     exporter.NewStatisticsExporter(),
		validator:    middleware.NewValidator(logger),
		limits:       limits,
		logger:       logger.With(slog.String("component", "statistics_handler")),
		names:        validation.NewWorkbookValidator(limits.MaxBytes, logger),
		errorHandler: errorHandler,
	}
}

// Routes returns the statistics routes
func (h *StatisticsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Statistics)
	r.Post("/export", h.Export)
	return r
}

// Statistics handles POST /api/v1/statistics
func (h *StatisticsHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	resp, _, ok := h.process(w, r)
	if !ok {
		return
	}
	render.JSON(w, r, resp)
}

// Export handles POST /api/v1/statistics/export
func (h *StatisticsHandler) Export(w http.ResponseWriter, r *http.Request) {
	resp, req, ok := h.process(w, r)
	if !ok {
		return
	}

	format := req.Format
	if format == "" {
		format = api.ExportFormatCSV
	}
	fileName := fmt.Sprintf("estadisticas-%s.%s", resp.BatchID, format)

	if format == api.ExportFormatJSON {
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, fileName))
		render.JSON(w, r, resp.Result)
		return
	}

	var (
		buf         bytes.Buffer
		err         error
		contentType = contentTypeCSV
	)
	if format == api.ExportFormatXLSX {
		contentType = contentTypeXLSX
		err = h.exporter.WriteXLSX(&buf, resp.Result)
	} else {
		err = h.exporter.WriteCSV(&buf, resp.Result)
	}
	if err != nil {
		h.errorHandler.HandleError(w, r,
			apierrors.NewExportError("statistics export failed", err).
				WithContext("batch_id", resp.BatchID).
				WithContext("format", string(format)))
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, fileName))
	w.Header().Set("Content-Type", contentType)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to write export",
			slog.String("batch_id", resp.BatchID),
			slog.String("error", err.Error()))
		return
	}
	h.logger.InfoContext(r.Context(), "statistics exported",
		slog.String("batch_id", resp.BatchID),
		slog.String("format", string(format)))
}

func (h *StatisticsHandler) process(w http.ResponseWriter, r *http.Request) (*api.StatisticsResponse, api.StatisticsRequest, bool) {
	req, err := h.parseRequest(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return nil, req, false
	}

	uploads, err := readUploads(w, r, "files", h.limits, h.names)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return nil, req, false
	}

	batch, err := h.service.ProcessBatchWithWorkers(r.Context(), uploads, req.Workers)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return nil, req, false
	}

	resp := newStatisticsResponse(batch)
	if batch.Parsed() == 0 {
		h.errorHandler.HandleError(w, r, apierrors.NoValidReportsError(resp.Files))
		return nil, req, false
	}
	return resp, req, true
}

func (h *StatisticsHandler) parseRequest(r *http.Request) (api.StatisticsRequest, error) {
	q := r.URL.Query()
	req := api.StatisticsRequest{Format: api.ExportFormat(q.Get("format"))}
	if v := q.Get("workers"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return req, apierrors.ErrValidation("workers", "workers must be a valid integer")
		}
		req.Workers = n
	}
	return req, h.validator.ValidateStruct(req)
}

func newStatisticsResponse(batch *services.BatchResult) *api.StatisticsResponse {
	resp := &api.StatisticsResponse{
		BatchID: batch.ID,
		Result:  batch.Result,
		Files:   make([]api.FileSummary, 0, len(batch.Files)),
		Parsed:  batch.Parsed(),
		Failed:  batch.Failed(),
	}
	for _, f := range batch.Files {
		summary := api.FileSummary{FileName: f.FileName, Cached: f.Cached}
		if f.Err != nil {
			summary.Error = f.Err.Error()
			summary.ErrorCode = errorCode(f.Err)
		} else {
			summary.Group = f.Report.Group
			summary.Semester = f.Report.Semester
			summary.Period = f.Report.Period
			summary.Students = len(f.Report.Students)
		}
		resp.Files = append(resp.Files, summary)
	}
	return resp
}
