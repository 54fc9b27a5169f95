package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "github.com/gallegosdmz/umvh-frontend-sub001/internal/errors"
	"github.com/gallegosdmz/umvh-frontend-sub001/internal/validation"
)

// ConcentradoHandler parses single concentrado workbooks.
type ConcentradoHandler struct {
	service      StatisticsService
	limits       UploadLimits
	names        *validation.WorkbookValidator
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewConcentradoHandler creates a concentrado handler
func NewConcentradoHandler(service StatisticsService, limits UploadLimits, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ConcentradoHandler {
	return &ConcentradoHandler{
		service:      service,
		limits:       UploadLimits{MaxBytes: limits.MaxBytes, MaxFiles: 1},
		logger:       logger.With(slog.String("component", "concentrado_handler")),
		names:        validation.NewWorkbookValidator(limits.MaxBytes, logger),
		errorHandler: errorHandler,
	}
}

// Routes returns the concentrado routes
func (h *ConcentradoHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/parse", h.Parse)
	return r
}

// Parse handles POST /api/v1/concentrados/parse
func (h *ConcentradoHandler) Parse(w http.ResponseWriter, r *http.Request) {
	uploads, err := readUploads(w, r, "file", h.limits, h.names)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	upload := uploads[0]

	report, cached, err := h.service.ParseFile(r.Context(), upload.Name, upload.Data)
	if err != nil {
		h.errorHandler.HandleError(w, r, parseErrorToAPI(err))
		return
	}

	h.logger.InfoContext(r.Context(), "concentrado parsed",
		slog.String("file", upload.Name),
		slog.String("group", report.Group),
		slog.Bool("cached", cached))
	render.JSON(w, r, report)
}
