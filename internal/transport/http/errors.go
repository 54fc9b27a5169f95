package http

import (
	"errors"
	"net/http"

	"github.com/gallegosdmz/umvh-frontend-sub001/internal/dataprocessing"
	apierrors "github.com/gallegosdmz/umvh-frontend-sub001/internal/errors"
)

// parseErrorToAPI maps workbook errors to 422 API errors. Other errors are
// returned unchanged.
func parseErrorToAPI(err error) error {
	var (
		missing  *dataprocessing.MissingSheetError
		layout   *dataprocessing.UnrecognizedLayoutError
		appError *apierrors.AppError
	)
	switch {
	case errors.As(err, &missing):
		return apierrors.NewWithDetails(http.StatusUnprocessableEntity, apierrors.CodeMissingSheet, err.Error(),
			map[string]string{"file": missing.FileName, "sheet": missing.SheetName})
	case errors.As(err, &layout):
		return apierrors.NewWithDetails(http.StatusUnprocessableEntity, apierrors.CodeUnrecognizedLayout, err.Error(),
			map[string]string{
				"file":     layout.FileName,
				"cell":     layout.Cell,
				"subtitle": layout.Subtitle,
				"expected": dataprocessing.ExpectedSubtitleFormat,
			})
	case errors.As(err, &appError) && appError.Type == apierrors.ErrTypeParsing:
		return apierrors.NewWithDetails(http.StatusUnprocessableEntity, apierrors.CodeInvalidWorkbook, appError.Message,
			appError.Context)
	}
	return err
}

// errorCode returns the API error code a per-file failure is reported with.
func errorCode(err error) string {
	var apiErr *apierrors.APIError
	if errors.As(parseErrorToAPI(err), &apiErr) {
		return apiErr.ErrorCode
	}
	return apierrors.CodeInternal
}
