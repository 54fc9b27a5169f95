// Package validation checks uploaded workbooks and output locations before
// any parsing or writing happens.
package validation

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	apperrors "github.com/gallegosdmz/umvh-frontend-sub001/internal/errors"
	"github.com/gallegosdmz/umvh-frontend-sub001/internal/files"
)

// zipSignature starts every .xlsx package.
var zipSignature = []byte("PK\x03\x04")

// WorkbookValidator validates workbook uploads and output directories.
type WorkbookValidator struct {
	maxSize int64
	logger  *slog.Logger
}

// NewWorkbookValidator creates a validator refusing workbooks larger than
// maxSize bytes; zero disables the limit.
func NewWorkbookValidator(maxSize int64, logger *slog.Logger) *WorkbookValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkbookValidator{
		maxSize: maxSize,
		logger:  logger,
	}
}

// ValidateName rejects names that are not .xlsx workbooks, including Excel
// lock files.
func (v *WorkbookValidator) ValidateName(name string) error {
	if !files.IsWorkbook(name) {
		v.logger.Debug("rejected upload name", slog.String("file", name))
		return apperrors.NewAppValidationError(fmt.Sprintf("%s is not an .xlsx workbook", name)).
			WithContext("file", name)
	}
	return nil
}

// ValidateContent checks the size and the zip signature of a workbook. A
// failure is reported as a parsing error so it is handled like any other
// unreadable workbook.
func (v *WorkbookValidator) ValidateContent(name string, data []byte) error {
	switch {
	case len(data) == 0:
		return apperrors.NewParsingError("workbook is empty", nil).WithContext("file", name)
	case v.maxSize > 0 && int64(len(data)) > v.maxSize:
		return apperrors.NewParsingError(
			fmt.Sprintf("workbook is %d bytes, limit is %d", len(data), v.maxSize), nil).
			WithContext("file", name)
	case !bytes.HasPrefix(data, zipSignature):
		return apperrors.NewParsingError("workbook is not an .xlsx package", nil).WithContext("file", name)
	}
	return nil
}

// ValidateOutputDirectory ensures dir exists or can be created and is
// writable.
func (v *WorkbookValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	testFile := filepath.Join(dir, ".write_test")
	file, err := os.Create(testFile)
	if err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("output directory %s is not writable: %w", dir, err)
	}
	file.Close()
	os.Remove(testFile)

	v.logger.Debug("Output directory validated", slog.String("directory", dir))
	return nil
}
