package http

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	apierrors "github.com/gallegosdmz/umvh-frontend-sub001/internal/errors"
	"github.com/gallegosdmz/umvh-frontend-sub001/internal/services"
	"github.com/gallegosdmz/umvh-frontend-sub001/internal/validation"
)

// multipartMemory is the part of a form kept in memory before spilling to
// temporary files.
const multipartMemory = 8 << 20

// UploadLimits bounds the multipart uploads accepted by the handlers.
type UploadLimits struct {
	MaxBytes int64
	MaxFiles int
}

// readUploads reads every file sent in field, enforcing limits. Every file
// name must be an .xlsx workbook.
func readUploads(w http.ResponseWriter, r *http.Request, field string, limits UploadLimits, names *validation.WorkbookValidator) ([]services.Upload, error) {
	if limits.MaxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, limits.MaxBytes)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, apierrors.PayloadTooLargeError(tooLarge.Limit)
		}
		return nil, apierrors.InvalidRequestWithError(err)
	}
	defer r.MultipartForm.RemoveAll()

	headers := r.MultipartForm.File[field]
	if len(headers) == 0 {
		return nil, apierrors.ErrMissingFile
	}
	if limits.MaxFiles > 0 && len(headers) > limits.MaxFiles {
		return nil, apierrors.TooManyFilesError(len(headers), limits.MaxFiles)
	}

	uploads := make([]services.Upload, 0, len(headers))
	for _, fh := range headers {
		if err := names.ValidateName(fh.Filename); err != nil {
			return nil, err
		}
		data, err := readPart(fh)
		if err != nil {
			return nil, apierrors.InvalidRequestWithError(fmt.Errorf("read %s: %w", fh.Filename, err))
		}
		uploads = append(uploads, services.Upload{Name: fh.Filename, Data: data})
	}
	return uploads, nil
}

func readPart(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
