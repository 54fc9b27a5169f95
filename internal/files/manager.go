package files

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	apperrors "github.com/gallegosdmz/umvh-frontend-sub001/internal/errors"
)

// Manager reads input workbooks and writes exported reports.
type Manager struct {
	maxFileSize int64
}

// NewManager creates a manager that refuses files larger than maxFileSize
// bytes; zero disables the limit.
func NewManager(maxFileSize int64) *Manager {
	return &Manager{maxFileSize: maxFileSize}
}

// ReadFile reads the entire content of a file
func (m *Manager) ReadFile(path string) ([]byte, error) {
	slog.Debug("Reading file", slog.String("path", path))

	if m.maxFileSize > 0 {
		info, err := os.Stat(path)
		if err != nil {
			return nil, apperrors.NewStorageError("failed to stat file", err).WithContext("path", path)
		}
		if info.Size() > m.maxFileSize {
			return nil, apperrors.NewStorageError(
				fmt.Sprintf("file is %d bytes, limit is %d", info.Size(), m.maxFileSize), nil).
				WithContext("path", path)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to read file", err).WithContext("path", path)
	}
	return data, nil
}

// WriteFile writes data to path, creating parent directories.
func (m *Manager) WriteFile(path string, data []byte) error {
	slog.Info("Writing file",
		slog.String("path", path),
		slog.Int("size_bytes", len(data)))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewStorageError("failed to create directory", err).WithContext("path", path)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return apperrors.NewStorageError("failed to write file", err).WithContext("path", path)
	}
	return nil
}
