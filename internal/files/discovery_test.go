package files

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/gallegosdmz/umvh-frontend-sub001/internal/errors"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	}
}

func names(files []FileInfo) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Name
	}
	return out
}

func TestIsWorkbook(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"3A.xlsx", true},
		{"REPORTE.XLSX", true},
		{"dir/1B.xlsx", true},
		{"~$3A.xlsx", false},
		{"viejo.xls", false},
		{"datos.csv", false},
		{"xlsx", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsWorkbook(tt.name))
		})
	}
}

func TestFindWorkbooks(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "3A.xlsx", "1A.xlsx", "~$1A.xlsx", "notas.csv", "sub/2A.xlsx")

	files, err := NewDiscovery("").FindWorkbooks(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"1A.xlsx", "3A.xlsx"}, names(files))
	assert.Equal(t, filepath.Join(dir, "1A.xlsx"), files[0].Path)
	assert.Equal(t, int64(1), files[0].Size)
}

func TestFindWorkbooksRelativeToBase(t *testing.T) {
	base := t.TempDir()
	touch(t, base, "entrada/5A.xlsx")

	files, err := NewDiscovery(base).FindWorkbooks("entrada")
	require.NoError(t, err)
	assert.Equal(t, []string{"5A.xlsx"}, names(files))
}

func TestFindWorkbooksMissingDirectory(t *testing.T) {
	_, err := NewDiscovery("").FindWorkbooks(filepath.Join(t.TempDir(), "nada"))
	assert.Error(t, err)
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a/1A.xlsx", "a/1B.xlsx", "b/2A.xlsx", "b/~$2A.xlsx", "c/3A.xlsx")

	files, err := NewDiscovery(dir).Resolve([]string{
		"a",
		filepath.Join(dir, "b", "*.xlsx"),
		"c/3A.xlsx",
		"a/1A.xlsx",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"1A.xlsx", "1B.xlsx", "2A.xlsx", "3A.xlsx"}, names(files))
}

func TestResolveMissingFile(t *testing.T) {
	dir := t.TempDir()
	_, err := NewDiscovery(dir).Resolve([]string{"falta.xlsx"})
	require.Error(t, err)
	assert.Equal(t, "[NOT_FOUND] falta.xlsx not found", err.Error())

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrTypeNotFound, appErr.Type)
	assert.Equal(t, filepath.Join(dir, "falta.xlsx"), appErr.Context["path"])
}
