package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func headerReader(cells map[int]string) func(int) string {
	return func(col int) string { return cells[col] }
}

func TestScanColumns(t *testing.T) {
	tests := []struct {
		name        string
		cells       map[int]string
		wantNames   []string
		wantColumns []int
		wantAverage int
	}{
		{
			name:        "contiguous subjects",
			cells:       map[int]string{3: "Matemáticas", 8: "Física", 13: "Promedio"},
			wantNames:   []string{"Matemáticas", "Física"},
			wantColumns: []int{3, 8},
			wantAverage: 13,
		},
		{
			name:        "empty column between subject blocks",
			cells:       map[int]string{3: "Matemáticas", 9: "Física", 14: "Promedio"},
			wantNames:   []string{"Matemáticas", "Física"},
			wantColumns: []int{3, 9},
			wantAverage: 14,
		},
		{
			name:        "no subjects",
			cells:       map[int]string{5: "Promedio"},
			wantNames:   []string{},
			wantColumns: []int{},
			wantAverage: 5,
		},
		{
			name:        "names are trimmed",
			cells:       map[int]string{3: "  Química ", 8: " Promedio "},
			wantNames:   []string{"Química"},
			wantColumns: []int{3},
			wantAverage: 8,
		},
		{
			name:        "duplicate subject keeps first column",
			cells:       map[int]string{3: "Historia", 8: "Historia", 13: "Promedio"},
			wantNames:   []string{"Historia"},
			wantColumns: []int{3},
			wantAverage: 13,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scan := ScanColumns(headerReader(tt.cells), 3, 5, "Promedio", 100)

			columns := make([]int, len(scan.Subjects))
			for i, s := range scan.Subjects {
				columns[i] = s.Column
			}
			assert.Equal(t, tt.wantNames, scan.Names())
			assert.Equal(t, tt.wantColumns, columns)
			assert.Equal(t, tt.wantAverage, scan.AverageColumn)
		})
	}
}

func TestScanColumnsStopsAtLimit(t *testing.T) {
	calls := 0
	read := func(col int) string {
		calls++
		return ""
	}

	scan := ScanColumns(read, 3, 5, "Promedio", 20)

	assert.Empty(t, scan.Subjects)
	assert.Equal(t, 20, calls)
	assert.Equal(t, 23, scan.AverageColumn)
}

func TestDefaultLayout(t *testing.T) {
	l := DefaultLayout()
	require.NoError(t, l.Validate())
	assert.Equal(t, "Calificaciones", l.SheetName)
	assert.Equal(t, 3, l.FirstSubjectColumn)
	assert.Equal(t, 5, l.SubjectSpan)
	assert.Equal(t, "Promedio", l.Terminator)
}

func TestLayoutValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Layout)
	}{
		{"missing sheet", func(l *Layout) { l.SheetName = "" }},
		{"missing subtitle cell", func(l *Layout) { l.SubtitleCell = "" }},
		{"span too small", func(l *Layout) { l.SubjectSpan = 4 }},
		{"students before header", func(l *Layout) { l.FirstStudentRow = l.HeaderRow }},
		{"zero based column", func(l *Layout) { l.NameColumn = 0 }},
		{"no scan bound", func(l *Layout) { l.MaxScanColumns = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := DefaultLayout()
			tt.modify(&l)
			assert.Error(t, l.Validate())
		})
	}
}
