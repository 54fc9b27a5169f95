package exporter

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/gallegosdmz/umvh-frontend-sub001/pkg/contracts/domain"
)

func sampleResult() domain.StatisticsResult {
	return domain.StatisticsResult{
		PromediosGenerales: []domain.SemesterAverage{{Semester: 1, Promedio: 8.25}, {Semester: 3, Promedio: 7}},
		Semestres: []domain.SemesterStatistics{
			{
				Semester: 1,
				Promedio: 8.25,
				Groups: []domain.GroupStatistics{
					{Group: "1A", Promedio: 8.25, CourseAverages: map[string]float64{"Química": 6.5, "Física": 9}},
				},
				FailuresByCourse: map[string]int{"Física": 0, "Química": 2},
				AllCourses:       []string{"Física", "Química"},
			},
			{
				Semester:         3,
				Promedio:         7,
				Groups:           []domain.GroupStatistics{{Group: "3B", Promedio: 7, CourseAverages: map[string]float64{}}},
				FailuresByCourse: map[string]int{},
				AllCourses:       []string{},
			},
		},
	}
}

func TestStatisticsTables(t *testing.T) {
	tables := StatisticsTables(sampleResult())
	require.Len(t, tables, 3)

	assert.Equal(t, SheetAverages, tables[0].Name)
	assert.Equal(t, [][]interface{}{{1, 8.25}, {3, 7.0}}, tables[0].Rows)

	assert.Equal(t, SheetGroups, tables[1].Name)
	assert.Equal(t, [][]interface{}{
		{1, "1A", 8.25, "Física", 9.0},
		{1, "1A", 8.25, "Química", 6.5},
		{3, "3B", 7.0, "", nil},
	}, tables[1].Rows)

	assert.Equal(t, SheetFailures, tables[2].Name)
	assert.Equal(t, [][]interface{}{{1, "Física", 0}, {1, "Química", 2}}, tables[2].Rows)
}

func TestStatisticsExporter_WriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewStatisticsExporter().WriteCSV(&buf, sampleResult()))

	data := buf.Bytes()
	require.True(t, bytes.HasPrefix(data, utf8BOM))

	r := csv.NewReader(bytes.NewReader(data[len(utf8BOM):]))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)

	assert.Equal(t, [][]string{
		{"Promedios"},
		{"Semestre", "Promedio general"},
		{"1", "8.25"},
		{"3", "7.00"},
		{"Grupos"},
		{"Semestre", "Grupo", "Promedio grupo", "Materia", "Promedio materia"},
		{"1", "1A", "8.25", "Física", "9.00"},
		{"1", "1A", "8.25", "Química", "6.50"},
		{"3", "3B", "7.00", "", ""},
		{"Reprobados"},
		{"Semestre", "Materia", "Reprobados"},
		{"1", "Física", "0"},
		{"1", "Química", "2"},
	}, records)
}

func TestStatisticsExporter_WriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	empty := domain.StatisticsResult{PromediosGenerales: []domain.SemesterAverage{}, Semestres: []domain.SemesterStatistics{}}
	require.NoError(t, NewStatisticsExporter().WriteCSV(&buf, empty))
	assert.Contains(t, buf.String(), "Semestre,Promedio general")
}

func TestStatisticsExporter_WriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewStatisticsExporter().WriteXLSX(&buf, sampleResult()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetAverages, SheetGroups, SheetFailures}, f.GetSheetList())

	rows, err := f.GetRows(SheetAverages)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Semestre", "Promedio general"}, rows[0])
	assert.Equal(t, "1", rows[1][0])

	raw, err := f.GetCellValue(SheetAverages, "B2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "8.25", raw)

	failures, err := f.GetRows(SheetFailures)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "Química", "2"}, failures[2])
}
