package exporter

import (
	"fmt"
	"io"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/gallegosdmz/umvh-frontend-sub001/pkg/contracts/domain"
)

// Sheet names of the statistics workbook, also used as CSV section titles.
const (
	SheetAverages = "Promedios"
	SheetGroups   = "Grupos"
	SheetFailures = "Reprobados"
)

// Table is one tabular view of a statistics result.
type Table struct {
	Name    string
	Headers []string
	Rows    [][]interface{}
}

// StatisticsTables flattens a result into the general averages, the
// per-group subject averages and the failure counts.
func StatisticsTables(result domain.StatisticsResult) []Table {
	averages := Table{Name: SheetAverages, Headers: []string{"Semestre", "Promedio general"}}
	for _, s := range result.PromediosGenerales {
		averages.Rows = append(averages.Rows, []interface{}{s.Semester, s.Promedio})
	}

	groups := Table{Name: SheetGroups, Headers: []string{"Semestre", "Grupo", "Promedio grupo", "Materia", "Promedio materia"}}
	failures := Table{Name: SheetFailures, Headers: []string{"Semestre", "Materia", "Reprobados"}}
	for _, sem := range result.Semestres {
		for _, g := range sem.Groups {
			courses := sortedKeys(g.CourseAverages)
			if len(courses) == 0 {
				groups.Rows = append(groups.Rows, []interface{}{sem.Semester, g.Group, g.Promedio, "", nil})
			}
			for _, course := range courses {
				groups.Rows = append(groups.Rows, []interface{}{sem.Semester, g.Group, g.Promedio, course, g.CourseAverages[course]})
			}
		}
		for _, course := range sem.AllCourses {
			failures.Rows = append(failures.Rows, []interface{}{sem.Semester, course, sem.FailuresByCourse[course]})
		}
	}
	return []Table{averages, groups, failures}
}

// StatisticsExporter writes statistics results as CSV or XLSX.
type StatisticsExporter struct {
	csv *CSVWriter
}

// NewStatisticsExporter creates an exporter; CSV output carries a UTF-8 BOM.
func NewStatisticsExporter() *StatisticsExporter {
	return &StatisticsExporter{csv: NewCSVWriter(true)}
}

// WriteCSV writes every table as a titled section separated by a blank line.
func (e *StatisticsExporter) WriteCSV(w io.Writer, result domain.StatisticsResult) error {
	stream, err := e.csv.NewStreamWriter(w)
	if err != nil {
		return err
	}
	for i, table := range StatisticsTables(result) {
		if i > 0 {
			if err := stream.WriteRecord([]string{""}); err != nil {
				return err
			}
		}
		if err := stream.WriteRecord([]string{table.Name}); err != nil {
			return fmt.Errorf("failed to write section %s: %w", table.Name, err)
		}
		if err := stream.WriteRecord(table.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
		for _, row := range table.Rows {
			record := make([]string, len(row))
			for j, v := range row {
				record[j] = formatValue(v)
			}
			if err := stream.WriteRecord(record); err != nil {
				return err
			}
		}
	}
	return stream.Close()
}

// WriteXLSX writes one sheet per table.
func (e *StatisticsExporter) WriteXLSX(w io.Writer, result domain.StatisticsResult) error {
	f := excelize.NewFile()
	defer f.Close()

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	decimals, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	if err != nil {
		return fmt.Errorf("failed to create number style: %w", err)
	}

	for i, table := range StatisticsTables(result) {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), table.Name); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(table.Name); err != nil {
			return err
		}
		if err := writeTable(f, table, header, decimals); err != nil {
			return fmt.Errorf("failed to write sheet %s: %w", table.Name, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeTable(f *excelize.File, table Table, headerStyle, decimalStyle int) error {
	headers := make([]interface{}, len(table.Headers))
	for i, h := range table.Headers {
		headers[i] = h
	}
	if err := f.SetSheetRow(table.Name, "A1", &headers); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(table.Headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(table.Name, "A1", last, headerStyle); err != nil {
		return err
	}

	for i, row := range table.Rows {
		ref, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := row
		if err := f.SetSheetRow(table.Name, ref, &values); err != nil {
			return err
		}
		for j, v := range row {
			if _, ok := v.(float64); !ok {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			if err := f.SetCellStyle(table.Name, cell, cell, decimalStyle); err != nil {
				return err
			}
		}
	}

	lastCol, _ := excelize.ColumnNumberToName(len(table.Headers))
	return f.SetColWidth(table.Name, "A", lastCol, 18)
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
