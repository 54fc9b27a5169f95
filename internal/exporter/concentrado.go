package exporter

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/gallegosdmz/umvh-frontend-sub001/internal/dataprocessing"
	"github.com/gallegosdmz/umvh-frontend-sub001/pkg/contracts/domain"
)

// ConcentradoWorkbook renders a concentrado in the given layout. Grades of
// zero are left blank, as the report generator does for unrecorded grades.
func ConcentradoWorkbook(data domain.ConcentradoData, layout dataprocessing.Layout) (*excelize.File, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := layout.SheetName
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		f.Close()
		return nil, err
	}

	w := &sheetWriter{file: f, sheet: sheet}
	w.set(1, 1, dataprocessing.ReportTitle)
	subCol, subRow, err := excelize.CellNameToCoordinates(layout.SubtitleCell)
	if err != nil {
		f.Close()
		return nil, err
	}
	subtitle := dataprocessing.Subtitle{Group: data.Group, Semester: data.Semester, Period: data.Period}
	w.set(subCol, subRow, subtitle.String())

	w.set(layout.NameColumn, layout.HeaderRow, "Nombre")
	w.set(layout.RegistrationColumn, layout.HeaderRow, "Matrícula")
	for i, course := range data.Courses {
		col := layout.FirstSubjectColumn + i*layout.SubjectSpan
		w.set(col, layout.HeaderRow, course)
		for j, label := range dataprocessing.SubtitleLabels {
			w.set(col+j, layout.HeaderRow+1, label)
		}
	}
	averageCol := layout.FirstSubjectColumn + len(data.Courses)*layout.SubjectSpan
	w.set(averageCol, layout.HeaderRow, layout.Terminator)

	for i, student := range data.Students {
		row := layout.FirstStudentRow + i
		w.set(layout.NameColumn, row, student.FullName)
		w.set(layout.RegistrationColumn, row, student.RegistrationNumber)
		for c, course := range data.Courses {
			grade, ok := student.CourseGrades[course]
			if !ok {
				continue
			}
			col := layout.FirstSubjectColumn + c*layout.SubjectSpan
			values := [5]float64{dataprocessing.OffsetP1: grade.P1, dataprocessing.OffsetP2: grade.P2,
				dataprocessing.OffsetP3: grade.P3, dataprocessing.OffsetOrd: grade.Ord, dataprocessing.OffsetExt: grade.Ext}
			for offset, v := range values {
				w.grade(col+offset, row, v)
			}
		}
		w.grade(averageCol, row, student.Promedio)
	}

	if w.err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to render concentrado %s: %w", data.Group, w.err)
	}
	return f, nil
}

// WriteConcentradoWorkbook writes data as a concentrado workbook to w.
func WriteConcentradoWorkbook(w io.Writer, data domain.ConcentradoData, layout dataprocessing.Layout) error {
	f, err := ConcentradoWorkbook(data, layout)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// sheetWriter keeps the first error of a sequence of cell writes.
type sheetWriter struct {
	file  *excelize.File
	sheet string
	err   error
}

func (w *sheetWriter) set(col, row int, value interface{}) {
	if w.err != nil {
		return
	}
	ref, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		w.err = err
		return
	}
	if s, ok := value.(string); ok {
		w.err = w.file.SetCellStr(w.sheet, ref, s)
		return
	}
	w.err = w.file.SetCellValue(w.sheet, ref, value)
}

func (w *sheetWriter) grade(col, row int, v float64) {
	if v != 0 {
		w.set(col, row, v)
	}
}
