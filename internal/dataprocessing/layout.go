package dataprocessing

import (
	"fmt"
	"strings"
)

// Layout describes where a concentrado workbook keeps its data. Rows and
// columns are 1-based, matching spreadsheet coordinates.
type Layout struct {
	SheetName          string
	SubtitleCell       string
	HeaderRow          int
	FirstSubjectColumn int
	SubjectSpan        int
	Terminator         string
	FirstStudentRow    int
	NameColumn         int
	RegistrationColumn int
	MaxScanColumns     int
	MaxStudentRows     int
}

// Grade sub-columns inside a subject span, relative to the subject column.
const (
	OffsetP1 = iota
	OffsetP2
	OffsetP3
	OffsetOrd
	OffsetExt
)

// SubtitleLabels are the sub-header labels written under every subject.
var SubtitleLabels = [5]string{"P1", "P2", "P3", "Ord", "Ext"}

// DefaultLayout returns the layout produced by the boleta report generator.
func DefaultLayout() Layout {
	return Layout{
		SheetName:          "Calificaciones",
		SubtitleCell:       "A2",
		HeaderRow:          4,
		FirstSubjectColumn: 3,
		SubjectSpan:        5,
		Terminator:         "Promedio",
		FirstStudentRow:    6,
		NameColumn:         1,
		RegistrationColumn: 2,
		MaxScanColumns:     500,
		MaxStudentRows:     5000,
	}
}

// SubjectColumn is a subject name anchored at the first column of its span.
type SubjectColumn struct {
	Name   string
	Column int
}

// HeaderScan is the result of scanning the subject header row.
type HeaderScan struct {
	Subjects      []SubjectColumn
	AverageColumn int
}

// Names returns the subject names in column order.
func (h HeaderScan) Names() []string {
	names := make([]string, len(h.Subjects))
	for i, s := range h.Subjects {
		names[i] = s.Name
	}
	return names
}

// ScanColumns walks a header row from start. A non-empty cell that is not
// the terminator records a subject and skips span columns; an empty cell
// skips a single column; the terminator stops the scan. limit bounds the
// number of columns examined when no terminator is present. A repeated
// subject name keeps its first column.
func ScanColumns(read func(col int) string, start, span int, terminator string, limit int) HeaderScan {
	var scan HeaderScan
	seen := make(map[string]bool)
	last := 0

	col := start
	for col < start+limit {
		value := strings.TrimSpace(read(col))
		if value == terminator {
			break
		}
		if value == "" {
			col++
			continue
		}
		if !seen[value] {
			seen[value] = true
			scan.Subjects = append(scan.Subjects, SubjectColumn{Name: value, Column: col})
		}
		last = col
		col += span
	}

	if last > 0 {
		scan.AverageColumn = last + span
	} else {
		scan.AverageColumn = col
	}
	return scan
}

// ScanHeader applies ScanColumns with the layout's anchors.
func (l Layout) ScanHeader(read func(col int) string) HeaderScan {
	return ScanColumns(read, l.FirstSubjectColumn, l.SubjectSpan, l.Terminator, l.MaxScanColumns)
}

// Validate checks the structural constraints of the layout.
func (l Layout) Validate() error {
	switch {
	case l.SheetName == "":
		return fmt.Errorf("layout: sheet name is required")
	case l.SubtitleCell == "":
		return fmt.Errorf("layout: subtitle cell is required")
	case l.SubjectSpan < len(SubtitleLabels):
		return fmt.Errorf("layout: subject span %d is smaller than %d grade columns", l.SubjectSpan, len(SubtitleLabels))
	case l.HeaderRow < 1 || l.FirstStudentRow <= l.HeaderRow:
		return fmt.Errorf("layout: student rows must start after header row %d", l.HeaderRow)
	case l.FirstSubjectColumn < 1 || l.NameColumn < 1 || l.RegistrationColumn < 1:
		return fmt.Errorf("layout: columns are 1-based")
	case l.MaxScanColumns < 1 || l.MaxStudentRows < 1:
		return fmt.Errorf("layout: scan bounds must be positive")
	}
	return nil
}
