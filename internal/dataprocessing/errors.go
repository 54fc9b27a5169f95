package dataprocessing

import (
	"errors"
	"fmt"
)

// ExpectedSubtitleFormat is the subtitle grammar written by the report generator.
const ExpectedSubtitleFormat = "<título> - Grupo: <grupo> | Semestre: <N> | Período: <periodo>"

var (
	// ErrMissingSheet matches every *MissingSheetError.
	ErrMissingSheet = errors.New("sheet not found")
	// ErrUnrecognizedLayout matches every *UnrecognizedLayoutError.
	ErrUnrecognizedLayout = errors.New("unrecognized concentrado layout")
)

// MissingSheetError reports a workbook without the grades sheet and without
// any fallback sheet.
type MissingSheetError struct {
	FileName  string
	SheetName string
}

func (e *MissingSheetError) Error() string {
	return fmt.Sprintf("sheet %q not found in file %q", e.SheetName, e.FileName)
}

func (e *MissingSheetError) Is(target error) bool { return target == ErrMissingSheet }

// UnrecognizedLayoutError reports a subtitle cell whose group or semester
// could not be matched.
type UnrecognizedLayoutError struct {
	FileName string
	Cell     string
	Subtitle string
}

func (e *UnrecognizedLayoutError) Error() string {
	return fmt.Sprintf("file %q: subtitle %s = %q does not match expected format %q",
		e.FileName, e.Cell, e.Subtitle, ExpectedSubtitleFormat)
}

func (e *UnrecognizedLayoutError) Is(target error) bool { return target == ErrUnrecognizedLayout }
