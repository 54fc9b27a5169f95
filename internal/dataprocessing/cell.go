package dataprocessing

import (
	"math"
	"strconv"
	"strings"
)

// CellKind tags the variant held by a Cell.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellNumber
	CellText
	CellFormula
	CellRichText
)

func (k CellKind) String() string {
	switch k {
	case CellNumber:
		return "number"
	case CellText:
		return "text"
	case CellFormula:
		return "formula"
	case CellRichText:
		return "rich_text"
	default:
		return "empty"
	}
}

// Cell is a spreadsheet value decoupled from the workbook library.
// A formula cell carries its cached result in Result (nil when the
// workbook stored none); a rich text cell carries its runs in Runs.
type Cell struct {
	Kind    CellKind
	Number  float64
	Text    string
	Formula string
	Result  *Cell
	Runs    []string
}

// EmptyCell returns a cell with no value.
func EmptyCell() Cell { return Cell{Kind: CellEmpty} }

// NumberCell returns a numeric cell.
func NumberCell(v float64) Cell { return Cell{Kind: CellNumber, Number: v} }

// TextCell returns a plain text cell.
func TextCell(s string) Cell { return Cell{Kind: CellText, Text: s} }

// FormulaCell returns a formula cell whose cached result is result.
// Pass EmptyCell() when the workbook holds no cached value.
func FormulaCell(expr string, result Cell) Cell {
	if result.Kind == CellFormula {
		if result.Result == nil {
			result = EmptyCell()
		} else {
			result = *result.Result
		}
	}
	return Cell{Kind: CellFormula, Formula: expr, Result: &result}
}

// RichTextCell returns a cell made of styled text runs.
func RichTextCell(runs ...string) Cell {
	return Cell{Kind: CellRichText, Runs: runs}
}

// ScalarCell classifies a raw cell string as empty, numeric or text.
func ScalarCell(raw string) Cell {
	if strings.TrimSpace(raw) == "" {
		return EmptyCell()
	}
	if v, ok := parseNumber(raw); ok {
		return NumberCell(v)
	}
	return TextCell(raw)
}

// AsString converts any cell to its string form. Formula cells yield
// their cached result, rich text cells the concatenation of their runs.
func AsString(c Cell) string {
	switch c.Kind {
	case CellNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case CellText:
		return c.Text
	case CellFormula:
		if c.Result == nil {
			return ""
		}
		return AsString(*c.Result)
	case CellRichText:
		return strings.Join(c.Runs, "")
	default:
		return ""
	}
}

// AsNumber converts any cell to a finite number, defaulting to 0.
func AsNumber(c Cell) float64 {
	switch c.Kind {
	case CellNumber:
		if isFinite(c.Number) {
			return c.Number
		}
		return 0
	case CellText:
		v, _ := parseNumber(c.Text)
		return v
	case CellFormula:
		if c.Result == nil {
			return 0
		}
		return AsNumber(*c.Result)
	case CellRichText:
		v, _ := parseNumber(strings.Join(c.Runs, ""))
		return v
	default:
		return 0
	}
}

// parseNumber accepts plain decimal strings and a single decimal comma.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil && strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		v, err = strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	}
	if err != nil || !isFinite(v) {
		return 0, false
	}
	return v, true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
