package dataprocessing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAsString(t *testing.T) {
	tests := []struct {
		name string
		cell Cell
		want string
	}{
		{"empty", EmptyCell(), ""},
		{"integer number", NumberCell(8), "8"},
		{"decimal number", NumberCell(7.25), "7.25"},
		{"text", TextCell("Matemáticas"), "Matemáticas"},
		{"formula with text result", FormulaCell("CONCAT(A1,B1)", TextCell("Física")), "Física"},
		{"formula with number result", FormulaCell("AVERAGE(C6:E6)", NumberCell(7.5)), "7.5"},
		{"formula without cached result", FormulaCell("SUM(C6:E6)", EmptyCell()), ""},
		{"rich text runs", RichTextCell("Ana ", "María ", "López"), "Ana María López"},
		{"rich text without runs", RichTextCell(), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AsString(tt.cell))
		})
	}
}

func TestAsNumber(t *testing.T) {
	tests := []struct {
		name string
		cell Cell
		want float64
	}{
		{"empty", EmptyCell(), 0},
		{"number", NumberCell(9.5), 9.5},
		{"NaN number", NumberCell(math.NaN()), 0},
		{"infinite number", NumberCell(math.Inf(1)), 0},
		{"numeric text", TextCell(" 8.5 "), 8.5},
		{"decimal comma", TextCell("7,5"), 7.5},
		{"non numeric text", TextCell("NP"), 0},
		{"text NaN", TextCell("NaN"), 0},
		{"text Inf", TextCell("Inf"), 0},
		{"two commas", TextCell("1,000,5"), 0},
		{"formula numeric result", FormulaCell("AVERAGE(C6:E6)", NumberCell(6.75)), 6.75},
		{"formula numeric text result", FormulaCell("TEXT(C6)", TextCell("9")), 9},
		{"formula without cached result", FormulaCell("SUM(C6:E6)", EmptyCell()), 0},
		{"rich text digits", RichTextCell("1", "0"), 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AsNumber(tt.cell)
			assert.Equal(t, tt.want, got)
			assert.False(t, math.IsNaN(got))
		})
	}
}

func TestScalarCell(t *testing.T) {
	assert.Equal(t, CellEmpty, ScalarCell("   ").Kind)
	assert.Equal(t, CellNumber, ScalarCell("6").Kind)
	assert.Equal(t, CellText, ScalarCell("Promedio").Kind)
}

func TestFormulaCellFlattensNestedFormula(t *testing.T) {
	inner := FormulaCell("B1", NumberCell(4))
	outer := FormulaCell("A1", inner)

	assert.Equal(t, CellNumber, outer.Result.Kind)
	assert.Equal(t, 4.0, AsNumber(outer))

	noResult := FormulaCell("A1", Cell{Kind: CellFormula})
	assert.Equal(t, CellEmpty, noResult.Result.Kind)
}

func TestCellKindString(t *testing.T) {
	assert.Equal(t, "rich_text", CellRichText.String())
	assert.Equal(t, "empty", CellKind(99).String())
}
