package dataprocessing

import (
	"bytes"
	"io"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "github.com/gallegosdmz/umvh-frontend-sub001/internal/errors"
	"github.com/gallegosdmz/umvh-frontend-sub001/pkg/contracts/domain"
)

// SheetReader reads single cells of one worksheet.
type SheetReader interface {
	Cell(col, row int) Cell
}

// Parser turns concentrado workbooks into domain.ConcentradoData.
type Parser struct {
	layout Layout
	logger *slog.Logger
}

// NewParser creates a parser for the given layout. A nil logger uses slog.Default.
func NewParser(layout Layout, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{
		layout: layout,
		logger: logger.With(slog.String("component", "concentrado_parser")),
	}
}

// Layout returns the layout the parser was built with.
func (p *Parser) Layout() Layout {
	return p.layout
}

// ParseConcentrado parses one workbook with the default layout.
func ParseConcentrado(fileName string, data []byte) (*domain.ConcentradoData, error) {
	return NewParser(DefaultLayout(), nil).Parse(fileName, data)
}

// Parse parses the workbook bytes of fileName.
func (p *Parser) Parse(fileName string, data []byte) (*domain.ConcentradoData, error) {
	return p.ParseReader(fileName, bytes.NewReader(data))
}

// ParseReader parses a workbook streamed from r.
func (p *Parser) ParseReader(fileName string, r io.Reader) (*domain.ConcentradoData, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperrors.NewParsingError("failed to open workbook", err).WithContext("file", fileName)
	}
	defer f.Close()

	sheetName, ok := p.pickSheet(f.GetSheetList())
	if !ok {
		return nil, &MissingSheetError{FileName: fileName, SheetName: p.layout.SheetName}
	}
	if sheetName != p.layout.SheetName {
		p.logger.Warn("grades sheet not found, using first sheet",
			slog.String("file", fileName),
			slog.String("expected", p.layout.SheetName),
			slog.String("sheet", sheetName))
	}

	return p.ParseSheet(fileName, &workbookSheet{file: f, name: sheetName})
}

// ParseSheet extracts a concentrado from an already opened sheet.
func (p *Parser) ParseSheet(fileName string, sheet SheetReader) (*domain.ConcentradoData, error) {
	l := p.layout

	subCol, subRow, err := excelize.CellNameToCoordinates(l.SubtitleCell)
	if err != nil {
		return nil, apperrors.NewConfigError("invalid subtitle cell in layout", err)
	}
	subtitle := AsString(sheet.Cell(subCol, subRow))
	meta, ok := ParseSubtitle(subtitle)
	if !ok {
		return nil, &UnrecognizedLayoutError{FileName: fileName, Cell: l.SubtitleCell, Subtitle: subtitle}
	}

	header := l.ScanHeader(func(col int) string {
		return AsString(sheet.Cell(col, l.HeaderRow))
	})

	report := &domain.ConcentradoData{
		Group:    meta.Group,
		Semester: meta.Semester,
		Period:   meta.Period,
		Courses:  header.Names(),
		Students: []domain.StudentGrades{},
	}

	for row := l.FirstStudentRow; row < l.FirstStudentRow+l.MaxStudentRows; row++ {
		name := strings.TrimSpace(AsString(sheet.Cell(l.NameColumn, row)))
		if name == "" {
			break
		}
		report.Students = append(report.Students, p.readStudent(sheet, row, name, header))
	}

	p.logger.Debug("concentrado parsed",
		slog.String("file", fileName),
		slog.String("group", report.Group),
		slog.Int("semester", report.Semester),
		slog.Int("courses", len(report.Courses)),
		slog.Int("students", len(report.Students)))

	return report, nil
}

func (p *Parser) readStudent(sheet SheetReader, row int, name string, header HeaderScan) domain.StudentGrades {
	student := domain.StudentGrades{
		FullName:           name,
		RegistrationNumber: strings.TrimSpace(AsString(sheet.Cell(p.layout.RegistrationColumn, row))),
		CourseGrades:       make(map[string]domain.CourseGradeDetail, len(header.Subjects)),
		Promedio:           AsNumber(sheet.Cell(header.AverageColumn, row)),
	}

	for _, subject := range header.Subjects {
		grade := func(offset int) float64 {
			return AsNumber(sheet.Cell(subject.Column+offset, row))
		}
		student.CourseGrades[subject.Name] = NewCourseGradeDetail(
			grade(OffsetP1), grade(OffsetP2), grade(OffsetP3), grade(OffsetOrd), grade(OffsetExt))
	}
	return student
}

// pickSheet returns the layout sheet, falling back to the first sheet.
func (p *Parser) pickSheet(sheets []string) (string, bool) {
	for _, name := range sheets {
		if name == p.layout.SheetName {
			return name, true
		}
	}
	if len(sheets) == 0 {
		return "", false
	}
	return sheets[0], true
}

// workbookSheet adapts an excelize worksheet to SheetReader.
type workbookSheet struct {
	file *excelize.File
	name string
}

func (s *workbookSheet) Cell(col, row int) Cell {
	ref, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return EmptyCell()
	}
	raw, err := s.file.GetCellValue(s.name, ref, excelize.Options{RawCellValue: true})
	if err != nil {
		return EmptyCell()
	}

	if formula, _ := s.file.GetCellFormula(s.name, ref); formula != "" {
		if raw == "" {
			// no cached result stored; evaluate it the way a spreadsheet would
			raw, _ = s.file.CalcCellValue(s.name, ref, excelize.Options{RawCellValue: true})
		}
		return FormulaCell(formula, ScalarCell(raw))
	}

	if runs, err := s.file.GetCellRichText(s.name, ref); err == nil && len(runs) > 1 {
		segments := make([]string, len(runs))
		for i, run := range runs {
			segments[i] = run.Text
		}
		return RichTextCell(segments...)
	}

	if typ, _ := s.file.GetCellType(s.name, ref); typ == excelize.CellTypeSharedString || typ == excelize.CellTypeInlineString {
		if strings.TrimSpace(raw) == "" {
			return EmptyCell()
		}
		return TextCell(raw)
	}
	return ScalarCell(raw)
}
