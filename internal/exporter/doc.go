// Package exporter writes statistics results and concentrados to files.
//
// StatisticsExporter renders a domain.StatisticsResult as a sectioned CSV
// (general averages, group averages by subject, failures) or as an XLSX
// workbook with one sheet per section. ConcentradoWorkbook renders a parsed
// concentrado back into the layout the parser reads.
package exporter
