// Package dataprocessing reads concentrado grade workbooks and aggregates
// them into semester statistics.
//
// A concentrado is one group's grade report for one semester. Parser
// locates the data through a declarative Layout: the subtitle cell carries
// group, semester and period; the header row lists subjects, each owning a
// span of P1, P2, P3, Ord and Ext columns, up to the "Promedio" column.
// Cell values go through the Cell union and the total AsString and
// AsNumber conversions, so malformed cells degrade to empty or zero.
//
// Only two conditions fail a parse: a workbook without any sheet
// (MissingSheetError) and a subtitle without group or semester
// (UnrecognizedLayoutError).
//
// Aggregate partitions parsed reports by semester. A value of zero means
// "not recorded" throughout and is excluded from every average and from
// failure counts.
package dataprocessing
