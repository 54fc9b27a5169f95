// Package api contains the HTTP contract of the concentrado statistics service.
package api

import (
	"github.com/gallegosdmz/umvh-frontend-sub001/pkg/contracts/domain"
)

// ExportFormat selects the download format of a statistics export.
type ExportFormat string

const (
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatXLSX ExportFormat = "xlsx"
	ExportFormatJSON ExportFormat = "json"
)

// StatisticsRequest carries the query options of the statistics endpoints.
type StatisticsRequest struct {
	Workers int          `json:"workers" query:"workers" validate:"min=0,max=64"`
	Format  ExportFormat `json:"format" query:"format" validate:"omitempty,oneof=csv xlsx json"`
}

// FileSummary reports the outcome of parsing one uploaded workbook.
type FileSummary struct {
	FileName  string `json:"fileName"`
	Group     string `json:"group,omitempty"`
	Semester  int    `json:"semester,omitempty"`
	Period    string `json:"period,omitempty"`
	Students  int    `json:"students"`
	Cached    bool   `json:"cached,omitempty"`
	Error     string `json:"error,omitempty"`
	ErrorCode string `json:"errorCode,omitempty"`
}

// StatisticsResponse is returned by POST /api/v1/statistics.
type StatisticsResponse struct {
	BatchID string                  `json:"batchId"`
	Result  domain.StatisticsResult `json:"result"`
	Files   []FileSummary           `json:"files"`
	Parsed  int                     `json:"parsed"`
	Failed  int                     `json:"failed"`
}
