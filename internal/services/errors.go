package services

import "errors"

// ErrNoValidReports is returned by callers when every workbook of a batch
// failed to parse.
var ErrNoValidReports = errors.New("no workbook could be parsed")
