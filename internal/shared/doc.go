// Package shared groups helpers used across the internal packages. Its
// testutil subpackage provides slog capture and concentrado workbook
// fixtures for tests.
package shared
