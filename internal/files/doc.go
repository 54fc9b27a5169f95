// Package files locates concentrado workbooks on disk and writes exported
// reports.
//
// Discovery resolves directories, glob patterns and plain paths into .xlsx
// files, skipping Excel lock files. Manager reads inputs with an optional
// size limit and writes outputs, creating directories as needed.
package files
