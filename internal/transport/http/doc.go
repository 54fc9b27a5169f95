// Package http implements the HTTP handlers of the concentrado statistics
// service. Handlers stay thin: they read multipart uploads, call the
// statistics service and render JSON, RFC 7807 problems or downloads.
//
// Routes:
//
//	POST /api/v1/concentrados/parse      one workbook in field "file"
//	POST /api/v1/statistics              workbooks in field "files"
//	POST /api/v1/statistics/export       same input, ?format=csv|xlsx|json
//	GET  /api/health, /api/health/live, /api/health/ready, /api/version
package http
