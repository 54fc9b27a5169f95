package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/gallegosdmz/umvh-frontend-sub001/internal/config"
	apierrors "github.com/gallegosdmz/umvh-frontend-sub001/internal/errors"
	"github.com/gallegosdmz/umvh-frontend-sub001/internal/shared/testutil"
	api "github.com/gallegosdmz/umvh-frontend-sub001/pkg/contracts/api/v1"
	"github.com/gallegosdmz/umvh-frontend-sub001/pkg/contracts/domain"
)

func newTestApplication(t *testing.T, mutate func(*config.Config)) *Application {
	t.Helper()
	cfg := config.Default()
	cfg.Telemetry.TracingEnabled = false
	cfg.Telemetry.MetricsEnabled = true
	cfg.Processing.CacheTTL = time.Minute
	if mutate != nil {
		mutate(cfg)
	}
	require.NoError(t, cfg.Validate())

	logger, _ := testutil.NewTestLogger()
	application, err := NewApplicationWithConfig(cfg, logger)
	require.NoError(t, err)
	return application
}

func serve(a *Application, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.Router.ServeHTTP(rec, req)
	return rec
}

func TestNewApplicationWithConfig(t *testing.T) {
	a := newTestApplication(t, func(c *config.Config) { c.Server.Port = 9191 })

	assert.Equal(t, ":9191", a.Server.Addr)
	assert.Equal(t, a.Config.Server.MaxHeaderBytes, a.Server.MaxHeaderBytes)
	require.NotNil(t, a.Services)
	assert.Equal(t, a.Config.Processing.Workers, a.Services.Statistics.Workers())
	assert.NotNil(t, a.Metrics)
}

func TestHealthRoutes(t *testing.T) {
	a := newTestApplication(t, nil)

	tests := []struct {
		path       string
		wantStatus string
	}{
		{path: "/api/health", wantStatus: "ok"},
		{path: "/api/health/ready", wantStatus: "ready"},
		{path: "/api/health/live", wantStatus: "alive"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := serve(a, httptest.NewRequest(http.MethodGet, tt.path, nil))
			require.Equal(t, http.StatusOK, rec.Code)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantStatus, body["status"])
			assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
		})
	}

	rec := serve(a, httptest.NewRequest(http.MethodGet, "/api/version", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"api_version":"v1"`)
}

func TestStatisticsEndpoint(t *testing.T) {
	a := newTestApplication(t, nil)
	courses := []string{"Matemáticas", "Química"}

	req := testutil.MultipartRequest(t, "/api/v1/statistics?workers=2", "files",
		testutil.NamedFile{Name: "1A.xlsx", Data: testutil.WorkbookBytes(t, testutil.Concentrado("1A", 1, courses, 8, 5))},
		testutil.NamedFile{Name: "2A.xlsx", Data: testutil.WorkbookBytes(t, testutil.Concentrado("2A", 2, courses, 9))},
		testutil.NamedFile{Name: "broken.xlsx", Data: []byte("nope")},
	)
	rec := serve(a, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp api.StatisticsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Parsed)
	assert.Equal(t, 1, resp.Failed)
	require.Len(t, resp.Files, 3)
	assert.Equal(t, apierrors.CodeInvalidWorkbook, resp.Files[2].ErrorCode)
	assert.Equal(t, 2, resp.Files[0].Students)

	require.Len(t, resp.Result.Semestres, 2)
	first := resp.Result.Semestres[0]
	assert.Equal(t, 1, first.Semester)
	assert.InDelta(t, 6.5, first.Promedio, 0.001)
	assert.Equal(t, courses, first.AllCourses)
	assert.Equal(t, 1, first.FailuresByCourse["Química"])
}

func TestStatisticsEndpointErrors(t *testing.T) {
	a := newTestApplication(t, func(c *config.Config) { c.Processing.MaxFiles = 1 })
	good := testutil.NamedFile{Name: "1A.xlsx", Data: testutil.WorkbookBytes(t, testutil.Concentrado("1A", 1, []string{"Historia"}, 8))}

	tests := []struct {
		name       string
		req        *http.Request
		wantStatus int
		wantType   string
	}{
		{
			name:       "every workbook fails",
			req:        testutil.MultipartRequest(t, "/api/v1/statistics", "files", testutil.NamedFile{Name: "x.xlsx", Data: []byte("x")}),
			wantStatus: http.StatusUnprocessableEntity,
			wantType:   apierrors.TypeNoValidReports,
		},
		{
			name:       "too many files",
			req:        testutil.MultipartRequest(t, "/api/v1/statistics", "files", good, good),
			wantStatus: http.StatusBadRequest,
			wantType:   apierrors.TypeValidation,
		},
		{
			name:       "missing files field",
			req:        testutil.MultipartRequest(t, "/api/v1/statistics", "other", good),
			wantStatus: http.StatusBadRequest,
			wantType:   apierrors.TypeValidation,
		},
		{
			name:       "invalid workers",
			req:        testutil.MultipartRequest(t, "/api/v1/statistics?workers=100", "files", good),
			wantStatus: http.StatusBadRequest,
			wantType:   apierrors.TypeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(a, tt.req)
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			var problem map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
			assert.Equal(t, tt.wantType, problem["type"])
		})
	}
}

func TestConcentradoParseEndpoint(t *testing.T) {
	a := newTestApplication(t, nil)
	report := testutil.Concentrado("3B", 3, []string{"Biología"}, 9.5)

	rec := serve(a, testutil.MultipartRequest(t, "/api/v1/concentrados/parse", "file",
		testutil.NamedFile{Name: "3B.xlsx", Data: testutil.WorkbookBytes(t, report)}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got domain.ConcentradoData
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, report, got)

	rec = serve(a, testutil.MultipartRequest(t, "/api/v1/concentrados/parse", "file",
		testutil.NamedFile{Name: "bad.xlsx", Data: testutil.BadSubtitleWorkbook(t)}))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), apierrors.CodeUnrecognizedLayout)
}

func TestExportEndpoint(t *testing.T) {
	a := newTestApplication(t, nil)
	file := testutil.NamedFile{Name: "1A.xlsx", Data: testutil.WorkbookBytes(t, testutil.Concentrado("1A", 1, []string{"Historia"}, 8))}

	t.Run("csv by default", func(t *testing.T) {
		rec := serve(a, testutil.MultipartRequest(t, "/api/v1/statistics/export", "files", file))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Header().Get("Content-Disposition"), ".csv")
		assert.Contains(t, rec.Body.String(), "Historia")
	})

	t.Run("xlsx", func(t *testing.T) {
		rec := serve(a, testutil.MultipartRequest(t, "/api/v1/statistics/export?format=xlsx", "files", file))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
		require.NoError(t, err)
		defer f.Close()
		assert.Contains(t, f.GetSheetList(), "Grupos")
	})

	t.Run("json", func(t *testing.T) {
		rec := serve(a, testutil.MultipartRequest(t, "/api/v1/statistics/export?format=json", "files", file))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.True(t, strings.HasPrefix(rec.Body.String(), `{"promediosGenerales":`))
	})

	t.Run("unknown format", func(t *testing.T) {
		rec := serve(a, testutil.MultipartRequest(t, "/api/v1/statistics/export?format=pdf", "files", file))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRouterProblems(t *testing.T) {
	a := newTestApplication(t, nil)

	rec := serve(a, httptest.NewRequest(http.MethodGet, "/api/unknown", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/statistics", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	rec = serve(a, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	a := newTestApplication(t, nil)
	serve(a, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	rec := serve(a, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}
