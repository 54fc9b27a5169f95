package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/gallegosdmz/umvh-frontend-sub001/internal/dataprocessing"
	apperrors "github.com/gallegosdmz/umvh-frontend-sub001/internal/errors"
	"github.com/gallegosdmz/umvh-frontend-sub001/internal/infrastructure"
	"github.com/gallegosdmz/umvh-frontend-sub001/internal/validation"
	"github.com/gallegosdmz/umvh-frontend-sub001/pkg/contracts/domain"
)

// Upload is one workbook handed to the service, already read into memory.
type Upload struct {
	Name string
	Data []byte
}

// FileResult is the outcome of parsing one upload.
type FileResult struct {
	FileName string
	Report   *domain.ConcentradoData
	Cached   bool
	Duration time.Duration
	Err      error
}

// BatchResult holds every per-file outcome and the aggregate of the
// successfully parsed reports.
type BatchResult struct {
	ID     string
	Files  []FileResult
	Result domain.StatisticsResult
}

// Parsed returns the number of files that produced a report.
func (b *BatchResult) Parsed() int {
	n := 0
	for _, f := range b.Files {
		if f.Err == nil {
			n++
		}
	}
	return n
}

// Failed returns the number of files that failed to parse.
func (b *BatchResult) Failed() int {
	return len(b.Files) - b.Parsed()
}

// Failures maps file names to their parse errors.
func (b *BatchResult) Failures() map[string]error {
	out := make(map[string]error)
	for _, f := range b.Files {
		if f.Err != nil {
			out[f.FileName] = f.Err
		}
	}
	return out
}

// StatisticsService parses concentrado workbooks and aggregates them.
type StatisticsService struct {
	parser    *dataprocessing.Parser
	validator *validation.WorkbookValidator
	cache     *cache.Cache
	workers   int
	tracer    trace.Tracer
	metrics   *infrastructure.BusinessMetrics
	logger    *slog.Logger
}

// Option configures a StatisticsService.
type Option func(*StatisticsService)

// WithWorkers bounds the number of workbooks parsed concurrently.
func WithWorkers(n int) Option {
	return func(s *StatisticsService) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithCache keeps parsed reports for ttl, keyed by the SHA-256 of the
// workbook bytes. A zero ttl disables the cache.
func WithCache(ttl time.Duration) Option {
	return func(s *StatisticsService) {
		if ttl > 0 {
			s.cache = cache.New(ttl, 2*ttl)
		}
	}
}

// WithMaxFileSize rejects workbooks larger than n bytes before parsing.
func WithMaxFileSize(n int64) Option {
	return func(s *StatisticsService) {
		s.validator = validation.NewWorkbookValidator(n, s.logger)
	}
}

// WithTelemetry sets the tracer and metrics used for parse and aggregate spans.
func WithTelemetry(tracer trace.Tracer, metrics *infrastructure.BusinessMetrics) Option {
	return func(s *StatisticsService) {
		if tracer != nil {
			s.tracer = tracer
		}
		s.metrics = metrics
	}
}

// NewStatisticsService creates a statistics service
func NewStatisticsService(parser *dataprocessing.Parser, logger *slog.Logger, opts ...Option) *StatisticsService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &StatisticsService{
		parser:  parser,
		workers: 1,
		tracer:  otel.Tracer(infrastructure.InstrumentationName),
		logger:  infrastructure.WithComponent(logger, "statistics_service"),
	}
	s.validator = validation.NewWorkbookValidator(0, s.logger)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Workers returns the default parse concurrency.
func (s *StatisticsService) Workers() int {
	return s.workers
}

// CachedReports returns the number of parsed reports currently cached.
func (s *StatisticsService) CachedReports() int {
	if s.cache == nil {
		return 0
	}
	return s.cache.ItemCount()
}

// ParseFile parses one workbook, serving repeated content from the cache.
// The returned report must not be modified.
func (s *StatisticsService) ParseFile(ctx context.Context, name string, data []byte) (*domain.ConcentradoData, bool, error) {
	ctx, span := s.tracer.Start(ctx, "statistics.parse_file",
		trace.WithAttributes(attribute.String("file.name", name), attribute.Int("file.size", len(data))))
	defer span.End()

	key := contentKey(data)
	if s.cache != nil {
		if v, ok := s.cache.Get(key); ok {
			report := v.(*domain.ConcentradoData)
			span.SetAttributes(attribute.Bool("cache.hit", true))
			if s.metrics != nil {
				s.metrics.CacheHits.Add(ctx, 1)
			}
			s.logger.DebugContext(ctx, "workbook served from cache", slog.String("file", name))
			return report, true, nil
		}
	}

	start := time.Now()
	var report *domain.ConcentradoData
	err := s.validator.ValidateContent(name, data)
	if err == nil {
		report, err = s.parser.Parse(name, data)
	}
	duration := time.Since(start)

	students := 0
	if report != nil {
		students = len(report.Students)
	}
	s.metrics.RecordParse(ctx, duration, students, err)

	if err != nil {
		infrastructure.RecordError(ctx, err)
		s.logger.WarnContext(ctx, "workbook rejected",
			slog.String("file", name),
			slog.String("error", err.Error()))
		return nil, false, err
	}

	span.SetAttributes(
		attribute.String("concentrado.group", report.Group),
		attribute.Int("concentrado.semester", report.Semester),
		attribute.Int("concentrado.students", students))
	s.logger.InfoContext(ctx, "workbook parsed",
		slog.String("file", name),
		slog.String("group", report.Group),
		slog.Int("semester", report.Semester),
		slog.Int("students", students),
		slog.Duration("duration", duration))

	if s.cache != nil {
		s.cache.SetDefault(key, report)
	}
	return report, false, nil
}

// ProcessBatch parses files with the default concurrency and aggregates them.
func (s *StatisticsService) ProcessBatch(ctx context.Context, files []Upload) (*BatchResult, error) {
	return s.ProcessBatchWithWorkers(ctx, files, 0)
}

// ProcessBatchWithWorkers parses up to workers files at a time. A file that
// fails is recorded in its FileResult and does not stop the batch. The
// aggregate is computed once every parse has finished. The only errors
// returned are an empty batch and cancellation of ctx.
func (s *StatisticsService) ProcessBatchWithWorkers(ctx context.Context, files []Upload, workers int) (*BatchResult, error) {
	if len(files) == 0 {
		return nil, apperrors.NewAppValidationError("no workbooks to process")
	}
	if workers <= 0 {
		workers = s.workers
	}

	batch := &BatchResult{ID: uuid.NewString(), Files: make([]FileResult, len(files))}
	ctx, span := s.tracer.Start(ctx, "statistics.process_batch",
		trace.WithAttributes(
			attribute.String("batch.id", batch.ID),
			attribute.Int("batch.files", len(files)),
			attribute.Int("batch.workers", workers)))
	defer span.End()
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, f := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			parseStart := time.Now()
			report, cached, err := s.ParseFile(gctx, f.Name, f.Data)
			batch.Files[i] = FileResult{
				FileName: f.Name,
				Report:   report,
				Cached:   cached,
				Duration: time.Since(parseStart),
				Err:      err,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, err
	}

	reports := make([]domain.ConcentradoData, 0, len(files))
	for _, f := range batch.Files {
		if f.Err == nil {
			reports = append(reports, *f.Report)
		}
	}
	batch.Result = s.Aggregate(ctx, reports)

	if s.metrics != nil {
		s.metrics.BatchesProcessed.Add(ctx, 1)
		s.metrics.BatchDuration.Record(ctx, time.Since(start).Seconds())
	}
	s.logger.InfoContext(ctx, "batch processed",
		slog.String("batch_id", batch.ID),
		slog.Int("files", len(files)),
		slog.Int("parsed", batch.Parsed()),
		slog.Int("failed", batch.Failed()),
		slog.Int("semesters", len(batch.Result.Semestres)),
		slog.Int("groups", batch.Result.GroupCount()),
		slog.Duration("duration", time.Since(start)))
	return batch, nil
}

// Aggregate computes the statistics of already parsed reports.
func (s *StatisticsService) Aggregate(ctx context.Context, reports []domain.ConcentradoData) domain.StatisticsResult {
	_, span := s.tracer.Start(ctx, "statistics.aggregate",
		trace.WithAttributes(attribute.Int("reports", len(reports))))
	defer span.End()

	result := dataprocessing.Aggregate(reports)
	span.SetAttributes(
		attribute.Int("semesters", len(result.Semestres)),
		attribute.Int("groups", result.GroupCount()))
	return result
}

func contentKey(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
