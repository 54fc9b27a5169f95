// Command concentrado computes grade statistics from concentrado workbooks
// on disk.
//
//	concentrado -dir reportes/ -out xlsx -output estadisticas.xlsx
//	concentrado 1A.xlsx 1B.xlsx 'semestre3/*.xlsx'
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gallegosdmz/umvh-frontend-sub001/internal/config"
	"github.com/gallegosdmz/umvh-frontend-sub001/internal/dataprocessing"
	apperrors "github.com/gallegosdmz/umvh-frontend-sub001/internal/errors"
	"github.com/gallegosdmz/umvh-frontend-sub001/internal/exporter"
	"github.com/gallegosdmz/umvh-frontend-sub001/internal/files"
	"github.com/gallegosdmz/umvh-frontend-sub001/internal/infrastructure"
	"github.com/gallegosdmz/umvh-frontend-sub001/internal/services"
	"github.com/gallegosdmz/umvh-frontend-sub001/internal/validation"
	"github.com/gallegosdmz/umvh-frontend-sub001/pkg/contracts"
	"github.com/gallegosdmz/umvh-frontend-sub001/pkg/contracts/domain"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type options struct {
	dir      string
	workers  int
	out      string
	output   string
	logLevel string
	version  bool
	inputs   []string
}

func parseFlags(args []string, stderr io.Writer, defaults *config.Config) (*options, error) {
	fs := flag.NewFlagSet("concentrado", flag.ContinueOnError)
	fs.SetOutput(stderr)

	opts := &options{}
	fs.StringVar(&opts.dir, "dir", "", "directory containing .xlsx concentrado workbooks")
	fs.IntVar(&opts.workers, "workers", defaults.Processing.Workers, "number of workbooks parsed concurrently")
	fs.StringVar(&opts.out, "out", "json", "output format: json, csv or xlsx")
	fs.StringVar(&opts.output, "output", "", "output file (defaults to stdout)")
	fs.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	fs.BoolVar(&opts.version, "version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	opts.inputs = fs.Args()
	if opts.dir != "" {
		opts.inputs = append([]string{opts.dir}, opts.inputs...)
	}
	if opts.version {
		return opts, nil
	}
	switch opts.out {
	case "json", "csv", "xlsx":
	default:
		return nil, fmt.Errorf("unknown output format %q", opts.out)
	}
	if opts.workers < 1 {
		return nil, fmt.Errorf("workers must be at least 1, got %d", opts.workers)
	}
	if len(opts.inputs) == 0 {
		fs.Usage()
		return nil, errors.New("no workbooks given: use -dir or list files")
	}
	return opts, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "config: %v; using defaults\n", err)
		cfg = config.Default()
	}

	opts, err := parseFlags(args, stderr, cfg)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(stderr, "error:", err)
		}
		return exitUsage
	}
	if opts.version {
		fmt.Fprintln(stdout, contracts.GetVersionString())
		return exitOK
	}

	logCfg := cfg.Logging
	logCfg.Level, logCfg.Output = opts.logLevel, "console"
	logger, err := infrastructure.NewLogger(logCfg, stderr)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return exitError
	}

	if err := execute(ctx, cfg, opts, stdout, logger); err != nil {
		logger.ErrorContext(ctx, "concentrado statistics failed", slog.String("error", err.Error()))
		fmt.Fprintln(stderr, "error:", err)
		return exitError
	}
	return exitOK
}

func execute(ctx context.Context, cfg *config.Config, opts *options, stdout io.Writer, logger *slog.Logger) error {
	if opts.output != "" {
		v := validation.NewWorkbookValidator(cfg.Processing.MaxUploadBytes, logger)
		if err := v.ValidateOutputDirectory(filepath.Dir(opts.output)); err != nil {
			return err
		}
	}

	found, err := files.NewDiscovery("").Resolve(opts.inputs)
	if err != nil {
		return err
	}
	if len(found) == 0 {
		return errors.New("no .xlsx workbooks found")
	}

	manager := files.NewManager(cfg.Processing.MaxUploadBytes)
	uploads := make([]services.Upload, 0, len(found))
	for _, fi := range found {
		data, err := manager.ReadFile(fi.Path)
		if err != nil {
			logger.WarnContext(ctx, "skipping unreadable workbook",
				slog.String("file", fi.Path),
				slog.String("error", err.Error()))
			continue
		}
		uploads = append(uploads, services.Upload{Name: fi.Name, Data: data})
	}
	if len(uploads) == 0 {
		return errors.New("none of the workbooks could be read")
	}

	parser := dataprocessing.NewParser(cfg.Processing.Layout(), logger)
	svc := services.NewStatisticsService(parser, logger,
		services.WithWorkers(opts.workers),
		services.WithMaxFileSize(cfg.Processing.MaxUploadBytes))
	batch, err := svc.ProcessBatch(ctx, uploads)
	if err != nil {
		return err
	}
	for name, ferr := range batch.Failures() {
		logger.WarnContext(ctx, "workbook skipped", slog.String("file", name), slog.String("error", ferr.Error()))
	}
	if batch.Parsed() == 0 {
		return services.ErrNoValidReports
	}

	data, err := render(opts.out, batch.Result)
	if err != nil {
		return err
	}
	if opts.output == "" {
		_, err = stdout.Write(data)
		return err
	}
	return manager.WriteFile(opts.output, data)
}

func render(format string, result domain.StatisticsResult) ([]byte, error) {
	var buf bytes.Buffer
	e := exporter.NewStatisticsExporter()
	switch format {
	case "csv":
		if err := e.WriteCSV(&buf, result); err != nil {
			return nil, apperrors.NewExportError("csv export failed", err)
		}
	case "xlsx":
		if err := e.WriteXLSX(&buf, result); err != nil {
			return nil, apperrors.NewExportError("xlsx export failed", err)
		}
	default:
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return nil, apperrors.NewExportError("json export failed", err)
		}
	}
	return buf.Bytes(), nil
}
