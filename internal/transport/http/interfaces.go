package http

import (
	"context"

	"github.com/gallegosdmz/umvh-frontend-sub001/internal/services"
	"github.com/gallegosdmz/umvh-frontend-sub001/pkg/contracts/domain"
)

// StatisticsService is the part of services.StatisticsService used by the
// handlers.
type StatisticsService interface {
	ParseFile(ctx context.Context, name string, data []byte) (*domain.ConcentradoData, bool, error)
	ProcessBatchWithWorkers(ctx context.Context, files []services.Upload, workers int) (*services.BatchResult, error)
}

var _ StatisticsService = (*services.StatisticsService)(nil)
