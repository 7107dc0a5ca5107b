package repository

import (
	"context"

	"github.com/shipquote/rate-service/internal/domain/model"
)

// BoxCatalogRepositoryInterface defines the contract for box catalog data access.
// This interface enables mocking for unit tests.
type BoxCatalogRepositoryInterface interface {
	GetActive(ctx context.Context) (*BoxCatalogConfig, error)
	ReplaceActive(ctx context.Context, boxes []model.BoxDefinition, createdBy string) (*BoxCatalogConfig, error)
	List(ctx context.Context, limit int) ([]BoxCatalogConfig, error)
}

// LogsRepositoryInterface defines the contract for log data access.
type LogsRepositoryInterface interface {
	Create(ctx context.Context, entry *model.LogEntry) error
	CreateMany(ctx context.Context, entries []*model.LogEntry) error
	Query(ctx context.Context, opts model.LogQueryOptions) ([]*model.LogEntry, error)
	Count(ctx context.Context, opts model.LogQueryOptions) (int64, error)
}

// Compile-time interface checks.
var (
	_ BoxCatalogRepositoryInterface = (*BoxCatalogRepository)(nil)
	_ LogsRepositoryInterface       = (*LogsRepository)(nil)
)
