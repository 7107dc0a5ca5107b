package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/shipquote/rate-service/internal/domain/model"
	"github.com/shipquote/rate-service/internal/packing"
	"github.com/shipquote/rate-service/internal/repository"
)

// catalogCacheTTL bounds how stale the in-memory catalog may get after
// another instance replaces the stored configuration.
const catalogCacheTTL = 30 * time.Second

// BoxCatalogService resolves the active box catalog. The catalog is
// stored in MongoDB so operators can adjust box inventory without a
// deploy; when no configuration exists (or storage is disabled) the
// built-in catalog is used.
type BoxCatalogService interface {
	// ActiveCatalog returns the catalog the packer should use right now.
	ActiveCatalog(ctx context.Context) *packing.Catalog

	// ActiveConfig returns the stored active configuration, or nil when
	// the built-in catalog is in effect.
	ActiveConfig(ctx context.Context) (*repository.BoxCatalogConfig, error)

	// ReplaceActive stores a new catalog configuration and activates it.
	ReplaceActive(ctx context.Context, boxes []model.BoxDefinition, createdBy string) (*repository.BoxCatalogConfig, error)

	// Invalidate drops the cached catalog, forcing a reload on next use.
	Invalidate()
}

// BoxCatalogServiceImpl implements BoxCatalogService with a TTL cache
// around the repository lookup.
type BoxCatalogServiceImpl struct {
	repo repository.BoxCatalogRepositoryInterface

	mu        sync.RWMutex
	cached    *packing.Catalog
	fetchedAt time.Time
}

// NewBoxCatalogService creates a new box catalog service. A nil
// repository is allowed; the service then always serves the built-in catalog.
func NewBoxCatalogService(repo repository.BoxCatalogRepositoryInterface) *BoxCatalogServiceImpl {
	return &BoxCatalogServiceImpl{repo: repo}
}

// ActiveCatalog returns the current catalog. Storage errors fall back
// to the last cached catalog, then to the built-in one; rating must not
// fail because the catalog store is down.
func (s *BoxCatalogServiceImpl) ActiveCatalog(ctx context.Context) *packing.Catalog {
	if s.repo == nil {
		return packing.DefaultCatalog()
	}

	s.mu.RLock()
	if s.cached != nil && time.Since(s.fetchedAt) < catalogCacheTTL {
		c := s.cached
		s.mu.RUnlock()
		return c
	}
	s.mu.RUnlock()

	config, err := s.repo.GetActive(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to load box catalog; using cached or built-in catalog")
		s.mu.RLock()
		defer s.mu.RUnlock()
		if s.cached != nil {
			return s.cached
		}
		return packing.DefaultCatalog()
	}

	catalog := packing.DefaultCatalog()
	if config != nil {
		catalog = packing.NewCatalog(config.Boxes, nil)
	}

	s.mu.Lock()
	s.cached = catalog
	s.fetchedAt = time.Now()
	s.mu.Unlock()

	return catalog
}

// ActiveConfig returns the stored active configuration.
func (s *BoxCatalogServiceImpl) ActiveConfig(ctx context.Context) (*repository.BoxCatalogConfig, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.repo.GetActive(ctx)
}

// ReplaceActive stores and activates a new catalog configuration.
func (s *BoxCatalogServiceImpl) ReplaceActive(ctx context.Context, boxes []model.BoxDefinition, createdBy string) (*repository.BoxCatalogConfig, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	config, err := s.repo.ReplaceActive(ctx, boxes, createdBy)
	if err != nil {
		return nil, err
	}
	s.Invalidate()
	return config, nil
}

// Invalidate drops the cached catalog.
func (s *BoxCatalogServiceImpl) Invalidate() {
	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()
}

// CatalogPacker adapts a BoxCatalogService into a packing.Packer so the
// carrier client always packs against the current catalog.
type CatalogPacker struct {
	Catalogs BoxCatalogService
	Options  []packing.Option
}

// Pack packs items using the active catalog.
func (cp *CatalogPacker) Pack(items []model.PackItem) model.PackingResult {
	catalog := cp.Catalogs.ActiveCatalog(context.Background())
	return packing.NewBoxPacker(catalog, cp.Options...).Pack(items)
}
