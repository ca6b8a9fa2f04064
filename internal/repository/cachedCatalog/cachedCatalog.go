package cachedCatalog

import (
	"context"
	"errors"
	"log/slog"

	"storefront/internal/domain"
)

// CatalogSource is the upstream the storefront loads its catalog from,
// normally the shop API client.
type CatalogSource interface {
	ProductList(ctx context.Context) ([]domain.Product, error)
	Product(ctx context.Context, id string) (domain.Product, error)
}

// CatalogCache is a best-effort store in front of the source.
type CatalogCache interface {
	GetCatalog(ctx context.Context) ([]domain.Product, error)
	SaveCatalog(ctx context.Context, catalog []domain.Product) error
	InvalidateCatalog(ctx context.Context) error
}

// CachedCatalog serves the catalog from cache when possible and falls back
// to the source. Cache failures degrade to source reads, never to errors.
type CachedCatalog struct {
	source CatalogSource
	cache  CatalogCache
	log    *slog.Logger
}

func NewCachedCatalog(source CatalogSource, cache CatalogCache, log *slog.Logger) *CachedCatalog {
	return &CachedCatalog{
		source: source,
		cache:  cache,
		log:    log,
	}
}

func (c *CachedCatalog) ProductList(ctx context.Context) ([]domain.Product, error) {
	catalog, err := c.cache.GetCatalog(ctx)
	if err == nil {
		c.log.Debug("catalog served from cache", "items", len(catalog))
		return catalog, nil
	}
	if !errors.Is(err, domain.ErrRecordNotFound) {
		c.log.Warn("catalog cache read failed, falling back to API", "error", err)
	}

	catalog, err = c.source.ProductList(ctx)
	if err != nil {
		return nil, err
	}

	if saveErr := c.cache.SaveCatalog(ctx, catalog); saveErr != nil {
		c.log.Warn("failed to cache catalog", "error", saveErr)
	}
	return catalog, nil
}

// Product resolves a single item from the cached catalog when present,
// otherwise from the source directly.
func (c *CachedCatalog) Product(ctx context.Context, id string) (domain.Product, error) {
	catalog, err := c.cache.GetCatalog(ctx)
	if err == nil {
		for _, p := range catalog {
			if p.ID == id {
				return p, nil
			}
		}
	}
	return c.source.Product(ctx, id)
}

// Invalidate drops the cached catalog ahead of a forced refresh.
func (c *CachedCatalog) Invalidate(ctx context.Context) error {
	return c.cache.InvalidateCatalog(ctx)
}
