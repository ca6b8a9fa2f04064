package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"storefront/internal/domain"
	prom "storefront/pkg/prometheus"
)

const productColumns = "id, title, description, category, image, price"

// ProductList returns the full catalog ordered by insertion, which is the
// ordering the storefront treats as "catalog order".
func (s *Store) ProductList(ctx context.Context) ([]domain.Product, error) {
	startTime := time.Now()
	defer func() {
		prom.CatalogQueriesTotal.WithLabelValues("list").Inc()
		prom.CatalogQueryDuration.WithLabelValues("list").Observe(time.Since(startTime).Seconds())
	}()

	rows, err := s.db.QueryContext(ctx, `
        SELECT `+productColumns+`
        FROM products
        ORDER BY position`)
	if err != nil {
		s.log.Error("failed to query products", "error", err)
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var catalog []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		catalog = append(catalog, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration failed: %w", err)
	}

	s.log.Debug("catalog loaded from database", "items", len(catalog))
	return catalog, nil
}

func (s *Store) Product(ctx context.Context, id string) (domain.Product, error) {
	startTime := time.Now()
	defer func() {
		prom.CatalogQueriesTotal.WithLabelValues("get").Inc()
		prom.CatalogQueryDuration.WithLabelValues("get").Observe(time.Since(startTime).Seconds())
	}()

	row := s.db.QueryRowContext(ctx, `
        SELECT `+productColumns+`
        FROM products
        WHERE id = $1`, id)

	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, domain.ErrRecordNotFound
	}
	if err != nil {
		s.log.Error("failed to get product", "product_id", id, "error", err)
		return domain.Product{}, fmt.Errorf("failed to get product: %w", err)
	}
	return p, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var p domain.Product
	var price sql.NullInt64
	if err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Category, &p.Image, &price); err != nil {
		return domain.Product{}, err
	}
	if price.Valid {
		v := int(price.Int64)
		p.Price = &v
	}
	return p, nil
}
