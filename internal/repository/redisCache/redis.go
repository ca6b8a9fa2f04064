package redisCache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"storefront/configs"
	"storefront/internal/domain"
	prom "storefront/pkg/prometheus"

	"github.com/redis/go-redis/v9"
)

// RedisRepo caches the catalog between fetches. Only server-owned catalog
// data lives here; session state (basket, order) is never cached.
type RedisRepo struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	log    *slog.Logger
}

func NewCache(ctx context.Context, cfg *configs.Config, prefix string, log *slog.Logger) (*RedisRepo, error) {
	db := redis.NewClient(&redis.Options{
		Addr:         cfg.RD.Host,
		DB:           cfg.RD.DB,
		Username:     cfg.RD.User,
		Password:     cfg.RD.Password,
		MaxRetries:   cfg.RD.MaxRetries,
		DialTimeout:  cfg.RD.DialTimeout,
		ReadTimeout:  cfg.RD.ReadTimeout,
		WriteTimeout: cfg.RD.WriteTimeout,
	})

	log.Info("attempting to connect to Redis", "host", cfg.RD.Host, "db", cfg.RD.DB)

	if err := db.Ping(ctx).Err(); err != nil {
		log.Error("Redis connection failed", "error", err, "host", cfg.RD.Host)
		return nil, err
	}
	log.Info("successfully connected to Redis", "host", cfg.RD.Host)

	return &RedisRepo{
		client: db,
		prefix: prefix,
		ttl:    cfg.RD.CatalogTTL,
		log:    log,
	}, nil
}

func (r *RedisRepo) catalogKey() string {
	return r.prefix + "catalog"
}

func (r *RedisRepo) GetCatalog(ctx context.Context) ([]domain.Product, error) {
	data, err := r.client.Get(ctx, r.catalogKey()).Bytes()
	if errors.Is(err, redis.Nil) {
		r.log.Debug("catalog not cached")
		prom.CacheOperations.WithLabelValues("miss").Inc()
		return nil, domain.ErrRecordNotFound
	} else if err != nil {
		prom.CacheOperations.WithLabelValues("error").Inc()
		return nil, err
	}

	var catalog []domain.Product
	if err := json.Unmarshal(data, &catalog); err != nil {
		prom.CacheOperations.WithLabelValues("error").Inc()
		return nil, err
	}
	prom.CacheOperations.WithLabelValues("hit").Inc()
	return catalog, nil
}

func (r *RedisRepo) SaveCatalog(ctx context.Context, catalog []domain.Product) error {
	data, err := json.Marshal(catalog)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.catalogKey(), data, r.ttl).Err(); err != nil {
		prom.CacheOperations.WithLabelValues("error").Inc()
		return err
	}
	r.log.Debug("catalog cached", "items", len(catalog), "ttl", r.ttl)
	return nil
}

// InvalidateCatalog drops the cached catalog, forcing the next load to hit
// the API. Called when a catalog-refresh notification arrives.
func (r *RedisRepo) InvalidateCatalog(ctx context.Context) error {
	return r.client.Del(ctx, r.catalogKey()).Err()
}
