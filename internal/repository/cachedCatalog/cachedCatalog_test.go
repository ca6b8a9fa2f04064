package cachedCatalog_test

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/domain"
	"storefront/internal/repository/cachedCatalog"
	"storefront/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSource struct {
	mock.Mock
}

func (m *MockSource) ProductList(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockSource) Product(ctx context.Context, id string) (domain.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Product), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetCatalog(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockCache) SaveCatalog(ctx context.Context, catalog []domain.Product) error {
	args := m.Called(ctx, catalog)
	return args.Error(0)
}

func (m *MockCache) InvalidateCatalog(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestCachedCatalog_ProductList(t *testing.T) {
	catalog := domain.CreateTestCatalog(2)

	t.Run("cache hit skips the API", func(t *testing.T) {
		source := new(MockSource)
		cache := new(MockCache)
		cache.On("GetCatalog", mock.Anything).Return(catalog, nil).Once()

		repo := cachedCatalog.NewCachedCatalog(source, cache, logger.NewTestLogger())
		got, err := repo.ProductList(context.Background())

		require.NoError(t, err)
		assert.Equal(t, catalog, got)
		source.AssertNotCalled(t, "ProductList")
	})

	t.Run("cache miss falls back and warms the cache", func(t *testing.T) {
		source := new(MockSource)
		cache := new(MockCache)
		cache.On("GetCatalog", mock.Anything).Return(nil, domain.ErrRecordNotFound).Once()
		source.On("ProductList", mock.Anything).Return(catalog, nil).Once()
		cache.On("SaveCatalog", mock.Anything, catalog).Return(nil).Once()

		repo := cachedCatalog.NewCachedCatalog(source, cache, logger.NewTestLogger())
		got, err := repo.ProductList(context.Background())

		require.NoError(t, err)
		assert.Equal(t, catalog, got)
		cache.AssertExpectations(t)
		source.AssertExpectations(t)
	})

	t.Run("cache failure degrades to the API", func(t *testing.T) {
		source := new(MockSource)
		cache := new(MockCache)
		cache.On("GetCatalog", mock.Anything).Return(nil, errors.New("redis down")).Once()
		source.On("ProductList", mock.Anything).Return(catalog, nil).Once()
		cache.On("SaveCatalog", mock.Anything, catalog).Return(errors.New("redis down")).Once()

		repo := cachedCatalog.NewCachedCatalog(source, cache, logger.NewTestLogger())
		got, err := repo.ProductList(context.Background())

		require.NoError(t, err)
		assert.Equal(t, catalog, got)
	})

	t.Run("source failure propagates", func(t *testing.T) {
		source := new(MockSource)
		cache := new(MockCache)
		cache.On("GetCatalog", mock.Anything).Return(nil, domain.ErrRecordNotFound).Once()
		source.On("ProductList", mock.Anything).Return(nil, errors.New("api down")).Once()

		repo := cachedCatalog.NewCachedCatalog(source, cache, logger.NewTestLogger())
		_, err := repo.ProductList(context.Background())

		assert.Error(t, err)
	})
}

func TestCachedCatalog_Invalidate(t *testing.T) {
	source := new(MockSource)
	cache := new(MockCache)
	cache.On("InvalidateCatalog", mock.Anything).Return(nil).Once()

	repo := cachedCatalog.NewCachedCatalog(source, cache, logger.NewTestLogger())
	require.NoError(t, repo.Invalidate(context.Background()))
	cache.AssertExpectations(t)
}

func TestCachedCatalog_Product(t *testing.T) {
	catalog := domain.CreateTestCatalog(2)

	t.Run("resolved from cached catalog", func(t *testing.T) {
		source := new(MockSource)
		cache := new(MockCache)
		cache.On("GetCatalog", mock.Anything).Return(catalog, nil).Once()

		repo := cachedCatalog.NewCachedCatalog(source, cache, logger.NewTestLogger())
		got, err := repo.Product(context.Background(), "product-2")

		require.NoError(t, err)
		assert.Equal(t, "product-2", got.ID)
		source.AssertNotCalled(t, "Product")
	})

	t.Run("unknown id falls through to the source", func(t *testing.T) {
		source := new(MockSource)
		cache := new(MockCache)
		cache.On("GetCatalog", mock.Anything).Return(catalog, nil).Once()
		source.On("Product", mock.Anything, "product-9").
			Return(domain.Product{}, domain.ErrRecordNotFound).Once()

		repo := cachedCatalog.NewCachedCatalog(source, cache, logger.NewTestLogger())
		_, err := repo.Product(context.Background(), "product-9")

		assert.True(t, errors.Is(err, domain.ErrRecordNotFound))
	})
}
