package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	delivery "storefront/internal/delivery/http"
	"storefront/internal/domain"
	"storefront/internal/repository/memory"
	"storefront/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T, catalog []domain.Product) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return delivery.SetupRouter(memory.NewStoreWith(catalog), logger.NewTestLogger(), nil)
}

func TestGetProductList(t *testing.T) {
	router := newRouter(t, domain.CreateTestCatalog(3))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/product", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Total int              `json:"total"`
		Items []domain.Product `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Total)
	assert.Len(t, resp.Items, 3)
}

func TestGetProduct(t *testing.T) {
	router := newRouter(t, domain.CreateTestCatalog(2))

	t.Run("found", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/product/product-2", nil))

		require.Equal(t, http.StatusOK, w.Code)

		var item domain.Product
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
		assert.Equal(t, "product-2", item.ID)
	})

	t.Run("not found", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/product/missing", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCreateOrder(t *testing.T) {
	router := newRouter(t, domain.CreateTestCatalog(2))

	post := func(t *testing.T, body any) *httptest.ResponseRecorder {
		t.Helper()
		data, err := json.Marshal(body)
		require.NoError(t, err)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/order", bytes.NewReader(data))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("accepted order gets id and recomputed total", func(t *testing.T) {
		order := domain.CreateTestOrder(2)
		w := post(t, order)

		require.Equal(t, http.StatusOK, w.Code)

		var result domain.OrderResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.NotEmpty(t, result.ID)
		assert.Equal(t, 300, result.Total)
	})

	t.Run("invalid order rejected", func(t *testing.T) {
		order := domain.CreateTestOrder(1)
		order.Email = "nope"

		w := post(t, order)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown product rejected", func(t *testing.T) {
		order := domain.CreateTestOrder(1)
		order.Items = []string{"ghost"}

		w := post(t, order)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed payload rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/order", bytes.NewReader([]byte("{")))
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
