package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"storefront/internal/domain"
	prom "storefront/pkg/prometheus"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CatalogStore is the product source behind the fixture API.
type CatalogStore interface {
	ProductList(ctx context.Context) ([]domain.Product, error)
	Product(ctx context.Context, id string) (domain.Product, error)
}

type ShopHandler struct {
	store CatalogStore
	log   *slog.Logger
}

func NewShopHandler(store CatalogStore, log *slog.Logger) *ShopHandler {
	return &ShopHandler{
		store: store,
		log:   log,
	}
}

// GetProductList returns the catalog in the API's paged envelope.
func (h *ShopHandler) GetProductList(c *gin.Context) {
	items, err := h.store.ProductList(c.Request.Context())
	if err != nil {
		h.log.Error("failed to load catalog", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "failed to load catalog",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total": len(items),
		"items": items,
	})
}

func (h *ShopHandler) GetProduct(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "product id is required",
		})
		return
	}

	item, err := h.store.Product(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":      "not_found",
				"message":    "product not found",
				"product_id": id,
			})
			return
		}

		h.log.Error("failed to get product", "error", err, "product_id", id)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "failed to retrieve product",
		})
		return
	}

	c.JSON(http.StatusOK, item)
}

// CreateOrder validates a submitted order and answers with a receipt. The
// fixture recomputes the total from its own catalog; it does not persist
// or process the order.
func (h *ShopHandler) CreateOrder(c *gin.Context) {
	var order domain.Order
	if err := c.ShouldBindJSON(&order); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "malformed order payload",
		})
		return
	}

	if err := order.Validate(); err != nil {
		h.log.Info("order rejected", "error", err)
		prom.OrdersSubmitted.WithLabelValues("rejected").Inc()
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_order",
			"message": err.Error(),
		})
		return
	}

	catalog, err := h.store.ProductList(c.Request.Context())
	if err != nil {
		h.log.Error("failed to load catalog for order", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "failed to price order",
		})
		return
	}

	total := 0
	byID := make(map[string]domain.Product, len(catalog))
	for _, p := range catalog {
		byID[p.ID] = p
	}
	for _, id := range order.Items {
		p, ok := byID[id]
		if !ok {
			prom.OrdersSubmitted.WithLabelValues("rejected").Inc()
			c.JSON(http.StatusBadRequest, gin.H{
				"error":      "invalid_order",
				"message":    "unknown product in order",
				"product_id": id,
			})
			return
		}
		if p.Price != nil {
			total += *p.Price
		}
	}

	result := domain.OrderResult{
		ID:    uuid.NewString(),
		Total: total,
	}

	prom.OrdersSubmitted.WithLabelValues("accepted").Inc()
	h.log.Info("order accepted",
		"order_id", result.ID,
		"items_count", len(order.Items),
		"total", result.Total,
	)

	c.JSON(http.StatusOK, result)
}

// HealthCheck endpoint.
func (h *ShopHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "shop-api",
	})
}
