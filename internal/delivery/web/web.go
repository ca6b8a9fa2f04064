package web

import (
	"log/slog"
	"strconv"
	"time"

	"storefront/internal/usecase"
	prom "storefront/pkg/prometheus"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// SetupRouter wires the storefront pages. accessLog may be nil; when set,
// every request is mirrored into the rotating access log.
func SetupRouter(sessions *usecase.Manager, log *slog.Logger, accessLog *logrus.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(metricsMiddleware())
	if accessLog != nil {
		router.Use(accessLogMiddleware(accessLog))
	}

	handler := NewWebHandler(sessions, log)

	router.GET("/health", handler.HealthCheck)
	router.GET("/", handler.GetPage)

	router.POST("/card/:id", handler.SelectCard)
	router.POST("/basket", handler.OpenBasket)
	router.POST("/basket/items/:id", handler.AddToBasket)
	router.POST("/basket/items/:id/delete", handler.DeleteFromBasket)
	router.POST("/order/open", handler.OpenOrder)
	router.POST("/order/payment/:method", handler.SetPayment)
	router.POST("/order/submit", handler.SubmitOrder)
	router.POST("/contacts/submit", handler.SubmitContacts)
	router.POST("/modal/close", handler.CloseModal)

	return router
}

func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		prom.HttpRequestsTotal.WithLabelValues(
			c.Request.Method, path, strconv.Itoa(c.Writer.Status()),
		).Inc()
		prom.HttpRequestDuration.WithLabelValues(
			c.Request.Method, path,
		).Observe(time.Since(startTime).Seconds())
	}
}

func accessLogMiddleware(accessLog *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		c.Next()

		accessLog.WithFields(logrus.Fields{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
			"duration_ms": time.Since(startTime).Milliseconds(),
			"client_ip":   c.ClientIP(),
		}).Info("request")
	}
}
