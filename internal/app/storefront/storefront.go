package storefront

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"storefront/configs"
	"storefront/configs/loader/dotEnvLoader"
	"storefront/internal/analytics"
	k "storefront/internal/delivery/kafka"
	"storefront/internal/delivery/kafka/kafkaHandler"
	"storefront/internal/delivery/web"
	"storefront/internal/repository/cachedCatalog"
	"storefront/internal/repository/redisCache"
	"storefront/internal/shopapi"
	"storefront/internal/usecase"
	"storefront/pkg/logger"
	logrusLogger "storefront/pkg/logger/logrus"
)

// Run assembles and starts the storefront: shop API client, optional
// catalog cache, session manager, optional kafka analytics/refresh and the
// web server. Blocks until SIGINT/SIGTERM.
func Run() {
	envLoader := dotEnvLoader.DotEnvLoader{}
	cfg := configs.MustLoad(envLoader)
	log := logger.NewLogger(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := shopapi.NewClient(cfg, log)

	var catalog usecase.CatalogSource = client
	var opts []usecase.ManagerOption
	if cfg.RD.Enabled() {
		cache, err := redisCache.NewCache(ctx, cfg, "shop:", log)
		if err != nil {
			log.Warn("catalog cache unavailable, reading the API directly", "error", err)
		} else {
			cached := cachedCatalog.NewCachedCatalog(client, cache, log)
			catalog = cached
			opts = append(opts, usecase.WithInvalidator(cached))
		}
	}

	var producer *k.Producer
	if cfg.KF.Enabled() {
		var err error
		producer, err = k.NewProducer(cfg)
		if err != nil {
			log.Error("failed to connect kafka producer", "error", err)
			os.Exit(1)
		}
		exporter := analytics.NewExporter(producer, cfg.KF.AnalyticsTopic, log)
		opts = append(opts, usecase.WithExporter(exporter))
	}

	sessions := usecase.NewManager(catalog, client, log, opts...)

	var consumer *k.Consumer
	if cfg.KF.Enabled() {
		handler := kafkaHandler.NewKafkaHandler(sessions, log)
		c1, err := k.NewConsumer(cfg, handler, 1)
		if err != nil {
			log.Error("failed to connect kafka consumer", "error", err)
			os.Exit(1)
		}
		consumer = c1
		go consumer.Start()
	}

	accessLog := logrusLogger.NewLogger("logs/storefront_access.log")
	router := web.SetupRouter(sessions, log, accessLog)

	server := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("storefront listening", "port", cfg.HTTP.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	promSrv := &http.Server{
		Addr:    ":8082",
		Handler: promhttp.Handler(),
	}

	go func() {
		log.Info("prometheus listening", "port", 8082)
		if err := promSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP prometheus server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("stopping services")

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 5*time.Second)
	defer shutdownCancel()
	wg := &sync.WaitGroup{}

	wg.Add(2)
	go func() {
		defer wg.Done()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown error", "error", err)
		}
		log.Info("server stopped")
	}()
	go func() {
		defer wg.Done()
		if err := promSrv.Shutdown(shutdownCtx); err != nil {
			log.Error("prometheus server shutdown error", "error", err)
		}
		log.Info("prometheus server stopped")
	}()

	if consumer != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := consumer.Stop(); err != nil {
				log.Error("failed to stop consumer", "error", err)
			}
		}()
	}
	if producer != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			producer.Close()
		}()
	}

	completed := make(chan struct{})
	go func() {
		wg.Wait()
		close(completed)
	}()

	select {
	case <-completed:
		log.Info("all services correctly stopped")
	case <-shutdownCtx.Done():
		log.Info("shutdown timeout exceeded, forced stop")
	}
}
