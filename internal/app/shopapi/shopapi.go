package shopapi

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
	h "storefront/internal/delivery/http"
	"storefront/internal/repository/memory"
	"storefront/internal/repository/postgres"
	"storefront/pkg/logger"
	logrusLogger "storefront/pkg/logger/logrus"
)

// Run starts the shop API fixture: the catalog and order endpoints the
// storefront talks to. Catalog data comes from postgres when configured
// and from the embedded seed otherwise; orders are validated, priced and
// answered with a receipt but never stored.
func Run() {
	envLoader := dotEnvLoader.DotEnvLoader{}
	cfg := configs.MustLoad(envLoader)
	log := logger.NewLogger(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var store h.CatalogStore
	var db *postgres.Store
	if cfg.DB.Enabled() {
		var err error
		db, err = postgres.NewStore(ctx, cfg, log)
		if err != nil {
			log.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		store = db
	} else {
		mem, err := memory.NewStore()
		if err != nil {
			log.Error("failed to load embedded catalog", "error", err)
			os.Exit(1)
		}
		store = mem
		log.Info("serving the embedded catalog", "reason", "no database configured")
	}

	accessLog := logrusLogger.NewLogger("logs/shopapi_access.log")
	router := h.SetupRouter(store, log, accessLog)

	server := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("shop api listening", "port", cfg.HTTP.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	promSrv := &http.Server{
		Addr:    ":8083",
		Handler: promhttp.Handler(),
	}

	go func() {
		log.Info("prometheus listening", "port", 8083)
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

	if db != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := db.Disconnect(shutdownCtx); err != nil {
				log.Error("database disconnect error", "error", err)
			}
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
