package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"storefront/internal/analytics"
	prom "storefront/pkg/prometheus"
)

// CatalogInvalidator drops cached catalog data before a refresh. Satisfied
// by the cache-through repository; nil when no cache is configured.
type CatalogInvalidator interface {
	Invalidate(ctx context.Context) error
}

// Manager owns the live sessions. One session per shopper cookie; sessions
// never share a bus or state.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	catalog     CatalogSource
	orders      OrderSubmitter
	invalidator CatalogInvalidator
	exporter    *analytics.Exporter
	log         *slog.Logger
}

type ManagerOption func(*Manager)

// WithExporter streams every session event to the analytics topic.
func WithExporter(exporter *analytics.Exporter) ManagerOption {
	return func(m *Manager) { m.exporter = exporter }
}

// WithInvalidator lets catalog refreshes drop the cache first.
func WithInvalidator(inv CatalogInvalidator) ManagerOption {
	return func(m *Manager) { m.invalidator = inv }
}

func NewManager(catalog CatalogSource, orders OrderSubmitter, log *slog.Logger, opts ...ManagerOption) *Manager {
	m := &Manager{
		sessions: make(map[string]*Session),
		catalog:  catalog,
		orders:   orders,
		log:      log,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Create spins up a fresh session: new id, wired bus, diagnostics
// subscribers, first catalog load. A failed first load still yields a
// usable session; the catalog arrives on the next refresh.
func (m *Manager) Create(ctx context.Context) *Session {
	id := uuid.NewString()
	s := NewSession(id, m.catalog, m.orders, m.log)

	s.Bus().OnAll(func(event string, payload any) {
		prom.EventsEmitted.WithLabelValues(event).Inc()
		s.log.Debug("event published", "event", event)
	})
	if m.exporter != nil {
		m.exporter.Attach(id, s.Bus())
	}

	if err := s.LoadCatalog(ctx); err != nil {
		m.log.Warn("session starts without a catalog", "session_id", id, "error", err)
	}

	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()

	prom.SessionsActive.Inc()
	m.log.Info("session created", "session_id", id)
	return s
}

// GetOrCreate resolves the cookie id to a live session, making a new one
// when the id is unknown or empty.
func (m *Manager) GetOrCreate(ctx context.Context, id string) *Session {
	if id != "" {
		if s, ok := m.Get(id); ok {
			return s
		}
	}
	return m.Create(ctx)
}

// Remove ends a session and detaches all its subscribers.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	if !ok {
		return
	}
	s.Bus().OffAll()
	prom.SessionsActive.Dec()
	m.log.Info("session removed", "session_id", id)
}

// RefreshCatalog reloads the catalog once and fans it out to every live
// session. Called by the kafka consumer when the shop announces a change.
func (m *Manager) RefreshCatalog() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if m.invalidator != nil {
		if err := m.invalidator.Invalidate(ctx); err != nil {
			m.log.Warn("failed to invalidate catalog cache", "error", err)
		}
	}

	items, err := m.catalog.ProductList(ctx)
	if err != nil {
		prom.CatalogFetches.WithLabelValues("error").Inc()
		return err
	}
	prom.CatalogFetches.WithLabelValues("ok").Inc()

	m.mu.RLock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.RUnlock()

	for _, s := range sessions {
		s.SetCatalog(items)
	}

	m.log.Info("catalog refreshed", "items_count", len(items), "sessions_count", len(sessions))
	return nil
}
