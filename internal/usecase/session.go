package usecase

import (
	"context"
	"html/template"
	"log/slog"
	"regexp"
	"sync"
	"time"

	"storefront/internal/domain"
	"storefront/internal/events"
	"storefront/internal/state"
	"storefront/internal/views"
	prom "storefront/pkg/prometheus"
)

// CatalogSource is where the session loads its catalog from: the API
// client directly, or the cache-through wrapper when redis is configured.
type CatalogSource interface {
	ProductList(ctx context.Context) ([]domain.Product, error)
}

// OrderSubmitter posts a completed order to the shop API.
type OrderSubmitter interface {
	SubmitOrder(ctx context.Context, order domain.Order) (domain.OrderResult, error)
}

var fieldChangeRegexp = regexp.MustCompile(views.FieldChangePattern)

type modalKind int

const (
	modalNone modalKind = iota
	modalPreview
	modalBasket
	modalOrder
	modalContacts
	modalSuccess
)

// Session is one shopper: a bus, an AppState and the rendered page.
// All access is serialized through mu; the event-driven core underneath
// is strictly single-threaded per session.
type Session struct {
	ID string

	mu      sync.Mutex
	bus     *events.Bus
	state   *state.AppState
	page    *views.Page
	catalog CatalogSource
	orders  OrderSubmitter
	log     *slog.Logger

	catalogView  views.Catalog
	previewView  views.CardPreview
	basketView   views.Basket
	orderForm    views.OrderForm
	contactsForm views.ContactsForm
	successView  views.Success
	modalView    views.Modal

	modal        modalKind
	successTotal int
}

func NewSession(id string, catalog CatalogSource, orders OrderSubmitter, log *slog.Logger) *Session {
	bus := events.NewBus()
	s := &Session{
		ID:      id,
		bus:     bus,
		state:   state.New(bus, log),
		page:    &views.Page{},
		catalog: catalog,
		orders:  orders,
		log:     log.With("session_id", id),
	}
	s.wire()
	return s
}

// Bus exposes the session bus for diagnostics attachments (metrics,
// analytics). Intent publishing goes through Emit so locking holds.
func (s *Session) Bus() *events.Bus {
	return s.bus
}

// Emit publishes one intent event with the session serialized.
func (s *Session) Emit(event string, payload any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bus.Emit(event, payload)
}

// Render produces the whole page from current state.
func (s *Session) Render() (template.HTML, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page.Render()
}

// LookupProduct resolves a catalog item by id for the delivery layer.
func (s *Session) LookupProduct(id string) (domain.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.state.Catalog() {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

// LoadCatalog fetches the catalog and pushes it into state.
func (s *Session) LoadCatalog(ctx context.Context) error {
	items, err := s.catalog.ProductList(ctx)
	if err != nil {
		prom.CatalogFetches.WithLabelValues("error").Inc()
		s.log.Error("failed to load catalog", "error", err)
		return err
	}
	prom.CatalogFetches.WithLabelValues("ok").Inc()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SetCatalog(items)
	return nil
}

// SetCatalog replaces the catalog directly; used by the refresh path that
// already holds fresh data.
func (s *Session) SetCatalog(items []domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SetCatalog(items)
}

// wire connects intent events to state mutations and state changes to
// re-renders. Views never call state and state never knows views; this is
// the only place the two meet.
func (s *Session) wire() {
	// Catalog changed: redraw the grid and the basket counter.
	s.bus.On(state.EventItemsChanged, func(event string, payload any) {
		fragment, err := s.catalogView.Render(s.state.Catalog())
		if err != nil {
			s.log.Error("failed to render catalog", "error", err)
			return
		}
		s.page.Catalog = fragment
		s.page.Counter = len(s.state.OrderItems())
	})

	// A card was clicked: remember it as the preview.
	s.bus.On(views.EventCardSelect, func(event string, payload any) {
		if item, ok := payload.(domain.Product); ok {
			s.state.SetPreview(item)
		}
	})

	// Preview changed: show the detail card in the modal. The add button
	// is live only for available items not already in the basket.
	s.bus.On(state.EventPreviewChanged, func(event string, payload any) {
		change, ok := payload.(state.PreviewChanged)
		if !ok {
			return
		}
		canAdd := s.state.IsItemAvailable(change.Item) && !s.state.IsItemInBasket(change.Item)
		fragment, err := s.previewView.Render(change.Item, canAdd)
		if err != nil {
			s.log.Error("failed to render preview", "error", err)
			return
		}
		s.openModal(modalPreview, fragment)
	})

	// Add from the preview card, then drop the modal.
	s.bus.On(views.EventCardAdd, func(event string, payload any) {
		if item, ok := payload.(domain.Product); ok {
			s.state.AddItemToBasket(item)
			s.closeModal()
		}
	})

	s.bus.On(views.EventBasketDelete, func(event string, payload any) {
		if item, ok := payload.(domain.Product); ok {
			s.state.DeleteItemFromBasket(item)
		}
	})

	// Basket changed: counter plus, when the basket panel is open, its
	// contents. Everything is re-read from state, nothing is patched.
	s.bus.On(state.EventBasketChanged, func(event string, payload any) {
		s.page.Counter = len(s.state.OrderItems())
		if s.modal == modalBasket {
			s.showBasket()
		}
	})

	s.bus.On(views.EventBasketOpen, func(event string, payload any) {
		s.showBasket()
	})

	// Checkout step one: reset stale checkout fields, keep the basket.
	// The validate call below re-renders the form via formErrors:change.
	s.bus.On(views.EventOrderOpen, func(event string, payload any) {
		s.state.ResetOrderFields()
		s.modal = modalOrder
		s.state.ValidateOrder()
	})

	// A field was edited in either form.
	s.bus.OnRegexp(fieldChangeRegexp, func(event string, payload any) {
		change, ok := payload.(views.FieldChange)
		if !ok {
			return
		}
		if err := s.state.SetOrderField(change.Field, change.Value); err != nil {
			s.log.Error("rejected field change", "field", change.Field, "error", err)
		}
	})

	// Validation changed: redraw whichever checkout form is open.
	s.bus.On(state.EventFormErrorsChange, func(event string, payload any) {
		switch s.modal {
		case modalOrder:
			s.showForm(s.orderForm.Render)
		case modalContacts:
			s.showForm(s.contactsForm.Render)
		}
	})

	s.bus.On(state.EventOrderReady, func(event string, payload any) {
		s.log.Debug("order is ready for submission")
	})

	// Step one submitted: advance only once payment and address hold up.
	s.bus.On(views.EventOrderSubmit, func(event string, payload any) {
		errs := s.state.FormErrors()
		if errs[domain.FieldPayment] != "" || errs[domain.FieldAddress] != "" {
			return
		}
		s.modal = modalContacts
		s.state.ValidateOrder()
	})

	// Step two submitted: the one place an order leaves the session.
	s.bus.On(views.EventContactsSubmit, func(event string, payload any) {
		s.submitOrder()
	})

	s.bus.On(views.EventModalClose, func(event string, payload any) {
		s.closeModal()
	})
}

// submitOrder posts the draft to the shop API. The basket is cleared only
// after the API accepts the order; any failure leaves the whole draft
// untouched so the shopper can retry.
func (s *Session) submitOrder() {
	if !s.state.ValidateOrder() {
		return
	}

	order := s.state.Order()
	total, err := s.state.Total()
	if err != nil {
		s.log.Error("order total is inconsistent", "error", err)
		return
	}
	order.Total = total

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := s.orders.SubmitOrder(ctx, order)
	if err != nil {
		prom.OrdersSubmitted.WithLabelValues("failed").Inc()
		s.log.Error("order submission failed", "error", err, "total", order.Total)
		return
	}

	prom.OrdersSubmitted.WithLabelValues("ok").Inc()
	s.log.Info("order submitted",
		"order_id", result.ID,
		"items_count", len(order.Items),
		"total", result.Total,
	)

	s.successTotal = result.Total
	s.state.ClearBasket()

	fragment, err := s.successView.Render(s.successTotal)
	if err != nil {
		s.log.Error("failed to render success dialog", "error", err)
		return
	}
	s.openModal(modalSuccess, fragment)
}

func (s *Session) showBasket() {
	items := s.state.OrderItems()
	total, err := s.state.Total()
	if err != nil {
		s.log.Error("basket total is inconsistent", "error", err)
		return
	}
	fragment, err := s.basketView.Render(items, total)
	if err != nil {
		s.log.Error("failed to render basket", "error", err)
		return
	}
	s.openModal(modalBasket, fragment)
}

func (s *Session) showForm(render func(domain.Order, domain.FormErrors) (template.HTML, error)) {
	fragment, err := render(s.state.Order(), s.state.FormErrors())
	if err != nil {
		s.log.Error("failed to render form", "error", err)
		return
	}
	s.openModal(s.modal, fragment)
}

func (s *Session) openModal(kind modalKind, content template.HTML) {
	wrapped, err := s.modalView.Render(content)
	if err != nil {
		s.log.Error("failed to render modal", "error", err)
		return
	}
	s.modal = kind
	s.page.Modal = wrapped
	s.page.Locked = true
}

func (s *Session) closeModal() {
	s.modal = modalNone
	s.page.Modal = ""
	s.page.Locked = false
}
