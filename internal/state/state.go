// Package state holds the single source of truth for one shopping session:
// the catalog, the in-progress order, the previewed item and the current
// form errors. Every mutation goes through a method here and announces
// itself on the event bus before returning.
package state

import (
	"fmt"
	"log/slog"

	"storefront/internal/domain"
	"storefront/internal/events"
)

// AppState owns catalog, order, preview and form errors. Views get read
// accessors (or pre-rendered data) only; mutation rights stay with the
// orchestration layer. Not safe for concurrent use: the caller serializes
// access per session.
type AppState struct {
	events.Observer
	log *slog.Logger

	catalog    []domain.Product
	order      domain.Order
	preview    string
	formErrors domain.FormErrors
}

// Option overrides part of the initial state before first use.
type Option func(*AppState)

func WithCatalog(items []domain.Product) Option {
	return func(s *AppState) { s.catalog = items }
}

func WithOrder(order domain.Order) Option {
	return func(s *AppState) { s.order = order }
}

func New(bus *events.Bus, log *slog.Logger, opts ...Option) *AppState {
	s := &AppState{
		Observer:   events.NewObserver(bus),
		log:        log,
		order:      domain.NewOrder(),
		formErrors: domain.FormErrors{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetCatalog replaces the catalog wholesale. The order is left alone; a
// basket id that no longer resolves surfaces later as ErrBasketOutOfSync.
func (s *AppState) SetCatalog(items []domain.Product) {
	s.catalog = items
	s.EmitChanges(EventItemsChanged, CatalogChanged{Catalog: s.catalog})
}

func (s *AppState) Catalog() []domain.Product {
	return s.catalog
}

// SetPreview selects the item shown in the modal. Subscribers get the full
// item, not just the id.
func (s *AppState) SetPreview(item domain.Product) {
	s.preview = item.ID
	s.EmitChanges(EventPreviewChanged, PreviewChanged{Item: item})
}

// Preview returns the previewed product id, or "" when nothing is open.
func (s *AppState) Preview() string {
	return s.preview
}

// AddItemToBasket appends the item id to the order. Adding an id that is
// already present is a no-op and announces nothing: basket membership is a
// set. Unpriced items are accepted; callers gate on IsItemAvailable.
func (s *AppState) AddItemToBasket(item domain.Product) {
	if s.IsItemInBasket(item) {
		s.log.Debug("duplicate basket add ignored", "product_id", item.ID)
		return
	}
	s.order.Items = append(s.order.Items, item.ID)
	s.EmitChanges(EventBasketChanged, BasketChanged{Item: &item})
}

// DeleteItemFromBasket removes every occurrence of the item id.
func (s *AppState) DeleteItemFromBasket(item domain.Product) {
	kept := s.order.Items[:0]
	for _, id := range s.order.Items {
		if id != item.ID {
			kept = append(kept, id)
		}
	}
	s.order.Items = kept
	s.EmitChanges(EventBasketChanged, BasketChanged{Item: &item})
}

// ClearBasket resets the whole order to its default empty shape.
func (s *AppState) ClearBasket() {
	s.order = domain.NewOrder()
	s.EmitChanges(EventBasketChanged, BasketChanged{})
}

func (s *AppState) IsItemInBasket(item domain.Product) bool {
	for _, id := range s.order.Items {
		if id == item.ID {
			return true
		}
	}
	return false
}

func (s *AppState) IsItemAvailable(item domain.Product) bool {
	return item.Available()
}

// OrderItems returns the catalog items currently in the basket, in catalog
// order. The basket stores bare ids, so catalog order is the only stable
// ordering available.
func (s *AppState) OrderItems() []domain.Product {
	items := make([]domain.Product, 0, len(s.order.Items))
	for _, p := range s.catalog {
		if s.IsItemInBasket(p) {
			items = append(items, p)
		}
	}
	return items
}

// Total sums prices over the basket. A basket id missing from the catalog
// is an invariant violation and fails loudly instead of zero-filling.
func (s *AppState) Total() (int, error) {
	total := 0
	for _, id := range s.order.Items {
		p, ok := s.productByID(id)
		if !ok {
			return 0, fmt.Errorf("%w: %s", domain.ErrBasketOutOfSync, id)
		}
		if p.Price != nil {
			total += *p.Price
		}
	}
	return total, nil
}

func (s *AppState) productByID(id string) (domain.Product, bool) {
	for _, p := range s.catalog {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

// SetOrderField writes one checkout field and re-validates the whole
// order. On a fully valid order it additionally announces order:ready;
// formErrors:change is announced either way by ValidateOrder.
func (s *AppState) SetOrderField(field domain.OrderField, value string) error {
	switch field {
	case domain.FieldPayment:
		s.order.Payment = value
	case domain.FieldAddress:
		s.order.Address = value
	case domain.FieldEmail:
		s.order.Email = value
	case domain.FieldPhone:
		s.order.Phone = value
	default:
		return fmt.Errorf("%w: %s", domain.ErrUnknownOrderField, field)
	}

	if s.ValidateOrder() {
		s.EmitChanges(EventOrderReady, OrderReady{Order: s.Order()})
	}
	return nil
}

// ValidateOrder recomputes the error mapping from scratch and always
// announces it, even when unchanged.
func (s *AppState) ValidateOrder() bool {
	s.formErrors = domain.ValidateOrderForm(s.order)
	s.EmitChanges(EventFormErrorsChange, FormErrorsChanged{Errors: s.formErrors})
	return len(s.formErrors) == 0
}

func (s *AppState) FormErrors() domain.FormErrors {
	return s.formErrors
}

// Order returns a copy of the draft with its own items slice, so callers
// cannot mutate the basket behind the state's back.
func (s *AppState) Order() domain.Order {
	order := s.order
	order.Items = append([]string(nil), s.order.Items...)
	return order
}

// ResetOrderFields clears the checkout fields while keeping the basket.
// Used when the order form is (re)opened so a previous attempt does not
// leak into a fresh checkout.
func (s *AppState) ResetOrderFields() {
	items := s.order.Items
	s.order = domain.NewOrder()
	s.order.Items = items
}
