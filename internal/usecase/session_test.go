package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"storefront/internal/domain"
	"storefront/internal/usecase"
	"storefront/internal/views"
	"storefront/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	items []domain.Product
	err   error
}

func (f *fakeCatalog) ProductList(ctx context.Context) ([]domain.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

type fakeOrders struct {
	result domain.OrderResult
	err    error
	calls  int
	last   domain.Order
}

func (f *fakeOrders) SubmitOrder(ctx context.Context, order domain.Order) (domain.OrderResult, error) {
	f.calls++
	f.last = order
	if f.err != nil {
		return domain.OrderResult{}, f.err
	}
	return f.result, nil
}

func newTestSession(t *testing.T, catalog *fakeCatalog, orders *fakeOrders) *usecase.Session {
	t.Helper()
	s := usecase.NewSession("test-session", catalog, orders, logger.NewTestLogger())
	require.NoError(t, s.LoadCatalog(context.Background()))
	return s
}

func render(t *testing.T, s *usecase.Session) string {
	t.Helper()
	html, err := s.Render()
	require.NoError(t, err)
	return string(html)
}

func counter(n int) string {
	return fmt.Sprintf(`<span class="header__basket-counter">%d</span>`, n)
}

func setField(s *usecase.Session, field domain.OrderField, value string) {
	s.Emit(views.FieldChangeEvent(field), views.FieldChange{Field: field, Value: value})
}

func TestSessionBrowseAndBasket(t *testing.T) {
	catalog := &fakeCatalog{items: domain.CreateTestCatalog(2)}
	s := newTestSession(t, catalog, &fakeOrders{})

	t.Run("catalog is rendered after load", func(t *testing.T) {
		page := render(t, s)
		assert.Contains(t, page, "Товар 1")
		assert.Contains(t, page, "Товар 2")
		assert.Contains(t, page, counter(0))
	})

	t.Run("selecting a card opens the preview", func(t *testing.T) {
		s.Emit(views.EventCardSelect, catalog.items[0])
		page := render(t, s)
		assert.Contains(t, page, "modal_active")
		assert.Contains(t, page, "page__wrapper_locked")
	})

	t.Run("adding closes the modal and bumps the counter", func(t *testing.T) {
		s.Emit(views.EventCardAdd, catalog.items[0])
		page := render(t, s)
		assert.NotContains(t, page, "modal_active")
		assert.NotContains(t, page, "page__wrapper_locked")
		assert.Contains(t, page, counter(1))
	})

	t.Run("adding the same item again changes nothing", func(t *testing.T) {
		s.Emit(views.EventCardAdd, catalog.items[0])
		assert.Contains(t, render(t, s), counter(1))
	})

	t.Run("open basket shows the line and total", func(t *testing.T) {
		s.Emit(views.EventBasketOpen, nil)
		page := render(t, s)
		assert.Contains(t, page, "Корзина")
		assert.Contains(t, page, "100 синапсов")
	})

	t.Run("deleting refreshes the open basket", func(t *testing.T) {
		s.Emit(views.EventBasketDelete, catalog.items[0])
		page := render(t, s)
		assert.Contains(t, page, counter(0))
		assert.Contains(t, page, "0 синапсов")
	})
}

func TestSessionUnpricedItemPreview(t *testing.T) {
	item := domain.CreateTestProduct(0)
	catalog := &fakeCatalog{items: []domain.Product{item}}
	s := newTestSession(t, catalog, &fakeOrders{})

	s.Emit(views.EventCardSelect, item)
	page := render(t, s)
	assert.Contains(t, page, "Бесценно")
	assert.Contains(t, page, "disabled")
}

func TestSessionCheckout(t *testing.T) {
	catalog := &fakeCatalog{items: domain.CreateTestCatalog(2)}
	orders := &fakeOrders{err: errors.New("shop api is down")}
	s := newTestSession(t, catalog, orders)

	s.Emit(views.EventCardAdd, catalog.items[0])
	s.Emit(views.EventCardAdd, catalog.items[1])
	s.Emit(views.EventOrderOpen, nil)

	t.Run("fresh order form reports missing step-one fields", func(t *testing.T) {
		page := render(t, s)
		assert.Contains(t, page, "Необходимо выбрать способ оплаты")
		assert.Contains(t, page, "Необходимо указать адрес")
	})

	t.Run("submit does not advance while step one is invalid", func(t *testing.T) {
		s.Emit(views.EventOrderSubmit, nil)
		assert.Contains(t, render(t, s), "Способ оплаты")
	})

	t.Run("filled step one advances to contacts", func(t *testing.T) {
		setField(s, domain.FieldPayment, domain.PaymentCard)
		setField(s, domain.FieldAddress, "Спб, ул. Пушкина 1")
		s.Emit(views.EventOrderSubmit, nil)

		page := render(t, s)
		assert.Contains(t, page, "Email")
		assert.Contains(t, page, "Телефон")
	})

	t.Run("failed submission keeps basket and draft intact", func(t *testing.T) {
		setField(s, domain.FieldEmail, "user@example.com")
		setField(s, domain.FieldPhone, "+7 (999) 123-45-67")
		s.Emit(views.EventContactsSubmit, nil)

		assert.Equal(t, 1, orders.calls)
		page := render(t, s)
		assert.Contains(t, page, counter(2))
		assert.Contains(t, page, "user@example.com")
		assert.NotContains(t, page, "Заказ оформлен")
	})

	t.Run("retry succeeds and clears the basket", func(t *testing.T) {
		orders.err = nil
		orders.result = domain.OrderResult{ID: "receipt-1", Total: 300}
		s.Emit(views.EventContactsSubmit, nil)

		assert.Equal(t, 2, orders.calls)
		assert.Equal(t, []string{catalog.items[0].ID, catalog.items[1].ID}, orders.last.Items)
		assert.Equal(t, 300, orders.last.Total)

		page := render(t, s)
		assert.Contains(t, page, "Заказ оформлен")
		assert.Contains(t, page, "Списано 300 синапсов")
		assert.Contains(t, page, counter(0))
	})

	t.Run("closing the success dialog unlocks the page", func(t *testing.T) {
		s.Emit(views.EventModalClose, nil)
		page := render(t, s)
		assert.NotContains(t, page, "modal_active")
		assert.NotContains(t, page, "page__wrapper_locked")
	})
}

func TestSessionReopenResetsCheckoutFields(t *testing.T) {
	catalog := &fakeCatalog{items: domain.CreateTestCatalog(1)}
	s := newTestSession(t, catalog, &fakeOrders{})

	s.Emit(views.EventCardAdd, catalog.items[0])
	s.Emit(views.EventOrderOpen, nil)
	setField(s, domain.FieldAddress, "Спб, ул. Пушкина 1")

	s.Emit(views.EventOrderOpen, nil)
	page := render(t, s)
	assert.NotContains(t, page, "Спб, ул. Пушкина 1")
	assert.Contains(t, page, counter(1))
}

func TestSessionLookupProduct(t *testing.T) {
	catalog := &fakeCatalog{items: domain.CreateTestCatalog(2)}
	s := newTestSession(t, catalog, &fakeOrders{})

	item, ok := s.LookupProduct(catalog.items[1].ID)
	require.True(t, ok)
	assert.Equal(t, "Товар 2", item.Title)

	_, ok = s.LookupProduct("missing")
	assert.False(t, ok)
}
