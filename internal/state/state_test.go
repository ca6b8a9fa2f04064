package state_test

import (
	"errors"
	"testing"

	"storefront/internal/domain"
	"storefront/internal/events"
	"storefront/internal/state"
	"storefront/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newState(t *testing.T, opts ...state.Option) (*state.AppState, *events.Bus) {
	t.Helper()
	bus := events.NewBus()
	return state.New(bus, logger.NewTestLogger(), opts...), bus
}

// recorder collects every emitted event name in order.
func record(bus *events.Bus) *[]string {
	var got []string
	bus.OnAll(func(event string, payload any) {
		got = append(got, event)
	})
	return &got
}

func TestAppState_SetCatalog(t *testing.T) {
	st, bus := newState(t)
	catalog := domain.CreateTestCatalog(3)

	var payload state.CatalogChanged
	bus.On(state.EventItemsChanged, func(event string, p any) {
		payload = p.(state.CatalogChanged)
	})

	st.SetCatalog(catalog)

	assert.Equal(t, catalog, st.Catalog())
	// Payload reflects the state after the mutation, never a stale snapshot.
	assert.Equal(t, catalog, payload.Catalog)
}

func TestAppState_SetPreview(t *testing.T) {
	st, bus := newState(t)
	item := domain.CreateTestProduct(1)

	var payload state.PreviewChanged
	bus.On(state.EventPreviewChanged, func(event string, p any) {
		payload = p.(state.PreviewChanged)
	})

	st.SetPreview(item)

	assert.Equal(t, item.ID, st.Preview())
	assert.Equal(t, item, payload.Item)
}

func TestAppState_BasketMembership(t *testing.T) {
	st, bus := newState(t, state.WithCatalog(domain.CreateTestCatalog(3)))
	first := domain.CreateTestProduct(1)
	second := domain.CreateTestProduct(2)

	got := record(bus)

	t.Run("add and membership", func(t *testing.T) {
		st.AddItemToBasket(first)

		assert.True(t, st.IsItemInBasket(first))
		assert.False(t, st.IsItemInBasket(second))
		assert.Equal(t, []string{state.EventBasketChanged}, *got)
	})

	t.Run("duplicate add is a silent no-op", func(t *testing.T) {
		st.AddItemToBasket(first)

		assert.Len(t, st.OrderItems(), 1)
		assert.Equal(t, []string{state.EventBasketChanged}, *got)
	})

	t.Run("add then delete round-trips", func(t *testing.T) {
		st.AddItemToBasket(second)
		st.DeleteItemFromBasket(second)

		assert.True(t, st.IsItemInBasket(first))
		assert.False(t, st.IsItemInBasket(second))
	})

	t.Run("clear resets the whole order", func(t *testing.T) {
		require.NoError(t, st.SetOrderField(domain.FieldAddress, "Лубянка 1"))
		st.ClearBasket()

		assert.Empty(t, st.OrderItems())
		assert.Empty(t, st.Order().Address)
	})
}

func TestAppState_OrderItemsCatalogOrder(t *testing.T) {
	catalog := domain.CreateTestCatalog(3)
	st, _ := newState(t, state.WithCatalog(catalog))

	// Insert out of catalog order; a stale id never shows up.
	st.AddItemToBasket(catalog[2])
	st.AddItemToBasket(catalog[0])
	st.AddItemToBasket(domain.CreateTestProduct(9))

	items := st.OrderItems()
	require.Len(t, items, 2)
	assert.Equal(t, catalog[0].ID, items[0].ID)
	assert.Equal(t, catalog[2].ID, items[1].ID)
}

func TestAppState_Total(t *testing.T) {
	hundred := 100
	zero := 0
	catalog := []domain.Product{
		{ID: "a", Title: "а", Price: &hundred},
		{ID: "b", Title: "б", Price: &zero},
	}
	st, _ := newState(t, state.WithCatalog(catalog))

	t.Run("empty basket totals zero", func(t *testing.T) {
		total, err := st.Total()
		require.NoError(t, err)
		assert.Equal(t, 0, total)
	})

	t.Run("sums prices over order items", func(t *testing.T) {
		st.AddItemToBasket(catalog[0])
		total, err := st.Total()
		require.NoError(t, err)
		assert.Equal(t, 100, total)
	})

	t.Run("zero-priced item is accepted but contributes nothing", func(t *testing.T) {
		assert.False(t, st.IsItemAvailable(catalog[1]))

		st.AddItemToBasket(catalog[1])
		assert.True(t, st.IsItemInBasket(catalog[1]))

		total, err := st.Total()
		require.NoError(t, err)
		assert.Equal(t, 100, total)
	})

	t.Run("basket id missing from catalog fails loudly", func(t *testing.T) {
		st.SetCatalog(catalog[:1]) // "b" is now gone but still in the basket

		_, err := st.Total()
		assert.True(t, errors.Is(err, domain.ErrBasketOutOfSync))
	})
}

func TestAppState_SetOrderField(t *testing.T) {
	st, bus := newState(t, state.WithCatalog(domain.CreateTestCatalog(1)))

	var lastErrors domain.FormErrors
	ready := 0
	bus.On(state.EventFormErrorsChange, func(event string, p any) {
		lastErrors = p.(state.FormErrorsChanged).Errors
	})
	bus.On(state.EventOrderReady, func(event string, p any) {
		ready++
	})

	t.Run("partial order is invalid", func(t *testing.T) {
		require.NoError(t, st.SetOrderField(domain.FieldPayment, domain.PaymentCard))
		require.NoError(t, st.SetOrderField(domain.FieldAddress, ""))

		assert.False(t, st.ValidateOrder())
		assert.Contains(t, lastErrors, domain.FieldAddress)
		assert.NotContains(t, lastErrors, domain.FieldPayment)
		assert.Zero(t, ready)
	})

	t.Run("last field completes the order", func(t *testing.T) {
		require.NoError(t, st.SetOrderField(domain.FieldAddress, "Невский 28"))
		require.NoError(t, st.SetOrderField(domain.FieldEmail, "user@example.com"))
		require.NoError(t, st.SetOrderField(domain.FieldPhone, "+79990000000"))

		assert.Empty(t, lastErrors)
		assert.Equal(t, 1, ready)
	})

	t.Run("unknown field is rejected", func(t *testing.T) {
		err := st.SetOrderField("fax", "+7")
		assert.True(t, errors.Is(err, domain.ErrUnknownOrderField))
	})
}

func TestAppState_ValidateAlwaysAnnounces(t *testing.T) {
	st, bus := newState(t)
	emits := 0
	bus.On(state.EventFormErrorsChange, func(event string, p any) {
		emits++
	})

	st.ValidateOrder()
	st.ValidateOrder() // unchanged errors still announce

	assert.Equal(t, 2, emits)
}

func TestAppState_OrderCopyIsDetached(t *testing.T) {
	st, _ := newState(t, state.WithCatalog(domain.CreateTestCatalog(1)))
	st.AddItemToBasket(domain.CreateTestProduct(1))

	order := st.Order()
	order.Items[0] = "tampered"

	assert.Equal(t, []string{"product-1"}, st.Order().Items)
}

func TestAppState_ResetOrderFieldsKeepsBasket(t *testing.T) {
	st, _ := newState(t, state.WithCatalog(domain.CreateTestCatalog(2)))
	st.AddItemToBasket(domain.CreateTestProduct(1))
	require.NoError(t, st.SetOrderField(domain.FieldEmail, "user@example.com"))

	st.ResetOrderFields()

	assert.Equal(t, []string{"product-1"}, st.Order().Items)
	assert.Empty(t, st.Order().Email)
}
