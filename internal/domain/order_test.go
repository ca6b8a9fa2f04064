package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProduct_Available(t *testing.T) {
	zero := 0
	hundred := 100

	t.Run("positive price is available", func(t *testing.T) {
		p := Product{ID: "a", Price: &hundred}
		assert.True(t, p.Available())
	})

	t.Run("zero price is priceless", func(t *testing.T) {
		p := Product{ID: "b", Price: &zero}
		assert.False(t, p.Available())
	})

	t.Run("nil price is priceless", func(t *testing.T) {
		p := Product{ID: "c"}
		assert.False(t, p.Available())
	})
}

func TestValidateOrderForm(t *testing.T) {
	t.Run("empty order misses every field", func(t *testing.T) {
		errs := ValidateOrderForm(NewOrder())

		assert.Len(t, errs, 4)
		assert.Contains(t, errs, FieldPayment)
		assert.Contains(t, errs, FieldAddress)
		assert.Contains(t, errs, FieldEmail)
		assert.Contains(t, errs, FieldPhone)
	})

	t.Run("filled order is valid", func(t *testing.T) {
		errs := ValidateOrderForm(CreateTestOrder(1))
		assert.Empty(t, errs)
	})

	t.Run("cleared field contributes exactly one entry", func(t *testing.T) {
		order := CreateTestOrder(1)
		order.Address = ""

		errs := ValidateOrderForm(order)

		assert.Len(t, errs, 1)
		assert.Contains(t, errs, FieldAddress)
		assert.NotContains(t, errs, FieldPayment)
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("valid order passes", func(t *testing.T) {
		order := CreateTestOrder(2)
		assert.NoError(t, order.Validate())
	})

	t.Run("empty basket fails", func(t *testing.T) {
		order := CreateTestOrder(1)
		order.Items = nil
		assert.Error(t, order.Validate())
	})

	t.Run("unknown payment method fails", func(t *testing.T) {
		order := CreateTestOrder(1)
		order.Payment = "barter"
		assert.Error(t, order.Validate())
	})

	t.Run("malformed email fails", func(t *testing.T) {
		order := CreateTestOrder(1)
		order.Email = "not-an-email"
		assert.Error(t, order.Validate())
	})

	t.Run("malformed phone fails", func(t *testing.T) {
		order := CreateTestOrder(1)
		order.Phone = "call me maybe"
		assert.Error(t, order.Validate())
	})
}
