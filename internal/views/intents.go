package views

import "storefront/internal/domain"

// Intent events raised from the rendered UI. The web delivery layer
// publishes them; the orchestrator is the only consumer that may touch
// state in response.
const (
	// EventCardSelect carries domain.Product.
	EventCardSelect = "card:select"
	// EventCardAdd carries domain.Product.
	EventCardAdd = "card:add"
	// EventBasketDelete carries domain.Product.
	EventBasketDelete = "basket:delete"
	// EventBasketOpen carries nil.
	EventBasketOpen = "basket:open"
	// EventOrderOpen carries nil.
	EventOrderOpen = "order:open"
	// EventOrderSubmit carries nil.
	EventOrderSubmit = "order:submit"
	// EventContactsSubmit carries nil.
	EventContactsSubmit = "contacts:submit"
	// EventModalClose carries nil.
	EventModalClose = "modal:close"
)

// Field-change intents form two families, matched together by the
// orchestrator with one regexp subscription.
const (
	orderFieldPrefix    = "order."
	contactsFieldPrefix = "contacts."
	fieldChangeSuffix   = ":change"
)

// FieldChange is the payload of every field-change intent.
type FieldChange struct {
	Field domain.OrderField
	Value string
}

// FieldChangeEvent builds the intent name for one edited field, e.g.
// "order.address:change" or "contacts.email:change".
func FieldChangeEvent(field domain.OrderField) string {
	switch field {
	case domain.FieldEmail, domain.FieldPhone:
		return contactsFieldPrefix + string(field) + fieldChangeSuffix
	default:
		return orderFieldPrefix + string(field) + fieldChangeSuffix
	}
}

// FieldChangePattern matches every field-change intent from both checkout
// forms.
const FieldChangePattern = `^(order\..*|contacts\..*):change$`
