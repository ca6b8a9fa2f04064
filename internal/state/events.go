package state

import "storefront/internal/domain"

// Events announced by AppState. Each name carries exactly one payload type;
// subscribers type-assert accordingly.
const (
	// EventItemsChanged carries CatalogChanged.
	EventItemsChanged = "items:changed"
	// EventPreviewChanged carries PreviewChanged.
	EventPreviewChanged = "preview:changed"
	// EventBasketChanged carries BasketChanged.
	EventBasketChanged = "basket:changed"
	// EventFormErrorsChange carries FormErrorsChanged.
	EventFormErrorsChange = "formErrors:change"
	// EventOrderReady carries OrderReady.
	EventOrderReady = "order:ready"
)

type CatalogChanged struct {
	Catalog []domain.Product
}

type PreviewChanged struct {
	Item domain.Product
}

// BasketChanged names the product that entered or left the basket.
// Item is nil when the whole basket was cleared.
type BasketChanged struct {
	Item *domain.Product
}

type FormErrorsChanged struct {
	Errors domain.FormErrors
}

type OrderReady struct {
	Order domain.Order
}
