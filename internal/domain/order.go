package domain

// Payment methods accepted at checkout. Empty string means "not chosen yet".
const (
	PaymentCard = "card"
	PaymentCash = "cash"
)

// Order is the in-progress draft built up while the user shops.
// Items holds catalog product ids; Total is derived, never set by hand
// outside of the submit path.
type Order struct {
	Items   []string `json:"items" validate:"required,min=1"`
	Payment string   `json:"payment" validate:"required,payment"`
	Address string   `json:"address" validate:"required"`
	Email   string   `json:"email" validate:"required,email"`
	Phone   string   `json:"phone" validate:"required,phone"`
	Total   int      `json:"total" validate:"min=0"`
}

// OrderResult is the shop API response to a submitted order.
type OrderResult struct {
	ID    string `json:"id"`
	Total int    `json:"total"`
}

// NewOrder returns the default empty order shape.
func NewOrder() Order {
	return Order{Items: []string{}}
}
