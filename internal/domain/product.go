package domain

// Product is a catalog item as served by the shop API.
// Price is nil for priceless items.
type Product struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Image       string `json:"image"`
	Price       *int   `json:"price"`
}

// Available reports whether the product can be put into a basket.
// A zero price counts as "priceless", same as no price at all.
func (p *Product) Available() bool {
	return p.Price != nil && *p.Price > 0
}
