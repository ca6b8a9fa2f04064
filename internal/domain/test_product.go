package domain

import "fmt"

// CreateTestProduct builds a deterministic product for tests.
// Price is 100*n; n == 0 gives a priceless product.
func CreateTestProduct(n int) Product {
	p := Product{
		ID:          fmt.Sprintf("product-%d", n),
		Title:       fmt.Sprintf("Товар %d", n),
		Description: "Тестовое описание",
		Category:    "другое",
		Image:       fmt.Sprintf("/images/product-%d.svg", n),
	}
	if n > 0 {
		price := 100 * n
		p.Price = &price
	}
	return p
}

// CreateTestCatalog builds products 1..n.
func CreateTestCatalog(n int) []Product {
	catalog := make([]Product, 0, n)
	for i := 1; i <= n; i++ {
		catalog = append(catalog, CreateTestProduct(i))
	}
	return catalog
}

// CreateTestOrder builds a fully filled, valid order over products 1..items.
func CreateTestOrder(items int) Order {
	order := NewOrder()
	total := 0
	for i := 1; i <= items; i++ {
		p := CreateTestProduct(i)
		order.Items = append(order.Items, p.ID)
		total += *p.Price
	}
	order.Payment = PaymentCard
	order.Address = "Ploshad Mira 15"
	order.Email = "test@gmail.com"
	order.Phone = "+79990000000"
	order.Total = total
	return order
}
