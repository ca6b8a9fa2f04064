package views

import (
	"fmt"
	"html/template"

	"storefront/internal/domain"
)

var basketItemTemplate = mustParse("basketItem", `<li class="basket__item card card_compact" data-id="{{.ID}}">
	<span class="basket__item-index">{{.Index}}</span>
	<span class="card__title">{{.Title}}</span>
	<span class="card__price">{{.Price}}</span>
	<form method="post" action="/basket/items/{{.ID}}/delete">
		<button class="basket__item-delete" aria-label="удалить"></button>
	</form>
</li>`)

var basketTemplate = mustParse("basket", `<div class="basket">
	<h2 class="modal__title">Корзина</h2>
	<ul class="basket__list">
{{range .Items}}{{.}}
{{end}}	</ul>
	<div class="modal__actions">
		<form method="post" action="/order/open">
			<button class="basket__button button"{{if not .HasItems}} disabled{{end}}>Оформить</button>
		</form>
		<span class="basket__price">{{.Total}}</span>
	</div>
</div>`)

type basketItemData struct {
	ID    string
	Index int
	Title string
	Price string
}

type basketData struct {
	Items    []template.HTML
	HasItems bool
	Total    string
}

// Basket renders the basket panel: numbered lines plus the derived total.
type Basket struct{}

func (Basket) Render(items []domain.Product, total int) (template.HTML, error) {
	lines := make([]template.HTML, 0, len(items))
	for i, item := range items {
		fragment, err := renderFragment(basketItemTemplate, basketItemData{
			ID:    item.ID,
			Index: i + 1,
			Title: item.Title,
			Price: FormatPrice(item.Price),
		})
		if err != nil {
			return "", err
		}
		lines = append(lines, fragment)
	}
	return renderFragment(basketTemplate, basketData{
		Items:    lines,
		HasItems: len(items) > 0,
		// An empty basket legitimately totals 0, so no "priceless" here.
		Total: fmt.Sprintf("%d синапсов", total),
	})
}
