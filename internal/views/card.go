package views

import (
	"html/template"

	"storefront/internal/domain"
)

var cardTemplate = mustParse("card", `<button class="gallery__item card" data-id="{{.ID}}" formaction="/card/{{.ID}}">
	<span class="card__category">{{.Category}}</span>
	<h2 class="card__title">{{.Title}}</h2>
	<img class="card__image" src="{{.Image}}" alt="{{.Title}}" />
	<span class="card__price">{{.Price}}</span>
</button>`)

var cardPreviewTemplate = mustParse("cardPreview", `<div class="card card_full" data-id="{{.ID}}">
	<img class="card__image" src="{{.Image}}" alt="{{.Title}}" />
	<span class="card__category">{{.Category}}</span>
	<h2 class="card__title">{{.Title}}</h2>
	<p class="card__text">{{.Description}}</p>
	<form method="post" action="/basket/items/{{.ID}}">
		<button class="card__button button"{{if not .CanAdd}} disabled{{end}}>В корзину</button>
	</form>
	<span class="card__price">{{.Price}}</span>
</div>`)

type cardData struct {
	ID          string
	Title       string
	Category    string
	Image       string
	Description string
	Price       string
	CanAdd      bool
}

// Card renders one catalog grid tile.
type Card struct{}

func (Card) Render(item domain.Product) (template.HTML, error) {
	return renderFragment(cardTemplate, cardData{
		ID:       item.ID,
		Title:    item.Title,
		Category: item.Category,
		Image:    item.Image,
		Price:    FormatPrice(item.Price),
	})
}

// CardPreview renders the modal detail card. canAdd is decided by the
// orchestrator (available and not yet in the basket).
type CardPreview struct{}

func (CardPreview) Render(item domain.Product, canAdd bool) (template.HTML, error) {
	return renderFragment(cardPreviewTemplate, cardData{
		ID:          item.ID,
		Title:       item.Title,
		Category:    item.Category,
		Image:       item.Image,
		Description: item.Description,
		Price:       FormatPrice(item.Price),
		CanAdd:      canAdd,
	})
}

var catalogTemplate = mustParse("catalog", `<main class="gallery">
{{range .}}{{.}}
{{end}}</main>`)

// Catalog renders the whole grid from individual cards.
type Catalog struct {
	card Card
}

func (v Catalog) Render(items []domain.Product) (template.HTML, error) {
	cards := make([]template.HTML, 0, len(items))
	for _, item := range items {
		fragment, err := v.card.Render(item)
		if err != nil {
			return "", err
		}
		cards = append(cards, fragment)
	}
	return renderFragment(catalogTemplate, cards)
}
