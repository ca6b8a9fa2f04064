package views

import (
	"html/template"
)

var modalTemplate = mustParse("modal", `<div class="modal modal_active">
	<div class="modal__container">
		<form method="post" action="/modal/close">
			<button class="modal__close" aria-label="закрыть"></button>
		</form>
		<div class="modal__content">{{.}}</div>
	</div>
</div>`)

// Modal wraps a fragment in the dialog chrome. An empty content means the
// modal is closed and nothing is rendered.
type Modal struct{}

func (Modal) Render(content template.HTML) (template.HTML, error) {
	if content == "" {
		return "", nil
	}
	return renderFragment(modalTemplate, content)
}

var pageTemplate = mustParse("page", `<!DOCTYPE html>
<html lang="ru">
<head>
	<meta charset="utf-8" />
	<title>Веб-ларёк</title>
</head>
<body>
<div class="page{{if .Locked}} page__wrapper_locked{{end}}">
	<header class="header">
		<form method="post" action="/basket">
			<button class="header__basket" aria-label="корзина">
				<span class="header__basket-counter">{{.Counter}}</span>
			</button>
		</form>
	</header>
	{{.Catalog}}
	{{.Modal}}
</div>
</body>
</html>`)

// Page is the chrome around everything else: basket counter, scroll lock
// and the two render slots. It caches nothing across renders; the
// orchestrator refills every field from state on each notification.
type Page struct {
	Counter int
	Locked  bool
	Catalog template.HTML
	Modal   template.HTML
}

func (p *Page) Render() (template.HTML, error) {
	return renderFragment(pageTemplate, p)
}
