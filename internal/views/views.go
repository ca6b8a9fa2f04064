// Package views renders state slices into HTML fragments. Components are
// stateless with respect to business rules: they draw whatever the
// orchestrator hands them and never reach into AppState themselves.
package views

import (
	"fmt"
	"html/template"
	"strings"

	"storefront/internal/domain"
)

// FormatPrice renders a price the way the shop displays it; priceless
// items say so instead of showing zero.
func FormatPrice(price *int) string {
	if price == nil || *price == 0 {
		return "Бесценно"
	}
	return fmt.Sprintf("%d синапсов", *price)
}

func renderFragment(t *template.Template, data any) (template.HTML, error) {
	var sb strings.Builder
	if err := t.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render %s: %w", t.Name(), err)
	}
	return template.HTML(sb.String()), nil
}

func mustParse(name, text string) *template.Template {
	return template.Must(template.New(name).Parse(text))
}

// joinErrors flattens a subset of form errors into the single error line a
// form shows under its fields.
func joinErrors(errs domain.FormErrors, fields ...domain.OrderField) string {
	var parts []string
	for _, f := range fields {
		if msg, ok := errs[f]; ok {
			parts = append(parts, msg)
		}
	}
	return strings.Join(parts, "; ")
}
