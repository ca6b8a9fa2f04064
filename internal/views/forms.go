package views

import (
	"html/template"

	"storefront/internal/domain"
)

var orderFormTemplate = mustParse("orderForm", `<form class="form" method="post" action="/order/submit" name="order">
	<div class="order__field">
		<h2 class="modal__title">Способ оплаты</h2>
		<div class="order__buttons">
			<button formmethod="post" formaction="/order/payment/card" name="card" class="button button_alt{{if eq .Payment "card"}} button_alt-active{{end}}">Онлайн</button>
			<button formmethod="post" formaction="/order/payment/cash" name="cash" class="button button_alt{{if eq .Payment "cash"}} button_alt-active{{end}}">При получении</button>
		</div>
	</div>
	<label class="order__field">
		<span class="form__label modal__title">Адрес доставки</span>
		<input name="address" class="form__input" type="text" placeholder="Введите адрес" value="{{.Address}}" />
	</label>
	<div class="modal__actions">
		<button type="submit" class="button"{{if not .Valid}} disabled{{end}}>Далее</button>
		<span class="form__errors">{{.Errors}}</span>
	</div>
</form>`)

var contactsFormTemplate = mustParse("contactsForm", `<form class="form" method="post" action="/contacts/submit" name="contacts">
	<label class="order__field">
		<span class="form__label modal__title">Email</span>
		<input name="email" class="form__input" type="text" placeholder="Введите Email" value="{{.Email}}" />
	</label>
	<label class="order__field">
		<span class="form__label modal__title">Телефон</span>
		<input name="phone" class="form__input" type="text" placeholder="+7 (" value="{{.Phone}}" />
	</label>
	<div class="modal__actions">
		<button type="submit" class="button"{{if not .Valid}} disabled{{end}}>Оплатить</button>
		<span class="form__errors">{{.Errors}}</span>
	</div>
</form>`)

var successTemplate = mustParse("success", `<div class="order-success">
	<h2 class="order-success__title">Заказ оформлен</h2>
	<p class="order-success__description">Списано {{.Total}} синапсов</p>
	<form method="post" action="/modal/close">
		<button class="button order-success__close">За новыми покупками!</button>
	</form>
</div>`)

type orderFormData struct {
	Payment string
	Address string
	Valid   bool
	Errors  string
}

type contactsFormData struct {
	Email  string
	Phone  string
	Valid  bool
	Errors string
}

// OrderForm is checkout step one: payment method and address. Validity
// considers only this step's fields; contact errors are not surfaced here.
type OrderForm struct{}

func (OrderForm) Render(order domain.Order, errs domain.FormErrors) (template.HTML, error) {
	return renderFragment(orderFormTemplate, orderFormData{
		Payment: order.Payment,
		Address: order.Address,
		Valid:   errs[domain.FieldPayment] == "" && errs[domain.FieldAddress] == "",
		Errors:  joinErrors(errs, domain.FieldPayment, domain.FieldAddress),
	})
}

// ContactsForm is checkout step two: email and phone.
type ContactsForm struct{}

func (ContactsForm) Render(order domain.Order, errs domain.FormErrors) (template.HTML, error) {
	return renderFragment(contactsFormTemplate, contactsFormData{
		Email:  order.Email,
		Phone:  order.Phone,
		Valid:  errs[domain.FieldEmail] == "" && errs[domain.FieldPhone] == "",
		Errors: joinErrors(errs, domain.FieldEmail, domain.FieldPhone),
	})
}

// Success is the post-payment dialog.
type Success struct{}

func (Success) Render(total int) (template.HTML, error) {
	return renderFragment(successTemplate, struct{ Total int }{Total: total})
}
