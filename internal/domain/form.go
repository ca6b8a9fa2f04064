package domain

// OrderField names a user-editable checkout field.
type OrderField string

const (
	FieldPayment OrderField = "payment"
	FieldAddress OrderField = "address"
	FieldEmail   OrderField = "email"
	FieldPhone   OrderField = "phone"
)

// FormErrors maps an order field to a human-readable message.
// An empty map means the order is submittable.
type FormErrors map[OrderField]string

// ValidateOrderForm recomputes the full error mapping from scratch.
// Pure function: the caller decides where to store and how to announce
// the result.
func ValidateOrderForm(o Order) FormErrors {
	errs := FormErrors{}
	if o.Payment == "" {
		errs[FieldPayment] = "Необходимо выбрать способ оплаты"
	}
	if o.Address == "" {
		errs[FieldAddress] = "Необходимо указать адрес"
	}
	if o.Email == "" {
		errs[FieldEmail] = "Необходимо указать email"
	}
	if o.Phone == "" {
		errs[FieldPhone] = "Необходимо указать телефон"
	}
	return errs
}
