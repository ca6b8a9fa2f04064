package domain

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	validate   *validator.Validate
	phoneRegex = regexp.MustCompile(`^\+?[0-9][0-9 ()-]{6,19}$`)
)

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("phone", validatePhone)
	_ = validate.RegisterValidation("payment", validatePayment)
}

func validatePhone(fl validator.FieldLevel) bool {
	return phoneRegex.MatchString(fl.Field().String())
}

func validatePayment(fl validator.FieldLevel) bool {
	v := fl.Field().String()
	return v == PaymentCard || v == PaymentCash
}

// Validate checks the order as a whole before it goes over the wire.
// Form-level feedback uses ValidateOrderForm instead; this is the strict
// submit-time gate.
func (o *Order) Validate() error {
	return validate.Struct(o)
}
