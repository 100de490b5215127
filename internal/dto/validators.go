package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// dgt0 validates that a decimal.Decimal field is strictly positive.
// validator/v10 cannot compare decimal.Decimal with its numeric tags, so
// amount-bearing requests use `binding:"dgt0"` instead of `gt=0`.
func dgt0(fl validator.FieldLevel) bool {
	d, ok := fl.Field().Interface().(decimal.Decimal)
	if !ok {
		return false
	}
	return d.GreaterThan(decimal.Zero)
}

// RegisterValidations attaches custom validations to gin's validator engine.
// Call once at startup, before routes are served.
func RegisterValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("dgt0", dgt0)
}
