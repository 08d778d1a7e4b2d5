package handler

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("dpositive", decimalPositive)
		_ = v.RegisterValidation("dgte0", decimalNonNegative)
	}
}

// decimalPositive validates that a decimal field is strictly greater than zero.
// The stock guards reject non-positive quantities anyway; validating at the
// binding layer turns them into 400s before a transaction is opened.
func decimalPositive(fl validator.FieldLevel) bool {
	d, ok := fl.Field().Interface().(decimal.Decimal)
	if !ok {
		return false
	}
	return d.IsPositive()
}

// decimalNonNegative validates that a decimal field is zero or greater
func decimalNonNegative(fl validator.FieldLevel) bool {
	d, ok := fl.Field().Interface().(decimal.Decimal)
	if !ok {
		return false
	}
	return !d.IsNegative()
}
