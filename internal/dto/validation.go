package dto

import (
	"fmt"
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var currencyCodePattern = regexp.MustCompile(`^\s*[A-Za-z]{2,10}\s*$`)

// RegisterValidators installs the custom binding tags used by the request DTOs.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding validator engine %T", binding.Validator.Engine())
	}
	return v.RegisterValidation("currencycode", validateCurrencyCode)
}

func validateCurrencyCode(fl validator.FieldLevel) bool {
	return currencyCodePattern.MatchString(fl.Field().String())
}
