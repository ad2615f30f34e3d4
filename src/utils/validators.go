package utils

import (
	"staybook/src/config"
	"time"

	"github.com/go-playground/validator/v10"
)

var isoDateValidatorFunc validator.Func = func(fl validator.FieldLevel) bool {
	date, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	_, err := time.Parse(config.DATE_FORMAT, date)
	return err == nil
}

// afterdate=Field passes when the value is strictly later than Field, or
// when Field is empty.
var afterDateValidatorFunc validator.Func = func(fl validator.FieldLevel) bool {
	date, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	datetime, err := time.Parse(config.DATE_FORMAT, date)
	if err != nil {
		return false
	}
	field := fl.Parent().FieldByName(fl.Param())
	if !field.IsValid() {
		return false
	}
	fieldValue, ok := field.Interface().(string)
	if !ok {
		return false
	}
	if fieldValue == "" {
		return true
	}
	fielddatetime, err := time.Parse(config.DATE_FORMAT, fieldValue)
	if err != nil {
		return false
	}
	return datetime.After(fielddatetime)
}

func RegisterValidations(v *validator.Validate) {
	v.RegisterValidation("isodate", isoDateValidatorFunc)
	v.RegisterValidation("afterdate", afterDateValidatorFunc)
}
