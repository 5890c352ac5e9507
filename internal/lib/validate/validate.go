// Package validate собирает валидатор запросов с правилами, которых нет в go-playground/validator v9.
package validate

import (
	"reflect"
	"time"

	"github.com/go-playground/validator"
)

// New возвращает валидатор с зарегистрированным правилом datetime=<layout>.
func New() *validator.Validate {
	v := validator.New()
	// Ошибка возможна только при пустом имени тега или nil функции.
	_ = v.RegisterValidation("datetime", isDateTime)
	return v
}

// isDateTime проверяет, что строка разбирается time.Parse с раскладкой из параметра тега.
func isDateTime(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}
	_, err := time.Parse(fl.Param(), field.String())
	return err == nil
}
