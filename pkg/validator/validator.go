package validator

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"docslot/pkg/timeofday"
)

func ValidateTime(value string) bool {
	return timeofday.ValidTime(value)
}

func ValidateDate(value string) bool {
	_, err := timeofday.ParseDate(value)
	return err == nil
}

func ValidateWeekday(value string) bool {
	_, err := timeofday.ParseWeekday(value)
	return err == nil
}

// Register adds the hhmm, isodate and weekday tags to v.
func Register(v *validator.Validate) error {
	tags := map[string]func(string) bool{
		"hhmm":    ValidateTime,
		"isodate": ValidateDate,
		"weekday": ValidateWeekday,
	}

	for tag, check := range tags {
		check := check
		err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return check(fl.Field().String())
		})
		if err != nil {
			return fmt.Errorf("ошибка регистрации правила валидации %s: %w", tag, err)
		}
	}

	return nil
}

// RegisterGinBindings installs the custom tags into gin's default validator.
func RegisterGinBindings() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("неподдерживаемый движок валидации gin")
	}
	return Register(v)
}
