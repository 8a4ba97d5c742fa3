package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

type slotRequest struct {
	Date    string  `validate:"required,isodate"`
	Start   string  `validate:"required,hhmm"`
	Weekday *string `validate:"omitempty,weekday"`
}

func TestRegister(t *testing.T) {
	v := validator.New()
	if err := Register(v); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	monday := "Monday"
	valid := slotRequest{Date: "2026-02-16", Start: "09:30", Weekday: &monday}
	if err := v.Struct(valid); err != nil {
		t.Errorf("ожидалась успешная валидация, получено %v", err)
	}

	if err := v.Struct(slotRequest{Date: "2026-02-16", Start: "09:30"}); err != nil {
		t.Errorf("пустой день недели допустим, получено %v", err)
	}

	bad := "Someday"
	invalid := []slotRequest{
		{Date: "16.02.2026", Start: "09:30"},
		{Date: "2026-02-16", Start: "9:30"},
		{Date: "2026-02-16", Start: "09:30", Weekday: &bad},
	}
	for _, req := range invalid {
		if err := v.Struct(req); err == nil {
			t.Errorf("ожидалась ошибка валидации для %+v", req)
		}
	}
}

func TestValidateHelpers(t *testing.T) {
	if !ValidateTime("23:59") || ValidateTime("24:00") {
		t.Errorf("ValidateTime работает неверно")
	}
	if !ValidateDate("2026-02-28") || ValidateDate("2026-02-30") {
		t.Errorf("ValidateDate работает неверно")
	}
	if !ValidateWeekday("Sunday") || ValidateWeekday("sunday") {
		t.Errorf("ValidateWeekday работает неверно")
	}
}
