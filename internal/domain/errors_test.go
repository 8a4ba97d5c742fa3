package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestFieldError_Is(t *testing.T) {
	err := fmt.Errorf("создание правила: %w", MissingField("slot_duration"))

	if !errors.Is(err, ErrMissingField) {
		t.Errorf("ожидалась ErrMissingField, получено %v", err)
	}
	if errors.Is(err, ErrOutOfBounds) {
		t.Errorf("MissingField не должна совпадать с ErrOutOfBounds")
	}

	var fe *FieldError
	if !errors.As(err, &fe) || fe.Field != "slot_duration" {
		t.Errorf("ожидалось поле slot_duration, получено %+v", fe)
	}
}

func TestOverlapError_Is(t *testing.T) {
	err := error(&OverlapError{RuleID: 7, StartTime: "09:00", EndTime: "10:00"})
	if !errors.Is(err, ErrOverlap) {
		t.Fatalf("ожидалась ErrOverlap")
	}

	var oe *OverlapError
	if !errors.As(err, &oe) || oe.RuleID != 7 {
		t.Errorf("ожидалось правило 7, получено %+v", oe)
	}
}

func TestNotFoundSentinels(t *testing.T) {
	for _, err := range []error{ErrPractitionerNotFound, ErrClientNotFound, ErrRuleNotFound, ErrBookingNotFound} {
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("%v должна оборачивать ErrNotFound", err)
		}
	}
}

func TestRecurrenceKey(t *testing.T) {
	day := Monday
	date := "2026-02-16"

	weekly := AvailabilityRule{Recurrence: RecurrenceRecurring, Weekday: &day}
	if weekly.RecurrenceKey() != "Monday" {
		t.Errorf("ключ еженедельного правила: %q", weekly.RecurrenceKey())
	}

	custom := AvailabilityRule{Recurrence: RecurrenceCustom, Date: &date}
	if custom.RecurrenceKey() != date {
		t.Errorf("ключ правила на дату: %q", custom.RecurrenceKey())
	}

	if Sunday.Order() != 6 || Weekday("Funday").IsValid() {
		t.Errorf("неверный порядок или проверка дня недели")
	}
}
