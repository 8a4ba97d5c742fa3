package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidFormat    = errors.New("неверный формат")
	ErrInvalidRange     = errors.New("время начала должно быть раньше времени окончания")
	ErrMissingField     = errors.New("не заполнено обязательное поле")
	ErrOutOfBounds      = errors.New("значение вне допустимого диапазона")
	ErrOverlap          = errors.New("правило пересекается с существующим правилом")
	ErrNotFound         = errors.New("не найдено")
	ErrInvalidSlot      = errors.New("запрошенное время не совпадает ни с одним слотом")
	ErrDuplicateBooking = errors.New("клиент уже записан на этот слот")
	ErrSlotFull         = errors.New("в слоте нет свободных мест")
	ErrForbidden        = errors.New("доступ запрещен")
)

var (
	ErrPractitionerNotFound = fmt.Errorf("%w: специалист", ErrNotFound)
	ErrClientNotFound       = fmt.Errorf("%w: клиент", ErrNotFound)
	ErrRuleNotFound         = fmt.Errorf("%w: правило", ErrNotFound)
	ErrBookingNotFound      = fmt.Errorf("%w: запись", ErrNotFound)
)

// FieldError reports a rule field that is absent or outside its bounds.
// Kind is ErrMissingField or ErrOutOfBounds.
type FieldError struct {
	Field string
	Kind  error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Field)
}

func (e *FieldError) Is(target error) bool {
	return target == e.Kind
}

func MissingField(field string) error {
	return &FieldError{Field: field, Kind: ErrMissingField}
}

func OutOfBounds(field string) error {
	return &FieldError{Field: field, Kind: ErrOutOfBounds}
}

// OverlapError names the existing rule a candidate collides with.
type OverlapError struct {
	RuleID    int64
	StartTime string
	EndTime   string
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("%s: правило %d (%s-%s)", ErrOverlap, e.RuleID, e.StartTime, e.EndTime)
}

func (e *OverlapError) Is(target error) bool {
	return target == ErrOverlap
}
