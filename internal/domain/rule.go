package domain

import (
	"time"
)

type RecurrenceClass string

const (
	RecurrenceRecurring RecurrenceClass = "RECURRING"
	RecurrenceCustom    RecurrenceClass = "CUSTOM"
)

func (r RecurrenceClass) IsValid() bool {
	return r == RecurrenceRecurring || r == RecurrenceCustom
}

type SchedulingMode string

const (
	SchedulingModeWave   SchedulingMode = "WAVE"
	SchedulingModeStream SchedulingMode = "STREAM"
)

func (m SchedulingMode) IsValid() bool {
	return m == SchedulingModeWave || m == SchedulingModeStream
}

type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

func (d Weekday) IsValid() bool {
	for _, w := range Weekdays {
		if d == w {
			return true
		}
	}
	return false
}

// Order returns the position of the day in a Monday-first week.
func (d Weekday) Order() int {
	for i, w := range Weekdays {
		if d == w {
			return i
		}
	}
	return len(Weekdays)
}

const (
	MinSlotDuration         = 5
	MaxSlotDuration         = 240
	MinCapacityPerSlot      = 1
	MaxCapacityPerSlot      = 50
	MinConsultationDuration = 5
	MaxConsultationDuration = 240
)

type AvailabilityRule struct {
	ID                   int64           `json:"id"`
	PractitionerID       int64           `json:"practitioner_id"`
	Recurrence           RecurrenceClass `json:"recurrence"`
	Weekday              *Weekday        `json:"weekday,omitempty"`
	Date                 *string         `json:"date,omitempty"`
	StartTime            string          `json:"start_time"`
	EndTime              string          `json:"end_time"`
	Mode                 SchedulingMode  `json:"mode"`
	SlotDuration         *int            `json:"slot_duration,omitempty"`
	CapacityPerSlot      *int            `json:"capacity_per_slot,omitempty"`
	ConsultationDuration *int            `json:"consultation_duration,omitempty"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// RecurrenceKey identifies the calendar bucket a rule competes in: the
// weekday for recurring rules, the date for custom ones.
func (r AvailabilityRule) RecurrenceKey() string {
	switch r.Recurrence {
	case RecurrenceRecurring:
		if r.Weekday != nil {
			return string(*r.Weekday)
		}
	case RecurrenceCustom:
		if r.Date != nil {
			return *r.Date
		}
	}
	return ""
}

// RuleSpec is the full description of a rule as submitted for creation or
// replacement. Mode-specific fields are checked by the rule validator, not
// by binding, so that they surface as MissingField errors.
type RuleSpec struct {
	Recurrence           RecurrenceClass `json:"recurrence" binding:"required,oneof=RECURRING CUSTOM"`
	Weekday              *Weekday        `json:"weekday" binding:"omitempty,weekday"`
	Date                 *string         `json:"date" binding:"omitempty,isodate"`
	StartTime            string          `json:"start_time" binding:"required"`
	EndTime              string          `json:"end_time" binding:"required"`
	Mode                 SchedulingMode  `json:"mode" binding:"required,oneof=WAVE STREAM"`
	SlotDuration         *int            `json:"slot_duration"`
	CapacityPerSlot      *int            `json:"capacity_per_slot"`
	ConsultationDuration *int            `json:"consultation_duration"`
}

type RuleFilter struct {
	PractitionerID int64
	Recurrence     *RecurrenceClass
	Weekday        *Weekday
	Date           *string
}
