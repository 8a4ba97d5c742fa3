package service

import (
	"fmt"

	"docslot/internal/domain"
	"docslot/pkg/timeofday"
)

// BuildRule constructs a fresh rule from spec. Fields that belong to the
// other recurrence class or scheduling mode are dropped.
func BuildRule(practitionerID int64, spec domain.RuleSpec) domain.AvailabilityRule {
	rule := domain.AvailabilityRule{
		PractitionerID: practitionerID,
		Recurrence:     spec.Recurrence,
		StartTime:      spec.StartTime,
		EndTime:        spec.EndTime,
		Mode:           spec.Mode,
	}

	switch spec.Recurrence {
	case domain.RecurrenceRecurring:
		rule.Weekday = copyPtr(spec.Weekday)
	case domain.RecurrenceCustom:
		rule.Date = copyPtr(spec.Date)
	}

	switch spec.Mode {
	case domain.SchedulingModeWave:
		rule.SlotDuration = copyPtr(spec.SlotDuration)
		rule.CapacityPerSlot = copyPtr(spec.CapacityPerSlot)
	case domain.SchedulingModeStream:
		rule.ConsultationDuration = copyPtr(spec.ConsultationDuration)
	}

	return rule
}

// ValidateRule checks the candidate's own fields and then its intervals
// against existing rules. Only rules sharing the candidate's recurrence
// class and key can conflict; others in existing are ignored.
func ValidateRule(candidate domain.AvailabilityRule, existing []domain.AvailabilityRule) error {
	if err := validateRuleFields(candidate); err != nil {
		return err
	}

	for _, other := range existing {
		if other.ID != 0 && other.ID == candidate.ID {
			continue
		}
		if Overlaps(candidate, other) {
			return &domain.OverlapError{
				RuleID:    other.ID,
				StartTime: other.StartTime,
				EndTime:   other.EndTime,
			}
		}
	}

	return nil
}

// Overlaps reports whether two rules compete for the same weekday or date
// and their half-open [start, end) windows intersect.
func Overlaps(a, b domain.AvailabilityRule) bool {
	if a.Recurrence != b.Recurrence || a.RecurrenceKey() == "" || a.RecurrenceKey() != b.RecurrenceKey() {
		return false
	}

	as, aerr := timeofday.ToMinutes(a.StartTime)
	ae, berr := timeofday.ToMinutes(a.EndTime)
	bs, cerr := timeofday.ToMinutes(b.StartTime)
	be, derr := timeofday.ToMinutes(b.EndTime)
	if aerr != nil || berr != nil || cerr != nil || derr != nil {
		return false
	}

	return as < be && ae > bs
}

func validateRuleFields(rule domain.AvailabilityRule) error {
	switch rule.Recurrence {
	case domain.RecurrenceRecurring:
		if rule.Weekday == nil {
			return domain.MissingField("weekday")
		}
		if !rule.Weekday.IsValid() {
			return fmt.Errorf("%w: weekday %q", domain.ErrInvalidFormat, *rule.Weekday)
		}
	case domain.RecurrenceCustom:
		if rule.Date == nil {
			return domain.MissingField("date")
		}
		if _, err := timeofday.ParseDate(*rule.Date); err != nil {
			return fmt.Errorf("%w: date: %v", domain.ErrInvalidFormat, err)
		}
	case "":
		return domain.MissingField("recurrence")
	default:
		return fmt.Errorf("%w: recurrence %q", domain.ErrInvalidFormat, rule.Recurrence)
	}

	start, err := timeofday.ToMinutes(rule.StartTime)
	if err != nil {
		return fmt.Errorf("%w: start_time: %v", domain.ErrInvalidFormat, err)
	}
	end, err := timeofday.ToMinutes(rule.EndTime)
	if err != nil {
		return fmt.Errorf("%w: end_time: %v", domain.ErrInvalidFormat, err)
	}
	if start >= end {
		return domain.ErrInvalidRange
	}

	switch rule.Mode {
	case domain.SchedulingModeWave:
		if rule.SlotDuration == nil {
			return domain.MissingField("slot_duration")
		}
		if rule.CapacityPerSlot == nil {
			return domain.MissingField("capacity_per_slot")
		}
		if !within(*rule.SlotDuration, domain.MinSlotDuration, domain.MaxSlotDuration) {
			return domain.OutOfBounds("slot_duration")
		}
		if !within(*rule.CapacityPerSlot, domain.MinCapacityPerSlot, domain.MaxCapacityPerSlot) {
			return domain.OutOfBounds("capacity_per_slot")
		}
	case domain.SchedulingModeStream:
		if rule.ConsultationDuration == nil {
			return domain.MissingField("consultation_duration")
		}
		if !within(*rule.ConsultationDuration, domain.MinConsultationDuration, domain.MaxConsultationDuration) {
			return domain.OutOfBounds("consultation_duration")
		}
	case "":
		return domain.MissingField("mode")
	default:
		return fmt.Errorf("%w: mode %q", domain.ErrInvalidFormat, rule.Mode)
	}

	return nil
}

func within(v, lo, hi int) bool {
	return v >= lo && v <= hi
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
