package service

import (
	"fmt"

	"docslot/internal/domain"
	"docslot/pkg/timeofday"
)

// GenerateSlots expands a rule into its bookable slots, ordered by start.
//
// A STREAM rule yields one slot covering the whole window with capacity 1.
// A WAVE rule is cut into consecutive slots of SlotDuration minutes; a
// trailing remainder shorter than one slot is never bookable and is dropped.
func GenerateSlots(rule domain.AvailabilityRule) ([]domain.Slot, error) {
	start, err := timeofday.ToMinutes(rule.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: start_time: %v", domain.ErrInvalidFormat, err)
	}
	end, err := timeofday.ToMinutes(rule.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: end_time: %v", domain.ErrInvalidFormat, err)
	}
	if start >= end {
		return nil, domain.ErrInvalidRange
	}

	switch rule.Mode {
	case domain.SchedulingModeStream:
		return []domain.Slot{{
			StartTime: rule.StartTime,
			EndTime:   rule.EndTime,
			Capacity:  1,
			Mode:      domain.SchedulingModeStream,
			RuleID:    rule.ID,
		}}, nil

	case domain.SchedulingModeWave:
		if rule.SlotDuration == nil {
			return nil, domain.MissingField("slot_duration")
		}
		if rule.CapacityPerSlot == nil {
			return nil, domain.MissingField("capacity_per_slot")
		}
		step := *rule.SlotDuration
		if step <= 0 {
			return nil, domain.OutOfBounds("slot_duration")
		}

		slots := make([]domain.Slot, 0, (end-start)/step)
		for t := start; t+step <= end; t += step {
			slots = append(slots, domain.Slot{
				StartTime: timeofday.ToTimeString(t),
				EndTime:   timeofday.ToTimeString(t + step),
				Capacity:  *rule.CapacityPerSlot,
				Mode:      domain.SchedulingModeWave,
				RuleID:    rule.ID,
			})
		}
		return slots, nil
	}

	return nil, fmt.Errorf("%w: mode %q", domain.ErrInvalidFormat, rule.Mode)
}
