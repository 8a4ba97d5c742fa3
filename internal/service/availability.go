package service

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"docslot/internal/domain"
	"docslot/internal/repository"
	"docslot/pkg/timeofday"
)

type AvailabilityServiceImpl struct {
	ruleRepo    repository.AvailabilityRuleRepository
	bookingRepo repository.BookingRepository
	logger      *zap.Logger
}

func NewAvailabilityService(
	ruleRepo repository.AvailabilityRuleRepository,
	bookingRepo repository.BookingRepository,
	logger *zap.Logger,
) *AvailabilityServiceImpl {
	return &AvailabilityServiceImpl{
		ruleRepo:    ruleRepo,
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// ResolveSlots returns the slots bookable on date. Custom rules for the
// date replace the weekly rules of its weekday entirely.
func (s *AvailabilityServiceImpl) ResolveSlots(ctx context.Context, practitionerID int64, date string) ([]domain.Slot, error) {
	weekday, err := timeofday.WeekdayOf(date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidFormat, err)
	}

	rules, err := s.ruleRepo.ListByDate(ctx, practitionerID, date)
	if err != nil {
		s.logger.Error("ошибка получения правил на дату",
			zap.Int64("practitionerID", practitionerID), zap.String("date", date), zap.Error(err))
		return nil, fmt.Errorf("ошибка получения правил на дату: %w", err)
	}

	if len(rules) == 0 {
		rules, err = s.ruleRepo.ListByWeekday(ctx, practitionerID, domain.Weekday(weekday))
		if err != nil {
			s.logger.Error("ошибка получения еженедельных правил",
				zap.Int64("practitionerID", practitionerID), zap.String("weekday", weekday), zap.Error(err))
			return nil, fmt.Errorf("ошибка получения еженедельных правил: %w", err)
		}
	}

	return s.expand(rules)
}

// ResolveSlotsByWeekday describes a typical week: weekly rules only, no
// date overrides.
func (s *AvailabilityServiceImpl) ResolveSlotsByWeekday(ctx context.Context, practitionerID int64, weekday domain.Weekday) ([]domain.Slot, error) {
	if !weekday.IsValid() {
		return nil, fmt.Errorf("%w: weekday %q", domain.ErrInvalidFormat, weekday)
	}

	rules, err := s.ruleRepo.ListByWeekday(ctx, practitionerID, weekday)
	if err != nil {
		s.logger.Error("ошибка получения еженедельных правил",
			zap.Int64("practitionerID", practitionerID), zap.String("weekday", string(weekday)), zap.Error(err))
		return nil, fmt.Errorf("ошибка получения еженедельных правил: %w", err)
	}

	return s.expand(rules)
}

// FreeSlots annotates the slots of date with their current occupancy.
func (s *AvailabilityServiceImpl) FreeSlots(ctx context.Context, practitionerID int64, date string) ([]domain.SlotAvailability, error) {
	slots, err := s.ResolveSlots(ctx, practitionerID, date)
	if err != nil {
		return nil, err
	}

	counts, err := s.bookingRepo.CountByDate(ctx, practitionerID, date)
	if err != nil {
		s.logger.Error("ошибка подсчета записей",
			zap.Int64("practitionerID", practitionerID), zap.String("date", date), zap.Error(err))
		return nil, fmt.Errorf("ошибка подсчета записей: %w", err)
	}

	result := make([]domain.SlotAvailability, 0, len(slots))
	for _, slot := range slots {
		booked := counts[slot.StartTime]
		remaining := slot.Capacity - booked
		if remaining < 0 {
			remaining = 0
		}
		result = append(result, domain.SlotAvailability{
			Slot:      slot,
			Booked:    booked,
			Remaining: remaining,
		})
	}

	return result, nil
}

func (s *AvailabilityServiceImpl) expand(rules []domain.AvailabilityRule) ([]domain.Slot, error) {
	slots := make([]domain.Slot, 0)
	for _, rule := range rules {
		generated, err := GenerateSlots(rule)
		if err != nil {
			s.logger.Error("ошибка генерации слотов", zap.Int64("ruleID", rule.ID), zap.Error(err))
			return nil, fmt.Errorf("ошибка генерации слотов правила %d: %w", rule.ID, err)
		}
		slots = append(slots, generated...)
	}

	sort.SliceStable(slots, func(i, j int) bool {
		if slots[i].StartTime != slots[j].StartTime {
			return slots[i].StartTime < slots[j].StartTime
		}
		return slots[i].EndTime < slots[j].EndTime
	})

	return slots, nil
}
