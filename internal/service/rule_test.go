package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.uber.org/zap"

	"docslot/internal/domain"
	"docslot/internal/repository"
)

func waveSpec(day domain.Weekday, start, end string) domain.RuleSpec {
	return domain.RuleSpec{
		Recurrence:      domain.RecurrenceRecurring,
		Weekday:         &day,
		StartTime:       start,
		EndTime:         end,
		Mode:            domain.SchedulingModeWave,
		SlotDuration:    intPtr(30),
		CapacityPerSlot: intPtr(2),
	}
}

func newTestRuleService() *RuleServiceImpl {
	return NewRuleService(repository.NewMemoryRuleRepository(), zap.NewNop())
}

func TestRuleService_CreateRejectsOverlap(t *testing.T) {
	ctx := context.Background()
	svc := newTestRuleService()

	first, err := svc.Create(ctx, 1, waveSpec(domain.Monday, "09:00", "10:00"))
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	_, err = svc.Create(ctx, 1, waveSpec(domain.Monday, "09:30", "11:00"))
	var oe *domain.OverlapError
	if !errors.As(err, &oe) || oe.RuleID != first.ID {
		t.Errorf("ожидался конфликт с правилом %d, получено %v", first.ID, err)
	}

	if _, err := svc.Create(ctx, 2, waveSpec(domain.Monday, "09:30", "11:00")); err != nil {
		t.Errorf("правила разных специалистов не конфликтуют: %v", err)
	}
	if _, err := svc.Create(ctx, 1, waveSpec(domain.Monday, "10:00", "11:00")); err != nil {
		t.Errorf("смежные интервалы не конфликтуют: %v", err)
	}
}

func TestRuleService_CreateValidatesBeforeStore(t *testing.T) {
	ctx := context.Background()
	svc := newTestRuleService()

	spec := waveSpec(domain.Monday, "09:00", "10:00")
	spec.CapacityPerSlot = nil
	if _, err := svc.Create(ctx, 1, spec); !errors.Is(err, domain.ErrMissingField) {
		t.Errorf("ожидалась ErrMissingField, получено %v", err)
	}

	rules, _ := svc.List(ctx, 1)
	if len(rules) != 0 {
		t.Errorf("отклоненное правило не должно сохраняться: %+v", rules)
	}
}

func TestRuleService_Update(t *testing.T) {
	ctx := context.Background()
	svc := newTestRuleService()

	rule, _ := svc.Create(ctx, 1, waveSpec(domain.Monday, "09:00", "10:00"))
	other, _ := svc.Create(ctx, 1, waveSpec(domain.Monday, "12:00", "13:00"))

	updated, err := svc.Update(ctx, rule.ID, 1, waveSpec(domain.Monday, "09:30", "11:00"))
	if err != nil {
		t.Fatalf("правило не должно конфликтовать со своей прежней версией: %v", err)
	}
	if updated.StartTime != "09:30" || updated.ID != rule.ID {
		t.Errorf("неверный результат обновления: %+v", updated)
	}

	_, err = svc.Update(ctx, rule.ID, 1, waveSpec(domain.Monday, "11:30", "12:30"))
	var oe *domain.OverlapError
	if !errors.As(err, &oe) || oe.RuleID != other.ID {
		t.Errorf("ожидался конфликт с правилом %d, получено %v", other.ID, err)
	}

	current, _ := svc.GetByID(ctx, rule.ID, 1)
	if current.StartTime != "09:30" {
		t.Errorf("отклоненное обновление не должно менять правило: %+v", current)
	}

	if _, err := svc.Update(ctx, rule.ID, 2, waveSpec(domain.Friday, "09:00", "10:00")); !errors.Is(err, domain.ErrRuleNotFound) {
		t.Errorf("чужое правило должно быть не найдено, получено %v", err)
	}
	if _, err := svc.Update(ctx, 999, 1, waveSpec(domain.Friday, "09:00", "10:00")); !errors.Is(err, domain.ErrRuleNotFound) {
		t.Errorf("ожидалась ErrRuleNotFound, получено %v", err)
	}
}

func TestRuleService_DeleteAndGet(t *testing.T) {
	ctx := context.Background()
	svc := newTestRuleService()

	rule, _ := svc.Create(ctx, 1, waveSpec(domain.Monday, "09:00", "10:00"))

	if _, err := svc.GetByID(ctx, rule.ID, 2); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("чужое правило не должно отдаваться, получено %v", err)
	}
	if err := svc.Delete(ctx, rule.ID, 2); !errors.Is(err, domain.ErrRuleNotFound) {
		t.Errorf("ожидалась ErrRuleNotFound, получено %v", err)
	}
	if err := svc.Delete(ctx, rule.ID, 1); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if err := svc.Delete(ctx, rule.ID, 1); !errors.Is(err, domain.ErrRuleNotFound) {
		t.Errorf("повторное удаление: ожидалась ErrRuleNotFound, получено %v", err)
	}
}

func TestRuleService_ConcurrentOverlappingCreates(t *testing.T) {
	ctx := context.Background()
	svc := newTestRuleService()

	const writers = 8
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
		overlaps int
	)

	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Create(ctx, 1, waveSpec(domain.Wednesday, "09:00", "10:00"))

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				accepted++
			case errors.Is(err, domain.ErrOverlap):
				overlaps++
			default:
				t.Errorf("неожиданная ошибка: %v", err)
			}
		}()
	}
	wg.Wait()

	if accepted != 1 || overlaps != writers-1 {
		t.Errorf("принято %d, конфликтов %d", accepted, overlaps)
	}
}
