package repository

import (
	"context"
	"errors"
	"sync"
	"testing"

	"docslot/internal/domain"
)

func intPtr(v int) *int { return &v }

func weeklyRule(practitionerID int64, day domain.Weekday, start, end string) domain.AvailabilityRule {
	return domain.AvailabilityRule{
		PractitionerID:  practitionerID,
		Recurrence:      domain.RecurrenceRecurring,
		Weekday:         &day,
		StartTime:       start,
		EndTime:         end,
		Mode:            domain.SchedulingModeWave,
		SlotDuration:    intPtr(30),
		CapacityPerSlot: intPtr(2),
	}
}

func acceptAll([]domain.AvailabilityRule) error { return nil }

func TestMemoryRuleRepository_CheckSeesSameKeyRulesOnly(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRuleRepository()

	if _, err := repo.CreateChecked(ctx, weeklyRule(1, domain.Monday, "09:00", "10:00"), acceptAll); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if _, err := repo.CreateChecked(ctx, weeklyRule(1, domain.Tuesday, "09:00", "10:00"), acceptAll); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if _, err := repo.CreateChecked(ctx, weeklyRule(2, domain.Monday, "09:00", "10:00"), acceptAll); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	var seen []domain.AvailabilityRule
	_, err := repo.CreateChecked(ctx, weeklyRule(1, domain.Monday, "11:00", "12:00"), func(existing []domain.AvailabilityRule) error {
		seen = existing
		return nil
	})
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	if len(seen) != 1 || *seen[0].Weekday != domain.Monday || seen[0].PractitionerID != 1 {
		t.Errorf("ожидалось одно правило на понедельник специалиста 1, получено %+v", seen)
	}
}

func TestMemoryRuleRepository_RejectedCheckWritesNothing(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRuleRepository()
	reject := errors.New("rejected")

	_, err := repo.CreateChecked(ctx, weeklyRule(1, domain.Monday, "09:00", "10:00"), func([]domain.AvailabilityRule) error {
		return reject
	})
	if !errors.Is(err, reject) {
		t.Fatalf("ожидалась ошибка проверки, получено %v", err)
	}

	rules, _ := repo.ListByPractitioner(ctx, 1)
	if len(rules) != 0 {
		t.Errorf("правило не должно сохраняться, получено %d", len(rules))
	}
}

func TestMemoryRuleRepository_UpdateAndDeleteRequireOwner(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRuleRepository()

	created, err := repo.CreateChecked(ctx, weeklyRule(1, domain.Monday, "09:00", "10:00"), acceptAll)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	foreign := weeklyRule(2, domain.Monday, "10:00", "11:00")
	foreign.ID = created.ID
	if _, err := repo.UpdateChecked(ctx, foreign, acceptAll); !errors.Is(err, domain.ErrRuleNotFound) {
		t.Errorf("ожидалась ErrRuleNotFound при обновлении чужого правила, получено %v", err)
	}
	if err := repo.Delete(ctx, created.ID, 2); !errors.Is(err, domain.ErrRuleNotFound) {
		t.Errorf("ожидалась ErrRuleNotFound при удалении чужого правила, получено %v", err)
	}

	own := weeklyRule(1, domain.Monday, "10:00", "11:00")
	own.ID = created.ID
	updated, err := repo.UpdateChecked(ctx, own, acceptAll)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if updated.StartTime != "10:00" || !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("неверный результат обновления: %+v", updated)
	}

	if err := repo.Delete(ctx, created.ID, 1); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if rule, _ := repo.GetByID(ctx, created.ID); rule != nil {
		t.Errorf("правило должно быть удалено")
	}
}

func TestMemoryRuleRepository_ListOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRuleRepository()
	date := "2026-03-02"

	custom := domain.AvailabilityRule{
		PractitionerID:       1,
		Recurrence:           domain.RecurrenceCustom,
		Date:                 &date,
		StartTime:            "08:00",
		EndTime:              "09:00",
		Mode:                 domain.SchedulingModeStream,
		ConsultationDuration: intPtr(15),
	}

	for _, rule := range []domain.AvailabilityRule{
		custom,
		weeklyRule(1, domain.Friday, "09:00", "10:00"),
		weeklyRule(1, domain.Monday, "14:00", "15:00"),
		weeklyRule(1, domain.Monday, "09:00", "10:00"),
	} {
		if _, err := repo.CreateChecked(ctx, rule, acceptAll); err != nil {
			t.Fatalf("неожиданная ошибка: %v", err)
		}
	}

	rules, err := repo.ListByPractitioner(ctx, 1)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	want := []string{"Monday 09:00", "Monday 14:00", "Friday 09:00", "2026-03-02 08:00"}
	for i, rule := range rules {
		if got := rule.RecurrenceKey() + " " + rule.StartTime; got != want[i] {
			t.Errorf("позиция %d: получено %q, ожидалось %q", i, got, want[i])
		}
	}
}

func TestMemoryBookingRepository_CapacityAndDuplicate(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryBookingRepository()

	booking := domain.Booking{PractitionerID: 1, ClientID: 10, Date: "2026-02-16", StartTime: "09:00", EndTime: "09:30"}
	if _, err := repo.CreateWithinCapacity(ctx, booking, 2); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if _, err := repo.CreateWithinCapacity(ctx, booking, 2); !errors.Is(err, domain.ErrDuplicateBooking) {
		t.Errorf("ожидалась ErrDuplicateBooking, получено %v", err)
	}

	booking.ClientID = 11
	if _, err := repo.CreateWithinCapacity(ctx, booking, 2); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	booking.ClientID = 12
	if _, err := repo.CreateWithinCapacity(ctx, booking, 2); !errors.Is(err, domain.ErrSlotFull) {
		t.Errorf("ожидалась ErrSlotFull, получено %v", err)
	}

	counts, _ := repo.CountByDate(ctx, 1, "2026-02-16")
	if counts["09:00"] != 2 {
		t.Errorf("ожидалось 2 записи на 09:00, получено %d", counts["09:00"])
	}
}

func TestMemoryBookingRepository_ConcurrentCapacity(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryBookingRepository()
	const capacity = 5

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
		full    int
	)

	for i := 0; i < capacity*4; i++ {
		wg.Add(1)
		go func(clientID int64) {
			defer wg.Done()
			_, err := repo.CreateWithinCapacity(ctx, domain.Booking{
				PractitionerID: 1, ClientID: clientID, Date: "2026-02-16", StartTime: "09:00", EndTime: "09:30",
			}, capacity)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				success++
			case errors.Is(err, domain.ErrSlotFull):
				full++
			default:
				t.Errorf("неожиданная ошибка: %v", err)
			}
		}(int64(100 + i))
	}
	wg.Wait()

	if success != capacity || full != capacity*3 {
		t.Errorf("успешных %d (ожидалось %d), отказов %d (ожидалось %d)", success, capacity, full, capacity*3)
	}
}

func TestMemoryBookingRepository_ListOrderAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryBookingRepository()

	for _, b := range []domain.Booking{
		{PractitionerID: 1, ClientID: 10, Date: "2026-02-17", StartTime: "09:00", EndTime: "09:30"},
		{PractitionerID: 1, ClientID: 10, Date: "2026-02-16", StartTime: "10:00", EndTime: "10:30"},
		{PractitionerID: 1, ClientID: 11, Date: "2026-02-16", StartTime: "09:00", EndTime: "09:30"},
	} {
		if _, err := repo.CreateWithinCapacity(ctx, b, 1); err != nil {
			t.Fatalf("неожиданная ошибка: %v", err)
		}
	}

	list, _ := repo.ListForPractitioner(ctx, 1)
	if len(list) != 3 || list[0].StartTime != "09:00" || list[1].StartTime != "10:00" || list[2].Date != "2026-02-17" {
		t.Errorf("неверный порядок записей: %+v", list)
	}

	mine, _ := repo.ListForClient(ctx, 10)
	if len(mine) != 2 || mine[0].Date != "2026-02-16" {
		t.Errorf("неверный список клиента: %+v", mine)
	}

	if err := repo.Delete(ctx, list[0].ID); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if err := repo.Delete(ctx, list[0].ID); !errors.Is(err, domain.ErrBookingNotFound) {
		t.Errorf("ожидалась ErrBookingNotFound, получено %v", err)
	}
}

func TestMemoryProfileRepository_AutoProvision(t *testing.T) {
	ctx := context.Background()

	strict := NewMemoryProfileRepository()
	if p, _ := strict.GetPractitionerByUserID(ctx, 5); p != nil {
		t.Errorf("без автосоздания профиль не должен появляться")
	}

	auto := NewMemoryProfileRepository().WithAutoProvision()
	p, _ := auto.GetPractitionerByUserID(ctx, 5)
	if p == nil || p.ID != 5 {
		t.Fatalf("ожидался профиль специалиста 5, получено %+v", p)
	}
	if ok, _ := auto.PractitionerExists(ctx, 5); !ok {
		t.Errorf("созданный профиль должен существовать")
	}
}
