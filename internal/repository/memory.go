package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"docslot/internal/domain"
)

// keyedMutex hands out one mutex per key. Entries are never evicted; the
// key space is bounded by practitioners and slots seen by the process.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*sync.Mutex)}
}

func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &sync.Mutex{}
		k.locks[key] = l
	}
	k.mu.Unlock()

	l.Lock()
	return l.Unlock
}

type MemoryRuleRepository struct {
	mu     sync.RWMutex
	nextID int64
	rules  map[int64]domain.AvailabilityRule
	writes *keyedMutex
}

func NewMemoryRuleRepository() *MemoryRuleRepository {
	return &MemoryRuleRepository{
		rules:  make(map[int64]domain.AvailabilityRule),
		writes: newKeyedMutex(),
	}
}

func (r *MemoryRuleRepository) CreateChecked(ctx context.Context, rule domain.AvailabilityRule, check RuleCheck) (*domain.AvailabilityRule, error) {
	unlock := r.writes.Lock(fmt.Sprintf("rules:%d", rule.PractitionerID))
	defer unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := check(r.sameKey(rule, 0)); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	now := time.Now()
	rule.ID = r.nextID
	rule.CreatedAt = now
	rule.UpdatedAt = now
	r.rules[rule.ID] = rule

	return &rule, nil
}

func (r *MemoryRuleRepository) UpdateChecked(ctx context.Context, rule domain.AvailabilityRule, check RuleCheck) (*domain.AvailabilityRule, error) {
	unlock := r.writes.Lock(fmt.Sprintf("rules:%d", rule.PractitionerID))
	defer unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	current, ok := r.rules[rule.ID]
	r.mu.RUnlock()
	if !ok || current.PractitionerID != rule.PractitionerID {
		return nil, domain.ErrRuleNotFound
	}

	if err := check(r.sameKey(rule, rule.ID)); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rule.CreatedAt = current.CreatedAt
	rule.UpdatedAt = time.Now()
	r.rules[rule.ID] = rule

	return &rule, nil
}

func (r *MemoryRuleRepository) GetByID(_ context.Context, id int64) (*domain.AvailabilityRule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rule, ok := r.rules[id]
	if !ok {
		return nil, nil
	}
	return &rule, nil
}

func (r *MemoryRuleRepository) Delete(_ context.Context, id, practitionerID int64) error {
	unlock := r.writes.Lock(fmt.Sprintf("rules:%d", practitionerID))
	defer unlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	rule, ok := r.rules[id]
	if !ok || rule.PractitionerID != practitionerID {
		return domain.ErrRuleNotFound
	}
	delete(r.rules, id)
	return nil
}

func (r *MemoryRuleRepository) ListByPractitioner(_ context.Context, practitionerID int64) ([]domain.AvailabilityRule, error) {
	rules := r.filter(func(rule domain.AvailabilityRule) bool {
		return rule.PractitionerID == practitionerID
	})

	sort.SliceStable(rules, func(i, j int) bool {
		a, b := rules[i], rules[j]
		if a.Recurrence != b.Recurrence {
			return a.Recurrence == domain.RecurrenceRecurring
		}
		if a.Recurrence == domain.RecurrenceRecurring && *a.Weekday != *b.Weekday {
			return a.Weekday.Order() < b.Weekday.Order()
		}
		if a.Recurrence == domain.RecurrenceCustom && *a.Date != *b.Date {
			return *a.Date < *b.Date
		}
		return a.StartTime < b.StartTime
	})

	return rules, nil
}

func (r *MemoryRuleRepository) ListByWeekday(_ context.Context, practitionerID int64, weekday domain.Weekday) ([]domain.AvailabilityRule, error) {
	rules := r.filter(func(rule domain.AvailabilityRule) bool {
		return rule.PractitionerID == practitionerID &&
			rule.Recurrence == domain.RecurrenceRecurring &&
			rule.Weekday != nil && *rule.Weekday == weekday
	})
	sortByStart(rules)
	return rules, nil
}

func (r *MemoryRuleRepository) ListByDate(_ context.Context, practitionerID int64, date string) ([]domain.AvailabilityRule, error) {
	rules := r.filter(func(rule domain.AvailabilityRule) bool {
		return rule.PractitionerID == practitionerID &&
			rule.Recurrence == domain.RecurrenceCustom &&
			rule.Date != nil && *rule.Date == date
	})
	sortByStart(rules)
	return rules, nil
}

func (r *MemoryRuleRepository) sameKey(rule domain.AvailabilityRule, excludeID int64) []domain.AvailabilityRule {
	key := rule.RecurrenceKey()
	return r.filter(func(existing domain.AvailabilityRule) bool {
		return existing.ID != excludeID &&
			existing.PractitionerID == rule.PractitionerID &&
			existing.Recurrence == rule.Recurrence &&
			existing.RecurrenceKey() == key
	})
}

func (r *MemoryRuleRepository) filter(keep func(domain.AvailabilityRule) bool) []domain.AvailabilityRule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rules := make([]domain.AvailabilityRule, 0)
	for _, rule := range r.rules {
		if keep(rule) {
			rules = append(rules, rule)
		}
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].ID < rules[j].ID })
	return rules
}

func sortByStart(rules []domain.AvailabilityRule) {
	sort.SliceStable(rules, func(i, j int) bool { return rules[i].StartTime < rules[j].StartTime })
}

type MemoryBookingRepository struct {
	mu       sync.RWMutex
	nextID   int64
	bookings map[int64]domain.Booking
	slots    *keyedMutex
}

func NewMemoryBookingRepository() *MemoryBookingRepository {
	return &MemoryBookingRepository{
		bookings: make(map[int64]domain.Booking),
		slots:    newKeyedMutex(),
	}
}

func (r *MemoryBookingRepository) CreateWithinCapacity(ctx context.Context, booking domain.Booking, capacity int) (*domain.Booking, error) {
	unlock := r.slots.Lock(fmt.Sprintf("booking:%d:%s:%s", booking.PractitionerID, booking.Date, booking.StartTime))
	defer unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	count := 0
	for _, b := range r.bookings {
		if b.PractitionerID != booking.PractitionerID || b.Date != booking.Date || b.StartTime != booking.StartTime {
			continue
		}
		if b.ClientID == booking.ClientID {
			r.mu.RUnlock()
			return nil, domain.ErrDuplicateBooking
		}
		count++
	}
	r.mu.RUnlock()

	if count >= capacity {
		return nil, domain.ErrSlotFull
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	booking.ID = r.nextID
	booking.CreatedAt = time.Now()
	r.bookings[booking.ID] = booking

	return &booking, nil
}

func (r *MemoryBookingRepository) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	booking, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}
	return &booking, nil
}

func (r *MemoryBookingRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bookings[id]; !ok {
		return domain.ErrBookingNotFound
	}
	delete(r.bookings, id)
	return nil
}

func (r *MemoryBookingRepository) ListForPractitioner(_ context.Context, practitionerID int64) ([]domain.Booking, error) {
	return r.filter(func(b domain.Booking) bool { return b.PractitionerID == practitionerID }), nil
}

func (r *MemoryBookingRepository) ListForClient(_ context.Context, clientID int64) ([]domain.Booking, error) {
	return r.filter(func(b domain.Booking) bool { return b.ClientID == clientID }), nil
}

func (r *MemoryBookingRepository) CountByDate(_ context.Context, practitionerID int64, date string) (map[string]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[string]int)
	for _, b := range r.bookings {
		if b.PractitionerID == practitionerID && b.Date == date {
			counts[b.StartTime]++
		}
	}
	return counts, nil
}

func (r *MemoryBookingRepository) filter(keep func(domain.Booking) bool) []domain.Booking {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bookings := make([]domain.Booking, 0)
	for _, b := range r.bookings {
		if keep(b) {
			bookings = append(bookings, b)
		}
	}

	sort.Slice(bookings, func(i, j int) bool {
		a, b := bookings[i], bookings[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.StartTime != b.StartTime {
			return a.StartTime < b.StartTime
		}
		return a.ID < b.ID
	})
	return bookings
}

// MemoryProfileRepository keeps practitioner and client profiles in memory.
// With auto-provisioning enabled, an unknown user id resolves to a profile
// whose id equals the user id.
type MemoryProfileRepository struct {
	mu            sync.RWMutex
	autoProvision bool
	practitioners map[int64]domain.Practitioner
	clients       map[int64]domain.Client
}

func NewMemoryProfileRepository() *MemoryProfileRepository {
	return &MemoryProfileRepository{
		practitioners: make(map[int64]domain.Practitioner),
		clients:       make(map[int64]domain.Client),
	}
}

func (r *MemoryProfileRepository) WithAutoProvision() *MemoryProfileRepository {
	r.autoProvision = true
	return r
}

func (r *MemoryProfileRepository) AddPractitioner(p domain.Practitioner) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	r.practitioners[p.ID] = p
}

func (r *MemoryProfileRepository) AddClient(c domain.Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	r.clients[c.ID] = c
}

func (r *MemoryProfileRepository) PractitionerExists(_ context.Context, id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.practitioners[id]
	return ok, nil
}

func (r *MemoryProfileRepository) ClientExists(_ context.Context, id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.clients[id]
	return ok, nil
}

func (r *MemoryProfileRepository) GetPractitionerByUserID(_ context.Context, userID int64) (*domain.Practitioner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.practitioners {
		if p.UserID == userID {
			return &p, nil
		}
	}
	if !r.autoProvision {
		return nil, nil
	}

	p := domain.Practitioner{ID: userID, UserID: userID, CreatedAt: time.Now()}
	r.practitioners[p.ID] = p
	return &p, nil
}

func (r *MemoryProfileRepository) GetClientByUserID(_ context.Context, userID int64) (*domain.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.clients {
		if c.UserID == userID {
			return &c, nil
		}
	}
	if !r.autoProvision {
		return nil, nil
	}

	c := domain.Client{ID: userID, UserID: userID, CreatedAt: time.Now()}
	r.clients[c.ID] = c
	return &c, nil
}
