package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"docslot/internal/domain"
)

type Repositories struct {
	Rule    AvailabilityRuleRepository
	Booking BookingRepository
	Profile ProfileRepository
}

func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		Rule:    NewAvailabilityRuleRepository(db),
		Booking: NewBookingRepository(db),
		Profile: NewProfileRepository(db),
	}
}

// NewMemoryRepositories returns process-local stores. Capacity guarantees
// hold only while every writer shares this process.
func NewMemoryRepositories() *Repositories {
	return &Repositories{
		Rule:    NewMemoryRuleRepository(),
		Booking: NewMemoryBookingRepository(),
		Profile: NewMemoryProfileRepository().WithAutoProvision(),
	}
}

// RuleCheck inspects the practitioner's rules that share the candidate's
// recurrence class and key and rejects the write by returning an error.
type RuleCheck func(existing []domain.AvailabilityRule) error

type AvailabilityRuleRepository interface {
	// CreateChecked and UpdateChecked run check and the write as one unit,
	// serialized against other rule writes of the same practitioner.
	CreateChecked(ctx context.Context, rule domain.AvailabilityRule, check RuleCheck) (*domain.AvailabilityRule, error)
	UpdateChecked(ctx context.Context, rule domain.AvailabilityRule, check RuleCheck) (*domain.AvailabilityRule, error)
	GetByID(ctx context.Context, id int64) (*domain.AvailabilityRule, error)
	Delete(ctx context.Context, id, practitionerID int64) error
	ListByPractitioner(ctx context.Context, practitionerID int64) ([]domain.AvailabilityRule, error)
	ListByWeekday(ctx context.Context, practitionerID int64, weekday domain.Weekday) ([]domain.AvailabilityRule, error)
	ListByDate(ctx context.Context, practitionerID int64, date string) ([]domain.AvailabilityRule, error)
}

type BookingRepository interface {
	// CreateWithinCapacity inserts booking unless the client already holds
	// the slot or capacity bookings exist for it. The duplicate check, the
	// count and the insert are linearizable per (practitioner, date, start).
	CreateWithinCapacity(ctx context.Context, booking domain.Booking, capacity int) (*domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Delete(ctx context.Context, id int64) error
	ListForPractitioner(ctx context.Context, practitionerID int64) ([]domain.Booking, error)
	ListForClient(ctx context.Context, clientID int64) ([]domain.Booking, error)
	// CountByDate returns booking counts keyed by slot start time.
	CountByDate(ctx context.Context, practitionerID int64, date string) (map[string]int, error)
}

type ProfileRepository interface {
	PractitionerExists(ctx context.Context, id int64) (bool, error)
	ClientExists(ctx context.Context, id int64) (bool, error)
	GetPractitionerByUserID(ctx context.Context, userID int64) (*domain.Practitioner, error)
	GetClientByUserID(ctx context.Context, userID int64) (*domain.Client, error)
}
