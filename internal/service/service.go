package service

import (
	"context"

	"go.uber.org/zap"

	"docslot/config"
	"docslot/internal/domain"
	"docslot/internal/repository"
	"docslot/internal/storage"
)

type Deps struct {
	Repos       *repository.Repositories
	Logger      *zap.Logger
	Config      *config.Config
	FileStorage storage.FileStorage
	Notifier    Notifier
}

type Services struct {
	Auth         AuthService
	Profile      ProfileService
	Rule         RuleService
	Availability AvailabilityService
	Booking      BookingService
	Export       ExportService
}

func NewServices(deps Deps) *Services {
	availability := NewAvailabilityService(deps.Repos.Rule, deps.Repos.Booking, deps.Logger)

	return &Services{
		Auth:         NewAuthService(deps.Config.JWT, deps.Logger),
		Profile:      NewProfileService(deps.Repos.Profile, deps.Logger),
		Rule:         NewRuleService(deps.Repos.Rule, deps.Logger),
		Availability: availability,
		Booking:      NewBookingService(deps.Repos.Booking, deps.Repos.Profile, availability, deps.Notifier, deps.Logger),
		Export:       NewExportService(deps.Repos.Booking, deps.FileStorage, deps.Config.S3.PresignTTL, deps.Logger),
	}
}

type AuthService interface {
	ParseToken(ctx context.Context, token string) (int64, domain.UserRole, error)
	IssueToken(userID int64, role domain.UserRole) (string, error)
}

type ProfileService interface {
	PractitionerIDByUser(ctx context.Context, userID int64) (int64, error)
	ClientIDByUser(ctx context.Context, userID int64) (int64, error)
}

type RuleService interface {
	Create(ctx context.Context, practitionerID int64, spec domain.RuleSpec) (*domain.AvailabilityRule, error)
	Update(ctx context.Context, ruleID, practitionerID int64, spec domain.RuleSpec) (*domain.AvailabilityRule, error)
	Delete(ctx context.Context, ruleID, practitionerID int64) error
	GetByID(ctx context.Context, ruleID, practitionerID int64) (*domain.AvailabilityRule, error)
	List(ctx context.Context, practitionerID int64) ([]domain.AvailabilityRule, error)
}

type AvailabilityService interface {
	ResolveSlots(ctx context.Context, practitionerID int64, date string) ([]domain.Slot, error)
	ResolveSlotsByWeekday(ctx context.Context, practitionerID int64, weekday domain.Weekday) ([]domain.Slot, error)
	FreeSlots(ctx context.Context, practitionerID int64, date string) ([]domain.SlotAvailability, error)
}

type BookingService interface {
	Book(ctx context.Context, practitionerID, clientID int64, date, startTime, endTime string) (*domain.Booking, error)
	Cancel(ctx context.Context, bookingID int64) error
	GetByID(ctx context.Context, bookingID int64) (*domain.Booking, error)
	ListForPractitioner(ctx context.Context, practitionerID int64) ([]domain.Booking, error)
	ListForClient(ctx context.Context, clientID int64) ([]domain.Booking, error)
}

type ExportService interface {
	ExportForPractitioner(ctx context.Context, practitionerID int64) (*domain.ExportResult, error)
}
