package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"docslot/internal/domain"
	"docslot/internal/repository"
)

type BookingServiceImpl struct {
	repo         repository.BookingRepository
	profileRepo  repository.ProfileRepository
	availability AvailabilityService
	notifier     Notifier
	logger       *zap.Logger
}

func NewBookingService(
	repo repository.BookingRepository,
	profileRepo repository.ProfileRepository,
	availability AvailabilityService,
	notifier Notifier,
	logger *zap.Logger,
) *BookingServiceImpl {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &BookingServiceImpl{
		repo:         repo,
		profileRepo:  profileRepo,
		availability: availability,
		notifier:     notifier,
		logger:       logger,
	}
}

// Book allocates one place in the slot [startTime, endTime) on date. The
// slot is re-derived from the current rules, so a rule changed after the
// client browsed is honoured. The duplicate check, the capacity check and
// the insert are a single store operation.
func (s *BookingServiceImpl) Book(ctx context.Context, practitionerID, clientID int64, date, startTime, endTime string) (*domain.Booking, error) {
	exists, err := s.profileRepo.PractitionerExists(ctx, practitionerID)
	if err != nil {
		s.logger.Error("ошибка проверки специалиста", zap.Int64("practitionerID", practitionerID), zap.Error(err))
		return nil, fmt.Errorf("ошибка проверки специалиста: %w", err)
	}
	if !exists {
		return nil, domain.ErrPractitionerNotFound
	}

	exists, err = s.profileRepo.ClientExists(ctx, clientID)
	if err != nil {
		s.logger.Error("ошибка проверки клиента", zap.Int64("clientID", clientID), zap.Error(err))
		return nil, fmt.Errorf("ошибка проверки клиента: %w", err)
	}
	if !exists {
		return nil, domain.ErrClientNotFound
	}

	slots, err := s.availability.ResolveSlots(ctx, practitionerID, date)
	if err != nil {
		return nil, err
	}

	capacity, found := 0, false
	for _, slot := range slots {
		if slot.StartTime == startTime && slot.EndTime == endTime {
			capacity, found = slot.Capacity, true
			break
		}
	}
	if !found {
		s.logger.Info("запрошенный слот не найден",
			zap.Int64("practitionerID", practitionerID),
			zap.String("date", date),
			zap.String("start", startTime),
			zap.String("end", endTime),
		)
		return nil, domain.ErrInvalidSlot
	}

	booking, err := s.repo.CreateWithinCapacity(ctx, domain.Booking{
		PractitionerID: practitionerID,
		ClientID:       clientID,
		Date:           date,
		StartTime:      startTime,
		EndTime:        endTime,
	}, capacity)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateBooking) || errors.Is(err, domain.ErrSlotFull) {
			s.logger.Info("запись отклонена",
				zap.Int64("practitionerID", practitionerID),
				zap.Int64("clientID", clientID),
				zap.String("date", date),
				zap.String("start", startTime),
				zap.Error(err),
			)
			return nil, err
		}
		s.logger.Error("ошибка создания записи", zap.Error(err))
		return nil, fmt.Errorf("ошибка создания записи: %w", err)
	}

	s.logger.Info("запись создана",
		zap.Int64("bookingID", booking.ID),
		zap.Int64("practitionerID", practitionerID),
		zap.Int64("clientID", clientID),
		zap.String("date", date),
		zap.String("start", startTime),
	)

	s.notifier.Publish(ctx, domain.BookingEvent{
		Type:       domain.BookingEventCreated,
		Booking:    *booking,
		OccurredAt: time.Now(),
	})

	return booking, nil
}

func (s *BookingServiceImpl) Cancel(ctx context.Context, bookingID int64) error {
	booking, err := s.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, bookingID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		s.logger.Error("ошибка отмены записи", zap.Int64("bookingID", bookingID), zap.Error(err))
		return fmt.Errorf("ошибка отмены записи: %w", err)
	}

	s.logger.Info("запись отменена", zap.Int64("bookingID", bookingID))

	s.notifier.Publish(ctx, domain.BookingEvent{
		Type:       domain.BookingEventCancelled,
		Booking:    *booking,
		OccurredAt: time.Now(),
	})

	return nil
}

func (s *BookingServiceImpl) GetByID(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		s.logger.Error("ошибка получения записи", zap.Int64("bookingID", bookingID), zap.Error(err))
		return nil, fmt.Errorf("ошибка получения записи: %w", err)
	}
	if booking == nil {
		return nil, domain.ErrBookingNotFound
	}
	return booking, nil
}

func (s *BookingServiceImpl) ListForPractitioner(ctx context.Context, practitionerID int64) ([]domain.Booking, error) {
	bookings, err := s.repo.ListForPractitioner(ctx, practitionerID)
	if err != nil {
		s.logger.Error("ошибка получения записей специалиста", zap.Int64("practitionerID", practitionerID), zap.Error(err))
		return nil, fmt.Errorf("ошибка получения записей специалиста: %w", err)
	}
	return bookings, nil
}

func (s *BookingServiceImpl) ListForClient(ctx context.Context, clientID int64) ([]domain.Booking, error) {
	bookings, err := s.repo.ListForClient(ctx, clientID)
	if err != nil {
		s.logger.Error("ошибка получения записей клиента", zap.Int64("clientID", clientID), zap.Error(err))
		return nil, fmt.Errorf("ошибка получения записей клиента: %w", err)
	}
	return bookings, nil
}
