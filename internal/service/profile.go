package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"docslot/internal/domain"
	"docslot/internal/repository"
)

type ProfileServiceImpl struct {
	repo   repository.ProfileRepository
	logger *zap.Logger
}

func NewProfileService(repo repository.ProfileRepository, logger *zap.Logger) *ProfileServiceImpl {
	return &ProfileServiceImpl{
		repo:   repo,
		logger: logger,
	}
}

func (s *ProfileServiceImpl) PractitionerIDByUser(ctx context.Context, userID int64) (int64, error) {
	practitioner, err := s.repo.GetPractitionerByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("ошибка получения профиля специалиста", zap.Int64("userID", userID), zap.Error(err))
		return 0, fmt.Errorf("ошибка получения профиля специалиста: %w", err)
	}
	if practitioner == nil {
		return 0, domain.ErrPractitionerNotFound
	}
	return practitioner.ID, nil
}

func (s *ProfileServiceImpl) ClientIDByUser(ctx context.Context, userID int64) (int64, error) {
	client, err := s.repo.GetClientByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("ошибка получения профиля клиента", zap.Int64("userID", userID), zap.Error(err))
		return 0, fmt.Errorf("ошибка получения профиля клиента: %w", err)
	}
	if client == nil {
		return 0, domain.ErrClientNotFound
	}
	return client.ID, nil
}
