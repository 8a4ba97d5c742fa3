package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"docslot/internal/domain"
	"docslot/internal/repository"
)

type RuleServiceImpl struct {
	repo   repository.AvailabilityRuleRepository
	logger *zap.Logger
}

func NewRuleService(repo repository.AvailabilityRuleRepository, logger *zap.Logger) *RuleServiceImpl {
	return &RuleServiceImpl{
		repo:   repo,
		logger: logger,
	}
}

func (s *RuleServiceImpl) Create(ctx context.Context, practitionerID int64, spec domain.RuleSpec) (*domain.AvailabilityRule, error) {
	rule := BuildRule(practitionerID, spec)
	if err := ValidateRule(rule, nil); err != nil {
		return nil, err
	}

	created, err := s.repo.CreateChecked(ctx, rule, func(existing []domain.AvailabilityRule) error {
		return ValidateRule(rule, existing)
	})
	if err != nil {
		if isRuleRejection(err) {
			s.logger.Info("правило отклонено",
				zap.Int64("practitionerID", practitionerID), zap.Error(err))
			return nil, err
		}
		s.logger.Error("ошибка создания правила",
			zap.Int64("practitionerID", practitionerID), zap.Error(err))
		return nil, fmt.Errorf("ошибка создания правила: %w", err)
	}

	s.logger.Info("правило создано",
		zap.Int64("practitionerID", practitionerID),
		zap.Int64("ruleID", created.ID),
		zap.String("recurrence", string(created.Recurrence)),
		zap.String("mode", string(created.Mode)),
	)
	return created, nil
}

// Update replaces the rule with one built from spec. A rule owned by
// another practitioner is reported as not found.
func (s *RuleServiceImpl) Update(ctx context.Context, ruleID, practitionerID int64, spec domain.RuleSpec) (*domain.AvailabilityRule, error) {
	rule := BuildRule(practitionerID, spec)
	rule.ID = ruleID
	if err := ValidateRule(rule, nil); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateChecked(ctx, rule, func(existing []domain.AvailabilityRule) error {
		return ValidateRule(rule, existing)
	})
	if err != nil {
		if isRuleRejection(err) || errors.Is(err, domain.ErrNotFound) {
			s.logger.Info("обновление правила отклонено",
				zap.Int64("ruleID", ruleID), zap.Int64("practitionerID", practitionerID), zap.Error(err))
			return nil, err
		}
		s.logger.Error("ошибка обновления правила", zap.Int64("ruleID", ruleID), zap.Error(err))
		return nil, fmt.Errorf("ошибка обновления правила: %w", err)
	}

	return updated, nil
}

func (s *RuleServiceImpl) Delete(ctx context.Context, ruleID, practitionerID int64) error {
	if err := s.repo.Delete(ctx, ruleID, practitionerID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		s.logger.Error("ошибка удаления правила", zap.Int64("ruleID", ruleID), zap.Error(err))
		return fmt.Errorf("ошибка удаления правила: %w", err)
	}
	return nil
}

func (s *RuleServiceImpl) GetByID(ctx context.Context, ruleID, practitionerID int64) (*domain.AvailabilityRule, error) {
	rule, err := s.repo.GetByID(ctx, ruleID)
	if err != nil {
		s.logger.Error("ошибка получения правила", zap.Int64("ruleID", ruleID), zap.Error(err))
		return nil, fmt.Errorf("ошибка получения правила: %w", err)
	}
	if rule == nil || rule.PractitionerID != practitionerID {
		return nil, domain.ErrRuleNotFound
	}
	return rule, nil
}

// List returns weekly rules in weekday order followed by custom rules in
// date order.
func (s *RuleServiceImpl) List(ctx context.Context, practitionerID int64) ([]domain.AvailabilityRule, error) {
	rules, err := s.repo.ListByPractitioner(ctx, practitionerID)
	if err != nil {
		s.logger.Error("ошибка получения списка правил", zap.Int64("practitionerID", practitionerID), zap.Error(err))
		return nil, fmt.Errorf("ошибка получения списка правил: %w", err)
	}
	return rules, nil
}

func isRuleRejection(err error) bool {
	return errors.Is(err, domain.ErrOverlap) ||
		errors.Is(err, domain.ErrInvalidFormat) ||
		errors.Is(err, domain.ErrInvalidRange) ||
		errors.Is(err, domain.ErrMissingField) ||
		errors.Is(err, domain.ErrOutOfBounds)
}
