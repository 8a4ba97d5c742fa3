package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"docslot/internal/domain"
)

const ruleColumns = `
	id, practitioner_id, recurrence, weekday, date, start_time, end_time, mode,
	slot_duration, capacity_per_slot, consultation_duration, created_at, updated_at
`

type AvailabilityRuleRepo struct {
	db *pgxpool.Pool
}

func NewAvailabilityRuleRepository(db *pgxpool.Pool) *AvailabilityRuleRepo {
	return &AvailabilityRuleRepo{
		db: db,
	}
}

func (r *AvailabilityRuleRepo) CreateChecked(ctx context.Context, rule domain.AvailabilityRule, check RuleCheck) (*domain.AvailabilityRule, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := lockPractitionerRules(ctx, tx, rule.PractitionerID); err != nil {
		return nil, err
	}

	existing, err := sameKeyRules(ctx, tx, rule, 0)
	if err != nil {
		return nil, err
	}
	if err := check(existing); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO availability_rules (
			practitioner_id, recurrence, weekday, date, start_time, end_time, mode,
			slot_duration, capacity_per_slot, consultation_duration, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
		RETURNING ` + ruleColumns

	now := time.Now()
	created, err := scanRule(tx.QueryRow(ctx, query,
		rule.PractitionerID,
		string(rule.Recurrence),
		weekdayArg(rule.Weekday),
		rule.Date,
		rule.StartTime,
		rule.EndTime,
		string(rule.Mode),
		rule.SlotDuration,
		rule.CapacityPerSlot,
		rule.ConsultationDuration,
		now,
	))
	if err != nil {
		return nil, fmt.Errorf("ошибка создания правила доступности: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("ошибка при коммите транзакции: %w", err)
	}

	return created, nil
}

func (r *AvailabilityRuleRepo) UpdateChecked(ctx context.Context, rule domain.AvailabilityRule, check RuleCheck) (*domain.AvailabilityRule, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := lockPractitionerRules(ctx, tx, rule.PractitionerID); err != nil {
		return nil, err
	}

	var ownerID int64
	err = tx.QueryRow(ctx, `SELECT practitioner_id FROM availability_rules WHERE id = $1`, rule.ID).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRuleNotFound
		}
		return nil, fmt.Errorf("ошибка получения правила доступности: %w", err)
	}
	if ownerID != rule.PractitionerID {
		return nil, domain.ErrRuleNotFound
	}

	existing, err := sameKeyRules(ctx, tx, rule, rule.ID)
	if err != nil {
		return nil, err
	}
	if err := check(existing); err != nil {
		return nil, err
	}

	query := `
		UPDATE availability_rules
		SET recurrence = $1, weekday = $2, date = $3, start_time = $4, end_time = $5, mode = $6,
			slot_duration = $7, capacity_per_slot = $8, consultation_duration = $9, updated_at = $10
		WHERE id = $11
		RETURNING ` + ruleColumns

	updated, err := scanRule(tx.QueryRow(ctx, query,
		string(rule.Recurrence),
		weekdayArg(rule.Weekday),
		rule.Date,
		rule.StartTime,
		rule.EndTime,
		string(rule.Mode),
		rule.SlotDuration,
		rule.CapacityPerSlot,
		rule.ConsultationDuration,
		time.Now(),
		rule.ID,
	))
	if err != nil {
		return nil, fmt.Errorf("ошибка обновления правила доступности: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("ошибка при коммите транзакции: %w", err)
	}

	return updated, nil
}

func (r *AvailabilityRuleRepo) GetByID(ctx context.Context, id int64) (*domain.AvailabilityRule, error) {
	query := `SELECT ` + ruleColumns + ` FROM availability_rules WHERE id = $1`

	rule, err := scanRule(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения правила доступности: %w", err)
	}

	return rule, nil
}

func (r *AvailabilityRuleRepo) Delete(ctx context.Context, id, practitionerID int64) error {
	query := `DELETE FROM availability_rules WHERE id = $1 AND practitioner_id = $2`

	tag, err := r.db.Exec(ctx, query, id, practitionerID)
	if err != nil {
		return fmt.Errorf("ошибка удаления правила доступности: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRuleNotFound
	}

	return nil
}

func (r *AvailabilityRuleRepo) ListByPractitioner(ctx context.Context, practitionerID int64) ([]domain.AvailabilityRule, error) {
	query := `
		SELECT ` + ruleColumns + `
		FROM availability_rules
		WHERE practitioner_id = $1
		ORDER BY recurrence DESC,
			array_position(ARRAY['Monday','Tuesday','Wednesday','Thursday','Friday','Saturday','Sunday'], weekday),
			date, start_time
	`

	return r.list(ctx, query, practitionerID)
}

func (r *AvailabilityRuleRepo) ListByWeekday(ctx context.Context, practitionerID int64, weekday domain.Weekday) ([]domain.AvailabilityRule, error) {
	query := `
		SELECT ` + ruleColumns + `
		FROM availability_rules
		WHERE practitioner_id = $1 AND recurrence = 'RECURRING' AND weekday = $2
		ORDER BY start_time
	`

	return r.list(ctx, query, practitionerID, string(weekday))
}

func (r *AvailabilityRuleRepo) ListByDate(ctx context.Context, practitionerID int64, date string) ([]domain.AvailabilityRule, error) {
	query := `
		SELECT ` + ruleColumns + `
		FROM availability_rules
		WHERE practitioner_id = $1 AND recurrence = 'CUSTOM' AND date = $2
		ORDER BY start_time
	`

	return r.list(ctx, query, practitionerID, date)
}

func (r *AvailabilityRuleRepo) list(ctx context.Context, query string, args ...interface{}) ([]domain.AvailabilityRule, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка правил доступности: %w", err)
	}
	defer rows.Close()

	return collectRules(rows)
}

// lockPractitionerRules serializes rule writes of one practitioner until
// the enclosing transaction ends.
func lockPractitionerRules(ctx context.Context, tx pgx.Tx, practitionerID int64) error {
	key := "rules:" + strconv.FormatInt(practitionerID, 10)
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, key); err != nil {
		return fmt.Errorf("ошибка блокировки правил специалиста: %w", err)
	}
	return nil
}

func sameKeyRules(ctx context.Context, tx pgx.Tx, rule domain.AvailabilityRule, excludeID int64) ([]domain.AvailabilityRule, error) {
	query := `
		SELECT ` + ruleColumns + `
		FROM availability_rules
		WHERE practitioner_id = $1 AND recurrence = $2 AND id <> $3
	`
	args := []interface{}{rule.PractitionerID, string(rule.Recurrence), excludeID}

	if rule.Recurrence == domain.RecurrenceRecurring {
		query += ` AND weekday = $4`
		args = append(args, weekdayArg(rule.Weekday))
	} else {
		query += ` AND date = $4`
		args = append(args, rule.Date)
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения правил специалиста: %w", err)
	}
	defer rows.Close()

	return collectRules(rows)
}

func collectRules(rows pgx.Rows) ([]domain.AvailabilityRule, error) {
	rules := make([]domain.AvailabilityRule, 0)
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки правила: %w", err)
		}
		rules = append(rules, *rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения правил доступности: %w", err)
	}

	return rules, nil
}

func scanRule(row pgx.Row) (*domain.AvailabilityRule, error) {
	var (
		rule       domain.AvailabilityRule
		recurrence string
		weekday    *string
		mode       string
	)

	err := row.Scan(
		&rule.ID,
		&rule.PractitionerID,
		&recurrence,
		&weekday,
		&rule.Date,
		&rule.StartTime,
		&rule.EndTime,
		&mode,
		&rule.SlotDuration,
		&rule.CapacityPerSlot,
		&rule.ConsultationDuration,
		&rule.CreatedAt,
		&rule.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	rule.Recurrence = domain.RecurrenceClass(recurrence)
	rule.Mode = domain.SchedulingMode(mode)
	if weekday != nil {
		day := domain.Weekday(*weekday)
		rule.Weekday = &day
	}

	return &rule, nil
}

func weekdayArg(day *domain.Weekday) *string {
	if day == nil {
		return nil
	}
	s := string(*day)
	return &s
}
