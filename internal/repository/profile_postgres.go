package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"docslot/internal/domain"
)

// ProfileRepo reads the profile tables owned by the account service.
type ProfileRepo struct {
	db *pgxpool.Pool
}

func NewProfileRepository(db *pgxpool.Pool) *ProfileRepo {
	return &ProfileRepo{
		db: db,
	}
}

func (r *ProfileRepo) PractitionerExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM practitioners WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("ошибка проверки специалиста: %w", err)
	}
	return exists, nil
}

func (r *ProfileRepo) ClientExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM clients WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("ошибка проверки клиента: %w", err)
	}
	return exists, nil
}

func (r *ProfileRepo) GetPractitionerByUserID(ctx context.Context, userID int64) (*domain.Practitioner, error) {
	query := `SELECT id, user_id, full_name, created_at FROM practitioners WHERE user_id = $1`

	var p domain.Practitioner
	err := r.db.QueryRow(ctx, query, userID).Scan(&p.ID, &p.UserID, &p.FullName, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения специалиста по ID пользователя: %w", err)
	}

	return &p, nil
}

func (r *ProfileRepo) GetClientByUserID(ctx context.Context, userID int64) (*domain.Client, error) {
	query := `SELECT id, user_id, full_name, created_at FROM clients WHERE user_id = $1`

	var c domain.Client
	err := r.db.QueryRow(ctx, query, userID).Scan(&c.ID, &c.UserID, &c.FullName, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения клиента по ID пользователя: %w", err)
	}

	return &c, nil
}
