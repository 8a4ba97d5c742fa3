package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"docslot/internal/domain"
)

const uniqueViolation = "23505"

const bookingColumns = `id, practitioner_id, client_id, date, start_time, end_time, created_at`

type BookingRepo struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) *BookingRepo {
	return &BookingRepo{
		db: db,
	}
}

func (r *BookingRepo) CreateWithinCapacity(ctx context.Context, booking domain.Booking, capacity int) (*domain.Booking, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	// Held until commit or rollback, so concurrent allocations for the same
	// slot observe each other's inserts.
	lockKey := fmt.Sprintf("booking:%d:%s:%s", booking.PractitionerID, booking.Date, booking.StartTime)
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, lockKey); err != nil {
		return nil, fmt.Errorf("ошибка блокировки слота: %w", err)
	}

	var duplicate bool
	duplicateQuery := `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE practitioner_id = $1 AND client_id = $2 AND date = $3 AND start_time = $4
		)
	`
	err = tx.QueryRow(ctx, duplicateQuery,
		booking.PractitionerID, booking.ClientID, booking.Date, booking.StartTime,
	).Scan(&duplicate)
	if err != nil {
		return nil, fmt.Errorf("ошибка проверки повторной записи: %w", err)
	}
	if duplicate {
		return nil, domain.ErrDuplicateBooking
	}

	var count int
	countQuery := `
		SELECT COUNT(*)
		FROM bookings
		WHERE practitioner_id = $1 AND date = $2 AND start_time = $3
	`
	err = tx.QueryRow(ctx, countQuery, booking.PractitionerID, booking.Date, booking.StartTime).Scan(&count)
	if err != nil {
		return nil, fmt.Errorf("ошибка подсчета записей в слоте: %w", err)
	}
	if count >= capacity {
		return nil, domain.ErrSlotFull
	}

	insertQuery := `
		INSERT INTO bookings (practitioner_id, client_id, date, start_time, end_time, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + bookingColumns

	created, err := scanBooking(tx.QueryRow(ctx, insertQuery,
		booking.PractitionerID,
		booking.ClientID,
		booking.Date,
		booking.StartTime,
		booking.EndTime,
		time.Now(),
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicateBooking
		}
		return nil, fmt.Errorf("ошибка создания записи: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicateBooking
		}
		return nil, fmt.Errorf("ошибка при коммите транзакции: %w", err)
	}

	return created, nil
}

func (r *BookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения записи: %w", err)
	}

	return booking, nil
}

func (r *BookingRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления записи: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBookingNotFound
	}

	return nil
}

func (r *BookingRepo) ListForPractitioner(ctx context.Context, practitionerID int64) ([]domain.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE practitioner_id = $1
		ORDER BY date, start_time, id
	`

	return r.list(ctx, query, practitionerID)
}

func (r *BookingRepo) ListForClient(ctx context.Context, clientID int64) ([]domain.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE client_id = $1
		ORDER BY date, start_time, id
	`

	return r.list(ctx, query, clientID)
}

func (r *BookingRepo) CountByDate(ctx context.Context, practitionerID int64, date string) (map[string]int, error) {
	query := `
		SELECT start_time, COUNT(*)
		FROM bookings
		WHERE practitioner_id = $1 AND date = $2
		GROUP BY start_time
	`

	rows, err := r.db.Query(ctx, query, practitionerID, date)
	if err != nil {
		return nil, fmt.Errorf("ошибка подсчета записей за дату: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			start string
			count int
		)
		if err := rows.Scan(&start, &count); err != nil {
			return nil, fmt.Errorf("ошибка сканирования количества записей: %w", err)
		}
		counts[start] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения количества записей: %w", err)
	}

	return counts, nil
}

func (r *BookingRepo) list(ctx context.Context, query string, args ...interface{}) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка записей: %w", err)
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки записи: %w", err)
		}
		bookings = append(bookings, *booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения списка записей: %w", err)
	}

	return bookings, nil
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var booking domain.Booking
	err := row.Scan(
		&booking.ID,
		&booking.PractitionerID,
		&booking.ClientID,
		&booking.Date,
		&booking.StartTime,
		&booking.EndTime,
		&booking.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
