package postgresql

import (
	"context"
	"time"

	"github.com/codemyown/leave-mangement-system/internal/domain/holiday"
	"github.com/codemyown/leave-mangement-system/internal/pkg/database"
	"github.com/google/uuid"
)

type holidayRepositoryImpl struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.HolidayRepository {
	return &holidayRepositoryImpl{db: db}
}

// Create implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO holidays (id, date, name, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING created_at
	`
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	err := q.QueryRow(ctx, query, h.ID, h.Date, h.Name).Scan(&h.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "holidays_date_key") {
			return holiday.Holiday{}, holiday.ErrDateTaken
		}
		return holiday.Holiday{}, err
	}
	return h, nil
}

// GetByDateRange implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) GetByDateRange(ctx context.Context, start, end time.Time) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, date, name, created_at
		FROM holidays
		WHERE date >= $1 AND date <= $2
		ORDER BY date
	`
	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holidays []holiday.Holiday
	for rows.Next() {
		var h holiday.Holiday
		if err := rows.Scan(&h.ID, &h.Date, &h.Name, &h.CreatedAt); err != nil {
			return nil, err
		}
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}

// List implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) List(ctx context.Context) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, date, name, created_at
		FROM holidays
		ORDER BY date
	`
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holidays []holiday.Holiday
	for rows.Next() {
		var h holiday.Holiday
		if err := rows.Scan(&h.ID, &h.Date, &h.Name, &h.CreatedAt); err != nil {
			return nil, err
		}
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}

// Delete implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)
	query := `DELETE FROM holidays WHERE id = $1`
	tag, err := q.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return holiday.ErrHolidayNotFound
	}
	return nil
}

// ExistsByDate implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) ExistsByDate(ctx context.Context, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT EXISTS (SELECT 1 FROM holidays WHERE date = $1)`
	var exists bool
	if err := q.QueryRow(ctx, query, date).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
