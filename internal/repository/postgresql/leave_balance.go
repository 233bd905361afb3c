package postgresql

import (
	"context"
	"errors"

	"github.com/codemyown/leave-mangement-system/internal/domain/leave"
	"github.com/codemyown/leave-mangement-system/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type leaveBalanceRepositoryImpl struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.LeaveBalanceRepository {
	return &leaveBalanceRepositoryImpl{db: db}
}

// GetByUserAndType implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) GetByUserAndType(ctx context.Context, userID, leaveTypeID string) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT lb.id, lb.user_id, lb.leave_type_id, lb.balance, lb.created_at, lb.updated_at,
			   lt.name
		FROM leave_balances lb
		JOIN leave_types lt ON lt.id = lb.leave_type_id
		WHERE lb.user_id = $1 AND lb.leave_type_id = $2
	`
	var b leave.LeaveBalance
	err := q.QueryRow(ctx, query, userID, leaveTypeID).Scan(
		&b.ID, &b.UserID, &b.LeaveTypeID, &b.Balance, &b.CreatedAt, &b.UpdatedAt,
		&b.LeaveTypeName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveBalance{}, leave.ErrBalanceNotFound
		}
		return leave.LeaveBalance{}, err
	}
	return b, nil
}

// GetOrCreate implements leave.LeaveBalanceRepository. A missing row is
// created with the given initial balance; an existing row is returned as-is.
func (r *leaveBalanceRepositoryImpl) GetOrCreate(ctx context.Context, userID, leaveTypeID string, initial int) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO leave_balances (id, user_id, leave_type_id, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (user_id, leave_type_id)
		DO UPDATE SET updated_at = leave_balances.updated_at
		RETURNING id, user_id, leave_type_id, balance, created_at, updated_at
	`
	var b leave.LeaveBalance
	err := q.QueryRow(ctx, query, uuid.NewString(), userID, leaveTypeID, initial).Scan(
		&b.ID, &b.UserID, &b.LeaveTypeID, &b.Balance, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return leave.LeaveBalance{}, err
	}
	return b, nil
}

// AddDays implements leave.LeaveBalanceRepository. Delta may be negative;
// balances are clamped at zero on the way down.
func (r *leaveBalanceRepositoryImpl) AddDays(ctx context.Context, id string, delta int) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE leave_balances
		SET balance = GREATEST(balance + $2, 0), updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query, id, delta)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return leave.ErrBalanceNotFound
	}
	return nil
}

// SetBalance implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) SetBalance(ctx context.Context, id string, balance int) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE leave_balances
		SET balance = $2, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query, id, balance)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return leave.ErrBalanceNotFound
	}
	return nil
}

// ListByUser implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) ListByUser(ctx context.Context, userID string) ([]leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT lb.id, lb.user_id, lb.leave_type_id, lb.balance, lb.created_at, lb.updated_at,
			   lt.name
		FROM leave_balances lb
		JOIN leave_types lt ON lt.id = lb.leave_type_id
		WHERE lb.user_id = $1
		ORDER BY lt.name
	`
	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var balances []leave.LeaveBalance
	for rows.Next() {
		var b leave.LeaveBalance
		err := rows.Scan(
			&b.ID, &b.UserID, &b.LeaveTypeID, &b.Balance, &b.CreatedAt, &b.UpdatedAt,
			&b.LeaveTypeName,
		)
		if err != nil {
			return nil, err
		}
		balances = append(balances, b)
	}
	return balances, rows.Err()
}
