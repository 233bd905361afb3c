package postgresql

import (
	"context"
	"errors"

	"github.com/codemyown/leave-mangement-system/internal/domain/leave"
	"github.com/codemyown/leave-mangement-system/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type leaveTypeRepositoryImpl struct {
	db *database.DB
}

func NewLeaveTypeRepository(db *database.DB) leave.LeaveTypeRepository {
	return &leaveTypeRepositoryImpl{db: db}
}

// Create implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) Create(ctx context.Context, lt leave.LeaveType) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO leave_types (id, name, annual_quota, carry_forward, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	if lt.ID == "" {
		lt.ID = uuid.NewString()
	}
	err := q.QueryRow(ctx, query, lt.ID, lt.Name, lt.AnnualQuota, lt.CarryForward).
		Scan(&lt.CreatedAt, &lt.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "leave_types_name_key") {
			return leave.LeaveType{}, leave.ErrLeaveTypeExists
		}
		return leave.LeaveType{}, err
	}
	return lt, nil
}

// GetByID implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, name, annual_quota, carry_forward, created_at, updated_at
		FROM leave_types
		WHERE id = $1
	`
	return scanLeaveType(q.QueryRow(ctx, query, id))
}

// GetByName implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) GetByName(ctx context.Context, name string) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, name, annual_quota, carry_forward, created_at, updated_at
		FROM leave_types
		WHERE name = $1
	`
	return scanLeaveType(q.QueryRow(ctx, query, name))
}

// GetByNames implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) GetByNames(ctx context.Context, names []string) ([]leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, name, annual_quota, carry_forward, created_at, updated_at
		FROM leave_types
		WHERE name = ANY($1)
		ORDER BY name
	`
	rows, err := q.Query(ctx, query, names)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectLeaveTypes(rows)
}

// List implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) List(ctx context.Context) ([]leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, name, annual_quota, carry_forward, created_at, updated_at
		FROM leave_types
		ORDER BY name
	`
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectLeaveTypes(rows)
}

// Update implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) Update(ctx context.Context, lt leave.LeaveType) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE leave_types
		SET name = $2, annual_quota = $3, carry_forward = $4, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query, lt.ID, lt.Name, lt.AnnualQuota, lt.CarryForward)
	if err != nil {
		if isUniqueViolation(err, "leave_types_name_key") {
			return leave.ErrLeaveTypeExists
		}
		return err
	}
	if tag.RowsAffected() != 1 {
		return leave.ErrLeaveTypeNotFound
	}
	return nil
}

// Delete implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)
	query := `DELETE FROM leave_types WHERE id = $1`
	tag, err := q.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return leave.ErrLeaveTypeNotFound
	}
	return nil
}

func scanLeaveType(row pgx.Row) (leave.LeaveType, error) {
	var lt leave.LeaveType
	err := row.Scan(&lt.ID, &lt.Name, &lt.AnnualQuota, &lt.CarryForward, &lt.CreatedAt, &lt.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
		}
		return leave.LeaveType{}, err
	}
	return lt, nil
}

func collectLeaveTypes(rows pgx.Rows) ([]leave.LeaveType, error) {
	var types []leave.LeaveType
	for rows.Next() {
		lt, err := scanLeaveType(rows)
		if err != nil {
			return nil, err
		}
		types = append(types, lt)
	}
	return types, rows.Err()
}
