package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/codemyown/leave-mangement-system/internal/domain/delegation"
	"github.com/codemyown/leave-mangement-system/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type delegationRepositoryImpl struct {
	db *database.DB
}

func NewDelegationRepository(db *database.DB) delegation.DelegationRepository {
	return &delegationRepositoryImpl{db: db}
}

const delegationColumns = `
	d.id, d.manager_id, d.delegate_id, d.start_date, d.end_date, d.created_at,
	m.username, g.username`

// Create implements delegation.DelegationRepository.
func (r *delegationRepositoryImpl) Create(ctx context.Context, d delegation.Delegation) (delegation.Delegation, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO delegations (id, manager_id, delegate_id, start_date, end_date, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING created_at
	`
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	err := q.QueryRow(ctx, query, d.ID, d.ManagerID, d.DelegateID, d.StartDate, d.EndDate).
		Scan(&d.CreatedAt)
	if err != nil {
		return delegation.Delegation{}, err
	}
	return d, nil
}

// ActiveForManager implements delegation.DelegationRepository. Overlapping
// windows resolve to the most recently created delegation.
func (r *delegationRepositoryImpl) ActiveForManager(ctx context.Context, managerID string, date time.Time) (*delegation.Delegation, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + delegationColumns + `
		FROM delegations d
		JOIN users m ON m.id = d.manager_id
		JOIN users g ON g.id = d.delegate_id
		WHERE d.manager_id = $1 AND d.start_date <= $2 AND d.end_date >= $2
		ORDER BY d.created_at DESC
		LIMIT 1
	`
	d, err := scanDelegation(q.QueryRow(ctx, query, managerID, date))
	if err != nil {
		if errors.Is(err, delegation.ErrDelegationNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

// ListByManager implements delegation.DelegationRepository.
func (r *delegationRepositoryImpl) ListByManager(ctx context.Context, managerID string) ([]delegation.Delegation, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + delegationColumns + `
		FROM delegations d
		JOIN users m ON m.id = d.manager_id
		JOIN users g ON g.id = d.delegate_id
		WHERE d.manager_id = $1
		ORDER BY d.start_date DESC
	`
	rows, err := q.Query(ctx, query, managerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDelegations(rows)
}

// List implements delegation.DelegationRepository.
func (r *delegationRepositoryImpl) List(ctx context.Context) ([]delegation.Delegation, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + delegationColumns + `
		FROM delegations d
		JOIN users m ON m.id = d.manager_id
		JOIN users g ON g.id = d.delegate_id
		ORDER BY d.start_date DESC
	`
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDelegations(rows)
}

// Delete implements delegation.DelegationRepository.
func (r *delegationRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)
	query := `DELETE FROM delegations WHERE id = $1`
	tag, err := q.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return delegation.ErrDelegationNotFound
	}
	return nil
}

func scanDelegation(row pgx.Row) (delegation.Delegation, error) {
	var d delegation.Delegation
	err := row.Scan(
		&d.ID, &d.ManagerID, &d.DelegateID, &d.StartDate, &d.EndDate, &d.CreatedAt,
		&d.ManagerName, &d.DelegateName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return delegation.Delegation{}, delegation.ErrDelegationNotFound
		}
		return delegation.Delegation{}, err
	}
	return d, nil
}

func collectDelegations(rows pgx.Rows) ([]delegation.Delegation, error) {
	var delegations []delegation.Delegation
	for rows.Next() {
		d, err := scanDelegation(rows)
		if err != nil {
			return nil, err
		}
		delegations = append(delegations, d)
	}
	return delegations, rows.Err()
}
