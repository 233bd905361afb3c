package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/codemyown/leave-mangement-system/internal/domain/leave"
	"github.com/codemyown/leave-mangement-system/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestColumns = `
	lr.id, lr.user_id, lr.leave_type_id, lr.start_date, lr.end_date,
	lr.reason, lr.total_days, lr.working_days, lr.status,
	lr.approver_id, lr.comments, lr.submitted_at, lr.created_at, lr.updated_at,
	lt.name, u.username, u.department`

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO leave_requests (
			id, user_id, leave_type_id, start_date, end_date,
			reason, total_days, working_days, status, submitted_at,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	if request.ID == "" {
		request.ID = uuid.NewString()
	}
	err := q.QueryRow(ctx, query,
		request.ID, request.UserID, request.LeaveTypeID,
		request.StartDate, request.EndDate,
		request.Reason, request.TotalDays, request.WorkingDays,
		request.Status, request.SubmittedAt,
	).Scan(&request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	return request, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests lr
		JOIN leave_types lt ON lt.id = lr.leave_type_id
		JOIN users u ON u.id = lr.user_id
		WHERE lr.id = $1
	`
	return scanLeaveRequest(q.QueryRow(ctx, query, id))
}

// ListByUser implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListByUser(ctx context.Context, userID string, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, int64, error) {
	conditions := []string{"lr.user_id = $1"}
	args := []any{userID}
	return r.list(ctx, filter, conditions, args)
}

// ListAll implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListAll(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, int64, error) {
	return r.list(ctx, filter, nil, nil)
}

func (r *leaveRequestRepositoryImpl) list(ctx context.Context, filter leave.LeaveRequestFilter, conditions []string, args []any) ([]leave.LeaveRequest, int64, error) {
	q := GetQuerier(ctx, r.db)

	if filter.LeaveTypeID != nil {
		args = append(args, *filter.LeaveTypeID)
		conditions = append(conditions, fmt.Sprintf("lr.leave_type_id = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("lr.status = $%d", len(args)))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		conditions = append(conditions, fmt.Sprintf("lr.end_date >= $%d", len(args)))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		conditions = append(conditions, fmt.Sprintf("lr.start_date <= $%d", len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM leave_requests lr
		%s
	`, where)

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 20
	}
	args = append(args, limit, (page-1)*limit)

	query := fmt.Sprintf(`
		SELECT %s
		FROM leave_requests lr
		JOIN leave_types lt ON lt.id = lr.leave_type_id
		JOIN users u ON u.id = lr.user_id
		%s
		ORDER BY lr.submitted_at DESC
		LIMIT $%d OFFSET $%d
	`, leaveRequestColumns, where, len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		req, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, 0, err
		}
		requests = append(requests, req)
	}
	return requests, total, rows.Err()
}

// Update implements leave.LeaveRequestRepository. Nil fields keep their
// stored value.
func (r *leaveRequestRepositoryImpl) Update(ctx context.Context, update leave.UpdateLeaveRequestInput) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE leave_requests
		SET status = COALESCE($2, status),
			approver_id = COALESCE($3, approver_id),
			comments = COALESCE($4, comments),
			updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query, update.ID, update.Status, update.ApproverID, update.Comments)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return leave.ErrLeaveRequestNotFound
	}
	return nil
}

// HasApprovedOverlap implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) HasApprovedOverlap(ctx context.Context, userID string, startDate, endDate time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM leave_requests
			WHERE user_id = $1
			  AND status = 'approved'
			  AND start_date <= $3
			  AND end_date >= $2
		)
	`
	var exists bool
	if err := q.QueryRow(ctx, query, userID, startDate, endDate).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// AggregateByDepartment implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) AggregateByDepartment(ctx context.Context) ([]leave.DepartmentAggregate, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT COALESCE(u.department, 'Unassigned'),
			   COUNT(*),
			   COUNT(*) FILTER (WHERE lr.status = 'pending'),
			   COUNT(*) FILTER (WHERE lr.status = 'approved'),
			   COUNT(*) FILTER (WHERE lr.status = 'rejected'),
			   COUNT(*) FILTER (WHERE lr.status = 'cancelled'),
			   COALESCE(SUM(lr.working_days) FILTER (WHERE lr.status = 'approved'), 0)
		FROM leave_requests lr
		JOIN users u ON u.id = lr.user_id
		GROUP BY COALESCE(u.department, 'Unassigned')
		ORDER BY COALESCE(u.department, 'Unassigned')
	`
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var aggregates []leave.DepartmentAggregate
	for rows.Next() {
		var a leave.DepartmentAggregate
		err := rows.Scan(
			&a.Department, &a.TotalRequests,
			&a.PendingCount, &a.ApprovedCount, &a.RejectedCount, &a.CancelledCount,
			&a.ApprovedLeaveDay,
		)
		if err != nil {
			return nil, err
		}
		aggregates = append(aggregates, a)
	}
	return aggregates, rows.Err()
}

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var req leave.LeaveRequest
	err := row.Scan(
		&req.ID, &req.UserID, &req.LeaveTypeID, &req.StartDate, &req.EndDate,
		&req.Reason, &req.TotalDays, &req.WorkingDays, &req.Status,
		&req.ApproverID, &req.Comments, &req.SubmittedAt, &req.CreatedAt, &req.UpdatedAt,
		&req.LeaveTypeName, &req.Username, &req.Department,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, err
	}
	return req, nil
}
