package leave

import (
	"context"
	"time"
)

// LeaveTypeRepository - interface for leave_types table
type LeaveTypeRepository interface {
	Create(ctx context.Context, leaveType LeaveType) (LeaveType, error)
	GetByID(ctx context.Context, id string) (LeaveType, error)
	GetByName(ctx context.Context, name string) (LeaveType, error)
	GetByNames(ctx context.Context, names []string) ([]LeaveType, error)
	List(ctx context.Context) ([]LeaveType, error)
	Update(ctx context.Context, leaveType LeaveType) error
	Delete(ctx context.Context, id string) error
}

// LeaveBalanceRepository - interface for leave_balances table
type LeaveBalanceRepository interface {
	// GetByUserAndType returns ErrBalanceNotFound when no row exists.
	GetByUserAndType(ctx context.Context, userID, leaveTypeID string) (LeaveBalance, error)
	// GetOrCreate returns the existing row or creates one with the given
	// initial balance. Lookup-before-create, matching the single-row invariant.
	GetOrCreate(ctx context.Context, userID, leaveTypeID string, initial int) (LeaveBalance, error)
	// AddDays adjusts the balance by delta (negative to deduct).
	AddDays(ctx context.Context, id string, delta int) error
	// SetBalance overwrites the balance outright (yearly reset).
	SetBalance(ctx context.Context, id string, balance int) error
	ListByUser(ctx context.Context, userID string) ([]LeaveBalance, error)
}

// LeaveRequestFilter narrows request listings
type LeaveRequestFilter struct {
	LeaveTypeID *string
	Status      *LeaveRequestStatus
	StartDate   *time.Time
	EndDate     *time.Time
	Page        int
	Limit       int
}

// LeaveRequestRepository - interface for leave_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	ListByUser(ctx context.Context, userID string, filter LeaveRequestFilter) ([]LeaveRequest, int64, error)
	ListAll(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequest, int64, error)
	Update(ctx context.Context, update UpdateLeaveRequestInput) error
	// HasApprovedOverlap reports whether the user already has an approved
	// request whose inclusive range intersects [startDate, endDate].
	HasApprovedOverlap(ctx context.Context, userID string, startDate, endDate time.Time) (bool, error)
	// CountByStatusAndDepartment aggregates request counts and approved
	// working days per department for the report view.
	AggregateByDepartment(ctx context.Context) ([]DepartmentAggregate, error)
}
