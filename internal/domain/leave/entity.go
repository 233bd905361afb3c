package leave

import "time"

// LeaveType is administrator-managed reference data
type LeaveType struct {
	ID           string
	Name         string
	AnnualQuota  int
	CarryForward bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DefaultAnnualQuota applies when an administrator creates a type without one.
const DefaultAnnualQuota = 12

// LeaveBalance is the remaining day count for one (user, leave type) pair.
// At most one row exists per pair, enforced by get-or-create semantics.
type LeaveBalance struct {
	ID          string
	UserID      string
	LeaveTypeID string
	Balance     int
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined for responses
	LeaveTypeName *string
}

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending   LeaveRequestStatus = "pending"
	LeaveRequestStatusApproved  LeaveRequestStatus = "approved"
	LeaveRequestStatusRejected  LeaveRequestStatus = "rejected"
	LeaveRequestStatusCancelled LeaveRequestStatus = "cancelled"
)

// LeaveRequest entity. TotalDays is the calendar span of the range;
// WorkingDays is the holiday-excluded count snapshot taken at submission,
// and is the figure charged against (and refunded to) the balance.
type LeaveRequest struct {
	ID          string
	UserID      string
	LeaveTypeID string

	StartDate time.Time
	EndDate   time.Time

	Reason      string
	TotalDays   int
	WorkingDays int

	Status     LeaveRequestStatus
	ApproverID *string
	Comments   *string

	SubmittedAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined for responses
	LeaveTypeName *string
	Username      *string
	Department    *string
}

// CanCancel reports whether the request may still transition to cancelled on
// the given day: pending or approved, and strictly before the start date.
func (r *LeaveRequest) CanCancel(today time.Time) bool {
	if r.Status != LeaveRequestStatusPending && r.Status != LeaveRequestStatusApproved {
		return false
	}
	return r.StartDate.After(today)
}
