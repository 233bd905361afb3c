package leave

import (
	"time"

	"github.com/codemyown/leave-mangement-system/internal/pkg/validator"
)

type CreateLeaveTypeRequest struct {
	Name         string `json:"name"`
	AnnualQuota  *int   `json:"annual_quota,omitempty"`
	CarryForward bool   `json:"carry_forward"`
}

func (r *CreateLeaveTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if len(r.Name) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 100 characters",
		})
	}
	if r.AnnualQuota != nil && *r.AnnualQuota < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "annual_quota",
			Message: "annual_quota must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// CreateLeaveRequestRequest carries an apply-leave submission. UserID comes
// from the JWT claims, never from the request body.
type CreateLeaveRequestRequest struct {
	UserID      string `json:"-"`
	LeaveTypeID string `json:"leave_type_id"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Reason      string `json:"reason"`
}

func (r *CreateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_id",
			Message: "leave_type_id is required",
		})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be a date in YYYY-MM-DD format",
		})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be a date in YYYY-MM-DD format",
		})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type DecideLeaveRequestRequest struct {
	RequestID string `json:"request_id"`
	Comments  string `json:"comments"`
}

func (r *DecideLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RequestID) {
		errs = append(errs, validator.ValidationError{
			Field:   "request_id",
			Message: "request_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CancelLeaveRequestRequest struct {
	RequestID string `json:"request_id"`
	Reason    string `json:"reason"`
}

func (r *CancelLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RequestID) {
		errs = append(errs, validator.ValidationError{
			Field:   "request_id",
			Message: "request_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateLeaveRequestInput carries a partial update; nil fields are untouched.
type UpdateLeaveRequestInput struct {
	ID         string
	Status     *LeaveRequestStatus
	ApproverID *string
	Comments   *string
}

// DepartmentAggregate is one row of the department report
type DepartmentAggregate struct {
	Department       string `json:"department"`
	TotalRequests    int64  `json:"total_requests"`
	PendingCount     int64  `json:"pending_count"`
	ApprovedCount    int64  `json:"approved_count"`
	RejectedCount    int64  `json:"rejected_count"`
	CancelledCount   int64  `json:"cancelled_count"`
	ApprovedLeaveDay int64  `json:"approved_working_days"`
}

type LeaveTypeResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	AnnualQuota  int    `json:"annual_quota"`
	CarryForward bool   `json:"carry_forward"`
}

func NewLeaveTypeResponse(lt LeaveType) LeaveTypeResponse {
	return LeaveTypeResponse{
		ID:           lt.ID,
		Name:         lt.Name,
		AnnualQuota:  lt.AnnualQuota,
		CarryForward: lt.CarryForward,
	}
}

type LeaveBalanceResponse struct {
	LeaveTypeID   string `json:"leave_type_id"`
	LeaveTypeName string `json:"leave_type_name"`
	Balance       int    `json:"balance"`
}

func NewLeaveBalanceResponse(b LeaveBalance) LeaveBalanceResponse {
	resp := LeaveBalanceResponse{
		LeaveTypeID: b.LeaveTypeID,
		Balance:     b.Balance,
	}
	if b.LeaveTypeName != nil {
		resp.LeaveTypeName = *b.LeaveTypeName
	}
	return resp
}

type LeaveRequestResponse struct {
	ID            string  `json:"id"`
	UserID        string  `json:"user_id"`
	Username      string  `json:"username,omitempty"`
	Department    *string `json:"department,omitempty"`
	LeaveTypeID   string  `json:"leave_type_id"`
	LeaveTypeName string  `json:"leave_type_name,omitempty"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	Reason        string  `json:"reason"`
	TotalDays     int     `json:"total_days"`
	WorkingDays   int     `json:"working_days"`
	Status        string  `json:"status"`
	ApproverID    *string `json:"approver_id,omitempty"`
	Comments      *string `json:"comments,omitempty"`
	SubmittedAt   string  `json:"submitted_at"`
}

func NewLeaveRequestResponse(r LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:          r.ID,
		UserID:      r.UserID,
		Department:  r.Department,
		LeaveTypeID: r.LeaveTypeID,
		StartDate:   FormatDate(r.StartDate),
		EndDate:     FormatDate(r.EndDate),
		Reason:      r.Reason,
		TotalDays:   r.TotalDays,
		WorkingDays: r.WorkingDays,
		Status:      string(r.Status),
		ApproverID:  r.ApproverID,
		Comments:    r.Comments,
		SubmittedAt: r.SubmittedAt.Format(time.RFC3339),
	}
	if r.Username != nil {
		resp.Username = *r.Username
	}
	if r.LeaveTypeName != nil {
		resp.LeaveTypeName = *r.LeaveTypeName
	}
	return resp
}

// FormatDate renders a day-granular time the way the API speaks dates.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
