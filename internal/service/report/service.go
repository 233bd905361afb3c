package report

import (
	"context"
	"fmt"
	"io"

	"github.com/codemyown/leave-mangement-system/internal/domain/leave"
	"github.com/codemyown/leave-mangement-system/internal/domain/user"
	"github.com/codemyown/leave-mangement-system/internal/pkg/clock"
	"github.com/codemyown/leave-mangement-system/internal/pkg/pdf"
)

// ReportServiceImpl builds the department aggregate report and the per-user
// PDF export. It reads through the same repositories the lifecycle writes.
type ReportServiceImpl struct {
	leave.LeaveRequestRepository
	leave.LeaveBalanceRepository
	user.UserRepository
	clock clock.Clock
}

func NewReportService(
	leaveRequestRepo leave.LeaveRequestRepository,
	leaveBalanceRepo leave.LeaveBalanceRepository,
	userRepo user.UserRepository,
	clk clock.Clock,
) *ReportServiceImpl {
	return &ReportServiceImpl{
		LeaveRequestRepository: leaveRequestRepo,
		LeaveBalanceRepository: leaveBalanceRepo,
		UserRepository:         userRepo,
		clock:                  clk,
	}
}

// DepartmentReport aggregates request counts and approved working days per
// department.
func (r *ReportServiceImpl) DepartmentReport(ctx context.Context) ([]leave.DepartmentAggregate, error) {
	aggregates, err := r.LeaveRequestRepository.AggregateByDepartment(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate by department: %w", err)
	}
	return aggregates, nil
}

// ExportLeaveHistory writes the user's balances and full request history as a
// PDF document.
func (r *ReportServiceImpl) ExportLeaveHistory(ctx context.Context, userID string, w io.Writer) error {
	account, err := r.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	balances, err := r.LeaveBalanceRepository.ListByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to list balances: %w", err)
	}

	requests, _, err := r.LeaveRequestRepository.ListByUser(ctx, userID, leave.LeaveRequestFilter{Limit: 1000})
	if err != nil {
		return fmt.Errorf("failed to list requests: %w", err)
	}

	report := pdf.LeaveHistoryReport{
		Username:    account.Username,
		GeneratedAt: leave.FormatDate(clock.Today(r.clock)),
	}
	if account.Department != nil {
		report.Department = *account.Department
	}

	for _, b := range balances {
		line := pdf.BalanceLine{Balance: b.Balance}
		if b.LeaveTypeName != nil {
			line.LeaveTypeName = *b.LeaveTypeName
		}
		report.Balances = append(report.Balances, line)
	}

	for _, req := range requests {
		line := pdf.RequestLine{
			StartDate:   leave.FormatDate(req.StartDate),
			EndDate:     leave.FormatDate(req.EndDate),
			WorkingDays: req.WorkingDays,
			Status:      string(req.Status),
		}
		if req.LeaveTypeName != nil {
			line.LeaveTypeName = *req.LeaveTypeName
		}
		report.Requests = append(report.Requests, line)
	}

	if err := report.Render(w); err != nil {
		return fmt.Errorf("failed to render pdf: %w", err)
	}
	return nil
}
