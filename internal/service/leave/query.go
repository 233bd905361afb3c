package leave

import (
	"context"
	"fmt"

	"github.com/codemyown/leave-mangement-system/internal/domain/holiday"
	"github.com/codemyown/leave-mangement-system/internal/domain/leave"
	"github.com/codemyown/leave-mangement-system/internal/pkg/clock"
)

// GetRequest fetches one request. Callers without the manager capability only
// see their own rows; anyone else's request behaves as not found.
func (l *LeaveServiceImpl) GetRequest(ctx context.Context, callerID string, callerIsManager bool, requestID string) (leave.LeaveRequestResponse, error) {
	request, err := l.LeaveRequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if !callerIsManager && request.UserID != callerID {
		return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestNotFound
	}
	return leave.NewLeaveRequestResponse(request), nil
}

// ListMyRequests returns the caller's own request history, newest first.
func (l *LeaveServiceImpl) ListMyRequests(ctx context.Context, userID string, filter leave.LeaveRequestFilter) ([]leave.LeaveRequestResponse, int64, error) {
	requests, total, err := l.LeaveRequestRepository.ListByUser(ctx, userID, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return toRequestResponses(requests), total, nil
}

// ListAllRequests returns every request matching the filter, for the manager
// review queue and history views.
func (l *LeaveServiceImpl) ListAllRequests(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequestResponse, int64, error) {
	requests, total, err := l.LeaveRequestRepository.ListAll(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return toRequestResponses(requests), total, nil
}

// ListPendingRequests is the approval queue: all pending requests.
func (l *LeaveServiceImpl) ListPendingRequests(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequestResponse, int64, error) {
	pending := leave.LeaveRequestStatusPending
	filter.Status = &pending
	return l.ListAllRequests(ctx, filter)
}

// ListMyBalances returns one balance row per leave type for the user,
// creating missing rows at the type's annual quota so a new employee sees a
// full set.
func (l *LeaveServiceImpl) ListMyBalances(ctx context.Context, userID string) ([]leave.LeaveBalanceResponse, error) {
	types, err := l.LeaveTypeRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}

	responses := make([]leave.LeaveBalanceResponse, 0, len(types))
	for _, lt := range types {
		balance, err := l.LeaveBalanceRepository.GetOrCreate(ctx, userID, lt.ID, lt.AnnualQuota)
		if err != nil {
			return nil, fmt.Errorf("failed to get balance for type %s: %w", lt.ID, err)
		}
		balance.LeaveTypeName = &lt.Name
		responses = append(responses, leave.NewLeaveBalanceResponse(balance))
	}
	return responses, nil
}

// UpcomingHolidays lists registry holidays from today through today+days.
func (l *LeaveServiceImpl) UpcomingHolidays(ctx context.Context, days int) ([]holiday.Holiday, error) {
	today := clock.Today(l.clock)
	holidays, err := l.HolidayRepository.GetByDateRange(ctx, today, today.AddDate(0, 0, days))
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming holidays: %w", err)
	}
	return holidays, nil
}

func toRequestResponses(requests []leave.LeaveRequest) []leave.LeaveRequestResponse {
	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, leave.NewLeaveRequestResponse(r))
	}
	return responses
}
