package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/codemyown/leave-mangement-system/internal/domain/delegation"
	"github.com/codemyown/leave-mangement-system/internal/domain/holiday"
	"github.com/codemyown/leave-mangement-system/internal/domain/leave"
	"github.com/codemyown/leave-mangement-system/internal/domain/user"
	"github.com/codemyown/leave-mangement-system/internal/pkg/clock"
)

// CreateLeaveType registers a new leave type. A missing quota falls back to
// the default annual quota.
func (l *LeaveServiceImpl) CreateLeaveType(ctx context.Context, req leave.CreateLeaveTypeRequest) (leave.LeaveTypeResponse, error) {
	quota := leave.DefaultAnnualQuota
	if req.AnnualQuota != nil {
		quota = *req.AnnualQuota
	}

	created, err := l.LeaveTypeRepository.Create(ctx, leave.LeaveType{
		Name:         req.Name,
		AnnualQuota:  quota,
		CarryForward: req.CarryForward,
	})
	if err != nil {
		return leave.LeaveTypeResponse{}, err
	}
	return leave.NewLeaveTypeResponse(created), nil
}

// ListLeaveTypes lists all registered leave types.
func (l *LeaveServiceImpl) ListLeaveTypes(ctx context.Context) ([]leave.LeaveTypeResponse, error) {
	types, err := l.LeaveTypeRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}

	responses := make([]leave.LeaveTypeResponse, 0, len(types))
	for _, lt := range types {
		responses = append(responses, leave.NewLeaveTypeResponse(lt))
	}
	return responses, nil
}

// UpdateLeaveType updates a leave type's name, quota, or carry-forward flag.
func (l *LeaveServiceImpl) UpdateLeaveType(ctx context.Context, id string, req leave.CreateLeaveTypeRequest) (leave.LeaveTypeResponse, error) {
	existing, err := l.LeaveTypeRepository.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveTypeResponse{}, err
	}

	existing.Name = req.Name
	if req.AnnualQuota != nil {
		existing.AnnualQuota = *req.AnnualQuota
	}
	existing.CarryForward = req.CarryForward

	if err := l.LeaveTypeRepository.Update(ctx, existing); err != nil {
		return leave.LeaveTypeResponse{}, err
	}
	return leave.NewLeaveTypeResponse(existing), nil
}

// DeleteLeaveType removes a leave type.
func (l *LeaveServiceImpl) DeleteLeaveType(ctx context.Context, id string) error {
	return l.LeaveTypeRepository.Delete(ctx, id)
}

// AddHoliday registers a holiday date. The date must not already be taken.
func (l *LeaveServiceImpl) AddHoliday(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.Holiday, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return holiday.Holiday{}, leave.ErrInvalidDateRange
	}

	created, err := l.HolidayRepository.Create(ctx, holiday.Holiday{
		Date: clock.Day(date),
		Name: req.Name,
	})
	if err != nil {
		return holiday.Holiday{}, err
	}
	return created, nil
}

// ListHolidays lists the whole holiday registry in date order.
func (l *LeaveServiceImpl) ListHolidays(ctx context.Context) ([]holiday.Holiday, error) {
	holidays, err := l.HolidayRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	return holidays, nil
}

// DeleteHoliday removes a holiday from the registry. Working-day snapshots on
// existing requests are unaffected.
func (l *LeaveServiceImpl) DeleteHoliday(ctx context.Context, id string) error {
	return l.HolidayRepository.Delete(ctx, id)
}

// CreateDelegation hands the manager's approval authority to another manager
// for a date window.
func (l *LeaveServiceImpl) CreateDelegation(ctx context.Context, req delegation.CreateDelegationRequest) (delegation.Delegation, error) {
	if req.ManagerID == req.DelegateID {
		return delegation.Delegation{}, delegation.ErrSelfDelegation
	}

	delegate, err := l.UserRepository.GetByID(ctx, req.DelegateID)
	if err != nil {
		return delegation.Delegation{}, err
	}
	if !delegate.Has(user.CapabilityManager) {
		return delegation.Delegation{}, delegation.ErrDelegateNotManager
	}

	start, end, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return delegation.Delegation{}, err
	}

	created, err := l.DelegationRepository.Create(ctx, delegation.Delegation{
		ManagerID:  req.ManagerID,
		DelegateID: req.DelegateID,
		StartDate:  start,
		EndDate:    end,
	})
	if err != nil {
		return delegation.Delegation{}, fmt.Errorf("failed to create delegation: %w", err)
	}
	return created, nil
}

// ListMyDelegations lists the delegations a manager has handed out.
func (l *LeaveServiceImpl) ListMyDelegations(ctx context.Context, managerID string) ([]delegation.Delegation, error) {
	delegations, err := l.DelegationRepository.ListByManager(ctx, managerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list delegations: %w", err)
	}
	return delegations, nil
}

// DeleteDelegation revokes a delegation. Only the delegating manager may
// revoke it; anyone else's delegation behaves as not found.
func (l *LeaveServiceImpl) DeleteDelegation(ctx context.Context, managerID, id string) error {
	delegations, err := l.DelegationRepository.ListByManager(ctx, managerID)
	if err != nil {
		return fmt.Errorf("failed to list delegations: %w", err)
	}
	for _, d := range delegations {
		if d.ID == id {
			return l.DelegationRepository.Delete(ctx, id)
		}
	}
	return delegation.ErrDelegationNotFound
}
