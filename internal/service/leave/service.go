package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/codemyown/leave-mangement-system/internal/domain/delegation"
	"github.com/codemyown/leave-mangement-system/internal/domain/holiday"
	"github.com/codemyown/leave-mangement-system/internal/domain/leave"
	"github.com/codemyown/leave-mangement-system/internal/domain/notification"
	"github.com/codemyown/leave-mangement-system/internal/domain/user"
	"github.com/codemyown/leave-mangement-system/internal/pkg/clock"
	"github.com/codemyown/leave-mangement-system/internal/repository/postgresql"
)

// LeaveServiceImpl owns the request lifecycle. Every transition runs inside a
// single transaction: the precondition reads and the row mutations commit or
// roll back together, so concurrent decisions on one request cannot
// double-deduct a balance.
type LeaveServiceImpl struct {
	tx postgresql.TxManager
	leave.LeaveTypeRepository
	leave.LeaveBalanceRepository
	leave.LeaveRequestRepository
	holiday.HolidayRepository
	delegation.DelegationRepository
	user.UserRepository
	notifier notification.NotificationService
	clock    clock.Clock
}

func NewLeaveService(
	tx postgresql.TxManager,
	leaveTypeRepo leave.LeaveTypeRepository,
	leaveBalanceRepo leave.LeaveBalanceRepository,
	leaveRequestRepo leave.LeaveRequestRepository,
	holidayRepo holiday.HolidayRepository,
	delegationRepo delegation.DelegationRepository,
	userRepo user.UserRepository,
	notifier notification.NotificationService,
	clk clock.Clock,
) *LeaveServiceImpl {
	return &LeaveServiceImpl{
		tx:                     tx,
		LeaveTypeRepository:    leaveTypeRepo,
		LeaveBalanceRepository: leaveBalanceRepo,
		LeaveRequestRepository: leaveRequestRepo,
		HolidayRepository:      holidayRepo,
		DelegationRepository:   delegationRepo,
		UserRepository:         userRepo,
		notifier:               notifier,
		clock:                  clk,
	}
}

// Submit creates a pending leave request for the requester. The working-day
// count is computed against the holiday registry once, here, and stored on
// the row; approval and cancellation reuse the snapshot so a later registry
// edit cannot skew the refund.
func (l *LeaveServiceImpl) Submit(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	requester, err := l.UserRepository.GetByID(ctx, req.UserID)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to get requester: %w", err)
	}
	if !requester.Has(user.CapabilityEmployee) {
		return leave.LeaveRequestResponse{}, user.ErrEmployeeAccessRequired
	}

	start, end, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	leaveType, err := l.LeaveTypeRepository.GetByID(ctx, req.LeaveTypeID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	workingDays, err := l.WorkingDays(ctx, start, end)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	totalDays := int(end.Sub(start).Hours()/24) + 1

	var created leave.LeaveRequest
	err = l.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		balance, err := l.LeaveBalanceRepository.GetOrCreate(ctx, requester.ID, leaveType.ID, leaveType.AnnualQuota)
		if err != nil {
			return fmt.Errorf("failed to get balance: %w", err)
		}
		if balance.Balance < workingDays {
			return leave.ErrInsufficientBalance
		}

		overlaps, err := l.LeaveRequestRepository.HasApprovedOverlap(ctx, requester.ID, start, end)
		if err != nil {
			return fmt.Errorf("failed to check approved overlap: %w", err)
		}
		if overlaps {
			return leave.ErrOverlappingApprovedLeave
		}

		created, err = l.LeaveRequestRepository.Create(ctx, leave.LeaveRequest{
			UserID:      requester.ID,
			LeaveTypeID: leaveType.ID,
			StartDate:   start,
			EndDate:     end,
			Reason:      req.Reason,
			TotalDays:   totalDays,
			WorkingDays: workingDays,
			Status:      leave.LeaveRequestStatusPending,
			SubmittedAt: l.clock.Now(),
		})
		if err != nil {
			return fmt.Errorf("failed to create leave request: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	created.LeaveTypeName = &leaveType.Name
	created.Username = &requester.Username
	created.Department = requester.Department

	l.notifySubmitted(ctx, requester, created)

	return leave.NewLeaveRequestResponse(created), nil
}

// Approve transitions a pending request to approved and deducts the working
// days from the requester's balance. The actor must be in the active-approver
// set for the request's start date.
func (l *LeaveServiceImpl) Approve(ctx context.Context, approverID string, req leave.DecideLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	return l.decide(ctx, approverID, req, leave.LeaveRequestStatusApproved)
}

// Reject transitions a pending request to rejected. The balance is untouched.
func (l *LeaveServiceImpl) Reject(ctx context.Context, approverID string, req leave.DecideLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	return l.decide(ctx, approverID, req, leave.LeaveRequestStatusRejected)
}

func (l *LeaveServiceImpl) decide(ctx context.Context, approverID string, req leave.DecideLeaveRequestRequest, decision leave.LeaveRequestStatus) (leave.LeaveRequestResponse, error) {
	var updated leave.LeaveRequest
	err := l.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		request, err := l.LeaveRequestRepository.GetByID(ctx, req.RequestID)
		if err != nil {
			return err
		}
		if request.Status != leave.LeaveRequestStatusPending {
			return leave.ErrAlreadyProcessed
		}

		approvers, err := l.ActiveApprovers(ctx, clock.Day(request.StartDate))
		if err != nil {
			return err
		}
		if _, ok := approvers[approverID]; !ok {
			return leave.ErrNotActiveApprover
		}

		if decision == leave.LeaveRequestStatusApproved {
			balance, err := l.LeaveBalanceRepository.GetByUserAndType(ctx, request.UserID, request.LeaveTypeID)
			if err != nil {
				return err
			}
			if balance.Balance < request.WorkingDays {
				return leave.ErrInsufficientBalance
			}

			overlaps, err := l.LeaveRequestRepository.HasApprovedOverlap(ctx, request.UserID, request.StartDate, request.EndDate)
			if err != nil {
				return fmt.Errorf("failed to check approved overlap: %w", err)
			}
			if overlaps {
				return leave.ErrOverlappingApprovedLeave
			}

			if err := l.LeaveBalanceRepository.AddDays(ctx, balance.ID, -request.WorkingDays); err != nil {
				return fmt.Errorf("failed to deduct balance: %w", err)
			}
		}

		update := leave.UpdateLeaveRequestInput{
			ID:         request.ID,
			Status:     &decision,
			ApproverID: &approverID,
		}
		if req.Comments != "" {
			update.Comments = &req.Comments
		}
		if err := l.LeaveRequestRepository.Update(ctx, update); err != nil {
			return fmt.Errorf("failed to update leave request: %w", err)
		}

		request.Status = decision
		request.ApproverID = &approverID
		request.Comments = update.Comments
		updated = request
		return nil
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	requester, err := l.UserRepository.GetByID(ctx, updated.UserID)
	if err != nil {
		slog.Error("Failed to get requester for decision notification", "request_id", updated.ID, "error", err)
	} else {
		l.notifier.LeaveDecided(ctx, requester, updated)
	}

	return leave.NewLeaveRequestResponse(updated), nil
}

// Cancel transitions a pending or approved request to cancelled, before its
// start date only. Cancelling an approved request refunds the snapshotted
// working days. A request owned by someone else behaves as not found.
func (l *LeaveServiceImpl) Cancel(ctx context.Context, userID string, req leave.CancelLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	var updated leave.LeaveRequest
	err := l.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		request, err := l.LeaveRequestRepository.GetByID(ctx, req.RequestID)
		if err != nil {
			return err
		}
		if request.UserID != userID {
			return leave.ErrLeaveRequestNotFound
		}

		if request.Status != leave.LeaveRequestStatusPending && request.Status != leave.LeaveRequestStatusApproved {
			return leave.ErrNotCancellable
		}
		if !request.StartDate.After(clock.Today(l.clock)) {
			return leave.ErrAlreadyStarted
		}

		if request.Status == leave.LeaveRequestStatusApproved {
			balance, err := l.LeaveBalanceRepository.GetByUserAndType(ctx, request.UserID, request.LeaveTypeID)
			if err != nil {
				return err
			}
			if err := l.LeaveBalanceRepository.AddDays(ctx, balance.ID, request.WorkingDays); err != nil {
				return fmt.Errorf("failed to refund balance: %w", err)
			}
		}

		status := leave.LeaveRequestStatusCancelled
		update := leave.UpdateLeaveRequestInput{
			ID:     request.ID,
			Status: &status,
		}
		if req.Reason != "" {
			update.Comments = &req.Reason
		}
		if err := l.LeaveRequestRepository.Update(ctx, update); err != nil {
			return fmt.Errorf("failed to update leave request: %w", err)
		}

		request.Status = status
		if update.Comments != nil {
			request.Comments = update.Comments
		}
		updated = request
		return nil
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	requester, err := l.UserRepository.GetByID(ctx, updated.UserID)
	if err != nil {
		slog.Error("Failed to get requester for cancellation notification", "request_id", updated.ID, "error", err)
		return leave.NewLeaveRequestResponse(updated), nil
	}

	approvers, err := l.ActiveApprovers(ctx, clock.Today(l.clock))
	if err != nil {
		slog.Error("Failed to resolve approvers for cancellation notification", "request_id", updated.ID, "error", err)
		return leave.NewLeaveRequestResponse(updated), nil
	}
	l.notifier.LeaveCancelled(ctx, requester, approverList(approvers), updated)

	return leave.NewLeaveRequestResponse(updated), nil
}

func (l *LeaveServiceImpl) notifySubmitted(ctx context.Context, requester user.User, request leave.LeaveRequest) {
	approvers, err := l.ActiveApprovers(ctx, clock.Today(l.clock))
	if err != nil {
		slog.Error("Failed to resolve approvers for submission notification", "request_id", request.ID, "error", err)
		return
	}
	l.notifier.LeaveSubmitted(ctx, requester, approverList(approvers), request)
}

func parseDateRange(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return time.Time{}, time.Time{}, leave.ErrInvalidDateRange
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return time.Time{}, time.Time{}, leave.ErrInvalidDateRange
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, leave.ErrInvalidDateRange
	}
	return clock.Day(start), clock.Day(end), nil
}
