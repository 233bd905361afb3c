package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/codemyown/leave-mangement-system/internal/domain/user"
)

// ActiveApprovers resolves who may approve leave on the given date: every
// manager, with a delegate substituted wherever a delegation window covers
// the date. The result is keyed by user ID, so a delegate standing in for
// several managers (or who is also a manager) appears exactly once.
func (l *LeaveServiceImpl) ActiveApprovers(ctx context.Context, date time.Time) (map[string]user.User, error) {
	managers, err := l.UserRepository.ListManagers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list managers: %w", err)
	}

	approvers := make(map[string]user.User, len(managers))
	for _, m := range managers {
		active, err := l.DelegationRepository.ActiveForManager(ctx, m.ID, date)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve delegation for manager %s: %w", m.ID, err)
		}
		if active == nil {
			approvers[m.ID] = m
			continue
		}

		delegate, err := l.UserRepository.GetByID(ctx, active.DelegateID)
		if err != nil {
			return nil, fmt.Errorf("failed to get delegate %s: %w", active.DelegateID, err)
		}
		approvers[delegate.ID] = delegate
	}

	return approvers, nil
}

// approverList flattens the approver set for notification fan-out.
func approverList(approvers map[string]user.User) []user.User {
	list := make([]user.User, 0, len(approvers))
	for _, a := range approvers {
		list = append(list, a)
	}
	return list
}
