package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/codemyown/leave-mangement-system/internal/pkg/clock"
)

// Leave type names the credit jobs operate on. These match the seeded
// reference data.
const (
	CasualLeaveTypeName = "Casual"
	EarnedLeaveTypeName = "Earned"
	SickLeaveTypeName   = "Sick"
)

// RunDailyCredit is the cron entry point. It runs every day and fires the
// calendar-gated jobs: monthly accrual on the 1st, and the sick-leave reset
// on January 1st.
func (l *LeaveServiceImpl) RunDailyCredit(ctx context.Context) {
	today := clock.Today(l.clock)
	if today.Day() != 1 {
		return
	}

	if err := l.RunMonthlyAccrual(ctx); err != nil {
		slog.Error("Monthly leave accrual failed", "date", today.Format("2006-01-02"), "error", err)
	}

	if today.Month() == time.January {
		if err := l.RunYearlySickReset(ctx); err != nil {
			slog.Error("Yearly sick leave reset failed", "date", today.Format("2006-01-02"), "error", err)
		}
	}
}

// RunMonthlyAccrual credits one day of casual and earned leave to every
// employee. Missing balance rows are created at zero first, so a brand-new
// employee starts their accrual from this month.
func (l *LeaveServiceImpl) RunMonthlyAccrual(ctx context.Context) error {
	types, err := l.LeaveTypeRepository.GetByNames(ctx, []string{CasualLeaveTypeName, EarnedLeaveTypeName})
	if err != nil {
		return fmt.Errorf("failed to get accrual leave types: %w", err)
	}

	employees, err := l.UserRepository.ListEmployees(ctx)
	if err != nil {
		return fmt.Errorf("failed to list employees: %w", err)
	}

	err = l.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		for _, e := range employees {
			for _, lt := range types {
				balance, err := l.LeaveBalanceRepository.GetOrCreate(ctx, e.ID, lt.ID, 0)
				if err != nil {
					return fmt.Errorf("failed to get balance for user %s type %s: %w", e.ID, lt.ID, err)
				}
				if err := l.LeaveBalanceRepository.AddDays(ctx, balance.ID, 1); err != nil {
					return fmt.Errorf("failed to credit balance %s: %w", balance.ID, err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("Monthly leave accrual completed", "employees", len(employees), "types", len(types))
	return nil
}

// RunYearlySickReset sets every employee's sick leave balance back to the
// type's annual quota. Sick leave does not carry forward.
func (l *LeaveServiceImpl) RunYearlySickReset(ctx context.Context) error {
	sickType, err := l.LeaveTypeRepository.GetByName(ctx, SickLeaveTypeName)
	if err != nil {
		return fmt.Errorf("failed to get sick leave type: %w", err)
	}

	employees, err := l.UserRepository.ListEmployees(ctx)
	if err != nil {
		return fmt.Errorf("failed to list employees: %w", err)
	}

	err = l.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		for _, e := range employees {
			balance, err := l.LeaveBalanceRepository.GetOrCreate(ctx, e.ID, sickType.ID, sickType.AnnualQuota)
			if err != nil {
				return fmt.Errorf("failed to get balance for user %s: %w", e.ID, err)
			}
			if err := l.LeaveBalanceRepository.SetBalance(ctx, balance.ID, sickType.AnnualQuota); err != nil {
				return fmt.Errorf("failed to reset balance %s: %w", balance.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("Yearly sick leave reset completed", "employees", len(employees), "quota", sickType.AnnualQuota)
	return nil
}
