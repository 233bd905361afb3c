package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/codemyown/leave-mangement-system/internal/pkg/clock"
)

// WorkingDayDates lists every date in the inclusive range [start, end] that is
// not in the holiday list, in calendar order. Weekends are ordinary working
// days; only registered holidays are excluded. Empty when start > end.
func WorkingDayDates(start, end time.Time, holidays []time.Time) []time.Time {
	holidaySet := make(map[time.Time]struct{}, len(holidays))
	for _, h := range holidays {
		holidaySet[clock.Day(h)] = struct{}{}
	}

	var dates []time.Time
	for d := clock.Day(start); !d.After(clock.Day(end)); d = d.AddDate(0, 0, 1) {
		if _, excluded := holidaySet[d]; !excluded {
			dates = append(dates, d)
		}
	}
	return dates
}

// CountWorkingDays is the length of the working-day sequence for the range.
func CountWorkingDays(start, end time.Time, holidays []time.Time) int {
	return len(WorkingDayDates(start, end, holidays))
}

// WorkingDays counts the working days in [start, end] against the holiday
// registry. The result is snapshotted onto the request at submission and is
// the figure charged against the balance.
func (l *LeaveServiceImpl) WorkingDays(ctx context.Context, start, end time.Time) (int, error) {
	holidays, err := l.HolidayRepository.GetByDateRange(ctx, clock.Day(start), clock.Day(end))
	if err != nil {
		return 0, fmt.Errorf("failed to get holidays in range: %w", err)
	}

	dates := make([]time.Time, 0, len(holidays))
	for _, h := range holidays {
		dates = append(dates, h.Date)
	}
	return CountWorkingDays(start, end, dates), nil
}
