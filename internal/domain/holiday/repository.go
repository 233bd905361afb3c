package holiday

import (
	"context"
	"time"
)

type HolidayRepository interface {
	Create(ctx context.Context, h Holiday) (Holiday, error)
	GetByDateRange(ctx context.Context, start, end time.Time) ([]Holiday, error)
	List(ctx context.Context) ([]Holiday, error)
	Delete(ctx context.Context, id string) error
	ExistsByDate(ctx context.Context, date time.Time) (bool, error)
}
