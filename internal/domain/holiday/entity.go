package holiday

import "time"

// Holiday is one non-working date in the registry. Dates are unique; only
// registry-listed dates are excluded from working-day counts (weekends are
// ordinary days).
type Holiday struct {
	ID        string
	Date      time.Time
	Name      string
	CreatedAt time.Time
}
