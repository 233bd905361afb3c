package delegation

import "time"

// Delegation hands a manager's approval authority to a delegate for an
// inclusive date window. The delegate substitutes for the manager on any
// date inside the window.
type Delegation struct {
	ID         string
	ManagerID  string
	DelegateID string
	StartDate  time.Time
	EndDate    time.Time
	CreatedAt  time.Time

	// Joined for listings.
	ManagerName  string
	DelegateName string
}

// Covers reports whether the delegation window contains the given date.
func (d Delegation) Covers(date time.Time) bool {
	return !date.Before(d.StartDate) && !date.After(d.EndDate)
}
