package user

import "time"

// Capability names a thing a user is allowed to do. A user holds zero or more
// capabilities; a user with none is an administrator-only account.
type Capability string

const (
	CapabilityEmployee Capability = "employee" // May submit and cancel own leave
	CapabilityManager  Capability = "manager"  // May approve or reject leave
)

type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash *string
	IsEmployee   bool
	IsManager    bool
	Department   *string
	GoogleID     *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Capabilities returns the capability set the user holds.
func (u *User) Capabilities() []Capability {
	var caps []Capability
	if u.IsEmployee {
		caps = append(caps, CapabilityEmployee)
	}
	if u.IsManager {
		caps = append(caps, CapabilityManager)
	}
	return caps
}

// Has reports whether the user holds the given capability.
func (u *User) Has(c Capability) bool {
	switch c {
	case CapabilityEmployee:
		return u.IsEmployee
	case CapabilityManager:
		return u.IsManager
	}
	return false
}

// IsAdminOnly reports whether the user holds no capability at all.
// Such accounts administer reference data (leave types, holidays, delegations).
func (u *User) IsAdminOnly() bool {
	return !u.IsEmployee && !u.IsManager
}
