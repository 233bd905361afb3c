package delegation

import "errors"

var (
	ErrDelegationNotFound = errors.New("Delegation not found")
	ErrSelfDelegation     = errors.New("Cannot delegate approval authority to yourself")
	ErrDelegateNotManager = errors.New("Delegate must be a manager")
)
