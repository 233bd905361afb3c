package user

import "errors"

var (
	ErrUserNotFound           = errors.New("User not found")
	ErrUsernameExists         = errors.New("Username already registered")
	ErrEmailExists            = errors.New("Email already registered")
	ErrEmployeeAccessRequired = errors.New("Employee capability required")
	ErrManagerAccessRequired  = errors.New("Manager capability required")
	ErrAdminAccessRequired    = errors.New("Administrator access required")
)
