package user

import (
	"context"
)

type UserRepository interface {
	Create(ctx context.Context, newUser User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	// ListManagers returns every user holding the manager capability.
	ListManagers(ctx context.Context) ([]User, error)
	// ListEmployees returns every user holding the employee capability.
	ListEmployees(ctx context.Context) ([]User, error)
	LinkGoogleAccount(ctx context.Context, googleID string, email string) (User, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
}
