package delegation

import (
	"context"
	"time"
)

type DelegationRepository interface {
	Create(ctx context.Context, d Delegation) (Delegation, error)
	// ActiveForManager returns the delegation covering date for the given
	// manager, or nil when none applies. When windows overlap the most
	// recently created delegation wins.
	ActiveForManager(ctx context.Context, managerID string, date time.Time) (*Delegation, error)
	ListByManager(ctx context.Context, managerID string) ([]Delegation, error)
	List(ctx context.Context) ([]Delegation, error)
	Delete(ctx context.Context, id string) error
}
