package leave

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActiveApprovers_NoDelegations(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(date(2025, time.September, 15))

	env.addUser("mgr-1", "manager1", false, true)
	env.addUser("mgr-2", "manager2", false, true)
	env.addUser("emp-1", "emp1", true, false)

	approvers, err := env.svc.ActiveApprovers(ctx, date(2025, time.October, 1))
	require.NoError(t, err)

	assert.Len(t, approvers, 2)
	assert.Contains(t, approvers, "mgr-1")
	assert.Contains(t, approvers, "mgr-2")
}

func TestActiveApprovers_DelegateSubstitutedInsideWindow(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(date(2025, time.September, 15))

	env.addUser("mgr-1", "manager1", false, true)
	env.addUser("mgr-2", "manager2", false, true)

	_, err := env.delegations.Create(ctx, delegationFor("mgr-1", "mgr-2",
		date(2025, time.October, 1), date(2025, time.October, 7)))
	require.NoError(t, err)

	inside, err := env.svc.ActiveApprovers(ctx, date(2025, time.October, 3))
	require.NoError(t, err)
	assert.NotContains(t, inside, "mgr-1")
	assert.Contains(t, inside, "mgr-2")

	outside, err := env.svc.ActiveApprovers(ctx, date(2025, time.October, 8))
	require.NoError(t, err)
	assert.Contains(t, outside, "mgr-1")
	assert.Contains(t, outside, "mgr-2")
}

// A delegate covering several managers appears once: the set is keyed by user.
func TestActiveApprovers_DelegateForSeveralManagersAppearsOnce(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(date(2025, time.September, 15))

	env.addUser("mgr-1", "manager1", false, true)
	env.addUser("mgr-2", "manager2", false, true)
	env.addUser("mgr-3", "manager3", false, true)

	window := []time.Time{date(2025, time.October, 1), date(2025, time.October, 7)}
	_, err := env.delegations.Create(ctx, delegationFor("mgr-1", "mgr-3", window[0], window[1]))
	require.NoError(t, err)
	_, err = env.delegations.Create(ctx, delegationFor("mgr-2", "mgr-3", window[0], window[1]))
	require.NoError(t, err)

	approvers, err := env.svc.ActiveApprovers(ctx, date(2025, time.October, 3))
	require.NoError(t, err)

	assert.Len(t, approvers, 1)
	assert.Contains(t, approvers, "mgr-3")
}

// When a manager holds overlapping delegations, the most recently created wins.
func TestActiveApprovers_MostRecentOverlappingDelegationWins(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(date(2025, time.September, 15))

	env.addUser("mgr-1", "manager1", false, true)
	env.addUser("mgr-2", "manager2", false, true)
	env.addUser("mgr-3", "manager3", false, true)

	older := delegationFor("mgr-1", "mgr-2", date(2025, time.October, 1), date(2025, time.October, 7))
	older.CreatedAt = date(2025, time.September, 1)
	newer := delegationFor("mgr-1", "mgr-3", date(2025, time.October, 1), date(2025, time.October, 7))
	newer.CreatedAt = date(2025, time.September, 10)

	_, err := env.delegations.Create(ctx, older)
	require.NoError(t, err)
	_, err = env.delegations.Create(ctx, newer)
	require.NoError(t, err)

	approvers, err := env.svc.ActiveApprovers(ctx, date(2025, time.October, 3))
	require.NoError(t, err)

	assert.NotContains(t, approvers, "mgr-1")
	assert.Contains(t, approvers, "mgr-3")
	// mgr-2 is still an approver in their own right.
	assert.Contains(t, approvers, "mgr-2")
}
