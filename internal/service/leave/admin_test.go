package leave

import (
	"context"
	"testing"
	"time"

	"github.com/codemyown/leave-mangement-system/internal/domain/delegation"
	"github.com/codemyown/leave-mangement-system/internal/domain/holiday"
	"github.com/codemyown/leave-mangement-system/internal/domain/leave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateLeaveType_DefaultQuota(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(date(2025, time.September, 15))

	created, err := env.svc.CreateLeaveType(ctx, leave.CreateLeaveTypeRequest{Name: "Casual"})
	require.NoError(t, err)
	assert.Equal(t, leave.DefaultAnnualQuota, created.AnnualQuota)

	quota := 15
	earned, err := env.svc.CreateLeaveType(ctx, leave.CreateLeaveTypeRequest{
		Name:         "Earned",
		AnnualQuota:  &quota,
		CarryForward: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 15, earned.AnnualQuota)
	assert.True(t, earned.CarryForward)
}

func TestCreateLeaveType_DuplicateName(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(date(2025, time.September, 15))

	_, err := env.svc.CreateLeaveType(ctx, leave.CreateLeaveTypeRequest{Name: "Casual"})
	require.NoError(t, err)

	_, err = env.svc.CreateLeaveType(ctx, leave.CreateLeaveTypeRequest{Name: "Casual"})
	assert.ErrorIs(t, err, leave.ErrLeaveTypeExists)
}

func TestAddHoliday_DuplicateDate(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(date(2025, time.September, 15))

	_, err := env.svc.AddHoliday(ctx, holiday.CreateHolidayRequest{Date: "2025-10-02", Name: "Gandhi Jayanti"})
	require.NoError(t, err)

	_, err = env.svc.AddHoliday(ctx, holiday.CreateHolidayRequest{Date: "2025-10-02", Name: "Duplicate"})
	assert.ErrorIs(t, err, holiday.ErrDateTaken)
}

func TestCreateDelegation_SelfDelegation(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(date(2025, time.September, 15))

	env.addUser("mgr-1", "manager1", false, true)

	_, err := env.svc.CreateDelegation(ctx, delegation.CreateDelegationRequest{
		ManagerID:  "mgr-1",
		DelegateID: "mgr-1",
		StartDate:  "2025-10-01",
		EndDate:    "2025-10-07",
	})
	assert.ErrorIs(t, err, delegation.ErrSelfDelegation)
}

func TestCreateDelegation_DelegateMustBeManager(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(date(2025, time.September, 15))

	env.addUser("mgr-1", "manager1", false, true)
	env.addUser("emp-1", "emp1", true, false)

	_, err := env.svc.CreateDelegation(ctx, delegation.CreateDelegationRequest{
		ManagerID:  "mgr-1",
		DelegateID: "emp-1",
		StartDate:  "2025-10-01",
		EndDate:    "2025-10-07",
	})
	assert.ErrorIs(t, err, delegation.ErrDelegateNotManager)
}

func TestDeleteDelegation_OnlyOwnerMayRevoke(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(date(2025, time.September, 15))

	env.addUser("mgr-1", "manager1", false, true)
	env.addUser("mgr-2", "manager2", false, true)

	created, err := env.svc.CreateDelegation(ctx, delegation.CreateDelegationRequest{
		ManagerID:  "mgr-1",
		DelegateID: "mgr-2",
		StartDate:  "2025-10-01",
		EndDate:    "2025-10-07",
	})
	require.NoError(t, err)

	err = env.svc.DeleteDelegation(ctx, "mgr-2", created.ID)
	assert.ErrorIs(t, err, delegation.ErrDelegationNotFound)

	err = env.svc.DeleteDelegation(ctx, "mgr-1", created.ID)
	assert.NoError(t, err)
}

func TestListMyBalances_CreatesMissingRowsAtQuota(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(date(2025, time.September, 15))

	env.addUser("emp-1", "emp1", true, false)
	env.addLeaveType("type-casual", "Casual", 10)
	env.addLeaveType("type-sick", "Sick", 12)
	env.setBalance("emp-1", "type-casual", 4)

	balances, err := env.svc.ListMyBalances(ctx, "emp-1")
	require.NoError(t, err)
	require.Len(t, balances, 2)

	byType := make(map[string]leave.LeaveBalanceResponse, len(balances))
	for _, b := range balances {
		byType[b.LeaveTypeID] = b
	}
	assert.Equal(t, 4, byType["type-casual"].Balance)
	assert.Equal(t, 12, byType["type-sick"].Balance)
	assert.Equal(t, "Sick", byType["type-sick"].LeaveTypeName)
}
