package leave

import (
	"context"
	"testing"
	"time"

	"github.com/codemyown/leave-mangement-system/internal/domain/leave"
	"github.com/codemyown/leave-mangement-system/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Submit snapshots the working-day count: a three-day range with one holiday
// in the middle charges two days.
func TestLeaveService_Submit_Success(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(date(2025, time.September, 15))

	env.addUser("emp-1", "emp1", true, false)
	env.addLeaveType("type-casual", "Casual", 10)
	env.setBalance("emp-1", "type-casual", 10)
	env.addHoliday(date(2025, time.October, 2), "Gandhi Jayanti")

	resp, err := env.svc.Submit(ctx, leave.CreateLeaveRequestRequest{
		UserID:      "emp-1",
		LeaveTypeID: "type-casual",
		StartDate:   "2025-10-01",
		EndDate:     "2025-10-03",
		Reason:      "Family function",
	})

	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, 3, resp.TotalDays)
	assert.Equal(t, 2, resp.WorkingDays)
	assert.Equal(t, "Casual", resp.LeaveTypeName)

	// Submission never touches the balance.
	balance, err := env.balances.GetByUserAndType(ctx, "emp-1", "type-casual")
	require.NoError(t, err)
	assert.Equal(t, 10, balance.Balance)

	// Approvers were notified.
	require.Len(t, env.notifier.events, 1)
	assert.Equal(t, "submitted", env.notifier.events[0].kind)
}

// A weekend inside the range still counts: only registry holidays are excluded.
func TestLeaveService_Submit_WeekendCounts(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(date(2025, time.September, 15))

	env.addUser("emp-1", "emp1", true, false)
	env.addLeaveType("type-earned", "Earned", 15)
	env.setBalance("emp-1", "type-earned", 15)

	// 2025-10-03 is a Friday; the range spans Sat/Sun.
	resp, err := env.svc.Submit(ctx, leave.CreateLeaveRequestRequest{
		UserID:      "emp-1",
		LeaveTypeID: "type-earned",
		StartDate:   "2025-10-03",
		EndDate:     "2025-10-06",
		Reason:      "Long weekend trip",
	})

	require.NoError(t, err)
	assert.Equal(t, 4, resp.WorkingDays)
}

func TestLeaveService_Submit_InsufficientBalance(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(date(2025, time.September, 15))

	env.addUser("emp-1", "emp1", true, false)
	env.addLeaveType("type-casual", "Casual", 10)
	env.setBalance("emp-1", "type-casual", 1)

	_, err := env.svc.Submit(ctx, leave.CreateLeaveRequestRequest{
		UserID:      "emp-1",
		LeaveTypeID: "type-casual",
		StartDate:   "2025-10-01",
		EndDate:     "2025-10-03",
		Reason:      "Too long",
	})

	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)
	assert.Empty(t, env.notifier.events)
}

func TestLeaveService_Submit_OverlapsApprovedLeave(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(date(2025, time.September, 15))

	env.addUser("emp-1", "emp1", true, false)
	env.addLeaveType("type-casual", "Casual", 10)
	env.setBalance("emp-1", "type-casual", 10)

	_, err := env.requests.Create(ctx, leave.LeaveRequest{
		UserID:      "emp-1",
		LeaveTypeID: "type-casual",
		StartDate:   date(2025, time.October, 3),
		EndDate:     date(2025, time.October, 5),
		Status:      leave.LeaveRequestStatusApproved,
		WorkingDays: 3,
	})
	require.NoError(t, err)

	// New range touches the approved one on its first day.
	_, err = env.svc.Submit(ctx, leave.CreateLeaveRequestRequest{
		UserID:      "emp-1",
		LeaveTypeID: "type-casual",
		StartDate:   "2025-10-01",
		EndDate:     "2025-10-03",
		Reason:      "Overlapping",
	})

	assert.ErrorIs(t, err, leave.ErrOverlappingApprovedLeave)
}

func TestLeaveService_Submit_RequiresEmployeeCapability(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(date(2025, time.September, 15))

	env.addUser("mgr-1", "manager", false, true)
	env.addLeaveType("type-casual", "Casual", 10)

	_, err := env.svc.Submit(ctx, leave.CreateLeaveRequestRequest{
		UserID:      "mgr-1",
		LeaveTypeID: "type-casual",
		StartDate:   "2025-10-01",
		EndDate:     "2025-10-01",
		Reason:      "Managers cannot apply",
	})

	assert.ErrorIs(t, err, user.ErrEmployeeAccessRequired)
}

func TestLeaveService_Submit_EndBeforeStart(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(date(2025, time.September, 15))

	env.addUser("emp-1", "emp1", true, false)
	env.addLeaveType("type-casual", "Casual", 10)

	_, err := env.svc.Submit(ctx, leave.CreateLeaveRequestRequest{
		UserID:      "emp-1",
		LeaveTypeID: "type-casual",
		StartDate:   "2025-10-03",
		EndDate:     "2025-10-01",
		Reason:      "Backwards",
	})

	assert.ErrorIs(t, err, leave.ErrInvalidDateRange)
}

func TestLeaveService_Approve_DeductsSnapshotDays(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(date(2025, time.September, 15))

	env.addUser("emp-1", "emp1", true, false)
	env.addUser("mgr-1", "manager", false, true)
	env.addLeaveType("type-casual", "Casual", 10)
	balance := env.setBalance("emp-1", "type-casual", 10)

	created, err := env.requests.Create(ctx, leave.LeaveRequest{
		UserID:      "emp-1",
		LeaveTypeID: "type-casual",
		StartDate:   date(2025, time.October, 1),
		EndDate:     date(2025, time.October, 3),
		Status:      leave.LeaveRequestStatusPending,
		WorkingDays: 2,
	})
	require.NoError(t, err)

	resp, err := env.svc.Approve(ctx, "mgr-1", leave.DecideLeaveRequestRequest{
		RequestID: created.ID,
		Comments:  "Enjoy",
	})

	require.NoError(t, err)
	assert.Equal(t, "approved", resp.Status)
	require.NotNil(t, resp.ApproverID)
	assert.Equal(t, "mgr-1", *resp.ApproverID)

	updated := env.balances.balances[balance.ID]
	assert.Equal(t, 8, updated.Balance)

	require.Len(t, env.notifier.events, 1)
	assert.Equal(t, "decided", env.notifier.events[0].kind)
}

func TestLeaveService_Approve_NotAnActiveApprover(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(date(2025, time.September, 15))

	env.addUser("emp-1", "emp1", true, false)
	env.addUser("emp-2", "emp2", true, false)
	env.addUser("mgr-1", "manager", false, true)
	env.addLeaveType("type-casual", "Casual", 10)
	env.setBalance("emp-1", "type-casual", 10)

	created, err := env.requests.Create(ctx, leave.LeaveRequest{
		UserID:      "emp-1",
		LeaveTypeID: "type-casual",
		StartDate:   date(2025, time.October, 1),
		EndDate:     date(2025, time.October, 1),
		Status:      leave.LeaveRequestStatusPending,
		WorkingDays: 1,
	})
	require.NoError(t, err)

	_, err = env.svc.Approve(ctx, "emp-2", leave.DecideLeaveRequestRequest{RequestID: created.ID})
	assert.ErrorIs(t, err, leave.ErrNotActiveApprover)
}

// While a delegation covers the request's start date, the delegate approves
// and the delegating manager loses the authority.
func TestLeaveService_Approve_DelegationSubstitutesApprover(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(date(2025, time.September, 15))

	env.addUser("emp-1", "emp1", true, false)
	env.addUser("mgr-1", "manager", false, true)
	env.addUser("mgr-2", "delegate", false, true)
	env.addLeaveType("type-casual", "Casual", 10)
	env.setBalance("emp-1", "type-casual", 10)

	_, err := env.delegations.Create(ctx, delegationFor("mgr-1", "mgr-2",
		date(2025, time.September, 28), date(2025, time.October, 5)))
	require.NoError(t, err)

	created, err := env.requests.Create(ctx, leave.LeaveRequest{
		UserID:      "emp-1",
		LeaveTypeID: "type-casual",
		StartDate:   date(2025, time.October, 1),
		EndDate:     date(2025, time.October, 1),
		Status:      leave.LeaveRequestStatusPending,
		WorkingDays: 1,
	})
	require.NoError(t, err)

	_, err = env.svc.Approve(ctx, "mgr-1", leave.DecideLeaveRequestRequest{RequestID: created.ID})
	assert.ErrorIs(t, err, leave.ErrNotActiveApprover)

	resp, err := env.svc.Approve(ctx, "mgr-2", leave.DecideLeaveRequestRequest{RequestID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, "approved", resp.Status)
}

func TestLeaveService_Approve_AlreadyProcessed(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(date(2025, time.September, 15))

	env.addUser("emp-1", "emp1", true, false)
	env.addUser("mgr-1", "manager", false, true)
	env.addLeaveType("type-casual", "Casual", 10)
	env.setBalance("emp-1", "type-casual", 10)

	created, err := env.requests.Create(ctx, leave.LeaveRequest{
		UserID:      "emp-1",
		LeaveTypeID: "type-casual",
		StartDate:   date(2025, time.October, 1),
		EndDate:     date(2025, time.October, 1),
		Status:      leave.LeaveRequestStatusRejected,
		WorkingDays: 1,
	})
	require.NoError(t, err)

	_, err = env.svc.Approve(ctx, "mgr-1", leave.DecideLeaveRequestRequest{RequestID: created.ID})
	assert.ErrorIs(t, err, leave.ErrAlreadyProcessed)
}

// Approval re-checks the balance: the snapshot may exceed what is left by the
// time a manager gets to the request.
func TestLeaveService_Approve_InsufficientBalanceAtDecision(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(date(2025, time.September, 15))

	env.addUser("emp-1", "emp1", true, false)
	env.addUser("mgr-1", "manager", false, true)
	env.addLeaveType("type-casual", "Casual", 10)
	env.setBalance("emp-1", "type-casual", 2)

	created, err := env.requests.Create(ctx, leave.LeaveRequest{
		UserID:      "emp-1",
		LeaveTypeID: "type-casual",
		StartDate:   date(2025, time.October, 1),
		EndDate:     date(2025, time.October, 5),
		Status:      leave.LeaveRequestStatusPending,
		WorkingDays: 5,
	})
	require.NoError(t, err)

	_, err = env.svc.Approve(ctx, "mgr-1", leave.DecideLeaveRequestRequest{RequestID: created.ID})
	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)
}

func TestLeaveService_Reject_LeavesBalanceUntouched(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(date(2025, time.September, 15))

	env.addUser("emp-1", "emp1", true, false)
	env.addUser("mgr-1", "manager", false, true)
	env.addLeaveType("type-casual", "Casual", 10)
	balance := env.setBalance("emp-1", "type-casual", 10)

	created, err := env.requests.Create(ctx, leave.LeaveRequest{
		UserID:      "emp-1",
		LeaveTypeID: "type-casual",
		StartDate:   date(2025, time.October, 1),
		EndDate:     date(2025, time.October, 3),
		Status:      leave.LeaveRequestStatusPending,
		WorkingDays: 3,
	})
	require.NoError(t, err)

	resp, err := env.svc.Reject(ctx, "mgr-1", leave.DecideLeaveRequestRequest{
		RequestID: created.ID,
		Comments:  "Short staffed that week",
	})

	require.NoError(t, err)
	assert.Equal(t, "rejected", resp.Status)
	require.NotNil(t, resp.Comments)
	assert.Equal(t, "Short staffed that week", *resp.Comments)
	assert.Equal(t, 10, env.balances.balances[balance.ID].Balance)
}

func TestLeaveService_Cancel_PendingNoRefund(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(date(2025, time.September, 15))

	env.addUser("emp-1", "emp1", true, false)
	env.addLeaveType("type-casual", "Casual", 10)
	balance := env.setBalance("emp-1", "type-casual", 10)

	created, err := env.requests.Create(ctx, leave.LeaveRequest{
		UserID:      "emp-1",
		LeaveTypeID: "type-casual",
		StartDate:   date(2025, time.October, 1),
		EndDate:     date(2025, time.October, 3),
		Status:      leave.LeaveRequestStatusPending,
		WorkingDays: 3,
	})
	require.NoError(t, err)

	resp, err := env.svc.Cancel(ctx, "emp-1", leave.CancelLeaveRequestRequest{RequestID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)
	assert.Equal(t, 10, env.balances.balances[balance.ID].Balance)
}

// Cancelling an approved request refunds the snapshotted working days, even
// if the holiday registry changed since submission.
func TestLeaveService_Cancel_ApprovedRefundsSnapshot(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(date(2025, time.September, 15))

	env.addUser("emp-1", "emp1", true, false)
	env.addLeaveType("type-casual", "Casual", 10)
	balance := env.setBalance("emp-1", "type-casual", 8)

	created, err := env.requests.Create(ctx, leave.LeaveRequest{
		UserID:      "emp-1",
		LeaveTypeID: "type-casual",
		StartDate:   date(2025, time.October, 1),
		EndDate:     date(2025, time.October, 3),
		Status:      leave.LeaveRequestStatusApproved,
		WorkingDays: 2,
	})
	require.NoError(t, err)

	// Registry changed after approval; the refund still uses the snapshot.
	env.addHoliday(date(2025, time.October, 1), "Added later")

	resp, err := env.svc.Cancel(ctx, "emp-1", leave.CancelLeaveRequestRequest{
		RequestID: created.ID,
		Reason:    "Plans changed",
	})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)
	assert.Equal(t, 10, env.balances.balances[balance.ID].Balance)
}

func TestLeaveService_Cancel_AlreadyStarted(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(date(2025, time.October, 1))

	env.addUser("emp-1", "emp1", true, false)
	env.addLeaveType("type-casual", "Casual", 10)
	env.setBalance("emp-1", "type-casual", 10)

	created, err := env.requests.Create(ctx, leave.LeaveRequest{
		UserID:      "emp-1",
		LeaveTypeID: "type-casual",
		StartDate:   date(2025, time.October, 1),
		EndDate:     date(2025, time.October, 3),
		Status:      leave.LeaveRequestStatusApproved,
		WorkingDays: 3,
	})
	require.NoError(t, err)

	_, err = env.svc.Cancel(ctx, "emp-1", leave.CancelLeaveRequestRequest{RequestID: created.ID})
	assert.ErrorIs(t, err, leave.ErrAlreadyStarted)
}

func TestLeaveService_Cancel_RejectedNotCancellable(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(date(2025, time.September, 15))

	env.addUser("emp-1", "emp1", true, false)
	env.addLeaveType("type-casual", "Casual", 10)

	created, err := env.requests.Create(ctx, leave.LeaveRequest{
		UserID:      "emp-1",
		LeaveTypeID: "type-casual",
		StartDate:   date(2025, time.October, 1),
		EndDate:     date(2025, time.October, 1),
		Status:      leave.LeaveRequestStatusRejected,
		WorkingDays: 1,
	})
	require.NoError(t, err)

	_, err = env.svc.Cancel(ctx, "emp-1", leave.CancelLeaveRequestRequest{RequestID: created.ID})
	assert.ErrorIs(t, err, leave.ErrNotCancellable)
}

// Someone else's request behaves as not found, leaking nothing.
func TestLeaveService_Cancel_NotOwner(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(date(2025, time.September, 15))

	env.addUser("emp-1", "emp1", true, false)
	env.addUser("emp-2", "emp2", true, false)
	env.addLeaveType("type-casual", "Casual", 10)

	created, err := env.requests.Create(ctx, leave.LeaveRequest{
		UserID:      "emp-1",
		LeaveTypeID: "type-casual",
		StartDate:   date(2025, time.October, 1),
		EndDate:     date(2025, time.October, 1),
		Status:      leave.LeaveRequestStatusPending,
		WorkingDays: 1,
	})
	require.NoError(t, err)

	_, err = env.svc.Cancel(ctx, "emp-2", leave.CancelLeaveRequestRequest{RequestID: created.ID})
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
}

// Full lifecycle: submit against a registry holiday, approve, cancel before
// the start date. The balance round-trips back to its starting value.
func TestLeaveService_SubmitApproveCancelRoundTrip(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(date(2025, time.September, 15))

	env.addUser("emp-1", "emp1", true, false)
	env.addUser("mgr-1", "manager", false, true)
	env.addLeaveType("type-annual", "Annual", 12)
	balance := env.setBalance("emp-1", "type-annual", 2)
	env.addHoliday(date(2025, time.October, 2), "Gandhi Jayanti")

	submitted, err := env.svc.Submit(ctx, leave.CreateLeaveRequestRequest{
		UserID:      "emp-1",
		LeaveTypeID: "type-annual",
		StartDate:   "2025-10-01",
		EndDate:     "2025-10-03",
		Reason:      "Trip",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, submitted.WorkingDays)
	assert.Equal(t, 2, env.balances.balances[balance.ID].Balance)

	approved, err := env.svc.Approve(ctx, "mgr-1", leave.DecideLeaveRequestRequest{RequestID: submitted.ID})
	require.NoError(t, err)
	assert.Equal(t, "approved", approved.Status)
	assert.Equal(t, 0, env.balances.balances[balance.ID].Balance)

	cancelled, err := env.svc.Cancel(ctx, "emp-1", leave.CancelLeaveRequestRequest{
		RequestID: submitted.ID,
		Reason:    "Trip called off",
	})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", cancelled.Status)
	assert.Equal(t, 2, env.balances.balances[balance.ID].Balance)
}

func TestLeaveService_GetRequest_NonManagerSeesOnlyOwn(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(date(2025, time.September, 15))

	env.addUser("emp-1", "emp1", true, false)
	env.addLeaveType("type-casual", "Casual", 10)

	created, err := env.requests.Create(ctx, leave.LeaveRequest{
		UserID:      "emp-1",
		LeaveTypeID: "type-casual",
		StartDate:   date(2025, time.October, 1),
		EndDate:     date(2025, time.October, 1),
		Status:      leave.LeaveRequestStatusPending,
		WorkingDays: 1,
	})
	require.NoError(t, err)

	_, err = env.svc.GetRequest(ctx, "emp-2", false, created.ID)
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)

	resp, err := env.svc.GetRequest(ctx, "emp-2", true, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, resp.ID)
}
