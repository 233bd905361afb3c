package leave

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/codemyown/leave-mangement-system/internal/domain/delegation"
	"github.com/codemyown/leave-mangement-system/internal/domain/holiday"
	"github.com/codemyown/leave-mangement-system/internal/domain/leave"
	"github.com/codemyown/leave-mangement-system/internal/domain/notification"
	"github.com/codemyown/leave-mangement-system/internal/domain/user"
	"github.com/codemyown/leave-mangement-system/internal/pkg/clock"
)

// The fakes below back the service tests with in-memory state, so every
// lifecycle rule can be exercised against a pinned clock without a database.

type fakeTxManager struct{}

func (fakeTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeUserRepo struct {
	users map[string]user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]user.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, newUser user.User) (user.User, error) {
	if newUser.ID == "" {
		newUser.ID = fmt.Sprintf("user-%d", len(f.users)+1)
	}
	f.users[newUser.ID] = newUser
	return newUser, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (user.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) ListManagers(ctx context.Context) ([]user.User, error) {
	return f.listByCapability(user.CapabilityManager), nil
}

func (f *fakeUserRepo) ListEmployees(ctx context.Context) ([]user.User, error) {
	return f.listByCapability(user.CapabilityEmployee), nil
}

func (f *fakeUserRepo) listByCapability(c user.Capability) []user.User {
	ids := make([]string, 0, len(f.users))
	for id, u := range f.users {
		if u.Has(c) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	matched := make([]user.User, 0, len(ids))
	for _, id := range ids {
		matched = append(matched, f.users[id])
	}
	return matched
}

func (f *fakeUserRepo) LinkGoogleAccount(ctx context.Context, googleID string, email string) (user.User, error) {
	for id, u := range f.users {
		if u.Email == email {
			u.GoogleID = &googleID
			f.users[id] = u
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	u, ok := f.users[userID]
	if !ok {
		return user.ErrUserNotFound
	}
	u.PasswordHash = &passwordHash
	f.users[userID] = u
	return nil
}

type fakeLeaveTypeRepo struct {
	types map[string]leave.LeaveType
}

func newFakeLeaveTypeRepo() *fakeLeaveTypeRepo {
	return &fakeLeaveTypeRepo{types: make(map[string]leave.LeaveType)}
}

func (f *fakeLeaveTypeRepo) Create(ctx context.Context, leaveType leave.LeaveType) (leave.LeaveType, error) {
	for _, lt := range f.types {
		if lt.Name == leaveType.Name {
			return leave.LeaveType{}, leave.ErrLeaveTypeExists
		}
	}
	if leaveType.ID == "" {
		leaveType.ID = fmt.Sprintf("type-%d", len(f.types)+1)
	}
	f.types[leaveType.ID] = leaveType
	return leaveType, nil
}

func (f *fakeLeaveTypeRepo) GetByID(ctx context.Context, id string) (leave.LeaveType, error) {
	lt, ok := f.types[id]
	if !ok {
		return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
	}
	return lt, nil
}

func (f *fakeLeaveTypeRepo) GetByName(ctx context.Context, name string) (leave.LeaveType, error) {
	for _, lt := range f.types {
		if lt.Name == name {
			return lt, nil
		}
	}
	return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
}

func (f *fakeLeaveTypeRepo) GetByNames(ctx context.Context, names []string) ([]leave.LeaveType, error) {
	matched := make([]leave.LeaveType, 0, len(names))
	for _, name := range names {
		if lt, err := f.GetByName(ctx, name); err == nil {
			matched = append(matched, lt)
		}
	}
	return matched, nil
}

func (f *fakeLeaveTypeRepo) List(ctx context.Context) ([]leave.LeaveType, error) {
	ids := make([]string, 0, len(f.types))
	for id := range f.types {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	all := make([]leave.LeaveType, 0, len(ids))
	for _, id := range ids {
		all = append(all, f.types[id])
	}
	return all, nil
}

func (f *fakeLeaveTypeRepo) Update(ctx context.Context, leaveType leave.LeaveType) error {
	if _, ok := f.types[leaveType.ID]; !ok {
		return leave.ErrLeaveTypeNotFound
	}
	f.types[leaveType.ID] = leaveType
	return nil
}

func (f *fakeLeaveTypeRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.types[id]; !ok {
		return leave.ErrLeaveTypeNotFound
	}
	delete(f.types, id)
	return nil
}

type fakeBalanceRepo struct {
	balances map[string]leave.LeaveBalance
}

func newFakeBalanceRepo() *fakeBalanceRepo {
	return &fakeBalanceRepo{balances: make(map[string]leave.LeaveBalance)}
}

func (f *fakeBalanceRepo) GetByUserAndType(ctx context.Context, userID, leaveTypeID string) (leave.LeaveBalance, error) {
	for _, b := range f.balances {
		if b.UserID == userID && b.LeaveTypeID == leaveTypeID {
			return b, nil
		}
	}
	return leave.LeaveBalance{}, leave.ErrBalanceNotFound
}

func (f *fakeBalanceRepo) GetOrCreate(ctx context.Context, userID, leaveTypeID string, initial int) (leave.LeaveBalance, error) {
	if b, err := f.GetByUserAndType(ctx, userID, leaveTypeID); err == nil {
		return b, nil
	}
	b := leave.LeaveBalance{
		ID:          fmt.Sprintf("balance-%d", len(f.balances)+1),
		UserID:      userID,
		LeaveTypeID: leaveTypeID,
		Balance:     initial,
	}
	f.balances[b.ID] = b
	return b, nil
}

func (f *fakeBalanceRepo) AddDays(ctx context.Context, id string, delta int) error {
	b, ok := f.balances[id]
	if !ok {
		return leave.ErrBalanceNotFound
	}
	b.Balance += delta
	if b.Balance < 0 {
		b.Balance = 0
	}
	f.balances[id] = b
	return nil
}

func (f *fakeBalanceRepo) SetBalance(ctx context.Context, id string, balance int) error {
	b, ok := f.balances[id]
	if !ok {
		return leave.ErrBalanceNotFound
	}
	b.Balance = balance
	f.balances[id] = b
	return nil
}

func (f *fakeBalanceRepo) ListByUser(ctx context.Context, userID string) ([]leave.LeaveBalance, error) {
	var mine []leave.LeaveBalance
	for _, b := range f.balances {
		if b.UserID == userID {
			mine = append(mine, b)
		}
	}
	return mine, nil
}

type fakeRequestRepo struct {
	requests map[string]leave.LeaveRequest
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[string]leave.LeaveRequest)}
}

func (f *fakeRequestRepo) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	if request.ID == "" {
		request.ID = fmt.Sprintf("request-%d", len(f.requests)+1)
	}
	f.requests[request.ID] = request
	return request, nil
}

func (f *fakeRequestRepo) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	r, ok := f.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return r, nil
}

func (f *fakeRequestRepo) ListByUser(ctx context.Context, userID string, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, int64, error) {
	var mine []leave.LeaveRequest
	for _, r := range f.requests {
		if r.UserID == userID && matchesFilter(r, filter) {
			mine = append(mine, r)
		}
	}
	sortBySubmittedAt(mine)
	return mine, int64(len(mine)), nil
}

func (f *fakeRequestRepo) ListAll(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, int64, error) {
	var all []leave.LeaveRequest
	for _, r := range f.requests {
		if matchesFilter(r, filter) {
			all = append(all, r)
		}
	}
	sortBySubmittedAt(all)
	return all, int64(len(all)), nil
}

func (f *fakeRequestRepo) Update(ctx context.Context, update leave.UpdateLeaveRequestInput) error {
	r, ok := f.requests[update.ID]
	if !ok {
		return leave.ErrLeaveRequestNotFound
	}
	if update.Status != nil {
		r.Status = *update.Status
	}
	if update.ApproverID != nil {
		r.ApproverID = update.ApproverID
	}
	if update.Comments != nil {
		r.Comments = update.Comments
	}
	f.requests[update.ID] = r
	return nil
}

func (f *fakeRequestRepo) HasApprovedOverlap(ctx context.Context, userID string, startDate, endDate time.Time) (bool, error) {
	for _, r := range f.requests {
		if r.UserID != userID || r.Status != leave.LeaveRequestStatusApproved {
			continue
		}
		if !r.StartDate.After(endDate) && !r.EndDate.Before(startDate) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRequestRepo) AggregateByDepartment(ctx context.Context) ([]leave.DepartmentAggregate, error) {
	return nil, nil
}

func matchesFilter(r leave.LeaveRequest, filter leave.LeaveRequestFilter) bool {
	if filter.LeaveTypeID != nil && r.LeaveTypeID != *filter.LeaveTypeID {
		return false
	}
	if filter.Status != nil && r.Status != *filter.Status {
		return false
	}
	if filter.StartDate != nil && r.EndDate.Before(*filter.StartDate) {
		return false
	}
	if filter.EndDate != nil && r.StartDate.After(*filter.EndDate) {
		return false
	}
	return true
}

func sortBySubmittedAt(requests []leave.LeaveRequest) {
	sort.Slice(requests, func(i, j int) bool {
		return requests[i].SubmittedAt.After(requests[j].SubmittedAt)
	})
}

type fakeHolidayRepo struct {
	holidays []holiday.Holiday
}

func newFakeHolidayRepo() *fakeHolidayRepo {
	return &fakeHolidayRepo{}
}

func (f *fakeHolidayRepo) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	for _, existing := range f.holidays {
		if existing.Date.Equal(h.Date) {
			return holiday.Holiday{}, holiday.ErrDateTaken
		}
	}
	if h.ID == "" {
		h.ID = fmt.Sprintf("holiday-%d", len(f.holidays)+1)
	}
	f.holidays = append(f.holidays, h)
	return h, nil
}

func (f *fakeHolidayRepo) GetByDateRange(ctx context.Context, start, end time.Time) ([]holiday.Holiday, error) {
	var inRange []holiday.Holiday
	for _, h := range f.holidays {
		if !h.Date.Before(start) && !h.Date.After(end) {
			inRange = append(inRange, h)
		}
	}
	return inRange, nil
}

func (f *fakeHolidayRepo) List(ctx context.Context) ([]holiday.Holiday, error) {
	return f.holidays, nil
}

func (f *fakeHolidayRepo) Delete(ctx context.Context, id string) error {
	for i, h := range f.holidays {
		if h.ID == id {
			f.holidays = append(f.holidays[:i], f.holidays[i+1:]...)
			return nil
		}
	}
	return holiday.ErrHolidayNotFound
}

func (f *fakeHolidayRepo) ExistsByDate(ctx context.Context, date time.Time) (bool, error) {
	for _, h := range f.holidays {
		if h.Date.Equal(date) {
			return true, nil
		}
	}
	return false, nil
}

type fakeDelegationRepo struct {
	delegations []delegation.Delegation
}

func newFakeDelegationRepo() *fakeDelegationRepo {
	return &fakeDelegationRepo{}
}

func (f *fakeDelegationRepo) Create(ctx context.Context, d delegation.Delegation) (delegation.Delegation, error) {
	if d.ID == "" {
		d.ID = fmt.Sprintf("delegation-%d", len(f.delegations)+1)
	}
	f.delegations = append(f.delegations, d)
	return d, nil
}

func (f *fakeDelegationRepo) ActiveForManager(ctx context.Context, managerID string, date time.Time) (*delegation.Delegation, error) {
	var active *delegation.Delegation
	for i := range f.delegations {
		d := f.delegations[i]
		if d.ManagerID != managerID || !d.Covers(date) {
			continue
		}
		if active == nil || d.CreatedAt.After(active.CreatedAt) {
			active = &f.delegations[i]
		}
	}
	return active, nil
}

func (f *fakeDelegationRepo) ListByManager(ctx context.Context, managerID string) ([]delegation.Delegation, error) {
	var mine []delegation.Delegation
	for _, d := range f.delegations {
		if d.ManagerID == managerID {
			mine = append(mine, d)
		}
	}
	return mine, nil
}

func (f *fakeDelegationRepo) List(ctx context.Context) ([]delegation.Delegation, error) {
	return f.delegations, nil
}

func (f *fakeDelegationRepo) Delete(ctx context.Context, id string) error {
	for i, d := range f.delegations {
		if d.ID == id {
			f.delegations = append(f.delegations[:i], f.delegations[i+1:]...)
			return nil
		}
	}
	return delegation.ErrDelegationNotFound
}

type notifiedEvent struct {
	kind      string
	requester user.User
	approvers []user.User
	request   leave.LeaveRequest
}

type fakeNotifier struct {
	events []notifiedEvent
}

func (f *fakeNotifier) LeaveSubmitted(ctx context.Context, requester user.User, approvers []user.User, request leave.LeaveRequest) {
	f.events = append(f.events, notifiedEvent{kind: "submitted", requester: requester, approvers: approvers, request: request})
}

func (f *fakeNotifier) LeaveDecided(ctx context.Context, requester user.User, request leave.LeaveRequest) {
	f.events = append(f.events, notifiedEvent{kind: "decided", requester: requester, request: request})
}

func (f *fakeNotifier) LeaveCancelled(ctx context.Context, requester user.User, approvers []user.User, request leave.LeaveRequest) {
	f.events = append(f.events, notifiedEvent{kind: "cancelled", requester: requester, approvers: approvers, request: request})
}

func (f *fakeNotifier) ListForUser(ctx context.Context, userID string, unreadOnly bool) ([]notification.Notification, error) {
	return nil, nil
}

func (f *fakeNotifier) MarkRead(ctx context.Context, userID, id string) error { return nil }

func (f *fakeNotifier) MarkAllRead(ctx context.Context, userID string) error { return nil }

// testEnv wires a LeaveServiceImpl to the in-memory fakes with the clock
// pinned to now.
type testEnv struct {
	svc         *LeaveServiceImpl
	users       *fakeUserRepo
	types       *fakeLeaveTypeRepo
	balances    *fakeBalanceRepo
	requests    *fakeRequestRepo
	holidays    *fakeHolidayRepo
	delegations *fakeDelegationRepo
	notifier    *fakeNotifier
}

func newTestEnv(now time.Time) *testEnv {
	env := &testEnv{
		users:       newFakeUserRepo(),
		types:       newFakeLeaveTypeRepo(),
		balances:    newFakeBalanceRepo(),
		requests:    newFakeRequestRepo(),
		holidays:    newFakeHolidayRepo(),
		delegations: newFakeDelegationRepo(),
		notifier:    &fakeNotifier{},
	}
	env.svc = NewLeaveService(
		fakeTxManager{},
		env.types,
		env.balances,
		env.requests,
		env.holidays,
		env.delegations,
		env.users,
		env.notifier,
		clock.Fixed(now),
	)
	return env
}

func (e *testEnv) addUser(id, username string, isEmployee, isManager bool) user.User {
	u, _ := e.users.Create(context.Background(), user.User{
		ID:         id,
		Username:   username,
		Email:      username + "@example.com",
		IsEmployee: isEmployee,
		IsManager:  isManager,
	})
	return u
}

func (e *testEnv) addLeaveType(id, name string, quota int) leave.LeaveType {
	lt, _ := e.types.Create(context.Background(), leave.LeaveType{ID: id, Name: name, AnnualQuota: quota})
	return lt
}

func (e *testEnv) setBalance(userID, leaveTypeID string, balance int) leave.LeaveBalance {
	b, _ := e.balances.GetOrCreate(context.Background(), userID, leaveTypeID, balance)
	return b
}

func (e *testEnv) addHoliday(date time.Time, name string) {
	_, _ = e.holidays.Create(context.Background(), holiday.Holiday{Date: clock.Day(date), Name: name})
}

func delegationFor(managerID, delegateID string, start, end time.Time) delegation.Delegation {
	return delegation.Delegation{
		ManagerID:  managerID,
		DelegateID: delegateID,
		StartDate:  start,
		EndDate:    end,
		CreatedAt:  time.Now(),
	}
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
