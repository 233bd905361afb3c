package leave

import "errors"

var (
	ErrLeaveRequestNotFound     = errors.New("Leave request not found")
	ErrLeaveTypeNotFound        = errors.New("Leave type not found")
	ErrLeaveTypeExists          = errors.New("Leave type already exists")
	ErrBalanceNotFound          = errors.New("Leave balance not found")
	ErrInsufficientBalance      = errors.New("Insufficient leave balance")
	ErrOverlappingApprovedLeave = errors.New("Requested range overlaps an approved leave")
	ErrNotActiveApprover        = errors.New("Actor is not an active approver for this leave")
	ErrAlreadyProcessed         = errors.New("Leave request already processed")
	ErrNotCancellable           = errors.New("Leave request can no longer be cancelled")
	ErrAlreadyStarted           = errors.New("Leave has already started")
	ErrInvalidDateRange         = errors.New("End date must not be before start date")
)
