package response

import (
	"errors"
	"net/http"

	"github.com/codemyown/leave-mangement-system/internal/domain/auth"
	"github.com/codemyown/leave-mangement-system/internal/domain/delegation"
	"github.com/codemyown/leave-mangement-system/internal/domain/holiday"
	"github.com/codemyown/leave-mangement-system/internal/domain/leave"
	"github.com/codemyown/leave-mangement-system/internal/domain/notification"
	"github.com/codemyown/leave-mangement-system/internal/domain/user"
	"github.com/codemyown/leave-mangement-system/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrGoogleNotLinked):
		Unauthorized(w, "No account is linked to this Google identity")
	case errors.Is(err, auth.ErrGoogleDisabled):
		NotFound(w, "Google sign-in is not configured")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUsernameExists):
		Conflict(w, "Username already taken")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrEmployeeAccessRequired),
		errors.Is(err, user.ErrManagerAccessRequired),
		errors.Is(err, user.ErrAdminAccessRequired):
		Forbidden(w, err.Error())

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveTypeNotFound):
		NotFound(w, "Leave type not found")
	case errors.Is(err, leave.ErrLeaveTypeExists):
		Conflict(w, "Leave type already exists")
	case errors.Is(err, leave.ErrBalanceNotFound):
		NotFound(w, "Leave balance not found")
	case errors.Is(err, leave.ErrInsufficientBalance):
		BadRequest(w, "Insufficient leave balance", nil)
	case errors.Is(err, leave.ErrOverlappingApprovedLeave):
		Conflict(w, "An approved leave already overlaps this period")
	case errors.Is(err, leave.ErrNotActiveApprover):
		Forbidden(w, "You are not an active approver for this request")
	case errors.Is(err, leave.ErrAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrNotCancellable):
		Conflict(w, "Leave request cannot be cancelled")
	case errors.Is(err, leave.ErrAlreadyStarted):
		Conflict(w, "Leave has already started or passed")
	case errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, "Invalid date range", nil)

	// Holiday domain errors
	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, holiday.ErrDateTaken):
		Conflict(w, "A holiday already exists on this date")

	// Delegation domain errors
	case errors.Is(err, delegation.ErrDelegationNotFound):
		NotFound(w, "Delegation not found")
	case errors.Is(err, delegation.ErrSelfDelegation):
		BadRequest(w, "Cannot delegate approval authority to yourself", nil)
	case errors.Is(err, delegation.ErrDelegateNotManager):
		BadRequest(w, "Delegate must be a manager", nil)

	// Notification domain errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
