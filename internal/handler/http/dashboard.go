package http

import (
	"net/http"

	"github.com/codemyown/leave-mangement-system/internal/domain/holiday"
	"github.com/codemyown/leave-mangement-system/internal/domain/leave"
	"github.com/codemyown/leave-mangement-system/internal/handler/http/response"
	leaveservice "github.com/codemyown/leave-mangement-system/internal/service/leave"
)

type DashboardHandler interface {
	Summary(w http.ResponseWriter, r *http.Request)
}

// DashboardSummary is the landing-page payload: the caller's balances, their
// most recent requests, and holidays in the next 30 days.
type DashboardSummary struct {
	Balances         []leave.LeaveBalanceResponse `json:"balances"`
	RecentRequests   []leave.LeaveRequestResponse `json:"recent_requests"`
	UpcomingHolidays []holiday.Holiday            `json:"upcoming_holidays"`
}

type DashboardHandlerImpl struct {
	leaveService *leaveservice.LeaveServiceImpl
}

func NewDashboardHandler(leaveService *leaveservice.LeaveServiceImpl) DashboardHandler {
	return &DashboardHandlerImpl{leaveService: leaveService}
}

// Summary implements DashboardHandler.
func (h *DashboardHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	balances, err := h.leaveService.ListMyBalances(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	requests, _, err := h.leaveService.ListMyRequests(r.Context(), userID, leave.LeaveRequestFilter{Page: 1, Limit: 5})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	holidays, err := h.leaveService.UpcomingHolidays(r.Context(), 30)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, DashboardSummary{
		Balances:         balances,
		RecentRequests:   requests,
		UpcomingHolidays: holidays,
	})
}
