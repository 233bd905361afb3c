package http

import (
	"encoding/json"
	"net/http"

	"github.com/codemyown/leave-mangement-system/internal/domain/holiday"
	"github.com/codemyown/leave-mangement-system/internal/handler/http/response"
	leaveservice "github.com/codemyown/leave-mangement-system/internal/service/leave"
	"github.com/go-chi/chi/v5"
)

type HolidayHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Upcoming(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type HolidayHandlerImpl struct {
	leaveService *leaveservice.LeaveServiceImpl
}

func NewHolidayHandler(leaveService *leaveservice.LeaveServiceImpl) HolidayHandler {
	return &HolidayHandlerImpl{leaveService: leaveService}
}

// Create implements HolidayHandler.
func (h *HolidayHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req holiday.CreateHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.leaveService.AddHoliday(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Holiday added", created)
}

// List implements HolidayHandler.
func (h *HolidayHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	holidays, err := h.leaveService.ListHolidays(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, holidays)
}

// Upcoming implements HolidayHandler. Defaults to the next 30 days.
func (h *HolidayHandlerImpl) Upcoming(w http.ResponseWriter, r *http.Request) {
	days := getIntQueryParam(r, "days", 30)
	holidays, err := h.leaveService.UpcomingHolidays(r.Context(), days)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, holidays)
}

// Delete implements HolidayHandler.
func (h *HolidayHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.leaveService.DeleteHoliday(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Holiday deleted", nil)
}
