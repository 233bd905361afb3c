package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/codemyown/leave-mangement-system/internal/domain/leave"
	"github.com/codemyown/leave-mangement-system/internal/handler/http/response"
	leaveservice "github.com/codemyown/leave-mangement-system/internal/service/leave"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
)

type LeaveHandler interface {
	SubmitRequest(w http.ResponseWriter, r *http.Request)
	GetRequest(w http.ResponseWriter, r *http.Request)
	ListMyRequests(w http.ResponseWriter, r *http.Request)
	ListAllRequests(w http.ResponseWriter, r *http.Request)
	ListPendingRequests(w http.ResponseWriter, r *http.Request)
	ApproveRequest(w http.ResponseWriter, r *http.Request)
	RejectRequest(w http.ResponseWriter, r *http.Request)
	CancelRequest(w http.ResponseWriter, r *http.Request)
	ListMyBalances(w http.ResponseWriter, r *http.Request)

	CreateLeaveType(w http.ResponseWriter, r *http.Request)
	ListLeaveTypes(w http.ResponseWriter, r *http.Request)
	UpdateLeaveType(w http.ResponseWriter, r *http.Request)
	DeleteLeaveType(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService *leaveservice.LeaveServiceImpl
}

func NewLeaveHandler(leaveService *leaveservice.LeaveServiceImpl) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService}
}

// getUserIDFromContext extracts user_id from JWT context
func getUserIDFromContext(r *http.Request) string {
	_, claims, _ := jwtauth.FromContext(r.Context())
	if userID, ok := claims["user_id"].(string); ok {
		return userID
	}
	return ""
}

func isManagerFromContext(r *http.Request) bool {
	_, claims, _ := jwtauth.FromContext(r.Context())
	flag, ok := claims["is_manager"].(bool)
	return ok && flag
}

// getIntQueryParam gets an int query parameter with a default value
func getIntQueryParam(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	intVal, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return intVal
}

// requestFilterFromQuery builds a listing filter from query parameters.
func requestFilterFromQuery(r *http.Request) leave.LeaveRequestFilter {
	filter := leave.LeaveRequestFilter{
		Page:  getIntQueryParam(r, "page", 1),
		Limit: getIntQueryParam(r, "limit", 20),
	}
	if v := r.URL.Query().Get("leave_type_id"); v != "" {
		filter.LeaveTypeID = &v
	}
	if v := r.URL.Query().Get("status"); v != "" {
		status := leave.LeaveRequestStatus(v)
		filter.Status = &status
	}
	if v := r.URL.Query().Get("start_date"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			filter.StartDate = &t
		}
	}
	if v := r.URL.Query().Get("end_date"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			filter.EndDate = &t
		}
	}
	return filter
}

func listMeta(filter leave.LeaveRequestFilter, total int64) *response.Meta {
	meta := &response.Meta{
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalItems: total,
	}
	if filter.Limit > 0 {
		meta.TotalPages = int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	}
	return meta
}

// SubmitRequest implements LeaveHandler.
func (h *LeaveHandlerImpl) SubmitRequest(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req leave.CreateLeaveRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.UserID = userID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.leaveService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted", created)
}

// GetRequest implements LeaveHandler.
func (h *LeaveHandlerImpl) GetRequest(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	request, err := h.leaveService.GetRequest(r.Context(), userID, isManagerFromContext(r), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, request)
}

// ListMyRequests implements LeaveHandler.
func (h *LeaveHandlerImpl) ListMyRequests(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	filter := requestFilterFromQuery(r)
	requests, total, err := h.leaveService.ListMyRequests(r.Context(), userID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, requests, listMeta(filter, total))
}

// ListAllRequests implements LeaveHandler.
func (h *LeaveHandlerImpl) ListAllRequests(w http.ResponseWriter, r *http.Request) {
	filter := requestFilterFromQuery(r)
	requests, total, err := h.leaveService.ListAllRequests(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, requests, listMeta(filter, total))
}

// ListPendingRequests implements LeaveHandler.
func (h *LeaveHandlerImpl) ListPendingRequests(w http.ResponseWriter, r *http.Request) {
	filter := requestFilterFromQuery(r)
	requests, total, err := h.leaveService.ListPendingRequests(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, requests, listMeta(filter, total))
}

// ApproveRequest implements LeaveHandler.
func (h *LeaveHandlerImpl) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.leaveService.Approve)
}

// RejectRequest implements LeaveHandler.
func (h *LeaveHandlerImpl) RejectRequest(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.leaveService.Reject)
}

func (h *LeaveHandlerImpl) decide(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, approverID string, req leave.DecideLeaveRequestRequest) (leave.LeaveRequestResponse, error)) {
	approverID := getUserIDFromContext(r)
	if approverID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req leave.DecideLeaveRequestRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	req.RequestID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := fn(r.Context(), approverID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request "+updated.Status, updated)
}

// CancelRequest implements LeaveHandler.
func (h *LeaveHandlerImpl) CancelRequest(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req leave.CancelLeaveRequestRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	req.RequestID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.leaveService.Cancel(r.Context(), userID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request cancelled", updated)
}

// ListMyBalances implements LeaveHandler.
func (h *LeaveHandlerImpl) ListMyBalances(w http.ResponseWriter, r *http.Request) {
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

	response.Success(w, balances)
}

// CreateLeaveType implements LeaveHandler.
func (h *LeaveHandlerImpl) CreateLeaveType(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateLeaveTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.leaveService.CreateLeaveType(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave type created", created)
}

// ListLeaveTypes implements LeaveHandler.
func (h *LeaveHandlerImpl) ListLeaveTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.leaveService.ListLeaveTypes(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, types)
}

// UpdateLeaveType implements LeaveHandler.
func (h *LeaveHandlerImpl) UpdateLeaveType(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateLeaveTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.leaveService.UpdateLeaveType(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave type updated", updated)
}

// DeleteLeaveType implements LeaveHandler.
func (h *LeaveHandlerImpl) DeleteLeaveType(w http.ResponseWriter, r *http.Request) {
	if err := h.leaveService.DeleteLeaveType(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave type deleted", nil)
}
