package http

import (
	"encoding/json"
	"net/http"

	"github.com/codemyown/leave-mangement-system/internal/domain/delegation"
	"github.com/codemyown/leave-mangement-system/internal/handler/http/response"
	leaveservice "github.com/codemyown/leave-mangement-system/internal/service/leave"
	"github.com/go-chi/chi/v5"
)

type DelegationHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type DelegationHandlerImpl struct {
	leaveService *leaveservice.LeaveServiceImpl
}

func NewDelegationHandler(leaveService *leaveservice.LeaveServiceImpl) DelegationHandler {
	return &DelegationHandlerImpl{leaveService: leaveService}
}

// Create implements DelegationHandler. The delegating manager is the caller.
func (h *DelegationHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	managerID := getUserIDFromContext(r)
	if managerID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req delegation.CreateDelegationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ManagerID = managerID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.leaveService.CreateDelegation(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Delegation created", created)
}

// ListMine implements DelegationHandler.
func (h *DelegationHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	managerID := getUserIDFromContext(r)
	if managerID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	delegations, err := h.leaveService.ListMyDelegations(r.Context(), managerID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, delegations)
}

// Delete implements DelegationHandler.
func (h *DelegationHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	managerID := getUserIDFromContext(r)
	if managerID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	if err := h.leaveService.DeleteDelegation(r.Context(), managerID, chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Delegation deleted", nil)
}
