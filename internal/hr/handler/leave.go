package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"minehub/internal/hr/service"
	"minehub/pkg/platform/httputil"
)

// HandleListLeave handles GET /leave.
func (h *Handler) HandleListLeave(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.ListLeave(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, leaveResponses(rows))
}

// HandleListLeaveByEmployee handles GET /leave/name/{employeeName}.
func (h *Handler) HandleListLeaveByEmployee(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.ListLeaveByEmployee(r.Context(), chi.URLParam(r, "employeeName"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, leaveResponses(rows))
}

// HandleAdjustLeave handles PATCH /leave, applying a signed day delta to an
// existing balance.
func (h *Handler) HandleAdjustLeave(w http.ResponseWriter, r *http.Request) {
	req, err := httputil.Decode[LeaveRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.service.AdjustLeave(r.Context(), req.EmployeeName, req.LeaveType, req.Amount); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteMessage(w, fmt.Sprintf("Leave of type %s successfully modified for employee named '%s'.", req.LeaveType, req.EmployeeName))
}

// HandleCreateLeave handles POST /leave.
func (h *Handler) HandleCreateLeave(w http.ResponseWriter, r *http.Request) {
	req, err := httputil.Decode[LeaveRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.WriteError(w, err)
		return
	}

	l, err := h.service.CreateLeave(r.Context(), req.EmployeeName, req.LeaveType, req.Amount)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteMessage(w, fmt.Sprintf("Leave of type %s successfully added for employee name '%s'.", l.Type, req.EmployeeName))
}

// HandleDeleteLeave handles DELETE /leave?employeeName=&leaveType=.
func (h *Handler) HandleDeleteLeave(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	employeeName := q.Get("employeeName")
	leaveType := q.Get("leaveType")

	if err := h.service.DeleteLeave(r.Context(), employeeName, leaveType); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteMessage(w, fmt.Sprintf("Leave of type %s successfully deleted from employee %s.", leaveType, employeeName))
}

func leaveResponses(rows []service.LeaveRow) []LeaveResponse {
	out := make([]LeaveResponse, 0, len(rows))
	for _, l := range rows {
		out = append(out, LeaveResponse{EmployeeName: l.EmployeeName, LeaveType: l.LeaveType, Amount: l.Amount})
	}
	return out
}
