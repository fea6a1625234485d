package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"minehub/internal/hr/service"
	"minehub/pkg/platform/httputil"
	"minehub/pkg/requestcontext"
)

// HandleListEmployees handles GET /employees with optional departmentName
// and titleName query filters.
func (h *Handler) HandleListEmployees(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	staff, err := h.service.ListEmployees(r.Context(), q.Get("departmentName"), q.Get("titleName"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	out := make([]EmployeeSummaryResponse, 0, len(staff))
	for _, e := range staff {
		out = append(out, EmployeeSummaryResponse{Name: e.Name, Position: e.Position})
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

// HandleGetEmployeeByID handles GET /employees/{employeeID}.
func (h *Handler) HandleGetEmployeeByID(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "employeeID"), 10, 64)

	e, err := h.service.GetEmployeeByID(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, detailResponse(e))
}

// HandleGetEmployeeByName handles GET /employees/name/{employeeName}.
func (h *Handler) HandleGetEmployeeByName(w http.ResponseWriter, r *http.Request) {
	e, err := h.service.GetEmployeeByName(r.Context(), chi.URLParam(r, "employeeName"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, detailResponse(e))
}

// HandleCreateEmployee handles POST /employees.
func (h *Handler) HandleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := httputil.Decode[EmployeeRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := req.Validate(requestcontext.Now(ctx)); err != nil {
		httputil.WriteError(w, err)
		return
	}

	if _, err := h.service.CreateEmployee(ctx, employeeInput(req)); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteMessage(w, fmt.Sprintf("Employee '%s %s' has been created.", req.FirstName, req.LastName))
}

// HandleUpdateEmployee handles PUT /employees/update, re-pointing the
// employee's department and manager and rewriting position and salary.
func (h *Handler) HandleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := httputil.Decode[EmployeeRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := req.Validate(requestcontext.Now(ctx)); err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.service.UpdateEmployee(ctx, employeeInput(req)); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteMessage(w, fmt.Sprintf("Operation for employee '%s %s' was successful.", req.FirstName, req.LastName))
}

// HandleDeleteEmployeeByID handles DELETE /employees/{employeeID}.
func (h *Handler) HandleDeleteEmployeeByID(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "employeeID"), 10, 64)

	e, err := h.service.DeleteEmployeeByID(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteMessage(w, fmt.Sprintf("Employee '%s %s' with id '%d' has been deleted.", e.FirstName, e.LastName, e.ID))
}

// HandleDeleteEmployeeByName handles DELETE /employees/name/{employeeName}.
func (h *Handler) HandleDeleteEmployeeByName(w http.ResponseWriter, r *http.Request) {
	e, err := h.service.DeleteEmployeeByName(r.Context(), chi.URLParam(r, "employeeName"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteMessage(w, fmt.Sprintf("Employee '%s %s' with id '%d' has been deleted.", e.FirstName, e.LastName, e.ID))
}

func employeeInput(req EmployeeRequest) service.EmployeeInput {
	return service.EmployeeInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Position:       req.Position,
		Department:     req.Department,
		Manager:        req.Manager,
		EnrollmentDate: req.EnrollmentDate,
		Salary:         req.Salary,
	}
}

func detailResponse(e *service.EmployeeDetail) EmployeeDetailResponse {
	return EmployeeDetailResponse{
		Name:           e.Name,
		Position:       e.Position,
		Department:     e.Department,
		Manager:        e.Manager,
		EnrollmentDate: e.EnrollmentDate,
	}
}
