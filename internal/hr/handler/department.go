package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"minehub/internal/hr/models"
	"minehub/pkg/platform/httputil"
	"minehub/pkg/requestcontext"
)

// HandleListDepartments handles GET /departments.
func (h *Handler) HandleListDepartments(w http.ResponseWriter, r *http.Request) {
	deps, err := h.service.ListDepartments(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "list departments failed", "error", err)
		httputil.WriteError(w, err)
		return
	}

	out := make([]DepartmentResponse, 0, len(deps))
	for _, d := range deps {
		out = append(out, DepartmentResponse{DepartmentName: d.Name, DateEstablished: d.Established})
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

// HandleGetDepartmentByID handles GET /departments/{departmentID}.
func (h *Handler) HandleGetDepartmentByID(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "departmentID"), 10, 64)

	d, err := h.service.GetDepartmentByID(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, DepartmentResponse{DepartmentName: d.Name, DateEstablished: d.Established})
}

// HandleGetDepartmentByName handles GET /departments/name/{departmentName}.
func (h *Handler) HandleGetDepartmentByName(w http.ResponseWriter, r *http.Request) {
	d, err := h.service.GetDepartmentByName(r.Context(), chi.URLParam(r, "departmentName"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, DepartmentResponse{DepartmentName: d.Name, DateEstablished: d.Established})
}

// HandleCreateDepartment handles POST /departments.
func (h *Handler) HandleCreateDepartment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := httputil.Decode[DepartmentRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := req.Validate(requestcontext.Now(ctx)); err != nil {
		httputil.WriteError(w, err)
		return
	}

	d := &models.Department{Name: req.DepartmentName, Established: req.DateEstablished}
	if err := h.service.CreateDepartment(ctx, d); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteMessage(w, fmt.Sprintf("Department '%s' has been created.", req.DepartmentName))
}

// HandleDeleteDepartmentByID handles DELETE /departments/{departmentID}.
// The retrenchEmployees query flag allows the delete to take the
// department's employees with it.
func (h *Handler) HandleDeleteDepartmentByID(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "departmentID"), 10, 64)
	retrench := queryBool(r, "retrenchEmployees")

	d, err := h.service.DeleteDepartmentByID(r.Context(), id, retrench)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteMessage(w, fmt.Sprintf("Department '%s' has been deleted.", d.Name))
}

// HandleDeleteDepartmentByName handles DELETE /departments/name/{departmentName}.
func (h *Handler) HandleDeleteDepartmentByName(w http.ResponseWriter, r *http.Request) {
	retrench := queryBool(r, "retrenchEmployees")

	d, err := h.service.DeleteDepartmentByName(r.Context(), chi.URLParam(r, "departmentName"), retrench)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteMessage(w, fmt.Sprintf("Department '%s' has been deleted.", d.Name))
}

func queryBool(r *http.Request, name string) bool {
	v, _ := strconv.ParseBool(r.URL.Query().Get(name))
	return v
}
