package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"minehub/internal/hr/service"
	"minehub/pkg/platform/httputil"
)

// HandleListPerformance handles GET /performance.
func (h *Handler) HandleListPerformance(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.ListPerformance(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, performanceResponses(rows))
}

// HandleListPerformanceByEmployee handles GET /performance/name/{employeeName}.
func (h *Handler) HandleListPerformanceByEmployee(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.ListPerformanceByEmployee(r.Context(), chi.URLParam(r, "employeeName"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, performanceResponses(rows))
}

// HandleUpsertPerformance handles PUT /performance, creating a first rating
// or blending a repeat one.
func (h *Handler) HandleUpsertPerformance(w http.ResponseWriter, r *http.Request) {
	req, err := httputil.Decode[PerformanceRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.service.UpsertPerformance(r.Context(), req.EmployeeName, req.PerformanceType, req.Rating); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteMessage(w, fmt.Sprintf("Performance of type %s successfully modified for employee named '%s'.", req.PerformanceType, req.EmployeeName))
}

// HandleDeletePerformance handles DELETE /performance?employeeName=&performanceType=.
func (h *Handler) HandleDeletePerformance(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	employeeName := q.Get("employeeName")
	perfType := q.Get("performanceType")

	if err := h.service.DeletePerformance(r.Context(), employeeName, perfType); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteMessage(w, fmt.Sprintf("Performance of type %s successfully deleted from employee %s.", perfType, employeeName))
}

func performanceResponses(rows []service.PerformanceRow) []PerformanceResponse {
	out := make([]PerformanceResponse, 0, len(rows))
	for _, p := range rows {
		out = append(out, PerformanceResponse{EmployeeName: p.EmployeeName, PerformanceType: p.PerformanceType, Rating: p.Rating})
	}
	return out
}
