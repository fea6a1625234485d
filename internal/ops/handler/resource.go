package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"minehub/internal/ops/models"
	"minehub/pkg/platform/httputil"
)

// HandleListResources handles GET /resources.
func (h *Handler) HandleListResources(w http.ResponseWriter, r *http.Request) {
	resources, err := h.service.ListResources(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	out := make([]ResourceResponse, 0, len(resources))
	for _, res := range resources {
		out = append(out, ResourceResponse{Type: res.Type, Value: res.Value, Metric: res.Metric})
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

// HandleCreateResource handles POST /resources.
func (h *Handler) HandleCreateResource(w http.ResponseWriter, r *http.Request) {
	req, err := httputil.Decode[ResourceRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.WriteError(w, err)
		return
	}

	res := &models.Resource{Type: req.Type, Value: req.Value, Metric: req.Metric}
	if err := h.service.CreateResource(r.Context(), res); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteMessage(w, fmt.Sprintf("Resource '%s' has been created.", req.Type))
}

// HandleDeleteResource handles DELETE /resources/name/{resourceType}.
func (h *Handler) HandleDeleteResource(w http.ResponseWriter, r *http.Request) {
	resourceType := chi.URLParam(r, "resourceType")

	if err := h.service.DeleteResource(r.Context(), resourceType); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteMessage(w, fmt.Sprintf("Resource '%s' has been deleted.", resourceType))
}
