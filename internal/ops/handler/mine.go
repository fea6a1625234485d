package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"minehub/internal/ops/service"
	"minehub/pkg/platform/httputil"
)

// HandleListMines handles GET /mines with an optional resourceType filter.
func (h *Handler) HandleListMines(w http.ResponseWriter, r *http.Request) {
	mines, err := h.service.ListMines(r.Context(), r.URL.Query().Get("resourceType"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	out := make([]MineResponse, 0, len(mines))
	for _, m := range mines {
		out = append(out, mineResponse(&m))
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

// HandleGetMineByID handles GET /mines/{mineID}.
func (h *Handler) HandleGetMineByID(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "mineID"), 10, 64)

	m, err := h.service.GetMineByID(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, mineResponse(m))
}

// HandleGetMineByName handles GET /mines/name/{mineName}.
func (h *Handler) HandleGetMineByName(w http.ResponseWriter, r *http.Request) {
	m, err := h.service.GetMineByName(r.Context(), chi.URLParam(r, "mineName"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, mineResponse(m))
}

// HandleSetOverseer handles PATCH /mines/overseer?mineName=&employeeName=.
func (h *Handler) HandleSetOverseer(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if err := h.service.SetOverseer(r.Context(), q.Get("mineName"), q.Get("employeeName")); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteMessage(w, "Mine Overseer successfully updated.")
}

// HandleCreateMine handles POST /mines.
func (h *Handler) HandleCreateMine(w http.ResponseWriter, r *http.Request) {
	req, err := httputil.Decode[MineRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.WriteError(w, err)
		return
	}

	in := service.MineInput{
		Name:         req.Name,
		ResourceType: req.Type,
		Latitude:     req.Lattitude,
		Longitude:    req.Longitude,
		OverseerName: req.OverseerName,
	}
	if _, err := h.service.CreateMine(r.Context(), in); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteMessage(w, fmt.Sprintf("Mine '%s' has been created.", req.Name))
}

// HandleDeleteMineByID handles DELETE /mines/{mineID}. The removeProduction
// query flag allows the delete to take logged readings with it.
func (h *Handler) HandleDeleteMineByID(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "mineID"), 10, 64)
	removeProduction := queryBool(r, "removeProduction")

	m, err := h.service.DeleteMineByID(r.Context(), id, removeProduction)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteMessage(w, fmt.Sprintf("Mine '%s' has been deleted.", m.Name))
}

// HandleDeleteMineByName handles DELETE /mines/name/{mineName}.
func (h *Handler) HandleDeleteMineByName(w http.ResponseWriter, r *http.Request) {
	removeProduction := queryBool(r, "removeProduction")

	m, err := h.service.DeleteMineByName(r.Context(), chi.URLParam(r, "mineName"), removeProduction)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteMessage(w, fmt.Sprintf("Mine '%s' has been deleted.", m.Name))
}

func queryBool(r *http.Request, name string) bool {
	v, _ := strconv.ParseBool(r.URL.Query().Get(name))
	return v
}
