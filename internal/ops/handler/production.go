package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	dErrors "minehub/pkg/domain-errors"
	"minehub/pkg/platform/httputil"
	"minehub/pkg/requestcontext"
)

// HandleListProduction handles GET /production and GET /production/{mineID},
// listing readings for one day. The productionDate query parameter defaults
// to the request day.
func (h *Handler) HandleListProduction(w http.ResponseWriter, r *http.Request) {
	mineID, _ := strconv.ParseInt(chi.URLParam(r, "mineID"), 10, 64)
	day, err := queryDate(r, "productionDate")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	rows, err := h.service.ProductionByDay(r.Context(), mineID, day)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, productionResponses(rows))
}

// HandleListProductionByName handles GET /production/name/{mineName}.
func (h *Handler) HandleListProductionByName(w http.ResponseWriter, r *http.Request) {
	day, err := queryDate(r, "productionDate")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	rows, err := h.service.ProductionByDayForMine(r.Context(), chi.URLParam(r, "mineName"), day)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, productionResponses(rows))
}

// HandleLatestProduction handles GET /production/last, returning the most
// recent reading of every mine.
func (h *Handler) HandleLatestProduction(w http.ResponseWriter, r *http.Request) {
	rows, err := h.latest.LatestProduction(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, productionResponses(rows))
}

// HandleLogProduction handles POST /production.
func (h *Handler) HandleLogProduction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := httputil.Decode[ProductionRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := req.Validate(requestcontext.Now(ctx)); err != nil {
		httputil.WriteError(w, err)
		return
	}

	if _, err := h.service.LogProduction(ctx, req.MineID, req.Amount, req.DateLogged); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteMessage(w, "Production data has been created.")
}

// queryDate parses an optional date query parameter, accepting a bare date
// or a full RFC 3339 timestamp. A missing parameter is the zero time.
func queryDate(r *http.Request, name string) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, dErrors.Newf(dErrors.CodeInvalidArgument, "'%s' is not a valid date.", raw)
	}
	return t, nil
}
