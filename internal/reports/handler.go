package reports

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"minehub/pkg/platform/httputil"
)

// OverseerResponse is one overseer summary row.
type OverseerResponse struct {
	Name      string `json:"name"`
	Position  string `json:"position"`
	MineCount int    `json:"mineCount"`
}

// ResourceSummaryResponse is one resource summary row.
type ResourceSummaryResponse struct {
	Type      string  `json:"type"`
	Value     float64 `json:"value"`
	MineCount int     `json:"mineCount"`
}

// RevenueResponse is one revenue rollup row.
type RevenueResponse struct {
	EmployeeName string  `json:"employeeName"`
	Position     string  `json:"position"`
	MineAverage  float64 `json:"mineAverage"`
	MineCount    int     `json:"mineCount"`
	TotalRevenue float64 `json:"totalRevenue"`
}

// ReportLink advertises one available report.
type ReportLink struct {
	Action   string `json:"action"`
	Location string `json:"location"`
}

// Handler wires report endpoints to the reports service.
type Handler struct {
	service *Service
}

// NewHandler constructs a reports handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register mounts the report endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/reports", h.HandleIndex)
	r.Get("/reports/overseers", h.HandleOverseers)
	r.Get("/reports/resources", h.HandleResources)
	r.Get("/reports/highrevenue", h.HandleRevenue)
	r.Get("/reports/productionaverage", h.HandleProductionAverage)
	r.Get("/reports/productionaverage/{mineID:[0-9]+}", h.HandleProductionAverage)
	r.Get("/reports/productionaverage/{mineName}", h.HandleProductionAverageByName)
	r.Get("/reports/productionsum", h.HandleProductionSum)
	r.Get("/reports/productionsum/{mineID:[0-9]+}", h.HandleProductionSum)
	r.Get("/reports/productionsum/{mineName}", h.HandleProductionSumByName)
}

// HandleIndex handles GET /reports, advertising the available reports.
func (h *Handler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	base := scheme + "://" + r.Host + "/api/reports"

	httputil.WriteJSON(w, http.StatusOK, []ReportLink{
		{Action: "Overseers", Location: base + "/overseers"},
		{Action: "Resources", Location: base + "/resources"},
		{Action: "HighRevenue", Location: base + "/highrevenue"},
		{Action: "ProductionAverage", Location: base + "/productionaverage"},
		{Action: "ProductionSum", Location: base + "/productionsum"},
	})
}

// HandleOverseers handles GET /reports/overseers.
func (h *Handler) HandleOverseers(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.Overseers(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	out := make([]OverseerResponse, 0, len(rows))
	for _, o := range rows {
		out = append(out, OverseerResponse{Name: o.Name, Position: o.Position, MineCount: o.MineCount})
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

// HandleResources handles GET /reports/resources.
func (h *Handler) HandleResources(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.ResourceSummary(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	out := make([]ResourceSummaryResponse, 0, len(rows))
	for _, res := range rows {
		out = append(out, ResourceSummaryResponse{Type: res.Type, Value: res.Value, MineCount: res.MineCount})
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

// HandleRevenue handles GET /reports/highrevenue.
func (h *Handler) HandleRevenue(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.Revenue(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	out := make([]RevenueResponse, 0, len(rows))
	for _, rev := range rows {
		out = append(out, RevenueResponse{
			EmployeeName: rev.EmployeeName,
			Position:     rev.Position,
			MineAverage:  rev.MineAverage,
			MineCount:    rev.MineCount,
			TotalRevenue: rev.TotalRevenue,
		})
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

// HandleProductionAverage handles GET /reports/productionaverage and its
// mine-id variant.
func (h *Handler) HandleProductionAverage(w http.ResponseWriter, r *http.Request) {
	mineID, _ := strconv.ParseInt(chi.URLParam(r, "mineID"), 10, 64)

	avg, err := h.service.ProductionAverage(r.Context(), mineID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteMessage(w, formatAmount(avg))
}

// HandleProductionAverageByName handles GET /reports/productionaverage/{mineName}.
func (h *Handler) HandleProductionAverageByName(w http.ResponseWriter, r *http.Request) {
	avg, err := h.service.ProductionAverageByName(r.Context(), chi.URLParam(r, "mineName"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteMessage(w, formatAmount(avg))
}

// HandleProductionSum handles GET /reports/productionsum and its mine-id
// variant.
func (h *Handler) HandleProductionSum(w http.ResponseWriter, r *http.Request) {
	mineID, _ := strconv.ParseInt(chi.URLParam(r, "mineID"), 10, 64)

	sum, err := h.service.ProductionSum(r.Context(), mineID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteMessage(w, formatAmount(sum))
}

// HandleProductionSumByName handles GET /reports/productionsum/{mineName}.
func (h *Handler) HandleProductionSumByName(w http.ResponseWriter, r *http.Request) {
	sum, err := h.service.ProductionSumByName(r.Context(), chi.URLParam(r, "mineName"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteMessage(w, formatAmount(sum))
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
