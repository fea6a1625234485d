package handler

import (
	"time"

	"minehub/internal/ops/models"
	"minehub/internal/ops/service"
	"minehub/internal/validate"
)

// MineRequest is the body for POST /mines. The lattitude spelling is kept for
// compatibility with existing API consumers.
type MineRequest struct {
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	Lattitude    float64 `json:"lattitude"`
	Longitude    float64 `json:"longitude"`
	OverseerName string  `json:"overseerName"`
}

func (req MineRequest) Validate() error {
	var rules validate.Rules
	rules.Length("Name", req.Name, 2, 20)
	rules.Length("Type", req.Type, 2, 20)
	rules.FloatBetween("Lattitude", req.Lattitude, -90, 90)
	rules.FloatBetween("Longitude", req.Longitude, -180, 180)
	if req.OverseerName != "" {
		rules.Length("Overseer Name", req.OverseerName, 2, 20)
	}
	return rules.Err()
}

// ResourceRequest is the body for POST /resources. An empty metric defaults
// to tons.
type ResourceRequest struct {
	Type   string  `json:"type"`
	Value  float64 `json:"value"`
	Metric string  `json:"metric"`
}

func (req ResourceRequest) Validate() error {
	var rules validate.Rules
	rules.Length("Type", req.Type, 2, 20)
	if req.Metric != "" {
		rules.Length("Metric", req.Metric, 2, 20)
	}
	return rules.Err()
}

// ProductionRequest is the body for POST /production. A zero date defaults to
// the request day.
type ProductionRequest struct {
	MineID     int64     `json:"mineId"`
	Amount     float64   `json:"amount"`
	DateLogged time.Time `json:"datelogged"`
}

func (req ProductionRequest) Validate(now time.Time) error {
	var rules validate.Rules
	rules.PastYear("Datelogged", req.DateLogged, now)
	return rules.Err()
}

// MineResponse is one mine with its overseer's name.
type MineResponse struct {
	MineID       int64   `json:"mineId"`
	Name         string  `json:"name"`
	Lattitude    float64 `json:"lattitude"`
	Longitude    float64 `json:"longitude"`
	Type         string  `json:"type"`
	OverseerName string  `json:"overseerName"`
}

// ResourceResponse is one resource type.
type ResourceResponse struct {
	Type   string  `json:"type"`
	Value  float64 `json:"value"`
	Metric string  `json:"metric"`
}

// ProductionResponse is one day's reading for a mine.
type ProductionResponse struct {
	MineID     int64     `json:"mineId"`
	Amount     float64   `json:"amount"`
	DateLogged time.Time `json:"datelogged"`
}

func mineResponse(v *service.MineView) MineResponse {
	return MineResponse{
		MineID:       v.MineID,
		Name:         v.Name,
		Lattitude:    v.Latitude,
		Longitude:    v.Longitude,
		Type:         v.ResourceType,
		OverseerName: v.OverseerName,
	}
}

func productionResponses(rows []models.Production) []ProductionResponse {
	out := make([]ProductionResponse, 0, len(rows))
	for _, p := range rows {
		out = append(out, ProductionResponse{MineID: p.MineID, Amount: p.Amount, DateLogged: p.DateLogged})
	}
	return out
}
