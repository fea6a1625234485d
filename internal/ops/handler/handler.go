// Package handler exposes the operations endpoints: mines, resources and
// daily production readings.
package handler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"

	"minehub/internal/ops/models"
	"minehub/internal/ops/service"
)

// Service defines the operations the handlers depend on.
type Service interface {
	ListMines(ctx context.Context, resourceType string) ([]service.MineView, error)
	GetMineByID(ctx context.Context, id int64) (*service.MineView, error)
	GetMineByName(ctx context.Context, name string) (*service.MineView, error)
	SetOverseer(ctx context.Context, mineName, employeeName string) error
	CreateMine(ctx context.Context, in service.MineInput) (*models.Mine, error)
	DeleteMineByID(ctx context.Context, id int64, removeProduction bool) (*models.Mine, error)
	DeleteMineByName(ctx context.Context, name string, removeProduction bool) (*models.Mine, error)

	ListResources(ctx context.Context) ([]models.Resource, error)
	CreateResource(ctx context.Context, r *models.Resource) error
	DeleteResource(ctx context.Context, resourceType string) error

	LogProduction(ctx context.Context, mineID int64, amount float64, dateLogged time.Time) (*models.Production, error)
	ProductionByDay(ctx context.Context, mineID int64, day time.Time) ([]models.Production, error)
	ProductionByDayForMine(ctx context.Context, mineName string, day time.Time) ([]models.Production, error)
}

// LatestReader serves the latest-production listing, which lives with the
// production endpoints for compatibility with existing consumers.
type LatestReader interface {
	LatestProduction(ctx context.Context) ([]models.Production, error)
}

// Handler wires operations endpoints to the operations service.
type Handler struct {
	service Service
	latest  LatestReader
	logger  *slog.Logger
}

// New constructs an operations handler.
func New(service Service, latest LatestReader, logger *slog.Logger) *Handler {
	return &Handler{service: service, latest: latest, logger: logger}
}

// Register mounts the operations endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/mines", h.HandleListMines)
	r.Get("/mines/{mineID:[0-9]+}", h.HandleGetMineByID)
	r.Get("/mines/name/{mineName}", h.HandleGetMineByName)
	r.Patch("/mines/overseer", h.HandleSetOverseer)
	r.Post("/mines", h.HandleCreateMine)
	r.Delete("/mines/{mineID:[0-9]+}", h.HandleDeleteMineByID)
	r.Delete("/mines/name/{mineName}", h.HandleDeleteMineByName)

	r.Get("/resources", h.HandleListResources)
	r.Post("/resources", h.HandleCreateResource)
	r.Delete("/resources/name/{resourceType}", h.HandleDeleteResource)

	r.Get("/production", h.HandleListProduction)
	r.Get("/production/{mineID:[0-9]+}", h.HandleListProduction)
	r.Get("/production/name/{mineName}", h.HandleListProductionByName)
	r.Get("/production/last", h.HandleLatestProduction)
	r.Post("/production", h.HandleLogProduction)
}
