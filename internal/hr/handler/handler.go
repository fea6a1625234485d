// Package handler exposes the HR endpoints: departments, employees, leave
// and performance. Handlers decode and validate input, delegate to the
// service and translate results into the shared JSON envelopes.
package handler

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/v5"

	"minehub/internal/hr/models"
	"minehub/internal/hr/service"
)

// Service defines the HR operations the handlers depend on.
type Service interface {
	ListDepartments(ctx context.Context) ([]models.Department, error)
	GetDepartmentByID(ctx context.Context, id int64) (*models.Department, error)
	GetDepartmentByName(ctx context.Context, name string) (*models.Department, error)
	CreateDepartment(ctx context.Context, d *models.Department) error
	DeleteDepartmentByID(ctx context.Context, id int64, retrenchEmployees bool) (*models.Department, error)
	DeleteDepartmentByName(ctx context.Context, name string, retrenchEmployees bool) (*models.Department, error)

	ListEmployees(ctx context.Context, departmentName, titleName string) ([]service.EmployeeSummary, error)
	GetEmployeeByID(ctx context.Context, id int64) (*service.EmployeeDetail, error)
	GetEmployeeByName(ctx context.Context, name string) (*service.EmployeeDetail, error)
	CreateEmployee(ctx context.Context, in service.EmployeeInput) (*models.Employee, error)
	UpdateEmployee(ctx context.Context, in service.EmployeeInput) error
	DeleteEmployeeByID(ctx context.Context, id int64) (*models.Employee, error)
	DeleteEmployeeByName(ctx context.Context, name string) (*models.Employee, error)

	ListLeave(ctx context.Context) ([]service.LeaveRow, error)
	ListLeaveByEmployee(ctx context.Context, employeeName string) ([]service.LeaveRow, error)
	AdjustLeave(ctx context.Context, employeeName, leaveType string, amount int) error
	CreateLeave(ctx context.Context, employeeName, leaveType string, amount int) (*models.Leave, error)
	DeleteLeave(ctx context.Context, employeeName, leaveType string) error

	ListPerformance(ctx context.Context) ([]service.PerformanceRow, error)
	ListPerformanceByEmployee(ctx context.Context, employeeName string) ([]service.PerformanceRow, error)
	UpsertPerformance(ctx context.Context, employeeName, perfType string, rating int) error
	DeletePerformance(ctx context.Context, employeeName, perfType string) error
}

// Handler wires HR endpoints to the HR service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs an HR handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the HR endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/departments", h.HandleListDepartments)
	r.Get("/departments/{departmentID:[0-9]+}", h.HandleGetDepartmentByID)
	r.Get("/departments/name/{departmentName}", h.HandleGetDepartmentByName)
	r.Post("/departments", h.HandleCreateDepartment)
	r.Delete("/departments/{departmentID:[0-9]+}", h.HandleDeleteDepartmentByID)
	r.Delete("/departments/name/{departmentName}", h.HandleDeleteDepartmentByName)

	r.Get("/employees", h.HandleListEmployees)
	r.Get("/employees/{employeeID:[0-9]+}", h.HandleGetEmployeeByID)
	r.Get("/employees/name/{employeeName}", h.HandleGetEmployeeByName)
	r.Post("/employees", h.HandleCreateEmployee)
	r.Put("/employees/update", h.HandleUpdateEmployee)
	r.Delete("/employees/{employeeID:[0-9]+}", h.HandleDeleteEmployeeByID)
	r.Delete("/employees/name/{employeeName}", h.HandleDeleteEmployeeByName)

	r.Get("/leave", h.HandleListLeave)
	r.Get("/leave/name/{employeeName}", h.HandleListLeaveByEmployee)
	r.Patch("/leave", h.HandleAdjustLeave)
	r.Post("/leave", h.HandleCreateLeave)
	r.Delete("/leave", h.HandleDeleteLeave)

	r.Get("/performance", h.HandleListPerformance)
	r.Get("/performance/name/{employeeName}", h.HandleListPerformanceByEmployee)
	r.Put("/performance", h.HandleUpsertPerformance)
	r.Delete("/performance", h.HandleDeletePerformance)
}
