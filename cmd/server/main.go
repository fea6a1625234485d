// Command server runs the mining records API. main wires configuration,
// stores, services and the HTTP router; business logic lives in the internal
// service packages.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	hrhandler "minehub/internal/hr/handler"
	hrmetrics "minehub/internal/hr/metrics"
	hrmodels "minehub/internal/hr/models"
	hrservice "minehub/internal/hr/service"
	"minehub/internal/hr/store/department"
	"minehub/internal/hr/store/employee"
	"minehub/internal/hr/store/leave"
	"minehub/internal/hr/store/performance"
	opshandler "minehub/internal/ops/handler"
	opsmodels "minehub/internal/ops/models"
	opsservice "minehub/internal/ops/service"
	"minehub/internal/ops/store/mine"
	"minehub/internal/ops/store/production"
	"minehub/internal/ops/store/resource"
	"minehub/internal/platform/config"
	"minehub/internal/platform/httpserver"
	"minehub/internal/platform/logger"
	"minehub/internal/platform/postgres"
	"minehub/internal/reports"
	reportsmetrics "minehub/internal/reports/metrics"
	"minehub/internal/resolver"
	httptransport "minehub/internal/transport/http"
	"minehub/pkg/platform/tx"
)

// stores bundles one backend's store set so main can swap postgres for the
// in-memory implementations when no database is configured.
type stores struct {
	departments interface {
		hrservice.DepartmentStore
	}
	employees interface {
		hrservice.EmployeeStore
	}
	leave interface {
		hrservice.LeaveStore
		Find(ctx context.Context, employeeID int64, leaveType string) (*hrmodels.Leave, error)
	}
	performance interface {
		hrservice.PerformanceStore
		Find(ctx context.Context, employeeID int64, perfType string) (*hrmodels.Performance, error)
	}
	mines interface {
		opsservice.MineStore
		ClearOverseer(ctx context.Context, employeeID int64) error
	}
	resources interface {
		opsservice.ResourceStore
	}
	production interface {
		opsservice.ProductionStore
		Latest(ctx context.Context) ([]opsmodels.Production, error)
		ListByMine(ctx context.Context, mineID int64) ([]opsmodels.Production, error)
	}
	runner tx.Runner
}

func memoryStores() stores {
	return stores{
		departments: department.NewInMemory(),
		employees:   employee.NewInMemory(),
		leave:       leave.NewInMemory(),
		performance: performance.NewInMemory(),
		mines:       mine.NewInMemory(),
		resources:   resource.NewInMemory(),
		production:  production.NewInMemory(),
		runner:      tx.NopRunner{},
	}
}

func postgresStores(db *sql.DB) stores {
	return stores{
		departments: department.NewPostgres(db),
		employees:   employee.NewPostgres(db),
		leave:       leave.NewPostgres(db),
		performance: performance.NewPostgres(db),
		mines:       mine.NewPostgres(db),
		resources:   resource.NewPostgres(db),
		production:  production.NewPostgres(db),
		runner:      tx.NewSQLRunner(db),
	}
}

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	log := logger.New(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var st stores
	if cfg.DatabaseURL != "" {
		db, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("postgres connection failed", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		st = postgresStores(db)
	} else {
		log.Warn("DATABASE_URL not set, using in-memory stores")
		st = memoryStores()
	}

	res := resolver.New(st.employees, st.departments, st.mines, st.leave, st.performance)

	hrSvc := hrservice.New(
		st.departments, st.employees, st.leave, st.performance, st.mines, res, st.runner,
		hrservice.WithLogger(log),
		hrservice.WithMetrics(hrmetrics.New()),
	)
	opsSvc := opsservice.New(
		st.mines, st.resources, st.production, st.employees, res, st.runner,
		opsservice.WithLogger(log),
	)
	reportSvc := reports.NewService(
		st.employees, st.mines, st.resources, st.production, res,
		reports.WithLogger(log),
		reports.WithMetrics(reportsmetrics.New()),
	)

	router := httptransport.NewRouter(cfg.JWTSigningKey, log,
		hrhandler.New(hrSvc, log),
		opshandler.New(opsSvc, reportSvc, log),
		reports.NewHandler(reportSvc),
	)

	srv := httpserver.New(cfg.Addr, router)
	log.Info("starting minehub", "addr", cfg.Addr, "env", cfg.Env)
	run(ctx, srv, log)
}

func run(ctx context.Context, srv *http.Server, log *slog.Logger) {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	log.Info("shutdown complete")
}
