package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/hackgods/hospital-dashboard/internal/dashboard"
)

// Dashboards is the aggregation layer the handlers serve.
type Dashboards interface {
	Analyst(ctx context.Context) *dashboard.AnalystDashboard
	AnalystKPI(ctx context.Context, kpi dashboard.KPI, rangeName string) (dashboard.KPIWindow, error)
	ClinicalStaff(ctx context.Context) *dashboard.ClinicalStaffDashboard
	Doctor(ctx context.Context, doctorID int64) (*dashboard.DoctorDashboard, error)
	Patient(ctx context.Context, patientID int64) (*dashboard.PatientDashboard, error)
}

type RouterConfig struct {
	Dashboards Dashboards
	Logger     *zap.Logger
	// Postgres is pinged by readiness when tables are read from Postgres.
	Postgres Pinger
	// Failures is the optional Redis failure tracker.
	Failures FailureReporter
	Env      string
	Version  string
}

func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(logger))
	r.Use(middleware.Recoverer)

	health := NewHealthHandler(cfg.Postgres, cfg.Failures, cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	r.Route("/dashboards", func(r chi.Router) {
		r.Get("/analyst", analystHandler(cfg.Dashboards))
		r.Get("/analyst/kpis/{kpi}", analystKPIHandler(cfg.Dashboards))
		r.Get("/clinical-staff", clinicalStaffHandler(cfg.Dashboards))
		r.Get("/doctors/{doctorID}", doctorHandler(cfg.Dashboards))
		r.Get("/patients/{patientID}", patientHandler(cfg.Dashboards))
	})

	return r
}
