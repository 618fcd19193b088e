package api

import (
	"context"
	"net/http"
	"time"

	"github.com/hackgods/hospital-dashboard/internal/records"
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// FailureReporter is satisfied by the Redis failure tracker.
type FailureReporter interface {
	Pinger
	Failures(ctx context.Context, tables []string) (map[string]int64, error)
}

type HealthHandler struct {
	postgres Pinger
	failures FailureReporter
	env      string
	version  string
}

func NewHealthHandler(postgres Pinger, failures FailureReporter, env, version string) *HealthHandler {
	return &HealthHandler{
		postgres: postgres,
		failures: failures,
		env:      env,
		version:  version,
	}
}

type LivenessResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Env     string `json:"env,omitempty"`
}

type ReadinessResponse struct {
	Status         string            `json:"status"`
	Version        string            `json:"version,omitempty"`
	Env            string            `json:"env,omitempty"`
	Dependencies   map[string]string `json:"dependencies"`
	DegradedTables map[string]int64  `json:"degradedTables,omitempty"`
}

func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	resp := LivenessResponse{
		Status:  "ok",
		Version: h.version,
		Env:     h.env,
	}
	writeJSON(w, http.StatusOK, resp)
}

// Readiness fails when Postgres backs the tables and is down. A down Redis or
// tables with recent soft failures only degrade it.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	deps := make(map[string]string)
	status := "ok"

	if h.postgres != nil {
		pgCtx, pgCancel := context.WithTimeout(ctx, 1*time.Second)
		err := h.postgres.Ping(pgCtx)
		pgCancel()
		if err != nil {
			deps["postgres"] = "down"
			status = "error"
		} else {
			deps["postgres"] = "ok"
		}
	}

	var degraded map[string]int64
	if h.failures != nil {
		redisCtx, redisCancel := context.WithTimeout(ctx, 1*time.Second)
		err := h.failures.Ping(redisCtx)
		if err == nil {
			degraded, err = recentFailures(redisCtx, h.failures)
		}
		redisCancel()

		if err != nil {
			deps["redis"] = "down"
		} else {
			deps["redis"] = "ok"
		}
		if (err != nil || len(degraded) > 0) && status == "ok" {
			status = "degraded"
		}
	}

	resp := ReadinessResponse{
		Status:         status,
		Version:        h.version,
		Env:            h.env,
		Dependencies:   deps,
		DegradedTables: degraded,
	}

	httpStatus := http.StatusOK
	if status == "error" {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, resp)
}

// recentFailures returns only the tables with failures inside the window.
func recentFailures(ctx context.Context, f FailureReporter) (map[string]int64, error) {
	counts, err := f.Failures(ctx, records.AllTables)
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64)
	for table, n := range counts {
		if n > 0 {
			out[table] = n
		}
	}
	return out, nil
}
