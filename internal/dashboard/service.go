package dashboard

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hackgods/hospital-dashboard/internal/tables"
	"github.com/hackgods/hospital-dashboard/internal/timefmt"
)

// ErrInvalidID is returned for a doctor or patient id that cannot name a row.
var ErrInvalidID = errors.New("id must be a positive integer")

// Service builds the per-role dashboards. Each call reads its tables
// concurrently, waits for all of them and aggregates in memory; nothing is
// shared between calls.
type Service struct {
	tables *tables.Client
	fmt    timefmt.Formatter
	now    func() time.Time
	logger *zap.Logger
}

type Option func(*Service)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithLocation sets the location day buckets and labels are rendered in.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		s.fmt = timefmt.New(loc)
	}
}

func NewService(client *tables.Client, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		tables: client,
		fmt:    timefmt.New(time.Local),
		now:    time.Now,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// read binds one table fetch to its destination for fetchAll.
func read[T any](c *tables.Client, table string, dst *[]T) func(context.Context) {
	return func(ctx context.Context) {
		*dst = tables.Fetch[T](ctx, c, table)
	}
}

// fetchAll runs every read concurrently and returns once all have settled.
// Reads never fail, they degrade to empty rows.
func (s *Service) fetchAll(ctx context.Context, view string, reads ...func(context.Context)) {
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	for _, r := range reads {
		g.Go(func() error {
			r(gctx)
			return nil
		})
	}
	_ = g.Wait()

	s.logger.Debug("dashboard tables loaded",
		zap.String("view", view),
		zap.Int("tables", len(reads)),
		zap.Duration("duration", time.Since(start)),
	)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// formatNumber renders the shortest form: 72 -> "72", 72.5 -> "72.5".
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// parseNumber reads a numeric string; anything unparseable is 0.
func parseNumber(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// parseBloodPressure splits "systolic/diastolic".
func parseBloodPressure(raw *string) (systolic, diastolic float64, ok bool) {
	if raw == nil {
		return 0, 0, false
	}
	parts := strings.Split(*raw, "/")
	if len(parts) < 2 {
		return 0, 0, false
	}
	sys, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, false
	}
	dia, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, false
	}
	return sys, dia, true
}

func valueOr(v *string, fallback string) string {
	if v == nil || *v == "" {
		return fallback
	}
	return *v
}

func nonEmptyOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func floatOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func hasText(v *string) bool {
	return v != nil && strings.TrimSpace(*v) != ""
}
