package dashboard

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrUnknownKPI   = errors.New("unknown kpi")
	ErrUnknownRange = errors.New("unknown range")
)

type KPI string

const (
	KPIDiagnosisVolume   KPI = "diagnosisVolume"
	KPIAppointmentVolume KPI = "appointmentVolume"
	KPIAIAccuracy        KPI = "aiAccuracy"
	KPIRetention         KPI = "retention"
)

var kpiLabels = map[KPI]string{
	KPIDiagnosisVolume:   "Diagnosis Volume",
	KPIAppointmentVolume: "Appointment Volume",
	KPIAIAccuracy:        "AI Accuracy (%)",
	KPIRetention:         "Patient Retention Rate (%)",
}

// Display ranges and the number of trailing points each keeps.
var ranges = map[string]int{
	"7d":   7,
	"30d":  30,
	"90d":  90,
	"180d": 180,
}

const DefaultRange = "7d"

func ParseKPI(raw string) (KPI, error) {
	k := KPI(raw)
	if _, ok := kpiLabels[k]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKPI, raw)
	}
	return k, nil
}

// ParseRange accepts 7d, 30d, 90d or 180d; empty means DefaultRange.
func ParseRange(raw string) (string, int, error) {
	if raw == "" {
		raw = DefaultRange
	}
	n, ok := ranges[raw]
	if !ok {
		return "", 0, fmt.Errorf("%w: %q", ErrUnknownRange, raw)
	}
	return raw, n, nil
}

func (k AnalystKPIs) series(kpi KPI) TrendSeries {
	switch kpi {
	case KPIAppointmentVolume:
		return k.AppointmentVolume
	case KPIAIAccuracy:
		return k.AIAccuracy
	case KPIRetention:
		return k.Retention
	default:
		return k.DiagnosisVolume
	}
}

// Window slices one KPI series to a display range and reports the latest
// value against the one before it.
func (d *AnalystDashboard) Window(kpi KPI, rangeName string, points int) KPIWindow {
	full := d.KPIMetrics.series(kpi)
	shown := full.Tail(points)
	if len(shown.Points) == 0 {
		shown = full
	}

	var current, previous float64
	if n := len(shown.Points); n > 0 {
		current = shown.Points[n-1].Value
		if n > 1 {
			previous = shown.Points[n-2].Value
		}
	}

	return KPIWindow{
		KPI:      kpi,
		Label:    kpiLabels[kpi],
		Range:    rangeName,
		Points:   shown,
		Current:  current,
		Previous: previous,
		Delta:    round1(current - previous),
	}
}

// AnalystKPI builds the analyst dashboard and returns one KPI window of it.
func (s *Service) AnalystKPI(ctx context.Context, kpi KPI, rangeName string) (KPIWindow, error) {
	name, points, err := ParseRange(rangeName)
	if err != nil {
		return KPIWindow{}, err
	}
	if _, ok := kpiLabels[kpi]; !ok {
		return KPIWindow{}, fmt.Errorf("%w: %q", ErrUnknownKPI, kpi)
	}
	return s.Analyst(ctx).Window(kpi, name, points), nil
}
