package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackgods/hospital-dashboard/internal/records"
)

func TestParseKPI(t *testing.T) {
	k, err := ParseKPI("aiAccuracy")
	require.NoError(t, err)
	assert.Equal(t, KPIAIAccuracy, k)

	_, err = ParseKPI("bedOccupancy")
	assert.ErrorIs(t, err, ErrUnknownKPI)
}

func TestParseRange(t *testing.T) {
	name, n, err := ParseRange("")
	require.NoError(t, err)
	assert.Equal(t, "7d", name)
	assert.Equal(t, 7, n)

	_, n, err = ParseRange("180d")
	require.NoError(t, err)
	assert.Equal(t, 180, n)

	_, _, err = ParseRange("1y")
	assert.ErrorIs(t, err, ErrUnknownRange)
}

func TestWindow_TakesTrailingSlice(t *testing.T) {
	points := make([]TrendPoint, 10)
	for i := range points {
		points[i] = TrendPoint{Date: fmt.Sprintf("Jun %d", i+1), Value: float64(i * 2)}
	}
	d := &AnalystDashboard{KPIMetrics: AnalystKPIs{
		DiagnosisVolume: TrendSeries{Key: KeyVolume, Points: points},
	}}

	got := d.Window(KPIDiagnosisVolume, "7d", 7)
	require.Len(t, got.Points.Points, 7)
	assert.Equal(t, "Jun 4", got.Points.Points[0].Date)
	assert.Equal(t, "Diagnosis Volume", got.Label)
	assert.Equal(t, 18.0, got.Current)
	assert.Equal(t, 16.0, got.Previous)
	assert.Equal(t, 2.0, got.Delta)

	wide := d.Window(KPIDiagnosisVolume, "30d", 30)
	assert.Len(t, wide.Points.Points, 10)
}

func TestAnalystKPI(t *testing.T) {
	svc := newTestService(t, map[string]any{
		records.TableAppointments: []records.Appointment{
			{Datetime: strp("2024-06-10T10:00:00Z"), Status: "Completed"},
			{Datetime: strp("2024-06-11T10:00:00Z"), Status: "Cancelled"},
		},
	})

	got, err := svc.AnalystKPI(context.Background(), KPIRetention, "30d")
	require.NoError(t, err)
	assert.Equal(t, "30d", got.Range)
	assert.Equal(t, 0.0, got.Current)
	assert.Equal(t, 100.0, got.Previous)
	assert.Equal(t, -100.0, got.Delta)

	_, err = svc.AnalystKPI(context.Background(), KPIRetention, "2d")
	assert.ErrorIs(t, err, ErrUnknownRange)

	_, err = svc.AnalystKPI(context.Background(), KPI("nope"), "")
	assert.ErrorIs(t, err, ErrUnknownKPI)
}

func TestTrendSeries_JSONUsesKeyAsValueField(t *testing.T) {
	s := TrendSeries{Key: KeyAccuracy, Points: []TrendPoint{{Date: "Jun 10", Value: 85}}}

	raw, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"date":"Jun 10","accuracy":85}]`, string(raw))

	var back TrendSeries
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, s, back)
}

func TestTrendSeries_EmptyMarshalsAsArray(t *testing.T) {
	raw, err := json.Marshal(TrendSeries{Key: KeyVolume})
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}
