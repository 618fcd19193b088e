package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyVital_HeartRateBand(t *testing.T) {
	tests := []struct {
		value float64
		want  MetricStatus
	}{
		{59, MetricReview},
		{60, MetricNormal},
		{100, MetricNormal},
		{101, MetricReview},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyVital(MetricHeartRate, tt.value), "heart rate %v", tt.value)
	}
}

func TestClassifyVital_TemperatureBand(t *testing.T) {
	assert.Equal(t, MetricReview, ClassifyVital(MetricTemperature, 35.9))
	assert.Equal(t, MetricNormal, ClassifyVital(MetricTemperature, 36))
	assert.Equal(t, MetricNormal, ClassifyVital(MetricTemperature, 37.5))
	assert.Equal(t, MetricReview, ClassifyVital(MetricTemperature, 37.6))
}

func TestClassifyVital_UngradedMetrics(t *testing.T) {
	assert.Equal(t, MetricNormal, ClassifyVital(MetricBloodPressure, 0))
	assert.Equal(t, MetricNormal, ClassifyVital(MetricRespiratoryRate, 45))
}

func TestClassifyCondition(t *testing.T) {
	tests := map[string]PatientStatus{
		"Resolved":          StatusStable,
		"partially RESOLVE": StatusStable,
		"Chronic":           StatusRecovery,
		"chronic, managed":  StatusRecovery,
		"Active":            StatusMonitoring,
		"":                  StatusMonitoring,
	}
	for status, want := range tests {
		assert.Equal(t, want, ClassifyCondition(status), status)
	}
}

func TestClassifyTicket(t *testing.T) {
	assert.Equal(t, SeverityCritical, ClassifyTicket("Emergency exit blocked", 2))
	assert.Equal(t, SeverityCritical, ClassifyTicket("code: EMERGENCY", 0))
	assert.Equal(t, SeverityWarning, ClassifyTicket("Printer jammed", 0))
	assert.Equal(t, SeverityInfo, ClassifyTicket("Printer jammed", 1))
}

func TestClassifyTaskAndLab(t *testing.T) {
	assert.Equal(t, ToneWarning, ClassifyTask("In Progress"))
	assert.Equal(t, ToneInfo, ClassifyTask("Pending"))
	assert.Equal(t, ToneSuccess, ClassifyLabResult("COMPLETED"))
	assert.Equal(t, ToneWarning, ClassifyLabResult("Scheduled"))
}
