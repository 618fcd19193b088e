package dashboard

import (
	"strings"
)

// Vital metric names, also used as MetricBlock.Metric.
const (
	MetricBloodPressure   = "Blood Pressure"
	MetricHeartRate       = "Heart Rate"
	MetricTemperature     = "Temperature"
	MetricRespiratoryRate = "Respiratory Rate"
)

// ClassifyCondition maps a free-text medical-history status onto a
// department patient status.
func ClassifyCondition(status string) PatientStatus {
	normalized := strings.ToLower(status)
	switch {
	case strings.Contains(normalized, "resolve"):
		return StatusStable
	case strings.Contains(normalized, "chronic"):
		return StatusRecovery
	default:
		return StatusMonitoring
	}
}

// ClassifyTicket grades a help ticket by its description and its position
// in the department's alert list.
func ClassifyTicket(description string, index int) Severity {
	if strings.Contains(strings.ToLower(description), "emergency") {
		return SeverityCritical
	}
	if index == 0 {
		return SeverityWarning
	}
	return SeverityInfo
}

// ClassifyVital reports whether a reading is within the normal band. Only
// heart rate (60..100 bpm) and temperature (36..37.5 °C) are graded.
func ClassifyVital(metric string, value float64) MetricStatus {
	switch metric {
	case MetricHeartRate:
		if value >= 60 && value <= 100 {
			return MetricNormal
		}
		return MetricReview
	case MetricTemperature:
		if value >= 36 && value <= 37.5 {
			return MetricNormal
		}
		return MetricReview
	default:
		return MetricNormal
	}
}

// ClassifyTask is the alert tone for a physician task.
func ClassifyTask(status string) Tone {
	if strings.EqualFold(strings.TrimSpace(status), "in progress") {
		return ToneWarning
	}
	return ToneInfo
}

// ClassifyLabResult is the record tone for a lab test status.
func ClassifyLabResult(status string) Tone {
	if strings.EqualFold(strings.TrimSpace(status), "completed") {
		return ToneSuccess
	}
	return ToneWarning
}

func isActive(status string) bool {
	return strings.EqualFold(strings.TrimSpace(status), "active")
}

func isCompleted(status string) bool {
	return strings.EqualFold(strings.TrimSpace(status), "completed")
}

func isScheduled(status string) bool {
	return strings.EqualFold(strings.TrimSpace(status), "scheduled")
}
