package dashboard

// Placeholder and fallback values shown when a join yields nothing. Every
// substitute the dashboards can emit is declared here; builders copy from
// these tables and never hand out the backing slices.

const (
	// MaxTrendPoints caps every analyst series after day bucketing.
	MaxTrendPoints = 180

	DepartmentLimit       = 3
	DepartmentListLimit   = 3
	DoctorPatientLimit    = 3
	DoctorUpcomingLimit   = 3
	DoctorAlertLimit      = 2
	VitalTrendLength      = 7
	PatientApptLimit      = 3
	PatientTrendLength    = 7
	PatientRecordLimit    = 3
	PatientTaskLimit      = 2
	AlertMinutesPerTicket = 15
)

// Trend series keys as they appear in the analyst JSON.
const (
	KeyVolume       = "volume"
	KeyAppointments = "appointments"
	KeyAccuracy     = "accuracy"
	KeyRetention    = "retention"
)

// Fallback labels.
const (
	UnknownCity          = "Unknown"
	RegionalHospital     = "Regional"
	GeneralCareCondition = "General Care"
	CareSuiteRoom        = "Care Suite"
	PendingFollowUp      = "Pending"
	ReviewSeverity       = "Review"
	VirtualVisitLocation = "Virtual Visit"
	AsDirectedDose       = "As directed"
	PerInstructions      = "Per instructions"
	OngoingSince         = "Ongoing"
	CompletedSince       = "Completed"
	UnknownDateLabel     = "Unknown date"
	NoPendingTasksTitle  = "No pending tasks"
)

// DefaultHospital stands in when no clinics are available.
var DefaultHospital = HospitalOption{ID: 0, Name: "Network Wide", City: "Canada"}

var placeholderWeek = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Flat values of the 7-day placeholder series, per key.
var placeholderTrendValues = map[string]float64{
	KeyVolume:       1,
	KeyAppointments: 1,
	KeyAccuracy:     91,
	KeyRetention:    86,
}

// PlaceholderSeries returns the deterministic 7-day series used for an empty KPI.
func PlaceholderSeries(key string) TrendSeries {
	value := placeholderTrendValues[key]
	points := make([]TrendPoint, len(placeholderWeek))
	for i, day := range placeholderWeek {
		points[i] = TrendPoint{Date: day, Value: value}
	}
	return TrendSeries{Key: key, Points: points}
}

var fallbackHealthMetrics = []PatientHealthPoint{
	{Date: "Mon", BloodPressure: 120, HeartRate: 72, Glucose: 95},
	{Date: "Tue", BloodPressure: 118, HeartRate: 70, Glucose: 96},
	{Date: "Wed", BloodPressure: 122, HeartRate: 74, Glucose: 98},
	{Date: "Thu", BloodPressure: 119, HeartRate: 71, Glucose: 97},
	{Date: "Fri", BloodPressure: 121, HeartRate: 73, Glucose: 99},
	{Date: "Sat", BloodPressure: 117, HeartRate: 69, Glucose: 94},
	{Date: "Sun", BloodPressure: 120, HeartRate: 72, Glucose: 95},
}

// FallbackHealthMetrics is the synthetic week shown when a patient has no vitals.
func FallbackHealthMetrics() []PatientHealthPoint {
	out := make([]PatientHealthPoint, len(fallbackHealthMetrics))
	copy(out, fallbackHealthMetrics)
	return out
}

var defaultDoctorAlerts = []DoctorAlert{
	{Message: "No outstanding physician tasks", Tone: ToneInfo},
	{Message: "All lab reviews completed", Tone: ToneWarning},
}

// DefaultDoctorAlerts is shown when the doctor has no tasks.
func DefaultDoctorAlerts() []DoctorAlert {
	out := make([]DoctorAlert, len(defaultDoctorAlerts))
	copy(out, defaultDoctorAlerts)
	return out
}

// EmptyMedication is the single row shown when nothing is active.
var EmptyMedication = PatientMedication{Name: "Medication list empty", Dosage: "Awaiting prescriptions"}

// NoVitalsMetric is the single row shown when a patient has nothing to display.
var NoVitalsMetric = MetricBlock{Metric: "No vitals available", Value: "Awaiting data", Status: MetricReview}
