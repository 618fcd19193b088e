package dashboard

import (
	"encoding/json"
)

// Closed status vocabularies produced by the classifiers in classify.go.
type (
	PatientStatus string
	Severity      string
	MetricStatus  string
	Tone          string
)

const (
	StatusStable     PatientStatus = "Stable"
	StatusRecovery   PatientStatus = "Recovery"
	StatusMonitoring PatientStatus = "Monitoring"

	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"

	MetricNormal MetricStatus = "Normal"
	MetricReview MetricStatus = "Review"

	ToneSuccess Tone = "success"
	ToneWarning Tone = "warning"
	ToneInfo    Tone = "info"
)

// Analyst

type HospitalOption struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	City string `json:"city"`
}

// TrendPoint is one day-bucketed value.
type TrendPoint struct {
	Date  string
	Value float64
}

// TrendSeries is a day-ordered series whose value field is named by Key,
// e.g. [{"date":"Mar 5","volume":3}].
type TrendSeries struct {
	Key    string
	Points []TrendPoint
}

func (s TrendSeries) MarshalJSON() ([]byte, error) {
	out := make([]map[string]any, len(s.Points))
	for i, p := range s.Points {
		out[i] = map[string]any{
			"date": p.Date,
			s.Key:  p.Value,
		}
	}
	return json.Marshal(out)
}

func (s *TrendSeries) UnmarshalJSON(data []byte) error {
	var raw []map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.Points = make([]TrendPoint, 0, len(raw))
	for _, entry := range raw {
		var p TrendPoint
		for k, v := range entry {
			if k == "date" {
				if err := json.Unmarshal(v, &p.Date); err != nil {
					return err
				}
				continue
			}
			if err := json.Unmarshal(v, &p.Value); err != nil {
				return err
			}
			s.Key = k
		}
		s.Points = append(s.Points, p)
	}
	return nil
}

// Tail keeps the trailing n points; n <= 0 or n >= len keeps all of them.
func (s TrendSeries) Tail(n int) TrendSeries {
	if n <= 0 || n >= len(s.Points) {
		return s
	}
	return TrendSeries{Key: s.Key, Points: s.Points[len(s.Points)-n:]}
}

// Last returns the value of the final point, or 0 for an empty series.
func (s TrendSeries) Last() float64 {
	if len(s.Points) == 0 {
		return 0
	}
	return s.Points[len(s.Points)-1].Value
}

func (s TrendSeries) Sum() float64 {
	var total float64
	for _, p := range s.Points {
		total += p.Value
	}
	return total
}

type AnalystKPIs struct {
	DiagnosisVolume   TrendSeries `json:"diagnosisVolume"`
	AppointmentVolume TrendSeries `json:"appointmentVolume"`
	AIAccuracy        TrendSeries `json:"aiAccuracy"`
	Retention         TrendSeries `json:"retention"`
}

type AnalystSummary struct {
	AIAccuracy        float64 `json:"aiAccuracy"`
	Retention         float64 `json:"retention"`
	DiagnosesTotal    int     `json:"diagnosesTotal"`
	AppointmentsTotal int     `json:"appointmentsTotal"`
}

type AnalystDashboard struct {
	Hospitals  []HospitalOption `json:"hospitals"`
	KPIMetrics AnalystKPIs      `json:"kpiMetrics"`
	Summary    AnalystSummary   `json:"summary"`
}

// KPIWindow is one KPI series sliced to a display range.
type KPIWindow struct {
	KPI      KPI         `json:"kpi"`
	Label    string      `json:"label"`
	Range    string      `json:"range"`
	Points   TrendSeries `json:"points"`
	Current  float64     `json:"current"`
	Previous float64     `json:"previous"`
	Delta    float64     `json:"delta"`
}

// Clinical staff

type DepartmentInfo struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Hospital   string `json:"hospital"`
	StaffCount int    `json:"staffCount"`
}

type DepartmentPatient struct {
	ID        int64         `json:"id"`
	Name      string        `json:"name"`
	Admitted  string        `json:"admitted"`
	Condition string        `json:"condition"`
	Status    PatientStatus `json:"status"`
}

type AppointmentCard struct {
	PatientName string `json:"patientName"`
	Type        string `json:"type"`
	Date        string `json:"date"`
	Room        string `json:"room"`
}

type FollowUpCard struct {
	PatientName string `json:"patientName"`
	FollowUp    string `json:"followUp"`
	Reason      string `json:"reason"`
}

type AlertCard struct {
	PatientName string   `json:"patientName"`
	Alert       string   `json:"alert"`
	Severity    Severity `json:"severity"`
	Time        string   `json:"time"`
}

type MetricBlock struct {
	Metric string       `json:"metric"`
	Value  string       `json:"value"`
	Status MetricStatus `json:"status"`
}

type ClinicalStaffDashboard struct {
	Departments              []DepartmentInfo              `json:"departments"`
	PatientsByDepartment     map[int64][]DepartmentPatient `json:"patientsByDepartment"`
	AppointmentsByDepartment map[int64][]AppointmentCard   `json:"appointmentsByDepartment"`
	FollowUpsByDepartment    map[int64][]FollowUpCard      `json:"followUpsByDepartment"`
	AlertsByDepartment       map[int64][]AlertCard         `json:"alertsByDepartment"`
	MetricsByPatient         map[int64][]MetricBlock       `json:"metricsByPatient"`
}

// Doctor

type DoctorPatientCard struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Age       int    `json:"age"`
	LastVisit string `json:"lastVisit"`
}

type VitalTrendPoint struct {
	Date      string  `json:"date"`
	Systolic  float64 `json:"systolic"`
	Diastolic float64 `json:"diastolic"`
	HeartRate float64 `json:"heartRate"`
}

type DoctorPrescriptionCard struct {
	Drug      string `json:"drug"`
	Dose      string `json:"dose"`
	Frequency string `json:"frequency"`
	Since     string `json:"since"`
}

type DoctorAppointmentCard struct {
	PatientName string `json:"patientName"`
	Date        string `json:"date"`
	Type        string `json:"type"`
}

type DoctorAlert struct {
	Message string `json:"message"`
	Tone    Tone   `json:"tone"`
}

type DoctorDashboard struct {
	DoctorName            string                      `json:"doctorName"`
	Patients              []DoctorPatientCard         `json:"patients"`
	VitalsByPatient       map[int64][]VitalTrendPoint `json:"vitalsByPatient"`
	CurrentPrescriptions  []DoctorPrescriptionCard    `json:"currentPrescriptions"`
	PreviousPrescriptions []DoctorPrescriptionCard    `json:"previousPrescriptions"`
	UpcomingAppointments  []DoctorAppointmentCard     `json:"upcomingAppointments"`
	Alerts                []DoctorAlert               `json:"alerts"`
}

// Patient

type PatientAppointmentCard struct {
	Doctor   string `json:"doctor"`
	Date     string `json:"date"`
	Location string `json:"location"`
}

type PatientHealthPoint struct {
	Date          string  `json:"date"`
	BloodPressure float64 `json:"bloodPressure"`
	HeartRate     float64 `json:"heartRate"`
	Glucose       float64 `json:"glucose"`
}

type PatientMedication struct {
	Name   string `json:"name"`
	Dosage string `json:"dosage"`
}

type PatientRecordEntry struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Status      string `json:"status"`
	StatusTone  Tone   `json:"statusTone"`
}

type PatientTask struct {
	Title       string `json:"title"`
	CreatedDate string `json:"createdDate"`
}

type PatientDashboard struct {
	PatientName    string                   `json:"patientName"`
	Appointments   []PatientAppointmentCard `json:"appointments"`
	HealthMetrics  []PatientHealthPoint     `json:"healthMetrics"`
	Medications    []PatientMedication      `json:"medications"`
	MedicalRecords []PatientRecordEntry     `json:"medicalRecords"`
	Tasks          []PatientTask            `json:"tasks"`
}
