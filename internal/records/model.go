package records

// Rows as returned by the table API. Nullable columns are pointers; a JSON
// null on a non-pointer field decodes to its zero value.

type Clinic struct {
	ClinicID   int64  `json:"clinic_id"`
	ClinicName string `json:"clinic_name"`
	Location   string `json:"location"`
	Active     bool   `json:"active"`
}

type StaffMember struct {
	ClinicID int64 `json:"clinic_id"`
}

type Doctor struct {
	DoctorID  int64   `json:"doctor_id"`
	Name      string  `json:"name"`
	ClinicID  int64   `json:"clinic_id"`
	Specialty *string `json:"specialty,omitempty"`
}

type Patient struct {
	PatientID int64   `json:"patient_id"`
	Name      string  `json:"name"`
	DOB       *string `json:"dob,omitempty"`
}

type Appointment struct {
	AppointmentID int64   `json:"appointment_id"`
	PatientID     int64   `json:"patient_id"`
	DoctorID      int64   `json:"doctor_id"`
	Datetime      *string `json:"datetime"`
	Status        string  `json:"status"`
}

type Diagnosis struct {
	DiagnosisID   int64  `json:"diagnosis_id"`
	DoctorID      int64  `json:"doctor_id"`
	DiagnosisDate string `json:"diagnosis_date"`
}

type AIDiagnostic struct {
	ConfidenceScore *float64 `json:"confidence_score"`
	CreatedAt       *string  `json:"created_at"`
}

type MedicalHistory struct {
	PatientID        int64   `json:"patient_id"`
	Condition        string  `json:"condition"`
	Status           string  `json:"status"`
	Severity         *string `json:"severity,omitempty"`
	FollowupRequired bool    `json:"followup_required,omitempty"`
	DiagnosisDate    *string `json:"diagnosis_date,omitempty"`
}

type Vital struct {
	PatientID       int64    `json:"patient_id"`
	BloodPressure   *string  `json:"blood_pressure"`
	HeartRate       *float64 `json:"heart_rate"`
	Temperature     *float64 `json:"temperature"`
	RespiratoryRate *float64 `json:"respiratory_rate"`
	RecordedOn      *string  `json:"recorded_on"`
}

type Prescription struct {
	PatientID    int64   `json:"patient_id"`
	DoctorID     int64   `json:"doctor_id"`
	MedicineName string  `json:"medicine_name"`
	Dosage       *string `json:"dosage"`
	StartDate    *string `json:"start_date"`
	EndDate      *string `json:"end_date"`
	Status       string  `json:"status"`
	IssuedOn     *string `json:"issued_on"`
}

type LabTest struct {
	PatientID int64  `json:"patient_id"`
	TestType  string `json:"test_type"`
	Status    string `json:"status"`
	Result    string `json:"result"`
	TestDate  string `json:"test_date"`
}

type BloodTest struct {
	PatientID   int64  `json:"patient_id"`
	TestName    string `json:"test_name"`
	ResultValue string `json:"result_value"`
	TestDate    string `json:"test_date"`
}

type HelpTicket struct {
	ClinicID         int64  `json:"clinic_id"`
	IssueDescription string `json:"issue_description"`
	SubmittedBy      string `json:"submitted_by"`
}

type DoctorTask struct {
	DoctorID    int64  `json:"doctor_id"`
	Description string `json:"description"`
	Status      string `json:"status"`
	DueDate     string `json:"due_date"`
}

type MessageHubEntry struct {
	PatientID   int64  `json:"patient_id"`
	Summary     string `json:"summary"`
	LastUpdated string `json:"last_updated"`
}
