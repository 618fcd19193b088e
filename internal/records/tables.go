package records

// Table names on the upstream table API (and in Postgres when that source is used).
const (
	TableClinics        = "clinic_servicehistory"
	TableStaff          = "clinical_staff_registration"
	TableDoctors        = "doctors_registration"
	TablePatients       = "patients_registration"
	TableAppointments   = "appointments"
	TableDiagnoses      = "diagnosis"
	TableAIDiagnostics  = "ai_diagnostics"
	TableMedicalHistory = "medical_history"
	TableVitals         = "vitals_history"
	TablePrescriptions  = "prescription"
	TableLabTests       = "lab_tests"
	TableBloodTests     = "bloodtests"
	TableHelpTickets    = "clinic_help"
	TableDoctorTasks    = "doctor_tasks"
	TableMessageHub     = "patient_message_hub"
)

// AllTables lists every table the dashboards read.
var AllTables = []string{
	TableClinics,
	TableStaff,
	TableDoctors,
	TablePatients,
	TableAppointments,
	TableDiagnoses,
	TableAIDiagnostics,
	TableMedicalHistory,
	TableVitals,
	TablePrescriptions,
	TableLabTests,
	TableBloodTests,
	TableHelpTickets,
	TableDoctorTasks,
	TableMessageHub,
}
