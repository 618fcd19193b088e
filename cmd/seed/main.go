package main

import (
	"context"
	_ "embed"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/hackgods/hospital-dashboard/internal/db"
	"github.com/hackgods/hospital-dashboard/internal/logging"
	"github.com/hackgods/hospital-dashboard/internal/records"
)

//go:embed schema.sql
var schema string

const batchSize = 500

// Row counts per table.
const (
	numClinics  = 6
	numStaff    = 60
	numDoctors  = 18
	numPatients = 400
)

var (
	specialties = []string{
		"Cardiology", "Dermatology", "General Practice", "Orthopedics",
		"Endocrinology", "Neurology", "Pediatrics", "Psychiatry",
	}
	appointmentStatuses = []string{"Scheduled", "Completed", "Completed", "Cancelled", "No Show"}
	conditions          = []string{"Hypertension", "Type 2 Diabetes", "Asthma", "Migraine", "Influenza", "Back Pain"}
	historyStatuses     = []string{"Resolved", "Chronic", "Active", "Under Observation"}
	severities          = []string{"Mild", "Moderate", "Severe"}
	medicines           = []string{"Lisinopril", "Metformin", "Atorvastatin", "Amoxicillin", "Albuterol", "Ibuprofen"}
	dosages             = []string{"5mg daily", "10mg daily", "500mg twice daily", "2 puffs as needed", "200mg every 6h"}
	labTypes            = []string{"CBC", "Lipid Panel", "MRI", "X-Ray", "Urinalysis", "A1C"}
	labStatuses         = []string{"Completed", "Completed", "Pending", "Scheduled"}
	bloodTestNames      = []string{"Fasting Glucose", "Glucose", "Cholesterol", "Hemoglobin"}
	taskStatuses        = []string{"Pending", "In Progress", "Done"}
	ticketIssues        = []string{
		"Printer jammed at nursing station", "EMERGENCY: generator failure",
		"Badge reader offline", "Supply room restock needed", "Emergency call light broken",
	}
	taskDescriptions = []string{
		"Review lab results", "Sign discharge summary", "Call patient about results",
		"Update care plan", "Approve prescription refill",
	}
	messageSummaries = []string{
		"Book follow-up appointment", "Upload insurance card", "Complete intake questionnaire",
		"Confirm pharmacy details", "Review visit summary",
	}
)

func main() {
	logger, err := logging.New(os.Getenv("LOG_LEVEL"), "console", "seed")
	if err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		logger.Fatal("POSTGRES_DSN is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.ConnectPostgresWritable(ctx, dsn)
	if err != nil {
		logger.Fatal("connect postgres", zap.Error(err))
	}
	defer pool.Close()

	gofakeit.Seed(time.Now().UnixNano())

	seedCtx := context.Background()
	if err := resetTables(seedCtx, pool); err != nil {
		logger.Fatal("reset tables", zap.Error(err))
	}

	now := time.Now()
	for _, t := range seedPlan(now) {
		if err := insertRows(seedCtx, pool, t); err != nil {
			logger.Fatal("seed table", zap.String("table", t.name), zap.Error(err))
		}
		logger.Info("table seeded", zap.String("table", t.name), zap.Int("rows", t.count))
	}

	logger.Info("seed complete")
}

// tableSeed describes one table's fake rows; row(i) returns the values for
// the 1-based row id i in column order.
type tableSeed struct {
	name    string
	columns []string
	count   int
	row     func(id int) []any
}

func resetTables(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}

	idents := make([]string, len(records.AllTables))
	for i, table := range records.AllTables {
		idents[i] = pgx.Identifier{table}.Sanitize()
	}
	if _, err := pool.Exec(ctx, "TRUNCATE "+strings.Join(idents, ", ")); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}
	return nil
}

func insertRows(ctx context.Context, pool *pgxpool.Pool, t tableSeed) error {
	placeholders := make([]string, len(t.columns))
	for i := range t.columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		pgx.Identifier{t.name}.Sanitize(),
		strings.Join(t.columns, ", "),
		strings.Join(placeholders, ", "),
	)

	for offset := 0; offset < t.count; offset += batchSize {
		end := min(offset+batchSize, t.count)

		tx, err := pool.Begin(ctx)
		if err != nil {
			return err
		}

		for id := offset + 1; id <= end; id++ {
			if _, err := tx.Exec(ctx, stmt, t.row(id)...); err != nil {
				_ = tx.Rollback(ctx)
				return fmt.Errorf("row %d: %w", id, err)
			}
		}

		if err := tx.Commit(ctx); err != nil {
			return err
		}
	}
	return nil
}

func pick(values []string) string {
	return values[gofakeit.Number(0, len(values)-1)]
}

// around returns a random instant within days either side of now.
func around(now time.Time, days int) time.Time {
	return gofakeit.DateRange(now.AddDate(0, 0, -days), now.AddDate(0, 0, days))
}

func past(now time.Time, days int) time.Time {
	return gofakeit.DateRange(now.AddDate(0, 0, -days), now)
}

// sometimes returns v, or nil one time in n.
func sometimes(n int, v any) any {
	if gofakeit.Number(1, n) == 1 {
		return nil
	}
	return v
}

func seedPlan(now time.Time) []tableSeed {
	patientID := func() int { return gofakeit.Number(1, numPatients) }
	doctorID := func() int { return gofakeit.Number(1, numDoctors) }
	clinicID := func() int { return gofakeit.Number(1, numClinics) }

	return []tableSeed{
		{
			name: records.TableClinics, count: numClinics,
			columns: []string{"clinic_id", "clinic_name", "location", "active"},
			row: func(id int) []any {
				return []any{id, pick(specialties) + " Center", gofakeit.City(), id != numClinics}
			},
		},
		{
			name: records.TableStaff, count: numStaff,
			columns: []string{"staff_id", "name", "role", "clinic_id"},
			row: func(id int) []any {
				return []any{id, gofakeit.Name(), pick([]string{"Nurse", "Technician", "Coordinator"}), clinicID()}
			},
		},
		{
			name: records.TableDoctors, count: numDoctors,
			columns: []string{"doctor_id", "name", "clinic_id", "specialty"},
			row: func(id int) []any {
				return []any{id, "Dr. " + gofakeit.LastName(), clinicID(), pick(specialties)}
			},
		},
		{
			name: records.TablePatients, count: numPatients,
			columns: []string{"patient_id", "name", "dob"},
			row: func(id int) []any {
				dob := gofakeit.DateRange(now.AddDate(-90, 0, 0), now.AddDate(-1, 0, 0))
				return []any{id, gofakeit.Name(), sometimes(20, dob)}
			},
		},
		{
			name: records.TableAppointments, count: numPatients * 3,
			columns: []string{"appointment_id", "patient_id", "doctor_id", "datetime", "status"},
			row: func(id int) []any {
				return []any{id, patientID(), doctorID(), sometimes(25, around(now, 60)), pick(appointmentStatuses)}
			},
		},
		{
			name: records.TableDiagnoses, count: numPatients * 2,
			columns: []string{"diagnosis_id", "doctor_id", "diagnosis_date"},
			row: func(id int) []any {
				return []any{id, doctorID(), past(now, 200)}
			},
		},
		{
			name: records.TableAIDiagnostics, count: numPatients,
			columns: []string{"ai_diagnostic_id", "confidence_score", "created_at"},
			row: func(id int) []any {
				return []any{id, gofakeit.Float64Range(0.6, 0.99), past(now, 120)}
			},
		},
		{
			name: records.TableMedicalHistory, count: numPatients,
			columns: []string{"history_id", "patient_id", "condition", "status", "severity", "followup_required", "diagnosis_date"},
			row: func(id int) []any {
				return []any{
					id, patientID(), pick(conditions), pick(historyStatuses),
					sometimes(4, pick(severities)), gofakeit.Bool(), sometimes(5, past(now, 365)),
				}
			},
		},
		{
			name: records.TableVitals, count: numPatients * 4,
			columns: []string{"vital_id", "patient_id", "blood_pressure", "heart_rate", "temperature", "respiratory_rate", "recorded_on"},
			row: func(id int) []any {
				bp := fmt.Sprintf("%d/%d", gofakeit.Number(100, 150), gofakeit.Number(60, 95))
				return []any{
					id, patientID(), sometimes(10, bp),
					sometimes(10, float64(gofakeit.Number(52, 112))),
					sometimes(10, float64(gofakeit.Number(355, 385))/10),
					sometimes(10, float64(gofakeit.Number(12, 22))),
					sometimes(30, past(now, 90)),
				}
			},
		},
		{
			name: records.TablePrescriptions, count: numPatients,
			columns: []string{"prescription_id", "patient_id", "doctor_id", "medicine_name", "dosage", "start_date", "end_date", "status", "issued_on"},
			row: func(id int) []any {
				start := past(now, 180)
				return []any{
					id, patientID(), doctorID(), pick(medicines), sometimes(6, pick(dosages)),
					sometimes(6, start), sometimes(3, start.AddDate(0, 1, 0)),
					pick([]string{"Active", "Active", "Completed", "Discontinued"}), start,
				}
			},
		},
		{
			name: records.TableLabTests, count: numPatients,
			columns: []string{"lab_test_id", "patient_id", "test_type", "status", "result", "test_date"},
			row: func(id int) []any {
				return []any{id, patientID(), pick(labTypes), pick(labStatuses), pick([]string{"Normal", "Abnormal", "Pending review"}), past(now, 120)}
			},
		},
		{
			name: records.TableBloodTests, count: numPatients * 2,
			columns: []string{"blood_test_id", "patient_id", "test_name", "result_value", "test_date"},
			row: func(id int) []any {
				return []any{id, patientID(), pick(bloodTestNames), fmt.Sprintf("%d", gofakeit.Number(70, 180)), past(now, 120)}
			},
		},
		{
			name: records.TableHelpTickets, count: numClinics * 4,
			columns: []string{"ticket_id", "clinic_id", "issue_description", "submitted_by"},
			row: func(id int) []any {
				return []any{id, clinicID(), pick(ticketIssues), gofakeit.Name()}
			},
		},
		{
			name: records.TableDoctorTasks, count: numDoctors * 3,
			columns: []string{"task_id", "doctor_id", "description", "status", "due_date"},
			row: func(id int) []any {
				return []any{id, doctorID(), pick(taskDescriptions), pick(taskStatuses), around(now, 14)}
			},
		},
		{
			name: records.TableMessageHub, count: numPatients,
			columns: []string{"message_id", "patient_id", "summary", "last_updated"},
			row: func(id int) []any {
				return []any{id, patientID(), pick(messageSummaries), past(now, 30)}
			},
		},
	}
}
