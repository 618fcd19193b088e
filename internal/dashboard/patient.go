package dashboard

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/hackgods/hospital-dashboard/internal/records"
	"github.com/hackgods/hospital-dashboard/internal/timefmt"
)

type patientInput struct {
	patients      []records.Patient
	appointments  []records.Appointment
	doctors       []records.Doctor
	clinics       []records.Clinic
	vitals        []records.Vital
	bloodTests    []records.BloodTest
	prescriptions []records.Prescription
	labTests      []records.LabTest
	messages      []records.MessageHubEntry
}

// Patient builds the personal view for one patient.
func (s *Service) Patient(ctx context.Context, patientID int64) (*PatientDashboard, error) {
	if patientID <= 0 {
		return nil, fmt.Errorf("patient %d: %w", patientID, ErrInvalidID)
	}

	var in patientInput
	s.fetchAll(ctx, "patient",
		read(s.tables, records.TablePatients, &in.patients),
		read(s.tables, records.TableAppointments, &in.appointments),
		read(s.tables, records.TableDoctors, &in.doctors),
		read(s.tables, records.TableClinics, &in.clinics),
		read(s.tables, records.TableVitals, &in.vitals),
		read(s.tables, records.TableBloodTests, &in.bloodTests),
		read(s.tables, records.TablePrescriptions, &in.prescriptions),
		read(s.tables, records.TableLabTests, &in.labTests),
		read(s.tables, records.TableMessageHub, &in.messages),
	)
	return buildPatient(s.fmt, s.now(), patientID, in), nil
}

func buildPatient(f timefmt.Formatter, now time.Time, patientID int64, in patientInput) *PatientDashboard {
	out := &PatientDashboard{
		PatientName:    fmt.Sprintf("Patient %d", patientID),
		Appointments:   patientAppointments(f, now, patientID, in),
		HealthMetrics:  healthTrend(f, now, patientID, in.vitals, in.bloodTests),
		Medications:    []PatientMedication{},
		MedicalRecords: []PatientRecordEntry{},
		Tasks:          []PatientTask{},
	}
	for _, p := range in.patients {
		if p.PatientID == patientID {
			out.PatientName = nonEmptyOr(p.Name, out.PatientName)
			break
		}
	}

	for _, rx := range in.prescriptions {
		if rx.PatientID == patientID && isActive(rx.Status) {
			out.Medications = append(out.Medications, PatientMedication{
				Name:   rx.MedicineName,
				Dosage: valueOr(rx.Dosage, PerInstructions),
			})
		}
	}
	if len(out.Medications) == 0 {
		out.Medications = append(out.Medications, EmptyMedication)
	}

	for _, lab := range in.labTests {
		if len(out.MedicalRecords) == PatientRecordLimit {
			break
		}
		if lab.PatientID != patientID {
			continue
		}
		out.MedicalRecords = append(out.MedicalRecords, PatientRecordEntry{
			Type:        lab.TestType,
			Description: fmt.Sprintf("%s • %s", lab.TestType, lab.Result),
			Date:        f.ShortLabelOr(&lab.TestDate, UnknownDateLabel),
			Status:      lab.Status,
			StatusTone:  ClassifyLabResult(lab.Status),
		})
	}

	for _, msg := range in.messages {
		if len(out.Tasks) == PatientTaskLimit {
			break
		}
		if msg.PatientID != patientID {
			continue
		}
		created := UnknownDateLabel
		if t, ok := f.ToInstant(msg.LastUpdated); ok {
			created = f.LongLabel(t)
		}
		out.Tasks = append(out.Tasks, PatientTask{Title: msg.Summary, CreatedDate: created})
	}
	if len(out.Tasks) == 0 {
		out.Tasks = append(out.Tasks, PatientTask{Title: NoPendingTasksTitle, CreatedDate: f.LongLabel(now)})
	}

	return out
}

// patientAppointments lists the first dated appointments in table order,
// each with its doctor and the doctor's clinic.
func patientAppointments(f timefmt.Formatter, now time.Time, patientID int64, in patientInput) []PatientAppointmentCard {
	doctors := make(map[int64]records.Doctor, len(in.doctors))
	for _, d := range in.doctors {
		doctors[d.DoctorID] = d
	}
	clinics := make(map[int64]records.Clinic, len(in.clinics))
	for _, c := range in.clinics {
		clinics[c.ClinicID] = c
	}

	out := []PatientAppointmentCard{}
	for _, a := range in.appointments {
		if len(out) == PatientApptLimit {
			break
		}
		if a.PatientID != patientID || !hasText(a.Datetime) {
			continue
		}

		card := PatientAppointmentCard{
			Doctor:   fmt.Sprintf("Doctor %d", a.DoctorID),
			Date:     f.LongLabel(now),
			Location: VirtualVisitLocation,
		}
		if t, ok := f.ToInstantPtr(a.Datetime); ok {
			card.Date = f.LongLabel(t)
		}
		if d, ok := doctors[a.DoctorID]; ok {
			card.Doctor = nonEmptyOr(d.Name, card.Doctor)
			if c, ok := clinics[d.ClinicID]; ok {
				card.Location = nonEmptyOr(c.ClinicName, VirtualVisitLocation)
			}
		}
		out = append(out, card)
	}
	return out
}

// healthTrend pairs the patient's last vitals with their last glucose tests
// by position: the i-th vital gets the i-th glucose result, or 0.
func healthTrend(
	f timefmt.Formatter,
	now time.Time,
	patientID int64,
	vitals []records.Vital,
	bloodTests []records.BloodTest,
) []PatientHealthPoint {
	var own []records.Vital
	for _, v := range vitals {
		if v.PatientID == patientID {
			own = append(own, v)
		}
	}
	if len(own) == 0 {
		return FallbackHealthMetrics()
	}
	slices.SortStableFunc(own, func(a, b records.Vital) int {
		return cmp.Compare(f.UnixMilliOrZero(a.RecordedOn), f.UnixMilliOrZero(b.RecordedOn))
	})
	own = tail(own, PatientTrendLength)

	var glucose []records.BloodTest
	for _, b := range bloodTests {
		if b.PatientID == patientID && strings.Contains(strings.ToLower(b.TestName), "glucose") {
			glucose = append(glucose, b)
		}
	}
	slices.SortStableFunc(glucose, func(a, b records.BloodTest) int {
		return cmp.Compare(f.UnixMilliOrZero(&a.TestDate), f.UnixMilliOrZero(&b.TestDate))
	})
	glucose = tail(glucose, PatientTrendLength)

	out := make([]PatientHealthPoint, len(own))
	for i, v := range own {
		systolic, _, _ := parseBloodPressure(v.BloodPressure)
		point := PatientHealthPoint{
			Date:          f.ShortLabelOr(v.RecordedOn, f.ShortLabel(now)),
			BloodPressure: systolic,
			HeartRate:     floatOrZero(v.HeartRate),
		}
		if i < len(glucose) {
			point.Glucose = parseNumber(glucose[i].ResultValue)
		}
		out[i] = point
	}
	return out
}

func tail[T any](rows []T, n int) []T {
	if len(rows) > n {
		return rows[len(rows)-n:]
	}
	return rows
}
