package dashboard

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/hackgods/hospital-dashboard/internal/records"
	"github.com/hackgods/hospital-dashboard/internal/timefmt"
)

const yearMillis = 365.25 * 24 * 60 * 60 * 1000

type doctorInput struct {
	doctors       []records.Doctor
	appointments  []records.Appointment
	patients      []records.Patient
	vitals        []records.Vital
	prescriptions []records.Prescription
	tasks         []records.DoctorTask
}

// Doctor builds the physician view for one doctor.
func (s *Service) Doctor(ctx context.Context, doctorID int64) (*DoctorDashboard, error) {
	if doctorID <= 0 {
		return nil, fmt.Errorf("doctor %d: %w", doctorID, ErrInvalidID)
	}

	var in doctorInput
	s.fetchAll(ctx, "doctor",
		read(s.tables, records.TableDoctors, &in.doctors),
		read(s.tables, records.TableAppointments, &in.appointments),
		read(s.tables, records.TablePatients, &in.patients),
		read(s.tables, records.TableVitals, &in.vitals),
		read(s.tables, records.TablePrescriptions, &in.prescriptions),
		read(s.tables, records.TableDoctorTasks, &in.tasks),
	)
	return buildDoctor(s.fmt, s.now(), doctorID, in), nil
}

func buildDoctor(f timefmt.Formatter, now time.Time, doctorID int64, in doctorInput) *DoctorDashboard {
	out := &DoctorDashboard{
		DoctorName:            fmt.Sprintf("Doctor %d", doctorID),
		Patients:              []DoctorPatientCard{},
		VitalsByPatient:       map[int64][]VitalTrendPoint{},
		CurrentPrescriptions:  []DoctorPrescriptionCard{},
		PreviousPrescriptions: []DoctorPrescriptionCard{},
		UpcomingAppointments:  []DoctorAppointmentCard{},
	}
	for _, d := range in.doctors {
		if d.DoctorID == doctorID {
			out.DoctorName = nonEmptyOr(d.Name, out.DoctorName)
			break
		}
	}

	var appointments []records.Appointment
	for _, a := range in.appointments {
		if a.DoctorID == doctorID {
			appointments = append(appointments, a)
		}
	}

	patients := make(map[int64]records.Patient, len(in.patients))
	for _, p := range in.patients {
		patients[p.PatientID] = p
	}

	seen := make(map[int64]bool)
	for _, a := range appointments {
		if seen[a.PatientID] {
			continue
		}
		seen[a.PatientID] = true

		if trend := vitalTrend(f, in.vitals, a.PatientID, now); len(trend) > 0 {
			out.VitalsByPatient[a.PatientID] = trend
		}

		p, ok := patients[a.PatientID]
		if !ok || len(out.Patients) == DoctorPatientLimit {
			continue
		}
		out.Patients = append(out.Patients, DoctorPatientCard{
			ID:        p.PatientID,
			Name:      p.Name,
			Age:       ageAt(f, p.DOB, now),
			LastVisit: f.ShortLabel(lastVisit(f, appointments, a.PatientID, now)),
		})
	}

	for _, rx := range in.prescriptions {
		if rx.DoctorID != doctorID {
			continue
		}
		card := DoctorPrescriptionCard{
			Drug:      rx.MedicineName,
			Dose:      valueOr(rx.Dosage, AsDirectedDose),
			Frequency: valueOr(rx.Dosage, PerInstructions),
		}
		if isActive(rx.Status) {
			card.Since = f.ShortLabelOr(rx.StartDate, OngoingSince)
			out.CurrentPrescriptions = append(out.CurrentPrescriptions, card)
			continue
		}
		card.Since = f.ShortLabelOr(rx.EndDate, CompletedSince)
		out.PreviousPrescriptions = append(out.PreviousPrescriptions, card)
	}

	for _, a := range appointments {
		if len(out.UpcomingAppointments) == DoctorUpcomingLimit {
			break
		}
		when, ok := f.ToInstantPtr(a.Datetime)
		if !ok || when.Before(now) || !isScheduled(a.Status) {
			continue
		}
		name := fmt.Sprintf("Patient %d", a.PatientID)
		if p, ok := patients[a.PatientID]; ok {
			name = p.Name
		}
		out.UpcomingAppointments = append(out.UpcomingAppointments, DoctorAppointmentCard{
			PatientName: name,
			Date:        f.LongLabel(when),
			Type:        a.Status,
		})
	}

	for _, t := range in.tasks {
		if len(out.Alerts) == DoctorAlertLimit {
			break
		}
		if t.DoctorID == doctorID {
			out.Alerts = append(out.Alerts, DoctorAlert{Message: t.Description, Tone: ClassifyTask(t.Status)})
		}
	}
	if len(out.Alerts) == 0 {
		out.Alerts = DefaultDoctorAlerts()
	}

	return out
}

// ageAt is whole 365.25-day years between dob and now, or 0 when dob is
// missing, unparseable or in the future.
func ageAt(f timefmt.Formatter, dob *string, now time.Time) int {
	birth, ok := f.ToInstantPtr(dob)
	if !ok {
		return 0
	}
	years := math.Floor(float64(now.Sub(birth).Milliseconds()) / yearMillis)
	return max(0, int(years))
}

// lastVisit is the patient's most recent dated appointment, or now when none
// of them carries a readable date.
func lastVisit(f timefmt.Formatter, appointments []records.Appointment, patientID int64, now time.Time) time.Time {
	var latest time.Time
	found := false
	for _, a := range appointments {
		if a.PatientID != patientID {
			continue
		}
		t, ok := f.ToInstantPtr(a.Datetime)
		if !ok {
			continue
		}
		if !found || t.After(latest) {
			latest, found = t, true
		}
	}
	if !found {
		return now
	}
	return latest
}

// vitalTrend is the patient's blood-pressure readings in recording order,
// trailing VitalTrendLength kept. Undated readings sort first and are
// labelled with today.
func vitalTrend(f timefmt.Formatter, vitals []records.Vital, patientID int64, now time.Time) []VitalTrendPoint {
	type reading struct {
		at        int64
		label     string
		systolic  float64
		diastolic float64
		heartRate float64
	}

	var readings []reading
	for _, v := range vitals {
		if v.PatientID != patientID {
			continue
		}
		sys, dia, ok := parseBloodPressure(v.BloodPressure)
		if !ok {
			continue
		}
		readings = append(readings, reading{
			at:        f.UnixMilliOrZero(v.RecordedOn),
			label:     f.ShortLabelOr(v.RecordedOn, f.ShortLabel(now)),
			systolic:  sys,
			diastolic: dia,
			heartRate: floatOrZero(v.HeartRate),
		})
	}
	slices.SortStableFunc(readings, func(a, b reading) int { return cmp.Compare(a.at, b.at) })
	readings = tail(readings, VitalTrendLength)

	out := make([]VitalTrendPoint, len(readings))
	for i, r := range readings {
		out[i] = VitalTrendPoint{
			Date:      r.label,
			Systolic:  r.systolic,
			Diastolic: r.diastolic,
			HeartRate: r.heartRate,
		}
	}
	return out
}
