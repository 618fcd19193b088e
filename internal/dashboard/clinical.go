package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/hackgods/hospital-dashboard/internal/records"
	"github.com/hackgods/hospital-dashboard/internal/timefmt"
)

type clinicalInput struct {
	clinics      []records.Clinic
	staff        []records.StaffMember
	doctors      []records.Doctor
	appointments []records.Appointment
	patients     []records.Patient
	history      []records.MedicalHistory
	vitals       []records.Vital
	tickets      []records.HelpTicket
}

// ClinicalStaff builds the department view for clinical staff.
func (s *Service) ClinicalStaff(ctx context.Context) *ClinicalStaffDashboard {
	var in clinicalInput
	s.fetchAll(ctx, "clinical_staff",
		read(s.tables, records.TableClinics, &in.clinics),
		read(s.tables, records.TableStaff, &in.staff),
		read(s.tables, records.TableDoctors, &in.doctors),
		read(s.tables, records.TableAppointments, &in.appointments),
		read(s.tables, records.TablePatients, &in.patients),
		read(s.tables, records.TableMedicalHistory, &in.history),
		read(s.tables, records.TableVitals, &in.vitals),
		read(s.tables, records.TableHelpTickets, &in.tickets),
	)
	return buildClinical(s.fmt, s.now(), in)
}

func buildClinical(f timefmt.Formatter, now time.Time, in clinicalInput) *ClinicalStaffDashboard {
	out := &ClinicalStaffDashboard{
		Departments:              []DepartmentInfo{},
		PatientsByDepartment:     map[int64][]DepartmentPatient{},
		AppointmentsByDepartment: map[int64][]AppointmentCard{},
		FollowUpsByDepartment:    map[int64][]FollowUpCard{},
		AlertsByDepartment:       map[int64][]AlertCard{},
		MetricsByPatient:         map[int64][]MetricBlock{},
	}

	staffCounts := make(map[int64]int)
	for _, member := range in.staff {
		if member.ClinicID == 0 {
			continue
		}
		staffCounts[member.ClinicID]++
	}

	candidates := make([]records.Clinic, 0, len(in.clinics))
	for _, c := range in.clinics {
		if c.Active {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		candidates = in.clinics
	}
	if len(candidates) > DepartmentLimit {
		candidates = candidates[:DepartmentLimit]
	}

	for _, c := range candidates {
		out.Departments = append(out.Departments, DepartmentInfo{
			ID:         c.ClinicID,
			Name:       clinicName(c),
			Hospital:   nonEmptyOr(c.Location, RegionalHospital),
			StaffCount: staffCounts[c.ClinicID],
		})
		out.PatientsByDepartment[c.ClinicID] = []DepartmentPatient{}
		out.AppointmentsByDepartment[c.ClinicID] = []AppointmentCard{}
		out.FollowUpsByDepartment[c.ClinicID] = []FollowUpCard{}
		out.AlertsByDepartment[c.ClinicID] = []AlertCard{}
	}

	doctorClinic := make(map[int64]int64)
	for _, d := range in.doctors {
		if d.DoctorID != 0 && d.ClinicID != 0 {
			doctorClinic[d.DoctorID] = d.ClinicID
		}
	}

	patients := make(map[int64]records.Patient)
	for _, p := range in.patients {
		patients[p.PatientID] = p
	}

	// The last history row for a patient is the one shown.
	history := make(map[int64]records.MedicalHistory)
	for _, h := range in.history {
		history[h.PatientID] = h
	}

	registered := make(map[int64]map[int64]bool)
	for _, dept := range out.Departments {
		registered[dept.ID] = make(map[int64]bool)
	}

	for _, appt := range in.appointments {
		clinicID, ok := doctorClinic[appt.DoctorID]
		if !ok {
			continue
		}
		seen, isDept := registered[clinicID]
		if !isDept {
			continue
		}
		details, ok := patients[appt.PatientID]
		if !ok {
			continue
		}

		when, hasTime := f.ToInstantPtr(appt.Datetime)

		if !seen[appt.PatientID] {
			seen[appt.PatientID] = true

			admitted := now
			if hasTime {
				admitted = when
			}
			patient := DepartmentPatient{
				ID:        appt.PatientID,
				Name:      details.Name,
				Admitted:  f.ShortLabel(admitted),
				Condition: GeneralCareCondition,
				Status:    StatusMonitoring,
			}
			if h, ok := history[appt.PatientID]; ok {
				patient.Condition = nonEmptyOr(h.Condition, GeneralCareCondition)
				patient.Status = ClassifyCondition(h.Status)
			}
			out.PatientsByDepartment[clinicID] = append(out.PatientsByDepartment[clinicID], patient)
		}

		upcoming := out.AppointmentsByDepartment[clinicID]
		if hasTime && !when.Before(now) && len(upcoming) < DepartmentListLimit {
			out.AppointmentsByDepartment[clinicID] = append(upcoming, AppointmentCard{
				PatientName: details.Name,
				Type:        appt.Status,
				Date:        f.LongLabel(when),
				Room:        departmentRoom(in.clinics, clinicID),
			})
		}
	}

	for _, dept := range out.Departments {
		out.FollowUpsByDepartment[dept.ID] = followUps(f, in.history, patients, registered[dept.ID])
		out.AlertsByDepartment[dept.ID] = departmentAlerts(in.tickets, dept.ID)
	}

	for patientID, latest := range latestVitals(f, in.vitals) {
		out.MetricsByPatient[patientID] = metricBlocks(latest)
	}
	for _, list := range out.PatientsByDepartment {
		for _, p := range list {
			if _, ok := out.MetricsByPatient[p.ID]; !ok {
				out.MetricsByPatient[p.ID] = []MetricBlock{NoVitalsMetric}
			}
		}
	}

	return out
}

func departmentRoom(clinics []records.Clinic, clinicID int64) string {
	for _, c := range clinics {
		if c.ClinicID == clinicID {
			return clinicName(c) + " Wing"
		}
	}
	return CareSuiteRoom
}

func followUps(
	f timefmt.Formatter,
	history []records.MedicalHistory,
	patients map[int64]records.Patient,
	registered map[int64]bool,
) []FollowUpCard {
	out := []FollowUpCard{}
	for _, h := range history {
		if len(out) == DepartmentListLimit {
			break
		}
		if !h.FollowupRequired || !registered[h.PatientID] {
			continue
		}

		name := fmt.Sprintf("Patient %d", h.PatientID)
		if p, ok := patients[h.PatientID]; ok {
			name = p.Name
		}
		out = append(out, FollowUpCard{
			PatientName: name,
			FollowUp:    f.ShortLabelOr(h.DiagnosisDate, PendingFollowUp),
			Reason:      fmt.Sprintf("%s • %s", h.Condition, valueOr(h.Severity, ReviewSeverity)),
		})
	}
	return out
}

// departmentAlerts uses the department's own tickets, or the network's first
// tickets when it has none.
func departmentAlerts(tickets []records.HelpTicket, clinicID int64) []AlertCard {
	selected := make([]records.HelpTicket, 0, DepartmentListLimit)
	for _, t := range tickets {
		if len(selected) == DepartmentListLimit {
			break
		}
		if t.ClinicID == clinicID {
			selected = append(selected, t)
		}
	}
	if len(selected) == 0 {
		selected = tickets
		if len(selected) > DepartmentListLimit {
			selected = selected[:DepartmentListLimit]
		}
	}

	out := make([]AlertCard, 0, len(selected))
	for i, t := range selected {
		out = append(out, AlertCard{
			PatientName: t.SubmittedBy,
			Alert:       t.IssueDescription,
			Severity:    ClassifyTicket(t.IssueDescription, i),
			Time:        fmt.Sprintf("%d min ago", AlertMinutesPerTicket*(i+1)),
		})
	}
	return out
}

// latestVitals picks each patient's most recently recorded vital. Unparseable
// timestamps count as the epoch; on equal timestamps the later row wins.
func latestVitals(f timefmt.Formatter, vitals []records.Vital) map[int64]records.Vital {
	latest := make(map[int64]records.Vital)
	stamps := make(map[int64]int64)
	for _, v := range vitals {
		if v.PatientID == 0 {
			continue
		}
		ms := f.UnixMilliOrZero(v.RecordedOn)
		if best, ok := stamps[v.PatientID]; ok && ms < best {
			continue
		}
		stamps[v.PatientID] = ms
		latest[v.PatientID] = v
	}
	return latest
}

func metricBlocks(v records.Vital) []MetricBlock {
	out := make([]MetricBlock, 0, 4)
	if hasText(v.BloodPressure) {
		out = append(out, MetricBlock{
			Metric: MetricBloodPressure,
			Value:  *v.BloodPressure,
			Status: ClassifyVital(MetricBloodPressure, 0),
		})
	}
	if v.HeartRate != nil {
		out = append(out, MetricBlock{
			Metric: MetricHeartRate,
			Value:  formatNumber(*v.HeartRate) + " bpm",
			Status: ClassifyVital(MetricHeartRate, *v.HeartRate),
		})
	}
	if v.Temperature != nil {
		out = append(out, MetricBlock{
			Metric: MetricTemperature,
			Value:  fmt.Sprintf("%.1f°C", *v.Temperature),
			Status: ClassifyVital(MetricTemperature, *v.Temperature),
		})
	}
	if v.RespiratoryRate != nil {
		out = append(out, MetricBlock{
			Metric: MetricRespiratoryRate,
			Value:  formatNumber(*v.RespiratoryRate) + " rpm",
			Status: ClassifyVital(MetricRespiratoryRate, *v.RespiratoryRate),
		})
	}
	if len(out) == 0 {
		return []MetricBlock{NoVitalsMetric}
	}
	return out
}
