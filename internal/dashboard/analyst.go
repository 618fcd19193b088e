package dashboard

import (
	"context"
	"fmt"

	"github.com/hackgods/hospital-dashboard/internal/records"
	"github.com/hackgods/hospital-dashboard/internal/timefmt"
)

type analystInput struct {
	clinics       []records.Clinic
	diagnoses     []records.Diagnosis
	appointments  []records.Appointment
	aiDiagnostics []records.AIDiagnostic
}

// Analyst builds the network-wide KPI dashboard.
func (s *Service) Analyst(ctx context.Context) *AnalystDashboard {
	var in analystInput
	s.fetchAll(ctx, "analyst",
		read(s.tables, records.TableClinics, &in.clinics),
		read(s.tables, records.TableDiagnoses, &in.diagnoses),
		read(s.tables, records.TableAppointments, &in.appointments),
		read(s.tables, records.TableAIDiagnostics, &in.aiDiagnostics),
	)
	return buildAnalyst(s.fmt, in)
}

func buildAnalyst(f timefmt.Formatter, in analystInput) *AnalystDashboard {
	hospitals := make([]HospitalOption, 0, len(in.clinics))
	for _, c := range in.clinics {
		hospitals = append(hospitals, HospitalOption{
			ID:   c.ClinicID,
			Name: clinicName(c),
			City: nonEmptyOr(c.Location, UnknownCity),
		})
	}
	if len(hospitals) == 0 {
		hospitals = append(hospitals, DefaultHospital)
	}

	kpis := AnalystKPIs{
		DiagnosisVolume:   orPlaceholder(diagnosisVolume(f, in.diagnoses)),
		AppointmentVolume: orPlaceholder(appointmentVolume(f, in.appointments)),
		AIAccuracy:        orPlaceholder(aiAccuracy(f, in.aiDiagnostics)),
		Retention:         orPlaceholder(retention(f, in.appointments)),
	}

	return &AnalystDashboard{
		Hospitals:  hospitals,
		KPIMetrics: kpis,
		Summary: AnalystSummary{
			AIAccuracy:        kpis.AIAccuracy.Last(),
			Retention:         kpis.Retention.Last(),
			DiagnosesTotal:    int(kpis.DiagnosisVolume.Sum()),
			AppointmentsTotal: int(kpis.AppointmentVolume.Sum()),
		},
	}
}

func clinicName(c records.Clinic) string {
	return nonEmptyOr(c.ClinicName, fmt.Sprintf("Clinic %d", c.ClinicID))
}

func orPlaceholder(s TrendSeries) TrendSeries {
	if len(s.Points) > 0 {
		return s
	}
	return PlaceholderSeries(s.Key)
}

func countSeries(key string, buckets *timefmt.DayBuckets[int]) TrendSeries {
	recent := buckets.Recent(MaxTrendPoints)
	points := make([]TrendPoint, len(recent))
	for i, b := range recent {
		points[i] = TrendPoint{Date: b.Label, Value: float64(b.Value)}
	}
	return TrendSeries{Key: key, Points: points}
}

func diagnosisVolume(f timefmt.Formatter, diagnoses []records.Diagnosis) TrendSeries {
	buckets := timefmt.NewDayBuckets[int](f)
	for _, d := range diagnoses {
		t, ok := f.ToInstant(d.DiagnosisDate)
		if !ok {
			continue
		}
		*buckets.Add(t)++
	}
	return countSeries(KeyVolume, buckets)
}

func appointmentVolume(f timefmt.Formatter, appointments []records.Appointment) TrendSeries {
	buckets := timefmt.NewDayBuckets[int](f)
	for _, a := range appointments {
		t, ok := f.ToInstantPtr(a.Datetime)
		if !ok {
			continue
		}
		*buckets.Add(t)++
	}
	return countSeries(KeyAppointments, buckets)
}

type meanAcc struct {
	sum   float64
	count int
}

// aiAccuracy averages confidence scores per day, as a 0-100 percentage.
func aiAccuracy(f timefmt.Formatter, diagnostics []records.AIDiagnostic) TrendSeries {
	buckets := timefmt.NewDayBuckets[meanAcc](f)
	for _, d := range diagnostics {
		if d.ConfidenceScore == nil {
			continue
		}
		t, ok := f.ToInstantPtr(d.CreatedAt)
		if !ok {
			continue
		}
		acc := buckets.Add(t)
		acc.sum += *d.ConfidenceScore * 100
		acc.count++
	}

	recent := buckets.Recent(MaxTrendPoints)
	points := make([]TrendPoint, len(recent))
	for i, b := range recent {
		var v float64
		if b.Value.count > 0 {
			v = round1(b.Value.sum / float64(b.Value.count))
		}
		points[i] = TrendPoint{Date: b.Label, Value: v}
	}
	return TrendSeries{Key: KeyAccuracy, Points: points}
}

type ratioAcc struct {
	total     int
	completed int
}

// retention is the share of completed appointments per day.
func retention(f timefmt.Formatter, appointments []records.Appointment) TrendSeries {
	buckets := timefmt.NewDayBuckets[ratioAcc](f)
	for _, a := range appointments {
		t, ok := f.ToInstantPtr(a.Datetime)
		if !ok {
			continue
		}
		acc := buckets.Add(t)
		acc.total++
		if isCompleted(a.Status) {
			acc.completed++
		}
	}

	recent := buckets.Recent(MaxTrendPoints)
	points := make([]TrendPoint, len(recent))
	for i, b := range recent {
		var v float64
		if b.Value.total > 0 {
			v = round1(float64(b.Value.completed) / float64(b.Value.total) * 100)
		}
		points[i] = TrendPoint{Date: b.Label, Value: v}
	}
	return TrendSeries{Key: KeyRetention, Points: points}
}
