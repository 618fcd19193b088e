package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackgods/hospital-dashboard/internal/records"
)

func yearsBefore(now time.Time, years float64) time.Time {
	return now.Add(-time.Duration(years * yearMillis * float64(time.Millisecond)))
}

func doctorFixture() map[string]any {
	return map[string]any{
		records.TableDoctors: []records.Doctor{
			{DoctorID: 7, Name: "Dr. Osei", ClinicID: 1},
		},
		records.TablePatients: []records.Patient{
			{PatientID: 1, Name: "Ada", DOB: strp(ts(yearsBefore(testNow, 30)))},
			{PatientID: 2, Name: "Ben", DOB: strp("not a date")},
			{PatientID: 3, Name: "Cy"},
			{PatientID: 4, Name: "Dee"},
		},
		records.TableAppointments: []records.Appointment{
			{PatientID: 1, DoctorID: 7, Datetime: strp("2024-06-01T10:00:00Z"), Status: "Completed"},
			{PatientID: 1, DoctorID: 7, Datetime: strp("2024-06-18T10:00:00Z"), Status: "Scheduled"},
			{PatientID: 2, DoctorID: 7, Datetime: nil, Status: "Scheduled"},
			{PatientID: 3, DoctorID: 7, Datetime: strp("2024-06-19T14:30:00Z"), Status: "Confirmed"},
			{PatientID: 4, DoctorID: 7, Datetime: strp("2024-06-20T08:00:00Z"), Status: "scheduled"},
			{PatientID: 1, DoctorID: 8, Datetime: strp("2024-06-25T10:00:00Z"), Status: "Scheduled"},
		},
		records.TableVitals: []records.Vital{
			{PatientID: 1, BloodPressure: strp("130/85"), HeartRate: floatp(80), RecordedOn: strp("2024-06-03T08:00:00Z")},
			{PatientID: 1, BloodPressure: strp("120/80"), HeartRate: floatp(70), RecordedOn: strp("2024-06-01T08:00:00Z")},
			{PatientID: 1, BloodPressure: strp("bad"), HeartRate: floatp(99), RecordedOn: strp("2024-06-02T08:00:00Z")},
			{PatientID: 2, HeartRate: floatp(65), RecordedOn: strp("2024-06-02T08:00:00Z")},
		},
		records.TablePrescriptions: []records.Prescription{
			{DoctorID: 7, MedicineName: "Lisinopril", Dosage: strp("10mg daily"), Status: "Active", StartDate: strp("2024-05-01")},
			{DoctorID: 7, MedicineName: "Metformin", Status: "ACTIVE"},
			{DoctorID: 7, MedicineName: "Amoxicillin", Dosage: strp("500mg"), Status: "Completed", EndDate: strp("2024-04-10")},
			{DoctorID: 7, MedicineName: "Ibuprofen", Status: "Stopped"},
			{DoctorID: 8, MedicineName: "Other", Status: "Active"},
		},
		records.TableDoctorTasks: []records.DoctorTask{
			{DoctorID: 7, Description: "Review labs", Status: "In Progress"},
			{DoctorID: 8, Description: "Not mine", Status: "Pending"},
			{DoctorID: 7, Description: "Sign discharge", Status: "Pending"},
			{DoctorID: 7, Description: "Call patient", Status: "Pending"},
		},
	}
}

func TestDoctor_RejectsInvalidID(t *testing.T) {
	svc := newTestService(t, nil)

	for _, id := range []int64{0, -3} {
		got, err := svc.Doctor(context.Background(), id)
		require.ErrorIs(t, err, ErrInvalidID)
		assert.Nil(t, got)
	}
}

func TestDoctor_AllTablesDown(t *testing.T) {
	got, err := newTestService(t, nil).Doctor(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, "Doctor 5", got.DoctorName)
	assert.NotNil(t, got.Patients)
	assert.NotNil(t, got.VitalsByPatient)
	assert.NotNil(t, got.CurrentPrescriptions)
	assert.NotNil(t, got.PreviousPrescriptions)
	assert.NotNil(t, got.UpcomingAppointments)
	assert.Equal(t, DefaultDoctorAlerts(), got.Alerts)
}

func TestDoctor_PatientCards(t *testing.T) {
	got, err := newTestService(t, doctorFixture()).Doctor(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, "Dr. Osei", got.DoctorName)
	assert.Equal(t, []DoctorPatientCard{
		{ID: 1, Name: "Ada", Age: 30, LastVisit: "Jun 18"},
		{ID: 2, Name: "Ben", Age: 0, LastVisit: "Jun 15"},
		{ID: 3, Name: "Cy", Age: 0, LastVisit: "Jun 19"},
	}, got.Patients)
}

func TestAgeAt_Boundary(t *testing.T) {
	f := newTestService(t, nil).fmt

	assert.Equal(t, 30, ageAt(f, strp(ts(yearsBefore(testNow, 30))), testNow))
	assert.Equal(t, 29, ageAt(f, strp(ts(yearsBefore(testNow, 30).Add(time.Millisecond))), testNow))
	assert.Equal(t, 0, ageAt(f, strp(ts(testNow.AddDate(1, 0, 0))), testNow))
	assert.Equal(t, 0, ageAt(f, nil, testNow))
}

func TestDoctor_VitalTrend(t *testing.T) {
	got, err := newTestService(t, doctorFixture()).Doctor(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, []VitalTrendPoint{
		{Date: "Jun 1", Systolic: 120, Diastolic: 80, HeartRate: 70},
		{Date: "Jun 3", Systolic: 130, Diastolic: 85, HeartRate: 80},
	}, got.VitalsByPatient[1])

	_, ok := got.VitalsByPatient[2]
	assert.False(t, ok, "patients without a readable blood pressure get no trend")
}

func TestVitalTrend_KeepsTrailingReadings(t *testing.T) {
	f := newTestService(t, nil).fmt
	start := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	var vitals []records.Vital
	for i := 9; i >= 0; i-- {
		vitals = append(vitals, records.Vital{
			PatientID:     1,
			BloodPressure: strp("120/80"),
			RecordedOn:    strp(ts(start.AddDate(0, 0, i))),
		})
	}

	got := vitalTrend(f, vitals, 1, testNow)
	require.Len(t, got, VitalTrendLength)
	assert.Equal(t, "Jun 4", got[0].Date)
	assert.Equal(t, "Jun 10", got[6].Date)
}

func TestDoctor_Prescriptions(t *testing.T) {
	got, err := newTestService(t, doctorFixture()).Doctor(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, []DoctorPrescriptionCard{
		{Drug: "Lisinopril", Dose: "10mg daily", Frequency: "10mg daily", Since: "May 1"},
		{Drug: "Metformin", Dose: "As directed", Frequency: "Per instructions", Since: "Ongoing"},
	}, got.CurrentPrescriptions)
	assert.Equal(t, []DoctorPrescriptionCard{
		{Drug: "Amoxicillin", Dose: "500mg", Frequency: "500mg", Since: "Apr 10"},
		{Drug: "Ibuprofen", Dose: "As directed", Frequency: "Per instructions", Since: "Completed"},
	}, got.PreviousPrescriptions)
}

func TestDoctor_UpcomingAndAlerts(t *testing.T) {
	got, err := newTestService(t, doctorFixture()).Doctor(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, []DoctorAppointmentCard{
		{PatientName: "Ada", Date: "Jun 18, 10:00 AM", Type: "Scheduled"},
		{PatientName: "Dee", Date: "Jun 20, 8:00 AM", Type: "scheduled"},
	}, got.UpcomingAppointments)

	assert.Equal(t, []DoctorAlert{
		{Message: "Review labs", Tone: ToneWarning},
		{Message: "Sign discharge", Tone: ToneInfo},
	}, got.Alerts)
}
