package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hackgods/hospital-dashboard/internal/dashboard"
	"github.com/hackgods/hospital-dashboard/internal/records"
	redisclient "github.com/hackgods/hospital-dashboard/internal/redis"
)

type fakeDashboards struct {
	faker      *gofakeit.Faker
	doctorIDs  []int64
	patientIDs []int64
	kpiRange   string
}

func newFakeDashboards() *fakeDashboards {
	return &fakeDashboards{faker: gofakeit.New(7)}
}

func (f *fakeDashboards) Analyst(context.Context) *dashboard.AnalystDashboard {
	return &dashboard.AnalystDashboard{
		Hospitals: []dashboard.HospitalOption{dashboard.DefaultHospital},
		KPIMetrics: dashboard.AnalystKPIs{
			DiagnosisVolume:   dashboard.PlaceholderSeries(dashboard.KeyVolume),
			AppointmentVolume: dashboard.PlaceholderSeries(dashboard.KeyAppointments),
			AIAccuracy:        dashboard.PlaceholderSeries(dashboard.KeyAccuracy),
			Retention:         dashboard.PlaceholderSeries(dashboard.KeyRetention),
		},
	}
}

func (f *fakeDashboards) AnalystKPI(ctx context.Context, kpi dashboard.KPI, rangeName string) (dashboard.KPIWindow, error) {
	f.kpiRange = rangeName
	return f.Analyst(ctx).Window(kpi, rangeName, 7), nil
}

func (f *fakeDashboards) ClinicalStaff(context.Context) *dashboard.ClinicalStaffDashboard {
	return &dashboard.ClinicalStaffDashboard{
		Departments: []dashboard.DepartmentInfo{{ID: 3, Name: "Cardiology", Hospital: "Regional", StaffCount: 4}},
		PatientsByDepartment: map[int64][]dashboard.DepartmentPatient{
			3: {{ID: 9, Name: f.faker.Name(), Admitted: "Jun 1", Condition: "General Care", Status: dashboard.StatusMonitoring}},
		},
	}
}

func (f *fakeDashboards) Doctor(_ context.Context, id int64) (*dashboard.DoctorDashboard, error) {
	f.doctorIDs = append(f.doctorIDs, id)
	return &dashboard.DoctorDashboard{DoctorName: f.faker.Name(), Alerts: dashboard.DefaultDoctorAlerts()}, nil
}

func (f *fakeDashboards) Patient(_ context.Context, id int64) (*dashboard.PatientDashboard, error) {
	f.patientIDs = append(f.patientIDs, id)
	if id == 500 {
		return nil, errors.New("boom")
	}
	return &dashboard.PatientDashboard{PatientName: f.faker.Name()}, nil
}

type fakePinger struct {
	err error
}

func (p fakePinger) Ping(context.Context) error {
	return p.err
}

func serve(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRouter_AnalystDashboard(t *testing.T) {
	router := NewRouter(RouterConfig{Dashboards: newFakeDashboards(), Logger: zap.NewNop()})

	rec := serve(t, router, "/dashboards/analyst")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	kpis := body["kpiMetrics"].(map[string]any)
	volume := kpis["diagnosisVolume"].([]any)
	require.Len(t, volume, 7)
	assert.Equal(t, map[string]any{"date": "Mon", "volume": 1.0}, volume[0])
}

func TestRouter_AnalystKPI(t *testing.T) {
	dash := newFakeDashboards()
	router := NewRouter(RouterConfig{Dashboards: dash})

	rec := serve(t, router, "/dashboards/analyst/kpis/retention?range=30d")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "30d", dash.kpiRange)

	var window dashboard.KPIWindow
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &window))
	assert.Equal(t, dashboard.KPIRetention, window.KPI)
	assert.Equal(t, 86.0, window.Current)

	rec = serve(t, router, "/dashboards/analyst/kpis/retention")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "7d", dash.kpiRange)
}

func TestRouter_AnalystKPIErrors(t *testing.T) {
	router := NewRouter(RouterConfig{Dashboards: newFakeDashboards()})

	rec := serve(t, router, "/dashboards/analyst/kpis/bedOccupancy")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "unknown_kpi", decodeError(t, rec).Error)

	rec = serve(t, router, "/dashboards/analyst/kpis/aiAccuracy?range=1y")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_range", decodeError(t, rec).Error)
}

func TestRouter_ClinicalStaffKeysDepartmentsByID(t *testing.T) {
	router := NewRouter(RouterConfig{Dashboards: newFakeDashboards()})

	rec := serve(t, router, "/dashboards/clinical-staff")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		PatientsByDepartment map[string][]dashboard.DepartmentPatient `json:"patientsByDepartment"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.PatientsByDepartment["3"], 1)
	assert.NotEmpty(t, body.PatientsByDepartment["3"][0].Name)
}

func TestRouter_DoctorAndPatientIDs(t *testing.T) {
	dash := newFakeDashboards()
	router := NewRouter(RouterConfig{Dashboards: dash})

	rec := serve(t, router, "/dashboards/doctors/12")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = serve(t, router, "/dashboards/patients/4")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, []int64{12}, dash.doctorIDs)
	assert.Equal(t, []int64{4}, dash.patientIDs)
}

func TestRouter_RejectsBadIDs(t *testing.T) {
	dash := newFakeDashboards()
	router := NewRouter(RouterConfig{Dashboards: dash})

	tests := []struct {
		target string
		code   string
	}{
		{"/dashboards/doctors/abc", "invalid_doctor_id"},
		{"/dashboards/doctors/0", "invalid_doctor_id"},
		{"/dashboards/patients/-2", "invalid_patient_id"},
		{"/dashboards/patients/1.5", "invalid_patient_id"},
	}
	for _, tt := range tests {
		rec := serve(t, router, tt.target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, tt.target)
		assert.Equal(t, tt.code, decodeError(t, rec).Error, tt.target)
	}
	assert.Empty(t, dash.doctorIDs)
	assert.Empty(t, dash.patientIDs)
}

func TestRouter_UnexpectedErrorIs500(t *testing.T) {
	router := NewRouter(RouterConfig{Dashboards: newFakeDashboards()})

	rec := serve(t, router, "/dashboards/patients/500")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal_error", decodeError(t, rec).Error)
}

func TestRouter_KeepsIncomingRequestID(t *testing.T) {
	router := NewRouter(RouterConfig{Dashboards: newFakeDashboards()})

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get("X-Request-ID"))
}

func newTracker(t *testing.T) *redisclient.FailureTracker {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return redisclient.NewFailureTracker(client, time.Minute)
}

func readiness(t *testing.T, cfg RouterConfig) (int, ReadinessResponse) {
	t.Helper()
	rec := serve(t, NewRouter(cfg), "/health/ready")
	var body ReadinessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestReadiness_NoDependencies(t *testing.T) {
	code, body := readiness(t, RouterConfig{Dashboards: newFakeDashboards(), Env: "test"})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body.Status)
	assert.Empty(t, body.Dependencies)
}

func TestReadiness_PostgresDownIsError(t *testing.T) {
	code, body := readiness(t, RouterConfig{
		Dashboards: newFakeDashboards(),
		Postgres:   fakePinger{err: errors.New("connection refused")},
	})
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "error", body.Status)
	assert.Equal(t, "down", body.Dependencies["postgres"])
}

func TestReadiness_ReportsDegradedTables(t *testing.T) {
	tracker := newTracker(t)
	ctx := context.Background()
	require.NoError(t, tracker.RecordFailure(ctx, records.TableVitals))
	require.NoError(t, tracker.RecordFailure(ctx, records.TableVitals))

	code, body := readiness(t, RouterConfig{
		Dashboards: newFakeDashboards(),
		Postgres:   fakePinger{},
		Failures:   tracker,
	})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "degraded", body.Status)
	assert.Equal(t, map[string]string{"postgres": "ok", "redis": "ok"}, body.Dependencies)
	assert.Equal(t, map[string]int64{records.TableVitals: 2}, body.DegradedTables)
}

func TestReadiness_RedisDownDegrades(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	tracker := redisclient.NewFailureTracker(client, time.Minute)

	code, body := readiness(t, RouterConfig{Dashboards: newFakeDashboards(), Failures: tracker})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "degraded", body.Status)
	assert.Equal(t, "down", body.Dependencies["redis"])
}
