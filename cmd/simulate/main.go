package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hackgods/hospital-dashboard/internal/dashboard"
	"github.com/hackgods/hospital-dashboard/internal/db"
	"github.com/hackgods/hospital-dashboard/internal/records"
)

type SimConfig struct {
	APIBaseURL     string
	Duration       time.Duration
	Workers        int
	AnalystRatio   float64
	ClinicalRatio  float64
	DoctorRatio    float64
	PatientRatio   float64
	MaxDoctorID    int64
	MaxPatientID   int64
	PostgresDSN    string
	RequestTimeout time.Duration
}

// IDPool holds the doctor and patient ids requests are drawn from.
type IDPool struct {
	Doctors  []int64
	Patients []int64
}

func (p *IDPool) randomDoctor(rng *rand.Rand) int64 {
	return p.Doctors[rng.Intn(len(p.Doctors))]
}

func (p *IDPool) randomPatient(rng *rand.Rand) int64 {
	return p.Patients[rng.Intn(len(p.Patients))]
}

type OperationMetrics struct {
	Total       int64
	Success     int64
	ClientError int64
	Error       int64
	Latencies   []time.Duration
	mu          sync.Mutex
}

func (om *OperationMetrics) Record(latency time.Duration, status int, err error) {
	atomic.AddInt64(&om.Total, 1)
	switch {
	case err == nil && status < 400:
		atomic.AddInt64(&om.Success, 1)
	case err == nil && status < 500:
		atomic.AddInt64(&om.ClientError, 1)
	default:
		atomic.AddInt64(&om.Error, 1)
	}

	om.mu.Lock()
	om.Latencies = append(om.Latencies, latency)
	om.mu.Unlock()
}

func (om *OperationMetrics) Stats() (avg, min, max, p50, p95 time.Duration) {
	om.mu.Lock()
	defer om.mu.Unlock()

	if len(om.Latencies) == 0 {
		return 0, 0, 0, 0, 0
	}

	latencies := make([]time.Duration, len(om.Latencies))
	copy(latencies, om.Latencies)

	sort.Slice(latencies, func(i, j int) bool {
		return latencies[i] < latencies[j]
	})

	var sum time.Duration
	for _, l := range latencies {
		sum += l
	}

	avg = sum / time.Duration(len(latencies))
	min = latencies[0]
	max = latencies[len(latencies)-1]
	p50 = latencies[percentileIndex(len(latencies), 50)]
	p95 = latencies[percentileIndex(len(latencies), 95)]

	return avg, min, max, p50, p95
}

func percentileIndex(n, pct int) int {
	idx := n * pct / 100
	if idx >= n {
		idx = n - 1
	}
	return idx
}

type Metrics struct {
	Analyst       OperationMetrics
	AnalystKPI    OperationMetrics
	ClinicalStaff OperationMetrics
	Doctor        OperationMetrics
	Patient       OperationMetrics
}

type Simulator struct {
	config  SimConfig
	ids     *IDPool
	client  *resty.Client
	metrics Metrics
}

var (
	kpis   = []dashboard.KPI{dashboard.KPIDiagnosisVolume, dashboard.KPIAppointmentVolume, dashboard.KPIAIAccuracy, dashboard.KPIRetention}
	ranges = []string{"7d", "30d", "90d", "180d"}
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("simulator starting")

	cfg := loadConfig()
	if err := validateConfig(cfg); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	log.Printf("config: duration=%s workers=%d analyst=%.2f clinical=%.2f doctor=%.2f patient=%.2f",
		cfg.Duration, cfg.Workers, cfg.AnalystRatio, cfg.ClinicalRatio, cfg.DoctorRatio, cfg.PatientRatio)

	ids, err := loadIDPool(cfg)
	if err != nil {
		log.Fatalf("load id pool: %v", err)
	}
	log.Printf("loaded: %d doctors, %d patients", len(ids.Doctors), len(ids.Patients))

	sim := &Simulator{
		config: cfg,
		ids:    ids,
		client: resty.New().
			SetBaseURL(strings.TrimRight(cfg.APIBaseURL, "/")).
			SetTimeout(cfg.RequestTimeout).
			SetHeader("Accept", "application/json"),
	}

	sim.Run()
	sim.PrintReport()
}

func loadConfig() SimConfig {
	cfg := SimConfig{
		APIBaseURL:     getEnv("SIM_API_BASE_URL", "http://localhost:8080"),
		Duration:       getDuration("SIM_DURATION", 30*time.Second),
		Workers:        getInt("SIM_WORKERS", 10),
		AnalystRatio:   getFloat("SIM_ANALYST_RATIO", 0.2),
		ClinicalRatio:  getFloat("SIM_CLINICAL_RATIO", 0.2),
		DoctorRatio:    getFloat("SIM_DOCTOR_RATIO", 0.3),
		PatientRatio:   getFloat("SIM_PATIENT_RATIO", 0.3),
		MaxDoctorID:    int64(getInt("SIM_MAX_DOCTOR_ID", 18)),
		MaxPatientID:   int64(getInt("SIM_MAX_PATIENT_ID", 400)),
		PostgresDSN:    os.Getenv("POSTGRES_DSN"),
		RequestTimeout: getDuration("SIM_REQUEST_TIMEOUT", 20*time.Second),
	}

	total := cfg.AnalystRatio + cfg.ClinicalRatio + cfg.DoctorRatio + cfg.PatientRatio
	if total > 0 {
		cfg.AnalystRatio /= total
		cfg.ClinicalRatio /= total
		cfg.DoctorRatio /= total
		cfg.PatientRatio /= total
	}

	return cfg
}

func validateConfig(cfg SimConfig) error {
	if cfg.Workers <= 0 {
		return fmt.Errorf("SIM_WORKERS must be > 0")
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("SIM_DURATION must be > 0")
	}
	if cfg.PostgresDSN == "" && (cfg.MaxDoctorID <= 0 || cfg.MaxPatientID <= 0) {
		return fmt.Errorf("SIM_MAX_DOCTOR_ID and SIM_MAX_PATIENT_ID must be > 0 without POSTGRES_DSN")
	}
	return nil
}

// loadIDPool reads real ids from the seeded tables when POSTGRES_DSN is set,
// and otherwise uses 1..max.
func loadIDPool(cfg SimConfig) (*IDPool, error) {
	if cfg.PostgresDSN == "" {
		return &IDPool{
			Doctors:  sequence(cfg.MaxDoctorID),
			Patients: sequence(cfg.MaxPatientID),
		}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pgPool, err := db.ConnectPostgres(ctx, cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	defer pgPool.Close()

	doctors, err := loadIDs(ctx, pgPool, "SELECT doctor_id FROM "+records.TableDoctors)
	if err != nil {
		return nil, fmt.Errorf("load doctors: %w", err)
	}
	patients, err := loadIDs(ctx, pgPool, "SELECT patient_id FROM "+records.TablePatients)
	if err != nil {
		return nil, fmt.Errorf("load patients: %w", err)
	}

	if len(doctors) == 0 {
		return nil, fmt.Errorf("no doctors loaded")
	}
	if len(patients) == 0 {
		return nil, fmt.Errorf("no patients loaded")
	}
	return &IDPool{Doctors: doctors, Patients: patients}, nil
}

func loadIDs(ctx context.Context, pool *pgxpool.Pool, query string) ([]int64, error) {
	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func sequence(n int64) []int64 {
	out := make([]int64, n)
	for i := range out {
		out[i] = int64(i + 1)
	}
	return out
}

func (s *Simulator) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Duration)
	defer cancel()

	log.Printf("starting simulation for %s with %d workers", s.config.Duration, s.config.Workers)

	var wg sync.WaitGroup
	for i := 0; i < s.config.Workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			s.worker(ctx, workerID)
		}(i)
	}

	wg.Wait()
	log.Println("simulation complete")
}

func (s *Simulator) worker(ctx context.Context, workerID int) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano() + int64(workerID)))

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		r := rng.Float64()
		switch {
		case r < s.config.AnalystRatio:
			// Half of analyst traffic is range switching on a single KPI.
			if rng.Intn(2) == 0 {
				s.get(ctx, &s.metrics.Analyst, "/dashboards/analyst")
			} else {
				path := fmt.Sprintf("/dashboards/analyst/kpis/%s?range=%s",
					kpis[rng.Intn(len(kpis))], ranges[rng.Intn(len(ranges))])
				s.get(ctx, &s.metrics.AnalystKPI, path)
			}
		case r < s.config.AnalystRatio+s.config.ClinicalRatio:
			s.get(ctx, &s.metrics.ClinicalStaff, "/dashboards/clinical-staff")
		case r < s.config.AnalystRatio+s.config.ClinicalRatio+s.config.DoctorRatio:
			s.get(ctx, &s.metrics.Doctor, fmt.Sprintf("/dashboards/doctors/%d", s.ids.randomDoctor(rng)))
		default:
			s.get(ctx, &s.metrics.Patient, fmt.Sprintf("/dashboards/patients/%d", s.ids.randomPatient(rng)))
		}
	}
}

func (s *Simulator) get(ctx context.Context, om *OperationMetrics, path string) {
	start := time.Now()
	resp, err := s.client.R().SetContext(ctx).Get(path)
	latency := time.Since(start)

	if ctx.Err() != nil {
		// The run ended mid-request; not a server failure.
		return
	}

	status := http.StatusInternalServerError
	if err == nil {
		status = resp.StatusCode()
	}
	om.Record(latency, status, err)
}

func (s *Simulator) PrintReport() {
	fmt.Println("\n" + repeat("=", 80))
	fmt.Println("SIMULATION REPORT")
	fmt.Println(repeat("=", 80))
	fmt.Printf("Duration: %s\n", s.config.Duration)
	fmt.Printf("Workers: %d\n", s.config.Workers)
	fmt.Println()

	printOperationReport("Analyst dashboard", &s.metrics.Analyst)
	printOperationReport("Analyst KPI window", &s.metrics.AnalystKPI)
	printOperationReport("Clinical staff dashboard", &s.metrics.ClinicalStaff)
	printOperationReport("Doctor dashboard", &s.metrics.Doctor)
	printOperationReport("Patient dashboard", &s.metrics.Patient)
}

func printOperationReport(name string, om *OperationMetrics) {
	total := atomic.LoadInt64(&om.Total)
	if total == 0 {
		return
	}

	success := atomic.LoadInt64(&om.Success)
	clientErr := atomic.LoadInt64(&om.ClientError)
	serverErr := atomic.LoadInt64(&om.Error)

	avg, min, max, p50, p95 := om.Stats()

	fmt.Printf("%s:\n", name)
	fmt.Printf("  Total: %d\n", total)
	fmt.Printf("  Success: %d (%.1f%%)\n", success, float64(success)/float64(total)*100)
	if clientErr > 0 {
		fmt.Printf("  Client errors: %d (%.1f%%)\n", clientErr, float64(clientErr)/float64(total)*100)
	}
	if serverErr > 0 {
		fmt.Printf("  Errors: %d (%.1f%%)\n", serverErr, float64(serverErr)/float64(total)*100)
	}
	fmt.Printf("  Latency: avg=%s min=%s max=%s p50=%s p95=%s\n",
		avg.Round(time.Millisecond), min.Round(time.Millisecond), max.Round(time.Millisecond),
		p50.Round(time.Millisecond), p95.Round(time.Millisecond))
	fmt.Println()
}

// Helper functions

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func repeat(s string, n int) string {
	return strings.Repeat(s, n)
}
