package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hackgods/hospital-dashboard/internal/dashboard"
)

func analystHandler(svc Dashboards) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Analyst(r.Context()))
	}
}

func analystKPIHandler(svc Dashboards) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kpi, err := dashboard.ParseKPI(chi.URLParam(r, "kpi"))
		if err != nil {
			writeError(w, http.StatusNotFound, "unknown_kpi", err.Error())
			return
		}

		rangeName, _, err := dashboard.ParseRange(r.URL.Query().Get("range"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_range", "range must be one of 7d, 30d, 90d, 180d")
			return
		}

		window, err := svc.AnalystKPI(r.Context(), kpi, rangeName)
		if err != nil {
			handleDashboardError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, window)
	}
}

func clinicalStaffHandler(svc Dashboards) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.ClinicalStaff(r.Context()))
	}
}

func doctorHandler(svc Dashboards) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(chi.URLParam(r, "doctorID"))
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid_doctor_id", "doctorID must be a positive integer")
			return
		}

		view, err := svc.Doctor(r.Context(), id)
		if err != nil {
			handleDashboardError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}

func patientHandler(svc Dashboards) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(chi.URLParam(r, "patientID"))
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid_patient_id", "patientID must be a positive integer")
			return
		}

		view, err := svc.Patient(r.Context(), id)
		if err != nil {
			handleDashboardError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}

func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func handleDashboardError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, dashboard.ErrInvalidID):
		writeError(w, http.StatusBadRequest, "invalid_id", err.Error())
	case errors.Is(err, dashboard.ErrUnknownKPI):
		writeError(w, http.StatusNotFound, "unknown_kpi", err.Error())
	case errors.Is(err, dashboard.ErrUnknownRange):
		writeError(w, http.StatusBadRequest, "invalid_range", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "dashboard could not be built")
	}
}
