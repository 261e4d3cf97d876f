package medicines

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"medicine-tracker/internal/domain/settings"
	"medicine-tracker/internal/ports/druginfo"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta el CRUD de medicamentos + intake + autocomplete.
// lookup puede ser nil (modo offline: la info queda en N/A).
func RegisterRoutes(r chi.Router, svc *Service, settingsSvc *settings.Service, lookup druginfo.Lookup) {
	r.Route("/medicines", func(mr chi.Router) {
		mr.Post("/", createMedicineHandler(svc, settingsSvc, lookup))
		mr.Get("/", listMedicinesHandler(svc))
		mr.Get("/suggest", suggestHandler(lookup))

		mr.Put("/{medicineID}", updateMedicineHandler(svc, lookup))
		mr.Delete("/{medicineID}", deleteMedicineHandler(svc))

		mr.Post("/{medicineID}/intake", recordIntakeHandler(svc))
	})
}

type medicineRequest struct {
	Name            string    `json:"name"`
	Times           []string  `json:"times"`
	Dosage          string    `json:"dosage"`
	Instructions    string    `json:"instructions"`
	DurationDays    *int      `json:"durationDays"`
	ReminderMinutes *int      `json:"reminderMinutes"` // nil = default de settings
	Info            *DrugInfo `json:"info"`            // nil = resolver vía lookup
}

type intakeRequest struct {
	Time string `json:"time"`
	Day  string `json:"day"` // opcional, default hoy
}

func (req medicineRequest) toDraft() Draft {
	return Draft{
		Name:                req.Name,
		Times:               req.Times,
		Dosage:              req.Dosage,
		Instructions:        req.Instructions,
		DurationDays:        req.DurationDays,
		ReminderLeadMinutes: req.ReminderMinutes,
		Info:                req.Info,
	}
}

func createMedicineHandler(svc *Service, settingsSvc *settings.Service, lookup druginfo.Lookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req medicineRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		d := req.toDraft()

		// reminder default desde settings si el form no lo trae
		if d.ReminderLeadMinutes == nil && settingsSvc != nil {
			if st, err := settingsSvc.Current(r.Context()); err == nil {
				d.ReminderLeadMinutes = &st.DefaultReminderMin
			}
		}

		resolveInfo(r, &d, lookup)

		m, err := svc.Add(r.Context(), d)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, m)
	}
}

func listMedicinesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		q := r.URL.Query().Get("q")
		bucket := ParseBucket(r.URL.Query().Get("period"))
		if q != "" || bucket != BucketAny {
			items = Filter(items, q, bucket)
		}

		writeJSON(w, http.StatusOK, items)
	}
}

func updateMedicineHandler(svc *Service, lookup druginfo.Lookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req medicineRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		d := req.toDraft()
		resolveInfo(r, &d, lookup)

		m, err := svc.Update(r.Context(), chi.URLParam(r, "medicineID"), d)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, m)
	}
}

func deleteMedicineHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Remove(r.Context(), chi.URLParam(r, "medicineID")); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func recordIntakeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req intakeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		m, err := svc.RecordIntake(r.Context(), chi.URLParam(r, "medicineID"), req.Time, req.Day)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, m)
	}
}

func suggestHandler(lookup druginfo.Lookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := strings.TrimSpace(r.URL.Query().Get("q"))
		if lookup == nil || len(q) < 3 {
			writeJSON(w, http.StatusOK, []string{})
			return
		}

		// best-effort: un fallo del lookup no es un fallo del endpoint
		names, err := lookup.Suggest(r.Context(), q, 5)
		if err != nil || names == nil {
			names = []string{}
		}
		writeJSON(w, http.StatusOK, names)
	}
}

// resolveInfo completa d.Info vía lookup si el request no la trajo.
// Los errores del lookup se descartan: el medicamento se guarda igual.
func resolveInfo(r *http.Request, d *Draft, lookup druginfo.Lookup) {
	if d.Info != nil || lookup == nil || strings.TrimSpace(d.Name) == "" {
		return
	}
	if info, ok, err := lookup.Lookup(r.Context(), d.Name); err == nil && ok {
		d.Info = &DrugInfo{
			Usage:       info.Usage,
			Category:    info.Category,
			GenericName: info.GenericName,
		}
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, "medicine not found", http.StatusNotFound)
	case errors.Is(err, ErrInvalidTime):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
