package schedule

import (
	"encoding/json"
	"net/http"
	"time"

	"medicine-tracker/internal/domain/medicines"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, medsSvc *medicines.Service) {
	r.Get("/schedule", listScheduleHandler(medsSvc))
	r.Get("/stats", statsHandler(medsSvc))
}

type scheduleRow struct {
	Time         string `json:"time"`
	MedicineID   string `json:"medicineId"`
	Name         string `json:"name"`
	Dosage       string `json:"dosage,omitempty"`
	Instructions string `json:"instructions,omitempty"`
	Status       Status `json:"status"`
}

type statsResponse struct {
	TotalMedicines int    `json:"totalMedicines"`
	TodayDoses     int    `json:"todayDoses"`
	TakenToday     int    `json:"takenToday"`
	AdherenceRate  int    `json:"adherenceRate"`
	NextDose       string `json:"nextDose"` // HH:MM o "--:--"
}

// GET /schedule?q=&period=: cronograma del día expandido y clasificado.
// now/today se recalculan en cada request (el caller hace polling).
func listScheduleHandler(medsSvc *medicines.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := medsSvc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		q := r.URL.Query().Get("q")
		bucket := medicines.ParseBucket(r.URL.Query().Get("period"))
		if q != "" || bucket != medicines.BucketAny {
			items = medicines.Filter(items, q, bucket)
		}

		now := time.Now()
		rows := make([]scheduleRow, 0, len(items)*2)
		for _, o := range Expand(items) {
			rows = append(rows, scheduleRow{
				Time:         o.Time,
				MedicineID:   o.Medicine.ID,
				Name:         o.Medicine.Name,
				Dosage:       o.Medicine.Dosage,
				Instructions: o.Medicine.Instructions,
				Status:       Resolve(o, now),
			})
		}

		writeJSON(w, http.StatusOK, rows)
	}
}

func statsHandler(medsSvc *medicines.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := medsSvc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		now := time.Now()
		day := medicines.DayOf(now)

		next := "--:--"
		if at, ok := NextPendingDose(items, now); ok {
			next = at.Format(medicines.TimeLayout)
		}

		writeJSON(w, http.StatusOK, statsResponse{
			TotalMedicines: len(items),
			TodayDoses:     DoseCount(items),
			TakenToday:     TakenCount(items, day),
			AdherenceRate:  AdherenceRate(items, day),
			NextDose:       next,
		})
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
