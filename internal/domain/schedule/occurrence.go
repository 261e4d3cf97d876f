package schedule

import (
	"sort"
	"time"

	"medicine-tracker/internal/domain/medicines"
)

// Occurrence es una administración programada: un medicamento a una hora,
// para un día calendario. Derivada, nunca persistida.
type Occurrence struct {
	Medicine medicines.Medicine
	Time     string // HH:MM
}

// Instant combina el día de ref con la hora de la occurrence, en hora local.
func (o Occurrence) Instant(ref time.Time) time.Time {
	t, err := time.Parse(medicines.TimeLayout, o.Time)
	if err != nil {
		return time.Time{}
	}
	return time.Date(ref.Year(), ref.Month(), ref.Day(), t.Hour(), t.Minute(), 0, 0, ref.Location())
}

// Expand deriva una Occurrence por cada (medicamento, hora). Función pura,
// barata de re-invocar. Orden: HH:MM ascendente (lexicográfico = cronológico
// dentro del día); empates conservan el orden de inserción de la colección.
func Expand(items []medicines.Medicine) []Occurrence {
	out := make([]Occurrence, 0, len(items)*2)
	for _, m := range items {
		for _, t := range m.Times {
			out = append(out, Occurrence{Medicine: m, Time: t})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Time < out[j].Time
	})
	return out
}
