package schedule

import (
	"math"
	"time"

	"medicine-tracker/internal/domain/medicines"
)

// DoseCount es el total de dosis programadas por día (suma de horas por
// medicamento). 0 sin medicamentos.
func DoseCount(items []medicines.Medicine) int {
	n := 0
	for _, m := range items {
		n += len(m.Times)
	}
	return n
}

// TakenCount cuenta los intakes registrados para el día dado.
func TakenCount(items []medicines.Medicine, day string) int {
	n := 0
	for _, m := range items {
		n += m.TakenOn(day)
	}
	return n
}

// AdherenceRate es round(100 * tomadas / programadas) para el día dado,
// siempre en [0, 100]. Definida como 0 sin dosis programadas (nunca divide
// por cero). Un update puede dejar intakes del día para horas ya removidas
// del cronograma; esos eventos inflan el numerador, por eso el techo en 100.
func AdherenceRate(items []medicines.Medicine, day string) int {
	total := DoseCount(items)
	if total == 0 {
		return 0
	}
	rate := int(math.Round(100 * float64(TakenCount(items, day)) / float64(total)))
	if rate > 100 {
		rate = 100
	}
	return rate
}

// NextPendingDose devuelve el instante programado más próximo estrictamente
// posterior a now entre las dosis de hoy aún no tomadas, o (zero, false) si
// no queda ninguna. Nunca devuelve un instante anterior a now.
func NextPendingDose(items []medicines.Medicine, now time.Time) (time.Time, bool) {
	day := medicines.DayOf(now)

	var next time.Time
	found := false
	for _, o := range Expand(items) {
		if o.Medicine.TakenAt(day, o.Time) {
			continue
		}
		at := o.Instant(now)
		if !at.After(now) {
			continue
		}
		if !found || at.Before(next) {
			next = at
			found = true
		}
	}
	return next, found
}
