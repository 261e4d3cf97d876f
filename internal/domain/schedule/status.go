package schedule

import (
	"time"

	"medicine-tracker/internal/domain/medicines"
)

type Status string

const (
	StatusTaken   Status = "taken"
	StatusOverdue Status = "overdue"
	StatusPending Status = "pending"
)

// Resolve clasifica una occurrence contra el instante actual y el intake log.
// Clasificación pura, sin estado: no hay flag "overdue" almacenado, se
// recalcula en cada consulta (una dosis vencida pasa a taken retroactivamente
// apenas se registra el intake).
//
//   - taken:   hay intake para (hoy, hora), da igual pasado o futuro
//   - overdue: sin intake y el instante programado es estrictamente anterior a now
//   - pending: sin intake y el instante programado es now o posterior
//
// Una dosis exactamente en now (al segundo) es pending, no overdue.
func Resolve(o Occurrence, now time.Time) Status {
	if o.Medicine.TakenAt(medicines.DayOf(now), o.Time) {
		return StatusTaken
	}
	if o.Instant(now).Before(now) {
		return StatusOverdue
	}
	return StatusPending
}
