// Package scheduler corre el loop de recordatorios de dosis: cada minuto
// re-evalúa el cronograma y avisa las dosis que entran en su ventana de
// recordatorio. El engine no guarda timers; esto es un caller-driven poll.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"medicine-tracker/internal/domain/medicines"
	"medicine-tracker/internal/domain/schedule"
	"medicine-tracker/internal/domain/settings"
	"medicine-tracker/internal/metrics"
	"medicine-tracker/internal/platform/logger"

	"github.com/go-co-op/gocron"
)

// Notifier entrega el aviso. La entrega real (browser, push) queda fuera
// del engine; acá solo se despacha.
type Notifier interface {
	Notify(medicineName, doseTime string, at time.Time)
}

// LogNotifier escribe el aviso en el log. Default cuando no hay canal real.
type LogNotifier struct {
	Log logger.Logger
}

func (n LogNotifier) Notify(medicineName, doseTime string, at time.Time) {
	if n.Log == nil {
		return
	}
	n.Log.Info("dose reminder", map[string]any{
		"medicine": medicineName,
		"time":     doseTime,
		"at":       at.Format(time.RFC3339),
	})
}

type Reminders struct {
	meds     *medicines.Service
	sets     *settings.Service
	notifier Notifier
	log      logger.Logger

	scheduler *gocron.Scheduler
	now       func() time.Time

	mu       sync.Mutex
	notified map[string]bool // (id|day|time) ya avisados
	day      string
}

func NewReminders(meds *medicines.Service, sets *settings.Service, notifier Notifier, log logger.Logger) *Reminders {
	if notifier == nil {
		notifier = LogNotifier{Log: log}
	}
	return &Reminders{
		meds:      meds,
		sets:      sets,
		notifier:  notifier,
		log:       log,
		scheduler: gocron.NewScheduler(time.Local),
		now:       time.Now,
		notified:  make(map[string]bool),
	}
}

func (r *Reminders) Start() error {
	_, err := r.scheduler.Every(1).Minute().Do(r.check)
	if err != nil {
		return fmt.Errorf("scheduler: schedule reminder check: %w", err)
	}
	r.scheduler.StartAsync()
	return nil
}

func (r *Reminders) Stop() {
	r.scheduler.Stop()
}

func (r *Reminders) check() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	st, err := r.sets.Current(ctx)
	if err != nil || !st.EnableNotifications {
		return
	}

	items, err := r.meds.List(ctx)
	if err != nil {
		if r.log != nil {
			r.log.Warn("scheduler: listing medicines failed", map[string]any{"error": err.Error()})
		}
		return
	}

	now := r.now()
	for _, o := range Due(items, now) {
		if r.markNotified(o, now) {
			r.notifier.Notify(o.Medicine.Name, o.Time, o.Instant(now))
			metrics.RemindersDispatched.Inc()
		}
	}
}

// Due devuelve las occurrences sin intake cuyo instante cae dentro de la
// ventana (now, now + reminderLeadMinutes] de su medicamento. Función pura.
func Due(items []medicines.Medicine, now time.Time) []schedule.Occurrence {
	day := medicines.DayOf(now)

	out := make([]schedule.Occurrence, 0)
	for _, o := range schedule.Expand(items) {
		lead := o.Medicine.ReminderLeadMinutes
		if lead <= 0 {
			continue
		}
		if o.Medicine.TakenAt(day, o.Time) {
			continue
		}
		at := o.Instant(now)
		if at.After(now) && !at.After(now.Add(time.Duration(lead)*time.Minute)) {
			out = append(out, o)
		}
	}
	return out
}

// markNotified evita repetir el aviso para la misma dosis dentro del día.
func (r *Reminders) markNotified(o schedule.Occurrence, now time.Time) bool {
	day := medicines.DayOf(now)

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.day != day {
		// rollover de medianoche: arranca limpio
		r.day = day
		r.notified = make(map[string]bool)
	}

	key := o.Medicine.ID + "|" + day + "|" + o.Time
	if r.notified[key] {
		return false
	}
	r.notified[key] = true
	return true
}
