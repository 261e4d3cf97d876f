package scheduler

import (
	"fmt"
	"testing"
	"time"

	"medicine-tracker/internal/domain/medicines"
	"medicine-tracker/internal/domain/schedule"
)

func reminderMed(id string, lead int, times ...string) medicines.Medicine {
	return medicines.Medicine{ID: id, Name: "med-" + id, Times: times, ReminderLeadMinutes: lead}
}

func TestDue_WindowBoundaries(t *testing.T) {
	now := time.Date(2025, 3, 10, 7, 50, 0, 0, time.Local)

	cases := []struct {
		name string
		med  medicines.Medicine
		want int
	}{
		{"inside window", reminderMed("1", 10, "07:55"), 1},
		{"exactly at window edge", reminderMed("2", 10, "08:00"), 1},
		{"just past window edge", reminderMed("3", 10, "08:01"), 0},
		{"already elapsed", reminderMed("4", 10, "07:49"), 0},
		{"exactly now", reminderMed("5", 10, "07:50"), 0},
		{"zero lead disables reminders", reminderMed("6", 0, "07:55"), 0},
		{"wide lead reaches further", reminderMed("7", 30, "08:15"), 1},
	}

	for _, tc := range cases {
		got := Due([]medicines.Medicine{tc.med}, now)
		if len(got) != tc.want {
			t.Fatalf("%s: expected %d due, got %d", tc.name, tc.want, len(got))
		}
	}
}

func TestDue_SkipsTakenDose(t *testing.T) {
	now := time.Date(2025, 3, 10, 7, 50, 0, 0, time.Local)
	day := medicines.DayOf(now)

	m := reminderMed("1", 10, "07:55")
	m.Intake = []medicines.IntakeEvent{{Day: day, Time: "07:55"}}

	if got := Due([]medicines.Medicine{m}, now); len(got) != 0 {
		t.Fatalf("taken dose must not come due, got %v", got)
	}
}

func TestDue_PerMedicineLead(t *testing.T) {
	now := time.Date(2025, 3, 10, 7, 50, 0, 0, time.Local)

	items := []medicines.Medicine{
		reminderMed("short", 5, "08:00"),  // fuera de su ventana de 5 min
		reminderMed("long", 15, "08:00"), // dentro de la suya
	}

	got := Due(items, now)
	if len(got) != 1 || got[0].Medicine.ID != "long" {
		t.Fatalf("expected only the long-lead medicine due, got %v", got)
	}
}

func TestMarkNotified_OncePerDosePerDay(t *testing.T) {
	r := &Reminders{notified: make(map[string]bool)}
	now := time.Date(2025, 3, 10, 7, 50, 0, 0, time.Local)

	o := schedule.Occurrence{Medicine: reminderMed("1", 10, "08:00"), Time: "08:00"}

	if !r.markNotified(o, now) {
		t.Fatal("first notification should go through")
	}
	if r.markNotified(o, now) {
		t.Fatal("repeat notification for the same dose must be suppressed")
	}

	// otra hora del mismo medicamento: aviso independiente
	other := schedule.Occurrence{Medicine: o.Medicine, Time: "20:00"}
	if !r.markNotified(other, now) {
		t.Fatal("different dose time should notify")
	}

	// rollover de medianoche resetea el registro
	nextDay := now.Add(24 * time.Hour)
	if !r.markNotified(o, nextDay) {
		t.Fatal("next day must notify again")
	}
}

func TestDue_ManyMedicines(t *testing.T) {
	now := time.Date(2025, 3, 10, 7, 50, 0, 0, time.Local)

	items := make([]medicines.Medicine, 0, 20)
	for i := 0; i < 20; i++ {
		items = append(items, reminderMed(fmt.Sprintf("m%d", i), 10, "07:55"))
	}

	got := Due(items, now)
	if len(got) != 20 {
		t.Fatalf("expected all 20 due, got %d", len(got))
	}
}
