package schedule

import (
	"testing"
	"time"

	"medicine-tracker/internal/domain/medicines"
)

func med(id, name string, times ...string) medicines.Medicine {
	return medicines.Medicine{ID: id, Name: name, Times: times}
}

func taken(m medicines.Medicine, day string, times ...string) medicines.Medicine {
	for _, t := range times {
		m.Intake = append(m.Intake, medicines.IntakeEvent{Day: day, Time: t})
	}
	return m
}

func at(h, min int) time.Time {
	return time.Date(2025, 3, 10, h, min, 0, 0, time.Local)
}

// -------------------------
// Expand
// -------------------------

func TestExpand_OneOccurrencePerTime(t *testing.T) {
	items := []medicines.Medicine{
		med("1", "Aspirin", "20:00", "08:00"),
		med("2", "Metformin", "12:30"),
	}

	got := Expand(items)
	if len(got) != 3 {
		t.Fatalf("expected 3 occurrences, got %d", len(got))
	}

	want := []string{"08:00", "12:30", "20:00"}
	for i, w := range want {
		if got[i].Time != w {
			t.Fatalf("occurrence %d: expected %s, got %s", i, w, got[i].Time)
		}
	}
}

func TestExpand_TiesKeepInsertionOrder(t *testing.T) {
	items := []medicines.Medicine{
		med("1", "Aspirin", "08:00"),
		med("2", "Metformin", "08:00"),
		med("3", "Lisinopril", "08:00"),
	}

	got := Expand(items)
	for i, wantID := range []string{"1", "2", "3"} {
		if got[i].Medicine.ID != wantID {
			t.Fatalf("tie at 08:00 broke insertion order: position %d has %s", i, got[i].Medicine.ID)
		}
	}
}

func TestExpand_Empty(t *testing.T) {
	if got := Expand(nil); len(got) != 0 {
		t.Fatalf("expected no occurrences, got %v", got)
	}
}

// -------------------------
// Resolve
// -------------------------

func TestResolve_ExactlyAtNowIsPending(t *testing.T) {
	o := Occurrence{Medicine: med("1", "Aspirin", "08:00"), Time: "08:00"}

	if got := Resolve(o, at(8, 0)); got != StatusPending {
		t.Fatalf("dose exactly at now: expected pending, got %s", got)
	}
	if got := Resolve(o, at(8, 0).Add(time.Second)); got != StatusOverdue {
		t.Fatalf("one second past: expected overdue, got %s", got)
	}
	if got := Resolve(o, at(7, 59)); got != StatusPending {
		t.Fatalf("before the dose: expected pending, got %s", got)
	}
}

func TestResolve_TakenWinsOverElapsed(t *testing.T) {
	now := at(9, 0)
	day := medicines.DayOf(now)

	m := taken(med("1", "Aspirin", "08:00", "20:00"), day, "08:00")

	if got := Resolve(Occurrence{Medicine: m, Time: "08:00"}, now); got != StatusTaken {
		t.Fatalf("past dose with intake: expected taken, got %s", got)
	}
	if got := Resolve(Occurrence{Medicine: m, Time: "20:00"}, now); got != StatusPending {
		t.Fatalf("future dose without intake: expected pending, got %s", got)
	}
}

func TestResolve_FutureDoseCanBeTaken(t *testing.T) {
	now := at(9, 0)
	m := taken(med("1", "Aspirin", "20:00"), medicines.DayOf(now), "20:00")

	// tomada por adelantado: taken aunque el instante no llegó
	if got := Resolve(Occurrence{Medicine: m, Time: "20:00"}, now); got != StatusTaken {
		t.Fatalf("expected taken, got %s", got)
	}
}

func TestResolve_IntakeFromAnotherDayDoesNotCount(t *testing.T) {
	now := at(9, 0)
	m := taken(med("1", "Aspirin", "08:00"), "2025-03-09", "08:00")

	if got := Resolve(Occurrence{Medicine: m, Time: "08:00"}, now); got != StatusOverdue {
		t.Fatalf("yesterday's intake must not mark today taken: got %s", got)
	}
}

// -------------------------
// Adherence
// -------------------------

func TestAdherenceRate(t *testing.T) {
	day := "2025-03-10"

	items := []medicines.Medicine{
		taken(med("1", "Aspirin", "08:00", "20:00"), day, "08:00"),
		med("2", "Metformin", "12:00"),
	}

	if got := DoseCount(items); got != 3 {
		t.Fatalf("expected 3 scheduled doses, got %d", got)
	}
	if got := TakenCount(items, day); got != 1 {
		t.Fatalf("expected 1 taken dose, got %d", got)
	}
	// round(100 * 1/3) = 33
	if got := AdherenceRate(items, day); got != 33 {
		t.Fatalf("expected adherence 33, got %d", got)
	}
}

func TestAdherenceRate_Rounds(t *testing.T) {
	day := "2025-03-10"
	items := []medicines.Medicine{
		taken(med("1", "Aspirin", "08:00", "14:00", "20:00"), day, "08:00", "14:00"),
	}
	// round(100 * 2/3) = 67
	if got := AdherenceRate(items, day); got != 67 {
		t.Fatalf("expected adherence 67, got %d", got)
	}
}

func TestAdherenceRate_EmptyScheduleIsZero(t *testing.T) {
	if got := AdherenceRate(nil, "2025-03-10"); got != 0 {
		t.Fatalf("expected 0 for empty schedule, got %d", got)
	}
}

func TestAdherenceRate_CappedWithStaleIntakes(t *testing.T) {
	day := "2025-03-10"

	// un update que remueve la hora 20:00 deja su intake del día colgando:
	// 2 tomadas contra 1 programada
	m := taken(med("1", "Aspirin", "08:00"), day, "08:00", "20:00")

	if got := AdherenceRate([]medicines.Medicine{m}, day); got != 100 {
		t.Fatalf("expected adherence capped at 100, got %d", got)
	}
}

func TestAdherenceRate_AllTaken(t *testing.T) {
	day := "2025-03-10"
	items := []medicines.Medicine{
		taken(med("1", "Aspirin", "08:00", "20:00"), day, "08:00", "20:00"),
	}
	if got := AdherenceRate(items, day); got != 100 {
		t.Fatalf("expected 100, got %d", got)
	}
}

// -------------------------
// NextPendingDose
// -------------------------

func TestNextPendingDose_SkipsPastAndTaken(t *testing.T) {
	now := at(13, 0)
	day := medicines.DayOf(now)

	items := []medicines.Medicine{
		med("1", "Aspirin", "08:00", "20:00"),            // 08:00 vencida
		taken(med("2", "Metformin", "14:00"), day, "14:00"), // futura pero ya tomada
		med("3", "Lisinopril", "18:00"),
	}

	next, ok := NextPendingDose(items, now)
	if !ok {
		t.Fatal("expected a next dose")
	}
	if next.Hour() != 18 || next.Minute() != 0 {
		t.Fatalf("expected 18:00, got %v", next)
	}
	if !next.After(now) {
		t.Fatalf("next dose must be strictly after now: %v", next)
	}
}

func TestNextPendingDose_NoneLeft(t *testing.T) {
	now := at(22, 0)
	items := []medicines.Medicine{med("1", "Aspirin", "08:00", "20:00")}

	if _, ok := NextPendingDose(items, now); ok {
		t.Fatal("expected no next dose when every time already elapsed")
	}
}

func TestNextPendingDose_ExactlyNowExcluded(t *testing.T) {
	now := at(8, 0)
	items := []medicines.Medicine{med("1", "Aspirin", "08:00", "09:00")}

	next, ok := NextPendingDose(items, now)
	if !ok {
		t.Fatal("expected a next dose")
	}
	// la dosis en now exacto no cuenta como próxima
	if next.Hour() != 9 {
		t.Fatalf("expected 09:00, got %v", next)
	}
}
