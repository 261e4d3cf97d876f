package medicines

import "time"

const (
	// Formatos de referencia: hora local "HH:MM", día local "YYYY-MM-DD".
	TimeLayout = "15:04"
	DayLayout  = "2006-01-02"
)

// NotAvailable es el placeholder cuando el lookup externo no trae datos.
const NotAvailable = "N/A"

// DrugInfo es el resultado cacheado del lookup externo de medicamentos.
type DrugInfo struct {
	Usage       string `json:"usage"`
	Category    string `json:"category"`
	GenericName string `json:"genericName"`
}

func UnknownDrugInfo() DrugInfo {
	return DrugInfo{
		Usage:       NotAvailable,
		Category:    NotAvailable,
		GenericName: NotAvailable,
	}
}

func (i DrugInfo) withDefaults() DrugInfo {
	if i.Usage == "" {
		i.Usage = NotAvailable
	}
	if i.Category == "" {
		i.Category = NotAvailable
	}
	if i.GenericName == "" {
		i.GenericName = NotAvailable
	}
	return i
}

// IntakeEvent registra que la dosis de las `Time` fue tomada el día `Day`.
// Hay a lo sumo un evento por (day, time) por medicamento.
type IntakeEvent struct {
	Day  string `json:"day"`  // YYYY-MM-DD
	Time string `json:"time"` // HH:MM
}

type Medicine struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	Times []string `json:"times"` // HH:MM, orden de carga, sin duplicados

	Dosage       string `json:"dosage,omitempty"`
	Instructions string `json:"instructions,omitempty"`

	DurationDays *int `json:"durationDays,omitempty"` // nil = indefinido

	ReminderLeadMinutes int `json:"reminderLeadMinutes"`

	Info DrugInfo `json:"info"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Intake []IntakeEvent `json:"intakeLog"`
}

// HasTime indica si t es una de las horas programadas.
func (m Medicine) HasTime(t string) bool {
	for _, mt := range m.Times {
		if mt == t {
			return true
		}
	}
	return false
}

// TakenAt indica si la dosis (day, t) ya fue registrada como tomada.
func (m Medicine) TakenAt(day, t string) bool {
	for _, ev := range m.Intake {
		if ev.Day == day && ev.Time == t {
			return true
		}
	}
	return false
}

// TakenOn cuenta los intakes registrados para el día dado.
func (m Medicine) TakenOn(day string) int {
	n := 0
	for _, ev := range m.Intake {
		if ev.Day == day {
			n++
		}
	}
	return n
}

// DayOf formatea el día local de t como YYYY-MM-DD.
func DayOf(t time.Time) string {
	return t.Format(DayLayout)
}
