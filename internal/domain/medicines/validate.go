package medicines

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidTime  = errors.New("time not in schedule")
)

// ValidationError detalla qué campo del draft falló.
// errors.Is(err, ErrInvalidInput) matchea cualquier ValidationError.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Draft es el input sin validar de add/update (viene del form).
// El tipo persistido es Medicine; el draft nunca se almacena tal cual.
type Draft struct {
	Name         string
	Times        []string
	Dosage       string
	Instructions string

	DurationDays *int // nil = indefinido

	ReminderLeadMinutes *int // nil = usar default de settings

	Info *DrugInfo // nil = lookup no resuelto
}

// ValidateDraft normaliza y valida un draft. Función pura: no toca estado.
// Devuelve el draft normalizado (trims, horas deduplicadas en orden de entrada)
// o un *ValidationError.
func ValidateDraft(d Draft) (Draft, error) {
	d.Name = strings.TrimSpace(d.Name)
	if d.Name == "" {
		return Draft{}, &ValidationError{Field: "name", Reason: "name is required"}
	}

	times := make([]string, 0, len(d.Times))
	seen := make(map[string]bool, len(d.Times))
	for _, t := range d.Times {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		// time.Parse acepta "8:00"; se exige la forma canónica con cero a la
		// izquierda para que el orden lexicográfico siga siendo cronológico.
		parsed, err := time.Parse(TimeLayout, t)
		if err != nil || parsed.Format(TimeLayout) != t {
			return Draft{}, &ValidationError{
				Field:  "times",
				Reason: fmt.Sprintf("%q is not a valid HH:MM time", t),
			}
		}
		if seen[t] {
			continue
		}
		seen[t] = true
		times = append(times, t)
	}
	if len(times) == 0 {
		return Draft{}, &ValidationError{Field: "times", Reason: "at least one time is required"}
	}
	d.Times = times

	d.Dosage = strings.TrimSpace(d.Dosage)
	d.Instructions = strings.TrimSpace(d.Instructions)

	if d.DurationDays != nil && *d.DurationDays <= 0 {
		return Draft{}, &ValidationError{Field: "durationDays", Reason: "must be a positive number of days"}
	}
	if d.ReminderLeadMinutes != nil && *d.ReminderLeadMinutes < 0 {
		return Draft{}, &ValidationError{Field: "reminderMinutes", Reason: "must not be negative"}
	}

	return d, nil
}
