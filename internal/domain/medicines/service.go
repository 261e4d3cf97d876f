package medicines

import (
	"context"
	"fmt"
	"strings"
	"time"

	"medicine-tracker/internal/domain/history"

	"github.com/google/uuid"
)

type Service struct {
	repo    Repository
	history *history.Service // puede ser nil (tests sin auditoría)
	now     func() time.Time
}

func NewService(repo Repository, hist *history.Service) *Service {
	return &Service{
		repo:    repo,
		history: hist,
		now:     time.Now,
	}
}

// Add valida el draft, asigna ID + createdAt y guarda el medicamento con
// intake log vacío. Registra la acción "added" en el historial.
// Toda la validación pasa antes de tocar estado: en error no hay mutación parcial.
func (s *Service) Add(ctx context.Context, d Draft) (Medicine, error) {
	d, err := ValidateDraft(d)
	if err != nil {
		return Medicine{}, err
	}

	now := s.now()

	info := UnknownDrugInfo()
	if d.Info != nil {
		info = d.Info.withDefaults()
	}

	lead := 0
	if d.ReminderLeadMinutes != nil {
		lead = *d.ReminderLeadMinutes
	}

	m := Medicine{
		ID:                  uuid.NewString(),
		Name:                d.Name,
		Times:               d.Times,
		Dosage:              d.Dosage,
		Instructions:        d.Instructions,
		DurationDays:        d.DurationDays,
		ReminderLeadMinutes: lead,
		Info:                info,
		CreatedAt:           now,
		UpdatedAt:           now,
		Intake:              []IntakeEvent{},
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return Medicine{}, err
	}
	if err := s.record(ctx, history.ActionAdded, m.Name); err != nil {
		return Medicine{}, err
	}
	return m, nil
}

// Update re-valida como Add y reemplaza los campos mutables preservando
// ID, createdAt y el intake log existente.
func (s *Service) Update(ctx context.Context, id string, d Draft) (Medicine, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return Medicine{}, err
	}

	d, err = ValidateDraft(d)
	if err != nil {
		return Medicine{}, err
	}

	current.Name = d.Name
	current.Times = d.Times
	current.Dosage = d.Dosage
	current.Instructions = d.Instructions
	current.DurationDays = d.DurationDays
	if d.ReminderLeadMinutes != nil {
		current.ReminderLeadMinutes = *d.ReminderLeadMinutes
	}
	if d.Info != nil {
		current.Info = d.Info.withDefaults()
	}
	current.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, current); err != nil {
		return Medicine{}, err
	}
	if err := s.record(ctx, history.ActionUpdated, current.Name); err != nil {
		return Medicine{}, err
	}
	return current, nil
}

// Remove borra el medicamento y registra "deleted" con el nombre
// al momento del borrado (snapshot, el historial lo sobrevive).
func (s *Service) Remove(ctx context.Context, id string) error {
	current, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, current.ID); err != nil {
		return err
	}
	return s.record(ctx, history.ActionDeleted, current.Name)
}

// RecordIntake registra que la dosis (day, t) fue tomada. Reemplaza cualquier
// evento previo para ese par: registrar dos veces deja exactamente un evento.
// day vacío = hoy (reloj local).
func (s *Service) RecordIntake(ctx context.Context, id, t, day string) (Medicine, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return Medicine{}, err
	}

	t = strings.TrimSpace(t)
	if !current.HasTime(t) {
		return Medicine{}, fmt.Errorf("%w: %q", ErrInvalidTime, t)
	}

	day = strings.TrimSpace(day)
	if day == "" {
		day = DayOf(s.now())
	} else if _, err := time.Parse(DayLayout, day); err != nil {
		return Medicine{}, &ValidationError{Field: "day", Reason: "must be YYYY-MM-DD"}
	}

	kept := current.Intake[:0:0]
	for _, ev := range current.Intake {
		if ev.Day == day && ev.Time == t {
			continue
		}
		kept = append(kept, ev)
	}
	current.Intake = append(kept, IntakeEvent{Day: day, Time: t})

	if err := s.repo.Update(ctx, current); err != nil {
		return Medicine{}, err
	}
	return current, nil
}

func (s *Service) Get(ctx context.Context, id string) (Medicine, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Medicine{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// List devuelve la colección en orden de inserción.
func (s *Service) List(ctx context.Context) ([]Medicine, error) {
	return s.repo.List(ctx)
}

// RemoveAll vacía el cronograma (reset). No registra historial.
func (s *Service) RemoveAll(ctx context.Context) error {
	return s.repo.DeleteAll(ctx)
}

func (s *Service) record(ctx context.Context, action history.Action, name string) error {
	if s.history == nil {
		return nil
	}
	_, err := s.history.Record(ctx, action, name)
	return err
}
