package file

import (
	"context"
	"errors"
	"strings"

	"medicine-tracker/internal/domain/history"
	"medicine-tracker/internal/domain/medicines"
	"medicine-tracker/internal/domain/patient"
	"medicine-tracker/internal/domain/settings"
)

// Vistas del Store como repositorios por dominio.
// Comparten mutex y archivos; cada mutación marca su archivo como dirty.

func (s *Store) Medicines() medicines.Repository { return (*medicinesRepo)(s) }
func (s *Store) History() history.Repository     { return (*historyRepo)(s) }
func (s *Store) Settings() settings.Repository   { return (*settingsRepo)(s) }
func (s *Store) Patient() patient.Repository     { return (*patientRepo)(s) }

type medicinesRepo Store

func (r *medicinesRepo) store() *Store { return (*Store)(r) }

func (r *medicinesRepo) Create(ctx context.Context, m medicines.Medicine) error {
	s := r.store()
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(m.ID) == "" {
		return errors.New("medicine id required")
	}
	for _, existing := range s.meds {
		if existing.ID == m.ID {
			return errors.New("medicine already exists")
		}
	}
	s.meds = append(s.meds, m)
	s.markDirty(medicinesFile)
	return nil
}

func (r *medicinesRepo) Update(ctx context.Context, m medicines.Medicine) error {
	s := r.store()
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.meds {
		if existing.ID == m.ID {
			s.meds[i] = m
			s.markDirty(medicinesFile)
			return nil
		}
	}
	return medicines.ErrNotFound
}

func (r *medicinesRepo) Delete(ctx context.Context, id string) error {
	s := r.store()
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.meds {
		if existing.ID == id {
			s.meds = append(s.meds[:i], s.meds[i+1:]...)
			s.markDirty(medicinesFile)
			return nil
		}
	}
	return medicines.ErrNotFound
}

func (r *medicinesRepo) GetByID(ctx context.Context, id string) (medicines.Medicine, error) {
	s := r.store()
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, existing := range s.meds {
		if existing.ID == id {
			return existing, nil
		}
	}
	return medicines.Medicine{}, medicines.ErrNotFound
}

func (r *medicinesRepo) List(ctx context.Context) ([]medicines.Medicine, error) {
	s := r.store()
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]medicines.Medicine, len(s.meds))
	copy(out, s.meds)
	return out, nil
}

func (r *medicinesRepo) DeleteAll(ctx context.Context) error {
	s := r.store()
	s.mu.Lock()
	defer s.mu.Unlock()

	s.meds = nil
	s.markDirty(medicinesFile)
	return nil
}

type historyRepo Store

func (r *historyRepo) store() *Store { return (*Store)(r) }

func (r *historyRepo) Insert(ctx context.Context, e history.Entry) error {
	s := r.store()
	s.mu.Lock()
	defer s.mu.Unlock()

	s.hist = append([]history.Entry{e}, s.hist...)
	if len(s.hist) > history.Capacity {
		s.hist = s.hist[:history.Capacity]
	}
	s.markDirty(historyFile)
	return nil
}

func (r *historyRepo) Recent(ctx context.Context, n int) ([]history.Entry, error) {
	s := r.store()
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n > len(s.hist) {
		n = len(s.hist)
	}
	out := make([]history.Entry, n)
	copy(out, s.hist[:n])
	return out, nil
}

func (r *historyRepo) All(ctx context.Context) ([]history.Entry, error) {
	s := r.store()
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]history.Entry, len(s.hist))
	copy(out, s.hist)
	return out, nil
}

func (r *historyRepo) DeleteAll(ctx context.Context) error {
	s := r.store()
	s.mu.Lock()
	defer s.mu.Unlock()

	s.hist = nil
	s.markDirty(historyFile)
	return nil
}

type settingsRepo Store

func (r *settingsRepo) store() *Store { return (*Store)(r) }

func (r *settingsRepo) Get(ctx context.Context) (settings.Settings, error) {
	s := r.store()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sets, nil
}

func (r *settingsRepo) Put(ctx context.Context, st settings.Settings) error {
	s := r.store()
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sets = st
	s.markDirty(settingsFile)
	return nil
}

type patientRepo Store

func (r *patientRepo) store() *Store { return (*Store)(r) }

func (r *patientRepo) Get(ctx context.Context) (patient.Patient, error) {
	s := r.store()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pat, nil
}

func (r *patientRepo) Put(ctx context.Context, p patient.Patient) error {
	s := r.store()
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pat = p
	s.markDirty(patientFile)
	return nil
}
