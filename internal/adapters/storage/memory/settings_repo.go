package memory

import (
	"context"
	"sync"

	"medicine-tracker/internal/domain/patient"
	"medicine-tracker/internal/domain/settings"
)

type settingsRepo struct {
	mu      sync.RWMutex
	current settings.Settings
}

func NewSettingsRepo() settings.Repository {
	return &settingsRepo{current: settings.Default()}
}

func (r *settingsRepo) Get(ctx context.Context) (settings.Settings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current, nil
}

func (r *settingsRepo) Put(ctx context.Context, s settings.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = s
	return nil
}

type patientRepo struct {
	mu      sync.RWMutex
	current patient.Patient
}

func NewPatientRepo() patient.Repository {
	return &patientRepo{}
}

func (r *patientRepo) Get(ctx context.Context) (patient.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current, nil
}

func (r *patientRepo) Put(ctx context.Context, p patient.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = p
	return nil
}
