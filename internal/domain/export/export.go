package export

import (
	"context"
	"time"

	"medicine-tracker/internal/domain/history"
	"medicine-tracker/internal/domain/medicines"
	"medicine-tracker/internal/domain/patient"
	"medicine-tracker/internal/domain/settings"
)

// Snapshot es el estado completo como un único valor serializable,
// para export a archivo y para el render de tablas en PDF (el I/O de
// archivos/documentos queda fuera del engine).
type Snapshot struct {
	Medicines  []medicines.Medicine `json:"medicines"`
	History    []history.Entry      `json:"history"`
	Settings   settings.Settings    `json:"settings"`
	Patient    patient.Patient      `json:"patient"`
	ExportedAt time.Time            `json:"exportedAt"`
}

type Service struct {
	meds *medicines.Service
	hist *history.Service
	sets *settings.Service
	pat  *patient.Service
	now  func() time.Time
}

func NewService(meds *medicines.Service, hist *history.Service, sets *settings.Service, pat *patient.Service) *Service {
	return &Service{
		meds: meds,
		hist: hist,
		sets: sets,
		pat:  pat,
		now:  time.Now,
	}
}

func (s *Service) Build(ctx context.Context) (Snapshot, error) {
	meds, err := s.meds.List(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	hist, err := s.hist.All(ctx)
	if err != nil {
		return Snapshot{}, err
	}

	// settings/patient caen a defaults en error; el export no se bloquea
	st, _ := s.sets.Current(ctx)
	p, _ := s.pat.Current(ctx)

	return Snapshot{
		Medicines:  meds,
		History:    hist,
		Settings:   st,
		Patient:    p,
		ExportedAt: s.now(),
	}, nil
}
