package patient

import (
	"context"
	"strings"
)

// Patient es la ficha del paciente (y su médico) que acompaña al cronograma.
// Sistema mono-paciente: hay una sola ficha, sin ID.
type Patient struct {
	Name      string `json:"name,omitempty"`
	DOB       string `json:"dob,omitempty"` // YYYY-MM-DD, texto libre del form
	Contact   string `json:"contact,omitempty"`
	Allergies string `json:"allergies,omitempty"`

	DoctorName    string `json:"doctorName,omitempty"`
	DoctorContact string `json:"doctorContact,omitempty"`
}

// Repository es el port de persistencia de la ficha (registro único).
type Repository interface {
	Get(ctx context.Context) (Patient, error)
	Put(ctx context.Context, p Patient) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Current(ctx context.Context) (Patient, error) {
	return s.repo.Get(ctx)
}

func (s *Service) Save(ctx context.Context, p Patient) (Patient, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.DOB = strings.TrimSpace(p.DOB)
	p.Contact = strings.TrimSpace(p.Contact)
	p.Allergies = strings.TrimSpace(p.Allergies)
	p.DoctorName = strings.TrimSpace(p.DoctorName)
	p.DoctorContact = strings.TrimSpace(p.DoctorContact)

	if err := s.repo.Put(ctx, p); err != nil {
		return Patient{}, err
	}
	return p, nil
}

func (s *Service) Clear(ctx context.Context) error {
	return s.repo.Put(ctx, Patient{})
}
