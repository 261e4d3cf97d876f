package history

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidInput = errors.New("invalid input")

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// Record antepone una entrada nueva. El log es append-only desde el engine;
// solo la evicción por capacidad (en el repo) borra entradas.
func (s *Service) Record(ctx context.Context, action Action, medicineName string) (Entry, error) {
	switch action {
	case ActionAdded, ActionUpdated, ActionDeleted:
	default:
		return Entry{}, ErrInvalidInput
	}
	medicineName = strings.TrimSpace(medicineName)
	if medicineName == "" {
		return Entry{}, ErrInvalidInput
	}

	e := Entry{
		ID:           uuid.NewString(),
		Action:       action,
		MedicineName: medicineName,
		Timestamp:    s.now(),
	}
	if err := s.repo.Insert(ctx, e); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// Recent devuelve las primeras n entradas sin mutar el log.
// n <= 0 usa DefaultRecent.
func (s *Service) Recent(ctx context.Context, n int) ([]Entry, error) {
	if n <= 0 {
		n = DefaultRecent
	}
	return s.repo.Recent(ctx, n)
}

func (s *Service) All(ctx context.Context) ([]Entry, error) {
	return s.repo.All(ctx)
}

func (s *Service) Clear(ctx context.Context) error {
	return s.repo.DeleteAll(ctx)
}
