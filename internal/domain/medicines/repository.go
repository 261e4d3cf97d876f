package medicines

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("medicine not found")

// Repository es el port de almacenamiento de medicamentos.
// List devuelve siempre el orden de inserción (no el orden horario).
type Repository interface {
	Create(ctx context.Context, m Medicine) error
	Update(ctx context.Context, m Medicine) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Medicine, error)
	List(ctx context.Context) ([]Medicine, error)
	DeleteAll(ctx context.Context) error
}
