package history

import "context"

// Repository es el port del log de acciones.
// Insert antepone la entrada (orden más-reciente-primero) y el adapter
// descarta todo lo que quede más allá de Capacity.
type Repository interface {
	Insert(ctx context.Context, e Entry) error
	Recent(ctx context.Context, n int) ([]Entry, error)
	All(ctx context.Context) ([]Entry, error)
	DeleteAll(ctx context.Context) error
}
