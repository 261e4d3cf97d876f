package druginfo

import "context"

// Lookup es el servicio externo de información de medicamentos.
// Best-effort: el engine acepta info ya resuelta (o ninguna); los fallos
// del lookup se tragan antes de llegar al engine.
type Lookup interface {
	// Lookup devuelve (info, true) si encontró el medicamento.
	Lookup(ctx context.Context, name string) (Info, bool, error)

	// Suggest devuelve hasta limit nombres para autocomplete.
	Suggest(ctx context.Context, query string, limit int) ([]string, error)
}
