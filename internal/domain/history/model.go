package history

import "time"

type Action string

const (
	ActionAdded   Action = "added"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// Capacity es el máximo de entradas retenidas; al superarlo se evicta la más vieja.
const Capacity = 50

// DefaultRecent es cuántas entradas muestra la vista por defecto.
const DefaultRecent = 10

// Entry es una acción de ciclo de vida sobre un medicamento.
// MedicineName es snapshot, no referencia: sobrevive al delete del medicamento.
type Entry struct {
	ID           string    `json:"id"`
	Action       Action    `json:"action"`
	MedicineName string    `json:"medicineName"`
	Timestamp    time.Time `json:"timestamp"`
}
