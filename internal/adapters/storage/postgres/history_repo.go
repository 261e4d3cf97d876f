package postgres

import (
	"context"
	"database/sql"

	"medicine-tracker/internal/domain/history"
)

type HistoryRepo struct {
	db *sql.DB
}

func NewHistoryRepo(db *sql.DB) *HistoryRepo {
	return &HistoryRepo{db: db}
}

// Insert agrega la entrada y recorta el log a history.Capacity (evicta lo
// más viejo por timestamp).
func (r *HistoryRepo) Insert(ctx context.Context, e history.Entry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO medication_history (id, action, medicine_name, ts)
		VALUES ($1,$2,$3,$4)
	`, e.ID, string(e.Action), e.MedicineName, e.Timestamp); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM medication_history
		WHERE id NOT IN (
			SELECT id FROM medication_history ORDER BY ts DESC LIMIT $1
		)
	`, history.Capacity); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *HistoryRepo) Recent(ctx context.Context, n int) ([]history.Entry, error) {
	return r.list(ctx, n)
}

func (r *HistoryRepo) All(ctx context.Context) ([]history.Entry, error) {
	return r.list(ctx, history.Capacity)
}

func (r *HistoryRepo) list(ctx context.Context, limit int) ([]history.Entry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, action, medicine_name, ts
		FROM medication_history
		ORDER BY ts DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]history.Entry, 0)
	for rows.Next() {
		var e history.Entry
		var action string
		if err := rows.Scan(&e.ID, &action, &e.MedicineName, &e.Timestamp); err != nil {
			return nil, err
		}
		e.Action = history.Action(action)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *HistoryRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM medication_history`)
	return err
}
