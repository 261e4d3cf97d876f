package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"medicine-tracker/internal/domain/medicines"
)

type MedicinesRepo struct {
	db *sql.DB
}

func NewMedicinesRepo(db *sql.DB) *MedicinesRepo {
	return &MedicinesRepo{db: db}
}

func (r *MedicinesRepo) Create(ctx context.Context, m medicines.Medicine) error {
	times, err := json.Marshal(m.Times)
	if err != nil {
		return err
	}
	intake, err := json.Marshal(m.Intake)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO medicines (
			id, name, times,
			dosage, instructions, duration_days, reminder_minutes,
			info_usage, info_category, info_generic,
			intake, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`,
		m.ID,
		m.Name,
		times,
		m.Dosage,
		m.Instructions,
		toNullInt(m.DurationDays),
		m.ReminderLeadMinutes,
		m.Info.Usage,
		m.Info.Category,
		m.Info.GenericName,
		intake,
		m.CreatedAt,
		m.UpdatedAt,
	)
	return err
}

func (r *MedicinesRepo) Update(ctx context.Context, m medicines.Medicine) error {
	times, err := json.Marshal(m.Times)
	if err != nil {
		return err
	}
	intake, err := json.Marshal(m.Intake)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE medicines
		SET
			name = $2,
			times = $3,
			dosage = $4,
			instructions = $5,
			duration_days = $6,
			reminder_minutes = $7,
			info_usage = $8,
			info_category = $9,
			info_generic = $10,
			intake = $11,
			updated_at = $12
		WHERE id = $1
	`,
		m.ID,
		m.Name,
		times,
		m.Dosage,
		m.Instructions,
		toNullInt(m.DurationDays),
		m.ReminderLeadMinutes,
		m.Info.Usage,
		m.Info.Category,
		m.Info.GenericName,
		intake,
		m.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return medicines.ErrNotFound
	}
	return nil
}

func (r *MedicinesRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM medicines WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return medicines.ErrNotFound
	}
	return nil
}

func (r *MedicinesRepo) GetByID(ctx context.Context, id string) (medicines.Medicine, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return medicines.Medicine{}, medicines.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, name, times,
			dosage, instructions, duration_days, reminder_minutes,
			info_usage, info_category, info_generic,
			intake, created_at, updated_at
		FROM medicines
		WHERE id = $1
	`, id)

	m, err := scanMedicine(row)
	if err == sql.ErrNoRows {
		return medicines.Medicine{}, medicines.ErrNotFound
	}
	return m, err
}

// List devuelve en orden de inserción (seq asc), no en orden horario.
func (r *MedicinesRepo) List(ctx context.Context) ([]medicines.Medicine, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, name, times,
			dosage, instructions, duration_days, reminder_minutes,
			info_usage, info_category, info_generic,
			intake, created_at, updated_at
		FROM medicines
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]medicines.Medicine, 0)
	for rows.Next() {
		m, err := scanMedicine(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *MedicinesRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM medicines`)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMedicine(row rowScanner) (medicines.Medicine, error) {
	var (
		m        medicines.Medicine
		times    []byte
		intake   []byte
		duration sql.NullInt64
	)

	if err := row.Scan(
		&m.ID,
		&m.Name,
		&times,
		&m.Dosage,
		&m.Instructions,
		&duration,
		&m.ReminderLeadMinutes,
		&m.Info.Usage,
		&m.Info.Category,
		&m.Info.GenericName,
		&intake,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		return medicines.Medicine{}, err
	}

	if err := json.Unmarshal(times, &m.Times); err != nil {
		return medicines.Medicine{}, err
	}
	if err := json.Unmarshal(intake, &m.Intake); err != nil {
		return medicines.Medicine{}, err
	}
	if duration.Valid {
		d := int(duration.Int64)
		m.DurationDays = &d
	}

	return m, nil
}

func toNullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}
