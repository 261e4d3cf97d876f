package postgres

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Open abre una conexión pool a Postgres usando pgx (database/sql).
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	// defaults razonables para MVP (ajustable luego)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// EnsureSchema crea las tablas si no existen (deploy single-node,
// sin migraciones versionadas todavía).
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS medicines (
			id TEXT PRIMARY KEY,
			seq BIGSERIAL,
			name TEXT NOT NULL,
			times JSONB NOT NULL,
			dosage TEXT NOT NULL DEFAULT '',
			instructions TEXT NOT NULL DEFAULT '',
			duration_days INT,
			reminder_minutes INT NOT NULL DEFAULT 0,
			info_usage TEXT NOT NULL DEFAULT 'N/A',
			info_category TEXT NOT NULL DEFAULT 'N/A',
			info_generic TEXT NOT NULL DEFAULT 'N/A',
			intake JSONB NOT NULL DEFAULT '[]',
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS medication_history (
			id TEXT PRIMARY KEY,
			action TEXT NOT NULL,
			medicine_name TEXT NOT NULL,
			ts TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS app_settings (
			singleton BOOL PRIMARY KEY DEFAULT TRUE CHECK (singleton),
			enable_notifications BOOL NOT NULL,
			auto_save BOOL NOT NULL,
			default_reminder_minutes INT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS patient_info (
			singleton BOOL PRIMARY KEY DEFAULT TRUE CHECK (singleton),
			name TEXT NOT NULL DEFAULT '',
			dob TEXT NOT NULL DEFAULT '',
			contact TEXT NOT NULL DEFAULT '',
			allergies TEXT NOT NULL DEFAULT '',
			doctor_name TEXT NOT NULL DEFAULT '',
			doctor_contact TEXT NOT NULL DEFAULT ''
		)`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
